// Package dataset loads and normalizes the historical game-results file.
//
// The loader reads every cell as a raw string first, renames known source
// columns to canonical names, coerces types with null-on-failure semantics,
// and drops rows that lack the mandatory identifying fields. The output
// preserves source insertion order; all sorting belongs to the view pipeline.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"courtside/pkg/contracts/domain"
)

// DataError is fatal at startup: the source file is missing or unreadable,
// or a mandatory column is absent from the header entirely. Row-level
// defects never produce a DataError.
type DataError struct {
	Path string
	Err  error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.Path, e.Err)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// IsDataError reports whether err is (or wraps) a DataError.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}

// renameMap maps source column headers to canonical field names.
// Columns not listed here pass through under their source name.
var renameMap = map[string]string{
	"year_id":     "season",
	"team_id":     "team",
	"date_game":   "game_date",
	"seasongame":  "seasongame",
	"is_playoffs": "is_playoffs",
	"game_result": "game_result",
}

// mandatoryColumns must exist in the header after renaming. Rows may still
// have empty values in them (those rows are dropped individually), but a
// file without the column at all cannot be a game log.
var mandatoryColumns = []string{"season", "team", "game_result"}

// dateLayouts are tried in order by parseDate. The source uses m/d/yyyy;
// the rest cover common exports of the same data.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// LoadStats describes what a Load pass kept and dropped.
type LoadStats struct {
	TotalRows   int `json:"total_rows"`
	Retained    int `json:"retained"`
	Dropped     int `json:"dropped"`
	NullDates   int `json:"null_dates"`
	NullOrdinal int `json:"null_ordinals"`
}

// Load reads the delimited file at path and returns the normalized records
// in source order. It is deterministic for a fixed file and never mutates
// external state.
func Load(path string, logger *slog.Logger) ([]domain.GameRecord, LoadStats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, &DataError{Path: path, Err: fmt.Errorf("open: %w", err)}
	}
	defer f.Close()

	records, stats, err := parse(f, logger)
	if err != nil {
		return nil, stats, &DataError{Path: path, Err: err}
	}

	logger.Info("dataset loaded",
		slog.String("path", path),
		slog.Int("total_rows", stats.TotalRows),
		slog.Int("retained", stats.Retained),
		slog.Int("dropped", stats.Dropped))

	return records, stats, nil
}

// parse normalizes the CSV stream. Split from Load so tests can feed
// in-memory data without touching the filesystem.
func parse(r io.Reader, logger *slog.Logger) ([]domain.GameRecord, LoadStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows become row-level defects, not aborts
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read header: %w", err)
	}

	columns := mapColumns(header)
	for _, col := range mandatoryColumns {
		if _, ok := columns[col]; !ok {
			return nil, LoadStats{}, fmt.Errorf("mandatory column %q missing from header", col)
		}
	}

	var (
		records []domain.GameRecord
		stats   LoadStats
	)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed line: recover the row as a defect, keep going
			stats.TotalRows++
			stats.Dropped++
			continue
		}
		stats.TotalRows++

		rec, ok := normalizeRow(row, columns, &stats)
		if !ok {
			stats.Dropped++
			continue
		}

		records = append(records, rec)
		stats.Retained++
	}

	logger.Debug("dataset normalization complete",
		slog.Int("retained", stats.Retained),
		slog.Int("dropped", stats.Dropped),
		slog.Int("null_dates", stats.NullDates))

	return records, stats, nil
}

// mapColumns builds canonical-name -> column-index from the header row,
// applying the rename map. Unknown columns keep their source name so
// passthrough fields (pts, opp_id, opp_pts) resolve directly.
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if canonical, ok := renameMap[name]; ok {
			name = canonical
		}
		if name == "" {
			continue
		}
		// First occurrence wins on duplicate headers
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}
	return columns
}

// normalizeRow applies the coercion and drop policy to one raw row.
func normalizeRow(row []string, columns map[string]int, stats *LoadStats) (domain.GameRecord, bool) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	// Mandatory identifying fields: missing any of them drops the row.
	team := cell("team")
	if team == "" {
		return domain.GameRecord{}, false
	}

	season, ok := parseInt(cell("season"))
	if !ok {
		return domain.GameRecord{}, false
	}

	// Result normalization: trim, uppercase, keep only W or L.
	result := strings.ToUpper(cell("game_result"))
	if result != domain.ResultWin && result != domain.ResultLoss {
		return domain.GameRecord{}, false
	}

	rec := domain.GameRecord{
		Season:     season,
		Team:       team,
		GameResult: result,
		Points:     cell("pts"),
		OppID:      cell("opp_id"),
		OppPoints:  cell("opp_pts"),
	}

	// Optional ordinal: unparseable becomes null, never an error.
	if n, ok := parseInt(cell("seasongame")); ok {
		rec.SeasonGame = &n
	} else {
		stats.NullOrdinal++
	}

	// Optional date: unparseable becomes null; only affects sort/axis choice.
	if t, ok := parseDate(cell("game_date")); ok {
		rec.GameDate = &t
	} else {
		stats.NullDates++
	}

	// Playoffs flag defaults to 0 when missing or unparseable, which also
	// covers the "unknown" case. The derived type follows the flag.
	if n, ok := parseInt(cell("is_playoffs")); ok {
		rec.IsPlayoffs = n
	}
	rec.Type = domain.TypeLabel(rec.IsPlayoffs)

	return rec, true
}

// parseInt coerces a raw cell to an integer, tolerating float-styled
// integers ("1946.0") the way spreadsheet round-trips produce them.
func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f), true
	}
	return 0, false
}

// parseDate tries the known layouts in order.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
