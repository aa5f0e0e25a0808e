// Package analytics implements the filter, derive and sort pipeline that
// feeds the dashboard views. Every function here is pure over the frozen
// dataset: inputs are copied before sorting and nothing is ever written back.
package analytics

import (
	"sort"

	"courtside/pkg/contracts/domain"
)

// SortKey identifies which field ordered a view.
type SortKey string

const (
	// SortBySeasonGame is chosen whenever any filtered row carries the
	// within-season ordinal.
	SortBySeasonGame SortKey = "seasongame"
	// SortByGameDate is the fallback when no row has an ordinal.
	SortByGameDate SortKey = "game_date"
)

// ViewRow is one record of a FilteredView with its derived fields.
type ViewRow struct {
	domain.GameRecord
	IsWin            bool `json:"is_win"`
	IsLoss           bool `json:"is_loss"`
	CumulativeWins   int  `json:"cumulative_wins"`
	CumulativeLosses int  `json:"cumulative_losses"`
}

// FilteredView is the filtered, sorted, derived sequence for one user
// selection. It is recomputed on every request and never persisted.
type FilteredView struct {
	Season   int             `json:"season"`
	Team     string          `json:"team"`
	GameType domain.GameType `json:"game_type"`
	SortKey  SortKey         `json:"sort_key"`
	Rows     []ViewRow       `json:"rows"`
}

// Empty reports whether the selection matched no rows. This is a valid
// result, not an error; the presentation layer shows a notice for it.
func (v *FilteredView) Empty() bool {
	return len(v.Rows) == 0
}

// BuildView filters the dataset to one (season, team, gameType) selection,
// sorts it and computes the running win/loss totals. An empty result is
// returned as an empty view, never as an error.
func BuildView(records []domain.GameRecord, season int, team string, gameType domain.GameType) FilteredView {
	view := FilteredView{
		Season:   season,
		Team:     team,
		GameType: gameType,
	}

	var filtered []domain.GameRecord
	for _, rec := range records {
		if rec.Season != season {
			continue
		}
		if gameType != domain.GameTypeBoth && rec.Type != typeLabelFor(gameType) {
			continue
		}
		if rec.Team != team {
			continue
		}
		filtered = append(filtered, rec)
	}

	view.SortKey = chooseSortKey(filtered)
	sortRecords(filtered, view.SortKey, true)

	view.Rows = make([]ViewRow, 0, len(filtered))
	wins, losses := 0, 0
	for _, rec := range filtered {
		row := ViewRow{GameRecord: rec}
		row.IsWin = rec.IsWin()
		row.IsLoss = rec.IsLoss()
		if row.IsWin {
			wins++
		}
		if row.IsLoss {
			losses++
		}
		row.CumulativeWins = wins
		row.CumulativeLosses = losses
		view.Rows = append(view.Rows, row)
	}

	return view
}

// typeLabelFor maps a selector value to the record Type label it filters on.
func typeLabelFor(gameType domain.GameType) string {
	if gameType == domain.GameTypePlayoffs {
		return domain.TypeLabelPlayoffs
	}
	return domain.TypeLabelRegular
}

// chooseSortKey prefers the within-season ordinal whenever any row has one,
// falling back to the game date otherwise.
func chooseSortKey(records []domain.GameRecord) SortKey {
	for _, rec := range records {
		if rec.SeasonGame != nil {
			return SortBySeasonGame
		}
	}
	return SortByGameDate
}

// sortRecords orders records by the chosen key. The sort is stable and nulls
// sort last in both directions, so rows with equal or missing keys keep
// their source order and results are reproducible across runs.
func sortRecords(records []domain.GameRecord, key SortKey, ascending bool) {
	// cmp returns <0, 0 or >0 for non-null keys; hasKey gates null handling.
	hasKey := func(r domain.GameRecord) bool {
		if key == SortBySeasonGame {
			return r.SeasonGame != nil
		}
		return r.GameDate != nil
	}
	cmp := func(a, b domain.GameRecord) int {
		if key == SortBySeasonGame {
			return *a.SeasonGame - *b.SeasonGame
		}
		switch {
		case a.GameDate.Before(*b.GameDate):
			return -1
		case a.GameDate.After(*b.GameDate):
			return 1
		default:
			return 0
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		switch {
		case !hasKey(a):
			return false // nulls last, original order preserved among them
		case !hasKey(b):
			return true
		}
		c := cmp(a, b)
		if ascending {
			return c < 0
		}
		return c > 0
	})
}

// Summary holds the scalar metrics shown next to the charts.
type Summary struct {
	TotalGames  int      `json:"total_games"`
	TotalWins   int      `json:"total_wins"`
	TotalLosses int      `json:"total_losses"`
	// WinRate is a percentage and is omitted entirely when no games match,
	// so the zero-games case never divides.
	WinRate *float64 `json:"win_rate,omitempty"`
}

// Summarize computes the scalar metrics for a view.
func Summarize(view *FilteredView) Summary {
	s := Summary{TotalGames: len(view.Rows)}
	for _, row := range view.Rows {
		if row.IsWin {
			s.TotalWins++
		}
		if row.IsLoss {
			s.TotalLosses++
		}
	}
	if s.TotalGames > 0 {
		rate := float64(s.TotalWins) / float64(s.TotalGames) * 100
		s.WinRate = &rate
	}
	return s
}

// TableRow is the fixed column projection shown in the recent-games table.
type TableRow struct {
	Season     int    `json:"season"`
	SeasonGame *int   `json:"seasongame,omitempty"`
	GameDate   string `json:"game_date,omitempty"`
	Team       string `json:"team"`
	GameResult string `json:"game_result"`
	Type       string `json:"type"`
	Points     string `json:"pts,omitempty"`
	OppID      string `json:"opp_id,omitempty"`
	OppPoints  string `json:"opp_pts,omitempty"`
}

// tableRowLimit caps the recent-games table.
const tableRowLimit = 50

// TableRows re-sorts the view descending by its own sort key and projects
// the most recent rows, capped at 50.
func TableRows(view *FilteredView) []TableRow {
	records := make([]domain.GameRecord, len(view.Rows))
	for i, row := range view.Rows {
		records[i] = row.GameRecord
	}

	sortRecords(records, view.SortKey, false)

	if len(records) > tableRowLimit {
		records = records[:tableRowLimit]
	}

	rows := make([]TableRow, 0, len(records))
	for _, rec := range records {
		row := TableRow{
			Season:     rec.Season,
			SeasonGame: rec.SeasonGame,
			Team:       rec.Team,
			GameResult: rec.GameResult,
			Type:       rec.Type,
			Points:     rec.Points,
			OppID:      rec.OppID,
			OppPoints:  rec.OppPoints,
		}
		if rec.GameDate != nil {
			row.GameDate = rec.GameDate.Format("2006-01-02")
		}
		rows = append(rows, row)
	}

	return rows
}
