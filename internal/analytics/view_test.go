package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/pkg/contracts/domain"
)

func intPtr(n int) *int { return &n }

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// game builds a regular-season record with an ordinal and a date.
func game(season int, team, result string, ordinal int) domain.GameRecord {
	rec := domain.GameRecord{
		Season:     season,
		Team:       team,
		GameResult: result,
		SeasonGame: intPtr(ordinal),
		GameDate:   datePtr(season-1, time.November, ordinal),
		IsPlayoffs: 0,
	}
	rec.Type = domain.TypeLabel(rec.IsPlayoffs)
	return rec
}

func playoffGame(season int, team, result string, ordinal int) domain.GameRecord {
	rec := game(season, team, result, ordinal)
	rec.IsPlayoffs = 1
	rec.Type = domain.TypeLabel(1)
	return rec
}

func TestBuildView_CumulativeTotals(t *testing.T) {
	records := []domain.GameRecord{
		game(1990, "BOS", "W", 1),
		game(1990, "BOS", "L", 2),
		game(1990, "BOS", "W", 3),
	}

	view := BuildView(records, 1990, "BOS", domain.GameTypeBoth)
	require.Len(t, view.Rows, 3)

	wantWins := []int{1, 1, 2}
	wantLosses := []int{0, 1, 1}
	for i, row := range view.Rows {
		assert.Equal(t, wantWins[i], row.CumulativeWins, "row %d wins", i)
		assert.Equal(t, wantLosses[i], row.CumulativeLosses, "row %d losses", i)
	}

	summary := Summarize(&view)
	assert.Equal(t, 3, summary.TotalGames)
	assert.Equal(t, 2, summary.TotalWins)
	assert.Equal(t, 1, summary.TotalLosses)
	require.NotNil(t, summary.WinRate)
	assert.InDelta(t, 66.67, *summary.WinRate, 0.01)
}

func TestBuildView_CumulativeInvariant(t *testing.T) {
	records := []domain.GameRecord{
		game(1990, "BOS", "W", 1),
		game(1990, "BOS", "W", 2),
		game(1990, "BOS", "L", 3),
		game(1990, "BOS", "L", 4),
		game(1990, "BOS", "W", 5),
	}

	view := BuildView(records, 1990, "BOS", domain.GameTypeBoth)
	require.Len(t, view.Rows, 5)

	// At every position the running totals account for exactly the games
	// played so far.
	for i, row := range view.Rows {
		assert.Equal(t, i+1, row.CumulativeWins+row.CumulativeLosses)
	}
}

func TestBuildView_Filters(t *testing.T) {
	records := []domain.GameRecord{
		game(1990, "BOS", "W", 1),
		game(1990, "LAL", "L", 1),
		game(1991, "BOS", "W", 1),
		playoffGame(1990, "BOS", "L", 83),
	}

	tests := []struct {
		name     string
		season   int
		team     string
		gameType domain.GameType
		want     int
	}{
		{"both includes playoffs", 1990, "BOS", domain.GameTypeBoth, 2},
		{"regular only", 1990, "BOS", domain.GameTypeRegular, 1},
		{"playoffs only", 1990, "BOS", domain.GameTypePlayoffs, 1},
		{"other team excluded", 1990, "LAL", domain.GameTypeBoth, 1},
		{"other season excluded", 1991, "BOS", domain.GameTypeBoth, 1},
		{"no matches is empty not error", 1992, "BOS", domain.GameTypeBoth, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := BuildView(records, tt.season, tt.team, tt.gameType)
			assert.Len(t, view.Rows, tt.want)
			assert.Equal(t, tt.want == 0, view.Empty())
		})
	}
}

func TestBuildView_SortKeyPrefersOrdinal(t *testing.T) {
	// One row with an ordinal is enough to sort the whole view by it.
	withOrdinal := game(1990, "BOS", "W", 2)
	withoutOrdinal := game(1990, "BOS", "L", 1)
	withoutOrdinal.SeasonGame = nil

	view := BuildView([]domain.GameRecord{withOrdinal, withoutOrdinal}, 1990, "BOS", domain.GameTypeBoth)
	assert.Equal(t, SortBySeasonGame, view.SortKey)

	// The null-ordinal row sorts last even though its date is earlier
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "W", view.Rows[0].GameResult)
	assert.Equal(t, "L", view.Rows[1].GameResult)
}

func TestBuildView_SortKeyFallsBackToDate(t *testing.T) {
	a := game(1990, "BOS", "W", 0)
	a.SeasonGame = nil
	a.GameDate = datePtr(1989, time.December, 5)
	b := game(1990, "BOS", "L", 0)
	b.SeasonGame = nil
	b.GameDate = datePtr(1989, time.November, 20)

	view := BuildView([]domain.GameRecord{a, b}, 1990, "BOS", domain.GameTypeBoth)
	assert.Equal(t, SortByGameDate, view.SortKey)

	require.Len(t, view.Rows, 2)
	assert.Equal(t, "L", view.Rows[0].GameResult, "earlier date first")
	assert.Equal(t, "W", view.Rows[1].GameResult)
}

func TestSortRecords_NullsLastBothDirections(t *testing.T) {
	build := func() []domain.GameRecord {
		null1 := game(1990, "BOS", "W", 0)
		null1.SeasonGame = nil
		null2 := game(1990, "BOS", "L", 0)
		null2.SeasonGame = nil
		return []domain.GameRecord{
			null1,
			game(1990, "BOS", "W", 2),
			null2,
			game(1990, "BOS", "L", 1),
		}
	}

	for _, ascending := range []bool{true, false} {
		t.Run(fmt.Sprintf("ascending=%v", ascending), func(t *testing.T) {
			records := build()
			sortRecords(records, SortBySeasonGame, ascending)

			require.Len(t, records, 4)
			assert.NotNil(t, records[0].SeasonGame)
			assert.NotNil(t, records[1].SeasonGame)
			assert.Nil(t, records[2].SeasonGame)
			assert.Nil(t, records[3].SeasonGame)

			// Null rows keep their source order regardless of direction
			assert.Equal(t, "W", records[2].GameResult)
			assert.Equal(t, "L", records[3].GameResult)

			if ascending {
				assert.Equal(t, 1, *records[0].SeasonGame)
			} else {
				assert.Equal(t, 2, *records[0].SeasonGame)
			}
		})
	}
}

func TestSortRecords_StableOnEqualKeys(t *testing.T) {
	first := game(1990, "BOS", "W", 5)
	first.OppID = "first"
	second := game(1990, "BOS", "L", 5)
	second.OppID = "second"

	records := []domain.GameRecord{first, second}
	sortRecords(records, SortBySeasonGame, true)

	assert.Equal(t, "first", records[0].OppID)
	assert.Equal(t, "second", records[1].OppID)
}

func TestSummarize_WinRate(t *testing.T) {
	var records []domain.GameRecord
	for i := 1; i <= 10; i++ {
		records = append(records, game(1990, "BOS", "W", i))
	}
	for i := 11; i <= 14; i++ {
		records = append(records, game(1990, "BOS", "L", i))
	}

	view := BuildView(records, 1990, "BOS", domain.GameTypeBoth)
	summary := Summarize(&view)

	assert.Equal(t, 14, summary.TotalGames)
	assert.Equal(t, 10, summary.TotalWins)
	assert.Equal(t, 4, summary.TotalLosses)
	require.NotNil(t, summary.WinRate)
	assert.InDelta(t, 71.43, *summary.WinRate, 0.01)
}

func TestSummarize_ZeroGamesOmitsWinRate(t *testing.T) {
	view := BuildView(nil, 1990, "BOS", domain.GameTypeBoth)
	summary := Summarize(&view)

	assert.Equal(t, 0, summary.TotalGames)
	assert.Nil(t, summary.WinRate, "no division when nothing matched")
}

func TestTableRows_DescendingAndCapped(t *testing.T) {
	var records []domain.GameRecord
	for i := 1; i <= 60; i++ {
		records = append(records, game(1990, "BOS", "W", i))
	}

	view := BuildView(records, 1990, "BOS", domain.GameTypeBoth)
	rows := TableRows(&view)

	require.Len(t, rows, 50)
	require.NotNil(t, rows[0].SeasonGame)
	assert.Equal(t, 60, *rows[0].SeasonGame, "most recent game first")
	require.NotNil(t, rows[49].SeasonGame)
	assert.Equal(t, 11, *rows[49].SeasonGame)
}

func TestTableRows_Projection(t *testing.T) {
	rec := game(1990, "BOS", "W", 3)
	rec.Points = "104"
	rec.OppID = "LAL"
	rec.OppPoints = "99"

	view := BuildView([]domain.GameRecord{rec}, 1990, "BOS", domain.GameTypeBoth)
	rows := TableRows(&view)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, 1990, row.Season)
	assert.Equal(t, "BOS", row.Team)
	assert.Equal(t, "W", row.GameResult)
	assert.Equal(t, "Regular Season", row.Type)
	assert.Equal(t, "1989-11-03", row.GameDate)
	assert.Equal(t, "104", row.Points)
	assert.Equal(t, "LAL", row.OppID)
	assert.Equal(t, "99", row.OppPoints)
}

func TestTableRows_NullDateEmptyString(t *testing.T) {
	rec := game(1990, "BOS", "W", 1)
	rec.GameDate = nil

	view := BuildView([]domain.GameRecord{rec}, 1990, "BOS", domain.GameTypeBoth)
	rows := TableRows(&view)

	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].GameDate)
}
