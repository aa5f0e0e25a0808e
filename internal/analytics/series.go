package analytics

import (
	"sort"
	"strconv"

	"courtside/pkg/contracts/domain"
)

// Fixed color mapping shared by the line and proportion charts.
const (
	ColorWins   = "#53ed6a"
	ColorLosses = "#e43131"
)

// LinePoint is one x position on the cumulative chart.
type LinePoint struct {
	X                string `json:"x"`
	CumulativeWins   int    `json:"cumulative_wins"`
	CumulativeLosses int    `json:"cumulative_losses"`
}

// LineSeries is the chart-ready cumulative win/loss trend. The renderer
// draws it as-is; no aggregation happens client-side.
type LineSeries struct {
	Axis        string      `json:"axis"` // "game_date" or "seasongame"
	Points      []LinePoint `json:"points"`
	WinsColor   string      `json:"wins_color"`
	LossesColor string      `json:"losses_color"`
}

// ProportionSlice is one slice of the win/loss proportion chart.
type ProportionSlice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// BuildLineSeries converts a view into the cumulative chart payload.
// The x axis uses the game date when any row has one and falls back to the
// season ordinal otherwise. Note the asymmetry with the sort-key choice
// (which prefers the ordinal); that mirrors the original dashboard.
func BuildLineSeries(view *FilteredView) LineSeries {
	axis := "seasongame"
	for _, row := range view.Rows {
		if row.GameDate != nil {
			axis = "game_date"
			break
		}
	}

	series := LineSeries{
		Axis:        axis,
		Points:      make([]LinePoint, 0, len(view.Rows)),
		WinsColor:   ColorWins,
		LossesColor: ColorLosses,
	}

	for _, row := range view.Rows {
		point := LinePoint{
			CumulativeWins:   row.CumulativeWins,
			CumulativeLosses: row.CumulativeLosses,
		}
		if axis == "game_date" {
			if row.GameDate != nil {
				point.X = row.GameDate.Format("2006-01-02")
			}
		} else if row.SeasonGame != nil {
			point.X = strconv.Itoa(*row.SeasonGame)
		}
		series.Points = append(series.Points, point)
	}

	return series
}

// BuildProportion converts a summary into the two-slice proportion chart.
func BuildProportion(summary Summary) []ProportionSlice {
	return []ProportionSlice{
		{Label: "Wins", Value: summary.TotalWins, Color: ColorWins},
		{Label: "Losses", Value: summary.TotalLosses, Color: ColorLosses},
	}
}

// Seasons returns the distinct seasons in the dataset, ascending.
func Seasons(records []domain.GameRecord) []int {
	seen := make(map[int]struct{})
	var seasons []int
	for _, rec := range records {
		if _, ok := seen[rec.Season]; ok {
			continue
		}
		seen[rec.Season] = struct{}{}
		seasons = append(seasons, rec.Season)
	}
	sort.Ints(seasons)
	return seasons
}

// Teams returns the distinct teams that played in season, sorted. When the
// season has no rows it falls back to every team in the dataset, so the
// selector is never empty while data exists.
func Teams(records []domain.GameRecord, season int) []string {
	collect := func(filter bool) []string {
		seen := make(map[string]struct{})
		var teams []string
		for _, rec := range records {
			if filter && rec.Season != season {
				continue
			}
			if _, ok := seen[rec.Team]; ok {
				continue
			}
			seen[rec.Team] = struct{}{}
			teams = append(teams, rec.Team)
		}
		return teams
	}

	teams := collect(true)
	if len(teams) == 0 {
		teams = collect(false)
	}
	sort.Strings(teams)
	return teams
}
