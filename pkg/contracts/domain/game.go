package domain

import (
	"time"
)

// GameType selects which slice of a season a view covers.
type GameType string

const (
	GameTypeRegular  GameType = "regular"
	GameTypePlayoffs GameType = "playoffs"
	GameTypeBoth     GameType = "both"
)

// Valid reports whether gt is one of the three supported selections.
func (gt GameType) Valid() bool {
	switch gt {
	case GameTypeRegular, GameTypePlayoffs, GameTypeBoth:
		return true
	}
	return false
}

// Display labels for the derived game classification. These are the values
// carried on every record's Type field and matched by the view filter.
const (
	TypeLabelRegular  = "Regular Season"
	TypeLabelPlayoffs = "Playoffs"
)

// Game results after normalization. Rows with any other value are dropped
// during load.
const (
	ResultWin  = "W"
	ResultLoss = "L"
)

// GameRecord is one row of the normalized dataset: one team's result in one
// game. Two records exist per physical game, one per team's perspective.
type GameRecord struct {
	Season     int        `json:"season"`
	Team       string     `json:"team"`
	GameDate   *time.Time `json:"game_date,omitempty"`
	SeasonGame *int       `json:"seasongame,omitempty"`
	IsPlayoffs int        `json:"is_playoffs"`
	GameResult string     `json:"game_result"`
	Type       string     `json:"type"`

	// Passthrough fields, display only, never validated.
	Points    string `json:"pts,omitempty"`
	OppID     string `json:"opp_id,omitempty"`
	OppPoints string `json:"opp_pts,omitempty"`
}

// TypeLabel derives the game classification from the playoffs flag.
// 1 means playoffs; everything else (including the defaulted 0 for
// missing/unparseable flags) is regular season.
func TypeLabel(isPlayoffs int) string {
	if isPlayoffs == 1 {
		return TypeLabelPlayoffs
	}
	return TypeLabelRegular
}

// IsWin reports whether the record is a win.
func (g *GameRecord) IsWin() bool {
	return g.GameResult == ResultWin
}

// IsLoss reports whether the record is a loss.
func (g *GameRecord) IsLoss() bool {
	return g.GameResult == ResultLoss
}
