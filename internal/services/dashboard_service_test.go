package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/config"
	"courtside/internal/dataset"
	"courtside/pkg/contracts/domain"
)

const testCSV = `gameorder,year_id,team_id,date_game,seasongame,is_playoffs,game_result,pts,opp_id,opp_pts
1,1947,NYK,11/1/1946,1,0,W,68,TRH,66
2,1947,NYK,11/2/1946,2,0,L,63,CHS,67
3,1947,NYK,11/4/1946,3,0,W,64,PRO,62
4,1947,TRH,11/1/1946,1,0,L,66,NYK,68
5,1948,NYK,11/5/1947,1,0,L,70,BLB,75
6,1948,NYK,4/10/1948,49,1,W,86,BLB,75
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) *DashboardService {
	t.Helper()

	path := filepath.Join(t.TempDir(), "games.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o644))

	cfg := config.Default()
	cfg.Dataset.Path = path

	return NewDashboardService(cfg, dataset.NewStore(testLogger()), testLogger())
}

func TestDashboardService_Warm(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Warm(context.Background()))
}

func TestDashboardService_WarmMissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset.Path = filepath.Join(t.TempDir(), "missing.csv")

	svc := NewDashboardService(cfg, dataset.NewStore(testLogger()), testLogger())

	err := svc.Warm(context.Background())
	require.Error(t, err)
	assert.True(t, dataset.IsDataError(err))
}

func TestDashboardService_Seasons(t *testing.T) {
	svc := newTestService(t)

	options, err := svc.Seasons(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{1947, 1948}, options.Seasons)
	assert.Equal(t, 1948, options.Default, "most recent season preselected")
}

func TestDashboardService_Teams(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	teams, err := svc.Teams(ctx, 1947)
	require.NoError(t, err)
	assert.Equal(t, []string{"NYK", "TRH"}, teams)

	teams, err = svc.Teams(ctx, 1948)
	require.NoError(t, err)
	assert.Equal(t, []string{"NYK"}, teams)
}

func TestDashboardService_View(t *testing.T) {
	svc := newTestService(t)

	view, err := svc.View(context.Background(), ViewRequest{
		Season:   1947,
		Team:     "NYK",
		GameType: "both",
	})
	require.NoError(t, err)

	assert.Equal(t, 1947, view.Season)
	assert.Equal(t, "NYK", view.Team)
	assert.Equal(t, domain.GameTypeBoth, view.GameType)
	assert.Equal(t, "NYK — Season 1947", view.Title)

	assert.Equal(t, 3, view.Summary.TotalGames)
	assert.Equal(t, 2, view.Summary.TotalWins)
	assert.Equal(t, 1, view.Summary.TotalLosses)
	require.NotNil(t, view.Summary.WinRate)
	assert.InDelta(t, 66.67, *view.Summary.WinRate, 0.01)

	require.Len(t, view.Line.Points, 3)
	assert.Equal(t, "game_date", view.Line.Axis)

	require.Len(t, view.Proportion, 2)
	assert.Equal(t, 2, view.Proportion[0].Value)
	assert.Equal(t, 1, view.Proportion[1].Value)

	require.Len(t, view.Table, 3)
	assert.Equal(t, "1946-11-04", view.Table[0].GameDate, "table is most recent first")
}

func TestDashboardService_ViewGameTypeFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	playoffs, err := svc.View(ctx, ViewRequest{Season: 1948, Team: "NYK", GameType: "playoffs"})
	require.NoError(t, err)
	assert.Equal(t, 1, playoffs.Summary.TotalGames)

	regular, err := svc.View(ctx, ViewRequest{Season: 1948, Team: "NYK", GameType: "regular"})
	require.NoError(t, err)
	assert.Equal(t, 1, regular.Summary.TotalGames)

	both, err := svc.View(ctx, ViewRequest{Season: 1948, Team: "NYK", GameType: "both"})
	require.NoError(t, err)
	assert.Equal(t, 2, both.Summary.TotalGames)
}

func TestDashboardService_ViewNoData(t *testing.T) {
	svc := newTestService(t)

	// TRH played in 1947 but not 1948; an empty match is NoData, not a fault
	_, err := svc.View(context.Background(), ViewRequest{
		Season:   1948,
		Team:     "TRH",
		GameType: "both",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestDashboardService_ViewInvalidSelection(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  ViewRequest
	}{
		{"missing team", ViewRequest{Season: 1947, GameType: "both"}},
		{"missing season", ViewRequest{Team: "NYK", GameType: "both"}},
		{"bad game type", ViewRequest{Season: 1947, Team: "NYK", GameType: "preseason"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.View(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSelection)
		})
	}
}
