package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"courtside/internal/analytics"
	"courtside/internal/config"
	"courtside/internal/dataset"
	"courtside/pkg/contracts/domain"
)

// DashboardService assembles the selector options and view payloads the
// dashboard frontend renders. All methods are pure reads over the memoized
// dataset; the same inputs always yield the same response.
type DashboardService struct {
	store    *dataset.Store
	path     string
	logger   *slog.Logger
	validate *validator.Validate
}

// NewDashboardService creates a dashboard service over the configured dataset
func NewDashboardService(cfg *config.Config, store *dataset.Store, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		store:    store,
		path:     cfg.Dataset.Path,
		logger:   logger.With(slog.String("component", "dashboard_service")),
		validate: validator.New(),
	}
}

// Warm loads the dataset eagerly so a bad input file fails startup instead
// of the first request. The returned error wraps dataset.DataError.
func (s *DashboardService) Warm(ctx context.Context) error {
	records, err := s.store.Get(ctx, s.path)
	if err != nil {
		return fmt.Errorf("warm dataset: %w", err)
	}
	s.logger.InfoContext(ctx, "dataset warmed",
		slog.String("path", s.path),
		slog.Int("records", len(records)))
	return nil
}

// SeasonOptions is the season selector payload. Default is the most recent
// season, matching what the selector preselects.
type SeasonOptions struct {
	Seasons []int `json:"seasons"`
	Default int   `json:"default"`
}

// Seasons returns the distinct seasons ascending with the most recent as
// the default selection.
func (s *DashboardService) Seasons(ctx context.Context) (*SeasonOptions, error) {
	records, err := s.store.Get(ctx, s.path)
	if err != nil {
		return nil, err
	}

	seasons := analytics.Seasons(records)
	if len(seasons) == 0 {
		return nil, ErrNoSeasons
	}

	return &SeasonOptions{
		Seasons: seasons,
		Default: seasons[len(seasons)-1],
	}, nil
}

// Teams returns the team selector options scoped to a season, falling back
// to all teams when the season has none.
func (s *DashboardService) Teams(ctx context.Context, season int) ([]string, error) {
	records, err := s.store.Get(ctx, s.path)
	if err != nil {
		return nil, err
	}
	return analytics.Teams(records, season), nil
}

// ViewRequest is one user selection.
type ViewRequest struct {
	Season   int    `validate:"required"`
	Team     string `validate:"required"`
	GameType string `validate:"required,oneof=regular playoffs both"`
}

// ViewResponse bundles everything one selection renders: scalar metrics,
// both chart payloads and the capped recent-games table.
type ViewResponse struct {
	Season     int                         `json:"season"`
	Team       string                      `json:"team"`
	GameType   domain.GameType             `json:"game_type"`
	Title      string                      `json:"title"`
	Summary    analytics.Summary           `json:"summary"`
	Line       analytics.LineSeries        `json:"line"`
	Proportion []analytics.ProportionSlice `json:"proportion"`
	Table      []analytics.TableRow        `json:"table"`
}

// View computes the full dashboard payload for one selection. A selection
// matching zero rows returns ErrNoData so the frontend can show its
// "no data" notice; the dataset itself is never mutated.
func (s *DashboardService) View(ctx context.Context, req ViewRequest) (*ViewResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}

	records, err := s.store.Get(ctx, s.path)
	if err != nil {
		return nil, err
	}

	gameType := domain.GameType(req.GameType)
	view := analytics.BuildView(records, req.Season, req.Team, gameType)

	s.logger.DebugContext(ctx, "view computed",
		slog.Int("season", req.Season),
		slog.String("team", req.Team),
		slog.String("game_type", req.GameType),
		slog.Int("rows", len(view.Rows)),
		slog.String("sort_key", string(view.SortKey)))

	if view.Empty() {
		return nil, ErrNoData
	}

	summary := analytics.Summarize(&view)

	return &ViewResponse{
		Season:     req.Season,
		Team:       req.Team,
		GameType:   gameType,
		Title:      fmt.Sprintf("%s — Season %d", req.Team, req.Season),
		Summary:    summary,
		Line:       analytics.BuildLineSeries(&view),
		Proportion: analytics.BuildProportion(summary),
		Table:      analytics.TableRows(&view),
	}, nil
}
