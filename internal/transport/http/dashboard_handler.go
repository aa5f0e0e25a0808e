package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "courtside/internal/errors"
	appmiddleware "courtside/internal/middleware"
	"courtside/internal/services"
	"courtside/pkg/contracts/domain"
)

// DashboardHandler serves the selector options and view payloads the
// frontend renders.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/seasons", h.GetSeasons)
	r.Get("/teams", h.GetTeams)
	r.Get("/view", h.GetView)

	return r
}

// GetSeasons handles GET /api/dashboard/seasons
func (h *DashboardHandler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	reqID := appmiddleware.GetRequestID(r.Context())

	options, err := h.service.Seasons(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get seasons",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)

		if errors.Is(err, services.ErrNoSeasons) {
			h.errorHandler.HandleError(w, r, apierrors.New(
				http.StatusNotFound,
				"NO_SEASONS",
				"No seasons available in the dataset",
			))
			return
		}

		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   options,
	})
}

// GetTeams handles GET /api/dashboard/teams?season=N
func (h *DashboardHandler) GetTeams(w http.ResponseWriter, r *http.Request) {
	reqID := appmiddleware.GetRequestID(r.Context())

	season, err := strconv.Atoi(r.URL.Query().Get("season"))
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("season", "Season must be an integer"))
		return
	}

	teams, err := h.service.Teams(r.Context(), season)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get teams",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.Int("season", season),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   teams,
		"count":  len(teams),
		"season": season,
	})
}

// GetView handles GET /api/dashboard/view?season=N&team=T&type=regular|playoffs|both
func (h *DashboardHandler) GetView(w http.ResponseWriter, r *http.Request) {
	reqID := appmiddleware.GetRequestID(r.Context())

	season, err := strconv.Atoi(r.URL.Query().Get("season"))
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("season", "Season must be an integer"))
		return
	}

	team := r.URL.Query().Get("team")
	if team == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("team", "Team is required"))
		return
	}

	gameType := r.URL.Query().Get("type")
	if gameType == "" {
		gameType = string(domain.GameTypeBoth)
	}
	if !domain.GameType(gameType).Valid() {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("type", "Game type must be one of: regular, playoffs, both"))
		return
	}

	h.logger.InfoContext(r.Context(), "building view",
		slog.String("request_id", reqID),
		slog.Int("season", season),
		slog.String("team", team),
		slog.String("game_type", gameType),
	)

	view, err := h.service.View(r.Context(), services.ViewRequest{
		Season:   season,
		Team:     team,
		GameType: gameType,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build view",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)

		if errors.Is(err, services.ErrNoData) {
			h.errorHandler.HandleError(w, r, apierrors.NoDataError(season, team, gameType))
			return
		}

		if errors.Is(err, services.ErrInvalidSelection) {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidationFailed)
			return
		}

		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}
