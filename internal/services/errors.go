package services

import "errors"

// Dashboard service errors
var (
	// ErrNoData means a filter combination matched zero rows. It is the
	// empty-result condition, not a fault; handlers turn it into the
	// "no data for this selection" response.
	ErrNoData = errors.New("no games match the selected filters")

	// ErrNoSeasons means the dataset normalized to zero rows.
	ErrNoSeasons = errors.New("no seasons available")

	// ErrInvalidSelection means the request failed validation.
	ErrInvalidSelection = errors.New("invalid selection")
)
