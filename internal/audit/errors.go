package audit

import "github.com/goodnatureofminers/token42-backend/internal/model"

var (
	ErrInvalidLogger    = model.Revert(model.ErrInvalidArgument, "Invalid logger address")
	ErrInvalidActor     = model.Revert(model.ErrInvalidArgument, "Invalid actor address")
	ErrInvalidTarget    = model.Revert(model.ErrInvalidArgument, "Invalid target contract")
	ErrInvalidEventType = model.Revert(model.ErrInvalidArgument, "Invalid event type")
	ErrLogNotFound      = model.Revert(model.ErrNotFound, "Log ID does not exist")
	ErrInvalidTimeRange = model.Revert(model.ErrInvalidArgument, "Invalid time range")
	ErrFutureEndTime    = model.Revert(model.ErrInvalidArgument, "End time cannot be in the future")
)
