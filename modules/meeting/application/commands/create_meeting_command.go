package commands

import (
	"time"

	"gitscribe/modules/meeting/domain/entities"
)

// CreateMeetingCommand represents the command to create or resolve a meeting,
// issued by SessionManager when a session's first audio chunk arrives and by
// the /save-transcript handler.
type CreateMeetingCommand struct {
	ExternalID string             `json:"external_id"`
	Platform   entities.Platform  `json:"platform" validate:"required"`
	Title      string             `json:"title" validate:"required"`
	StartedAt  time.Time          `json:"started_at"`
}
