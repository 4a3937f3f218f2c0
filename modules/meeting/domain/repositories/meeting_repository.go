package repositories

import (
	"context"

	"gitscribe/modules/meeting/domain/entities"
)

// MeetingRepository persists Meeting aggregates. It is the module-level
// slice of the wider Store abstraction (spec.md §4.6): every implementation
// (embedded or remote) is backed by the same GORM entity set and must
// behave identically regardless of which driver opened the database.
type MeetingRepository interface {
	Save(ctx context.Context, meeting *entities.Meeting) error
	FindByID(ctx context.Context, id string) (*entities.Meeting, error)
	FindByFingerprint(ctx context.Context, fingerprint string) (*entities.Meeting, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Meeting, error)
	Update(ctx context.Context, meeting *entities.Meeting) error

	SaveParticipants(ctx context.Context, meetingID string, participants []entities.Participant) error
	FindParticipants(ctx context.Context, meetingID string) ([]entities.Participant, error)
}
