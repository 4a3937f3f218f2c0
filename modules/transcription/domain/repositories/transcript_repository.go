package repositories

import (
	"context"

	"gitscribe/modules/transcription/domain/entities"
)

// TranscriptRepository persists TranscriptChunk and Summary records.
type TranscriptRepository interface {
	// AppendChunk returns alreadyPresent=true if a chunk with the same
	// (meeting_id, fingerprint) already exists, without erroring.
	AppendChunk(ctx context.Context, chunk *entities.TranscriptChunk) (alreadyPresent bool, err error)
	ListChunks(ctx context.Context, meetingID string) ([]entities.TranscriptChunk, error)

	SaveSummary(ctx context.Context, summary *entities.Summary) error
	GetSummary(ctx context.Context, meetingID string) (*entities.Summary, error)
}
