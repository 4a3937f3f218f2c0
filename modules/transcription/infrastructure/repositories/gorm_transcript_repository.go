package repositories

import (
	"context"

	"gorm.io/gorm"

	"gitscribe/modules/transcription/domain/entities"
	"gitscribe/modules/transcription/domain/repositories"
	"gitscribe/seedwork/domain"
)

// GormTranscriptRepository implements TranscriptRepository directly against
// entities.TranscriptChunk/Summary, matching the direct-GORM-entity pattern
// the teacher's transcription module already uses (no separate repository
// model/mapper layer, unlike the meeting module's now-removed indirection).
type GormTranscriptRepository struct {
	db *gorm.DB
}

func NewGormTranscriptRepository(db *gorm.DB) *GormTranscriptRepository {
	return &GormTranscriptRepository{db: db}
}

var _ repositories.TranscriptRepository = (*GormTranscriptRepository)(nil)

// AppendChunk inserts a chunk, treating a fingerprint collision within the
// same meeting as an idempotent success rather than an error (spec.md §4.6:
// "rejects on fingerprint collision (idempotent success, returns
// already_present=true)").
func (r *GormTranscriptRepository) AppendChunk(ctx context.Context, chunk *entities.TranscriptChunk) (alreadyPresent bool, err error) {
	var existing entities.TranscriptChunk
	err = r.db.WithContext(ctx).
		Where("meeting_id = ? AND fingerprint = ?", chunk.MeetingID, chunk.Fingerprint).
		First(&existing).Error
	if err == nil {
		return true, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}

	if err := r.db.WithContext(ctx).Create(chunk).Error; err != nil {
		return false, err
	}
	return false, nil
}

func (r *GormTranscriptRepository) ListChunks(ctx context.Context, meetingID string) ([]entities.TranscriptChunk, error) {
	var chunks []entities.TranscriptChunk
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("sequence ASC").
		Find(&chunks).Error
	return chunks, err
}

func (r *GormTranscriptRepository) SaveSummary(ctx context.Context, summary *entities.Summary) error {
	return r.db.WithContext(ctx).
		Where("meeting_id = ?", summary.MeetingID).
		Assign(summary).
		FirstOrCreate(summary).Error
}

func (r *GormTranscriptRepository) GetSummary(ctx context.Context, meetingID string) (*entities.Summary, error) {
	var summary entities.Summary
	err := r.db.WithContext(ctx).First(&summary, "meeting_id = ?", meetingID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
