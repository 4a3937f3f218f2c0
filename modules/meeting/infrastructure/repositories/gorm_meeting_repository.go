package repositories

import (
	"context"

	"gorm.io/gorm"

	"gitscribe/modules/meeting/domain/entities"
	"gitscribe/modules/meeting/domain/repositories"
	"gitscribe/seedwork/domain"
)

// GormMeetingRepository implements MeetingRepository against any *gorm.DB,
// embedded or remote — the schema and query set are identical either way
// (spec.md §4.6).
type GormMeetingRepository struct {
	db *gorm.DB
}

func NewGormMeetingRepository(db *gorm.DB) *GormMeetingRepository {
	return &GormMeetingRepository{db: db}
}

var _ repositories.MeetingRepository = (*GormMeetingRepository)(nil)

func (r *GormMeetingRepository) Save(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

func (r *GormMeetingRepository) FindByID(ctx context.Context, id string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).Preload("Participants").First(&meeting, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *GormMeetingRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).First(&meeting, "fingerprint = ?", fingerprint).Error
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *GormMeetingRepository) List(ctx context.Context, limit, offset int) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Order("started_at DESC").
		Limit(limit).Offset(offset).
		Find(&meetings).Error
	return meetings, err
}

func (r *GormMeetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	result := r.db.WithContext(ctx).Save(meeting)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormMeetingRepository) SaveParticipants(ctx context.Context, meetingID string, participants []entities.Participant) error {
	if len(participants) == 0 {
		return nil
	}
	for i := range participants {
		participants[i].MeetingID = meetingID
	}
	return r.db.WithContext(ctx).Create(&participants).Error
}

func (r *GormMeetingRepository) FindParticipants(ctx context.Context, meetingID string) ([]entities.Participant, error) {
	var participants []entities.Participant
	err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).Find(&participants).Error
	return participants, err
}
