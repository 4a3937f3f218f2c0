package repositories

import (
	"context"

	"gorm.io/gorm"

	"gitscribe/modules/actionitem/domain/entities"
	"gitscribe/modules/actionitem/domain/repositories"
	"gitscribe/seedwork/domain"
)

// GormTaskRepository implements TaskRepository directly against
// entities.Task/ExternalTaskRef, following the same direct-GORM-entity
// pattern as the transcript and meeting repositories.
type GormTaskRepository struct {
	db *gorm.DB
}

func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

var _ repositories.TaskRepository = (*GormTaskRepository)(nil)

func (r *GormTaskRepository) Upsert(ctx context.Context, task *entities.Task) error {
	var existing entities.Task
	err := r.db.WithContext(ctx).
		Where("meeting_id = ? AND ai_task_id = ?", task.MeetingID, task.AITaskID).
		First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(task).Error
	}
	if err != nil {
		return err
	}

	task.SetID(existing.GetID())
	return r.db.WithContext(ctx).Model(&existing).Updates(task).Error
}

func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*entities.Task, error) {
	var task entities.Task
	err := r.db.WithContext(ctx).Preload("ExternalTaskRefs").First(&task, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) FindByMeetingID(ctx context.Context, meetingID string) ([]entities.Task, error) {
	var tasks []entities.Task
	err := r.db.WithContext(ctx).
		Preload("ExternalTaskRefs").
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *GormTaskRepository) FindByAITaskID(ctx context.Context, meetingID, aiTaskID string) (*entities.Task, error) {
	var task entities.Task
	err := r.db.WithContext(ctx).
		Where("meeting_id = ? AND ai_task_id = ?", meetingID, aiTaskID).
		First(&task).Error
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) SaveExternalTaskRef(ctx context.Context, ref *entities.ExternalTaskRef) error {
	return r.db.WithContext(ctx).Create(ref).Error
}

func (r *GormTaskRepository) FindExternalTaskRef(ctx context.Context, taskID, platform string) (*entities.ExternalTaskRef, error) {
	var ref entities.ExternalTaskRef
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND platform = ?", taskID, platform).
		First(&ref).Error
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
