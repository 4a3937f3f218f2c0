package repositories

import (
	"context"

	"gitscribe/modules/actionitem/domain/entities"
)

// TaskRepository persists Task and ExternalTaskRef records.
type TaskRepository interface {
	// Upsert writes a task, matching by (meeting_id, ai_task_id): an
	// existing row is updated in place, an unseen ai_task_id creates a new
	// row (spec.md §3 Task row-ownership rule).
	Upsert(ctx context.Context, task *entities.Task) error

	FindByID(ctx context.Context, id string) (*entities.Task, error)
	FindByMeetingID(ctx context.Context, meetingID string) ([]entities.Task, error)
	FindByAITaskID(ctx context.Context, meetingID, aiTaskID string) (*entities.Task, error)

	SaveExternalTaskRef(ctx context.Context, ref *entities.ExternalTaskRef) error
	FindExternalTaskRef(ctx context.Context, taskID, platform string) (*entities.ExternalTaskRef, error)
}
