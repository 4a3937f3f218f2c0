package services

import (
	"context"
	"fmt"

	"gitscribe/modules/actionitem/domain/entities"
	"gitscribe/modules/actionitem/domain/repositories"
	"gitscribe/modules/integration/domain/services"
)

// DispatchResult reports one platform's dispatch outcome for one task.
// IntegrationError never blocks persistence (spec.md §7): failures are
// reported here rather than returned as a top-level error.
type DispatchResult struct {
	TaskID      string
	Platform    string
	ExternalID  string
	ExternalURL string
	Skipped     bool
	Err         error
}

// TaskProjector implements spec.md §4.7's two-layer rule: the full Task
// record stays in the store, and only a fixed subset (TaskProjection) is
// sent to each enabled platform. Dispatch is idempotent by (task_id,
// platform), generalizing the teacher's
// GetTicketReferencesBySystem existence check.
type TaskProjector struct {
	taskRepo repositories.TaskRepository
	clients  []services.IntegrationClient
}

func NewTaskProjector(taskRepo repositories.TaskRepository, clients []services.IntegrationClient) *TaskProjector {
	return &TaskProjector{taskRepo: taskRepo, clients: clients}
}

func project(task entities.Task) services.TaskProjection {
	return services.TaskProjection{
		Title:       task.Title,
		Description: task.Description,
		Assignee:    task.Assignee,
		Priority:    string(task.Priority),
	}
}

// DispatchTask sends a task to every enabled, available platform, skipping
// any (task_id, platform) pair that already has an ExternalTaskRef.
func (tp *TaskProjector) DispatchTask(ctx context.Context, task entities.Task) []DispatchResult {
	results := make([]DispatchResult, 0, len(tp.clients))
	projection := project(task)

	for _, client := range tp.clients {
		platform := client.Platform()

		if existing, err := tp.taskRepo.FindExternalTaskRef(ctx, task.GetID(), platform); err == nil && existing != nil {
			results = append(results, DispatchResult{TaskID: task.GetID(), Platform: platform, Skipped: true})
			continue
		}

		if !client.Available() {
			results = append(results, DispatchResult{
				TaskID: task.GetID(), Platform: platform,
				Err: fmt.Errorf("%s integration not available", platform),
			})
			continue
		}

		externalID, externalURL, err := client.CreateTask(ctx, projection)
		if err != nil {
			results = append(results, DispatchResult{TaskID: task.GetID(), Platform: platform, Err: err})
			continue
		}

		result := DispatchResult{TaskID: task.GetID(), Platform: platform, ExternalID: externalID, ExternalURL: externalURL}
		if externalID != "" {
			ref := entities.NewExternalTaskRef(task.GetID(), platform, externalID, externalURL)
			if err := tp.taskRepo.SaveExternalTaskRef(ctx, &ref); err != nil {
				result.Err = err
			}
		}
		results = append(results, result)
	}

	return results
}

// DispatchTasks runs DispatchTask for every task from one extraction run.
func (tp *TaskProjector) DispatchTasks(ctx context.Context, tasks []entities.Task) []DispatchResult {
	var all []DispatchResult
	for _, task := range tasks {
		all = append(all, tp.DispatchTask(ctx, task)...)
	}
	return all
}
