package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitscribe/modules/actionitem/domain/entities"
	"gitscribe/modules/integration/domain/services"
	"gitscribe/seedwork/domain"
)

type fakeTaskRepository struct {
	refs map[string]*entities.ExternalTaskRef
}

func newFakeTaskRepository() *fakeTaskRepository {
	return &fakeTaskRepository{refs: map[string]*entities.ExternalTaskRef{}}
}

func refKey(taskID, platform string) string { return taskID + "|" + platform }

func (r *fakeTaskRepository) Upsert(ctx context.Context, task *entities.Task) error { return nil }

func (r *fakeTaskRepository) FindByID(ctx context.Context, id string) (*entities.Task, error) {
	return nil, domain.ErrNotFound
}

func (r *fakeTaskRepository) FindByMeetingID(ctx context.Context, meetingID string) ([]entities.Task, error) {
	return nil, nil
}

func (r *fakeTaskRepository) FindByAITaskID(ctx context.Context, meetingID, aiTaskID string) (*entities.Task, error) {
	return nil, domain.ErrNotFound
}

func (r *fakeTaskRepository) SaveExternalTaskRef(ctx context.Context, ref *entities.ExternalTaskRef) error {
	r.refs[refKey(ref.TaskID, ref.Platform)] = ref
	return nil
}

func (r *fakeTaskRepository) FindExternalTaskRef(ctx context.Context, taskID, platform string) (*entities.ExternalTaskRef, error) {
	if ref, ok := r.refs[refKey(taskID, platform)]; ok {
		return ref, nil
	}
	return nil, domain.ErrNotFound
}

type fakeIntegrationClient struct {
	platform   string
	available  bool
	externalID string
	err        error
	createCalls int
}

func (c *fakeIntegrationClient) Platform() string { return c.platform }

func (c *fakeIntegrationClient) CreateTask(ctx context.Context, projection services.TaskProjection) (string, string, error) {
	c.createCalls++
	if c.err != nil {
		return "", "", c.err
	}
	return c.externalID, "https://example.com/" + c.externalID, nil
}

func (c *fakeIntegrationClient) Notify(ctx context.Context, message string) error { return nil }

func (c *fakeIntegrationClient) Available() bool { return c.available }

func newTestTask() entities.Task {
	return entities.NewTask("meeting-1", "t1", "Write the changelog", "desc", entities.High, entities.ImpactMedium, entities.LevelDirect, entities.ExtractionExplicit, time.Now(), 0.9)
}

func TestDispatchTask_CreatesRefOnSuccess(t *testing.T) {
	repo := newFakeTaskRepository()
	client := &fakeIntegrationClient{platform: "notion", available: true, externalID: "abc123"}
	projector := NewTaskProjector(repo, []services.IntegrationClient{client})

	results := projector.DispatchTask(context.Background(), newTestTask())

	require.Len(t, results, 1)
	assert.False(t, results[0].Skipped)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "abc123", results[0].ExternalID)
	assert.Equal(t, 1, client.createCalls)

	ref, err := repo.FindExternalTaskRef(context.Background(), results[0].TaskID, "notion")
	require.NoError(t, err)
	assert.Equal(t, "abc123", ref.ExternalID)
}

func TestDispatchTask_SkipsAlreadyDispatchedPair(t *testing.T) {
	repo := newFakeTaskRepository()
	client := &fakeIntegrationClient{platform: "notion", available: true, externalID: "abc123"}
	projector := NewTaskProjector(repo, []services.IntegrationClient{client})
	task := newTestTask()

	projector.DispatchTask(context.Background(), task)
	results := projector.DispatchTask(context.Background(), task)

	require.Len(t, results, 1)
	assert.True(t, results[0].Skipped)
	assert.Equal(t, 1, client.createCalls, "second dispatch must not call CreateTask again")
}

func TestDispatchTask_SkipsUnavailableClientWithError(t *testing.T) {
	repo := newFakeTaskRepository()
	client := &fakeIntegrationClient{platform: "clickup", available: false}
	projector := NewTaskProjector(repo, []services.IntegrationClient{client})

	results := projector.DispatchTask(context.Background(), newTestTask())

	require.Len(t, results, 1)
	assert.False(t, results[0].Skipped)
	assert.Error(t, results[0].Err)
	assert.Equal(t, 0, client.createCalls)
}

func TestDispatchTask_CreateTaskErrorDoesNotSaveRef(t *testing.T) {
	repo := newFakeTaskRepository()
	client := &fakeIntegrationClient{platform: "slack", available: true, err: errors.New("rate limited")}
	projector := NewTaskProjector(repo, []services.IntegrationClient{client})

	results := projector.DispatchTask(context.Background(), newTestTask())

	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	_, err := repo.FindExternalTaskRef(context.Background(), results[0].TaskID, "slack")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDispatchTask_EmptyExternalIDDoesNotSaveRef(t *testing.T) {
	repo := newFakeTaskRepository()
	client := &fakeIntegrationClient{platform: "slack", available: true, externalID: ""}
	projector := NewTaskProjector(repo, []services.IntegrationClient{client})

	task := newTestTask()
	results := projector.DispatchTask(context.Background(), task)

	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	_, err := repo.FindExternalTaskRef(context.Background(), task.GetID(), "slack")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDispatchTasks_RunsAcrossMultipleTasks(t *testing.T) {
	repo := newFakeTaskRepository()
	client := &fakeIntegrationClient{platform: "notion", available: true, externalID: "xyz"}
	projector := NewTaskProjector(repo, []services.IntegrationClient{client})

	taskA := newTestTask()
	taskB := entities.NewTask("meeting-1", "t2", "Update docs", "desc", entities.Low, entities.ImpactLow, entities.LevelInferred, entities.ExtractionImplicit, time.Now(), 0.5)

	results := projector.DispatchTasks(context.Background(), []entities.Task{taskA, taskB})

	assert.Len(t, results, 2)
	assert.Equal(t, 2, client.createCalls)
}
