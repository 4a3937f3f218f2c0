package services

import (
	"context"
	"fmt"

	actionentities "gitscribe/modules/actionitem/domain/entities"
	actionrepositories "gitscribe/modules/actionitem/domain/repositories"
	actionservices "gitscribe/modules/actionitem/application/services"
	"gitscribe/modules/extraction/domain/services"
	transcriptionentities "gitscribe/modules/transcription/domain/entities"
	transcriptionrepositories "gitscribe/modules/transcription/domain/repositories"
)

// TranscriptProcessor is the REST-driven counterpart to SessionManager's
// WebSocket pipeline: the same Extractor/TaskProjector/Store operations,
// invoked synchronously or from a ProcessingJob instead of from a live
// Session (spec.md §6's /process-transcript, /generate-summary,
// /extract-tasks, /extract-tasks-comprehensive).
type TranscriptProcessor struct {
	extractor      *services.Extractor
	transcriptRepo transcriptionrepositories.TranscriptRepository
	taskRepo       actionrepositories.TaskRepository
	projector      *actionservices.TaskProjector
}

func NewTranscriptProcessor(
	extractor *services.Extractor,
	transcriptRepo transcriptionrepositories.TranscriptRepository,
	taskRepo actionrepositories.TaskRepository,
	projector *actionservices.TaskProjector,
) *TranscriptProcessor {
	return &TranscriptProcessor{
		extractor:      extractor,
		transcriptRepo: transcriptRepo,
		taskRepo:       taskRepo,
		projector:      projector,
	}
}

func (p *TranscriptProcessor) IdentifySpeakers(ctx context.Context, text, meetingContext string) (services.SpeakerResult, error) {
	return p.extractor.IdentifySpeakers(ctx, text, meetingContext)
}

func (p *TranscriptProcessor) GenerateSummary(ctx context.Context, meetingID, text, title string) (transcriptionentities.Summary, error) {
	doc, err := p.extractor.Summarize(ctx, text, title)
	if err != nil {
		return transcriptionentities.Summary{}, err
	}
	summary := transcriptionentities.NewSummary(meetingID, doc.Overview, doc.KeyOutcomes, doc.Decisions, doc.Participants, doc.NextSteps, "extractor")
	if err := p.transcriptRepo.SaveSummary(ctx, &summary); err != nil {
		return transcriptionentities.Summary{}, fmt.Errorf("persisting summary: %w", err)
	}
	return summary, nil
}

func (p *TranscriptProcessor) ExtractTasks(ctx context.Context, meetingID, text, meetingContext string) ([]actionentities.Task, error) {
	return p.extractor.ExtractTasks(ctx, meetingID, text, meetingContext)
}

// ExtractTasksComprehensive runs extraction, persists full-field tasks, and
// dispatches to every configured platform, returning both the persisted
// records and the per-platform dispatch outcomes (spec.md §6).
func (p *TranscriptProcessor) ExtractTasksComprehensive(ctx context.Context, meetingID, text, meetingContext string) ([]actionentities.Task, []actionservices.DispatchResult, error) {
	tasks, err := p.extractor.ExtractTasks(ctx, meetingID, text, meetingContext)
	if err != nil {
		return nil, nil, err
	}
	for i := range tasks {
		if err := p.taskRepo.Upsert(ctx, &tasks[i]); err != nil {
			return nil, nil, fmt.Errorf("persisting task: %w", err)
		}
	}
	results := p.projector.DispatchTasks(ctx, tasks)
	return tasks, results, nil
}

// ProcessTranscript runs the full pipeline (summary + tasks + dispatch) for
// the async /process-transcript → /get-summary/{process_id} flow.
func (p *TranscriptProcessor) ProcessTranscript(ctx context.Context, meetingID, text, title string) error {
	if _, err := p.GenerateSummary(ctx, meetingID, text, title); err != nil {
		return err
	}
	_, _, err := p.ExtractTasksComprehensive(ctx, meetingID, text, title)
	return err
}
