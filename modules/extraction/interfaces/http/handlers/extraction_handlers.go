package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	actionitemdtos "gitscribe/modules/actionitem/interfaces/http/dtos"
	extractionservices "gitscribe/modules/extraction/application/services"
	"gitscribe/modules/extraction/interfaces/http/dtos"
	meetingcommands "gitscribe/modules/meeting/application/commands"
	meetingentities "gitscribe/modules/meeting/domain/entities"
	meetingservices "gitscribe/modules/meeting/application/services"
	transcriptionentities "gitscribe/modules/transcription/domain/entities"
	transcriptionrepositories "gitscribe/modules/transcription/domain/repositories"
	"gitscribe/seedwork/domain"
	seedworkentities "gitscribe/seedwork/domain/entities"
	"gitscribe/seedwork/infrastructure/store"
)

// ExtractionHandlers serves the synchronous and asynchronous REST analogs
// of the Extractor operations (spec.md §6). Synchronous endpoints call
// straight through to TranscriptProcessor; /process-transcript schedules
// the same work as a ProcessingJob, polled via /get-summary/{process_id}.
type ExtractionHandlers struct {
	processor      *extractionservices.TranscriptProcessor
	meetingService *meetingservices.MeetingService
	transcriptRepo transcriptionrepositories.TranscriptRepository
	jobRepo        *store.ProcessingJobRepository
}

func NewExtractionHandlers(
	processor *extractionservices.TranscriptProcessor,
	meetingService *meetingservices.MeetingService,
	transcriptRepo transcriptionrepositories.TranscriptRepository,
	jobRepo *store.ProcessingJobRepository,
) *ExtractionHandlers {
	return &ExtractionHandlers{
		processor:      processor,
		meetingService: meetingService,
		transcriptRepo: transcriptRepo,
		jobRepo:        jobRepo,
	}
}

func (h *ExtractionHandlers) IdentifySpeakers(c *gin.Context) {
	var req dtos.IdentifySpeakersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.processor.IdentifySpeakers(c.Request.Context(), req.Text, req.Context)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ExtractionHandlers) GenerateSummary(c *gin.Context) {
	var req dtos.GenerateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	summary, err := h.processor.GenerateSummary(c.Request.Context(), req.MeetingID, req.Text, req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ExtractionHandlers) ExtractTasks(c *gin.Context) {
	var req dtos.ExtractTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tasks, err := h.processor.ExtractTasks(c.Request.Context(), req.MeetingID, req.Text, req.MeetingContext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": actionitemdtos.ToTasksResponse(tasks)})
}

// ExtractTasksComprehensive runs extraction, persists full-field tasks, and
// returns both the persisted records and the per-platform dispatch
// outcomes (spec.md §6). Idempotent by (task_id, platform): re-invoking
// this endpoint skips platforms a task already has a ref for.
func (h *ExtractionHandlers) ExtractTasksComprehensive(c *gin.Context) {
	var req dtos.ExtractTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tasks, results, err := h.processor.ExtractTasksComprehensive(c.Request.Context(), req.MeetingID, req.Text, req.MeetingContext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dispatchResponses := make([]actionitemdtos.DispatchResultResponse, 0, len(results))
	for _, r := range results {
		resp := actionitemdtos.DispatchResultResponse{
			TaskID: r.TaskID, Platform: r.Platform, ExternalID: r.ExternalID, ExternalURL: r.ExternalURL, Skipped: r.Skipped,
		}
		if r.Err != nil {
			resp.Error = r.Err.Error()
		}
		dispatchResponses = append(dispatchResponses, resp)
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":     actionitemdtos.ToTasksResponse(tasks),
		"dispatch":  dispatchResponses,
	})
}

// ProcessTranscriptWithTools is the synchronous all-in-one analog of the
// WSGateway's finalize pipeline: summary + tasks + dispatch in one call.
func (h *ExtractionHandlers) ProcessTranscriptWithTools(c *gin.Context) {
	var req dtos.ProcessTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.processor.GenerateSummary(c.Request.Context(), req.MeetingID, req.Text, req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	tasks, results, err := h.processor.ExtractTasksComprehensive(c.Request.Context(), req.MeetingID, req.Text, req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"tasks":   actionitemdtos.ToTasksResponse(tasks),
		"dispatch": results,
	})
}

// SaveTranscript persists transcript segments for a meeting (spec.md §6
// /save-transcript). The Meeting is resolved from the request title and the
// current time, so a later request with the same title creates a new
// Meeting row instead of appending to the earlier one.
func (h *ExtractionHandlers) SaveTranscript(c *gin.Context) {
	var req dtos.SaveTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	platform := req.Platform
	if platform == "" {
		platform = string(meetingentities.Generic)
	}

	meeting, err := h.meetingService.ResolveMeeting(c.Request.Context(), meetingcommands.CreateMeetingCommand{
		ExternalID: req.Title,
		Platform:   meetingentities.Platform(platform),
		Title:      req.Title,
		StartedAt:  time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for i, seg := range req.Segments {
		chunk := transcriptionentities.NewTranscriptChunk(meeting.GetID(), int64(i), seg.Text, seg.StartOffsetMS, seg.EndOffsetMS, seg.Confidence)
		chunk.SpeakerLabel = seg.SpeakerLabel
		if _, err := h.transcriptRepo.AppendChunk(c.Request.Context(), &chunk); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"meeting_id": meeting.GetID()})
}

// ProcessTranscript schedules extraction as a ProcessingJob and returns
// immediately; status is polled via GetSummary with the returned id
// (spec.md §6 /process-transcript).
func (h *ExtractionHandlers) ProcessTranscript(c *gin.Context) {
	var req dtos.ProcessTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := seedworkentities.NewProcessingJob("meeting", req.MeetingID, seedworkentities.ProcessMeetingJobType, map[string]interface{}{
		"text":  req.Text,
		"title": req.Title,
	})
	if err := h.jobRepo.Save(c.Request.Context(), &job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go func(job seedworkentities.ProcessingJob) {
		ctx := context.Background()
		job.Start()
		h.jobRepo.Update(ctx, &job)

		if err := h.processor.ProcessTranscript(ctx, req.MeetingID, req.Text, req.Title); err != nil {
			job.Fail(err.Error())
		} else {
			job.Complete()
		}
		h.jobRepo.Update(ctx, &job)
	}(job)

	c.JSON(http.StatusOK, gin.H{"process_id": job.GetID()})
}

// GetSummary resolves either a meeting_id (persisted Summary) or a
// process_id (ProcessingJob status), matching spec.md §6's dual use of
// /get-summary/{id}.
func (h *ExtractionHandlers) GetSummary(c *gin.Context) {
	id := c.Param("id")

	if summary, err := h.transcriptRepo.GetSummary(c.Request.Context(), id); err == nil {
		c.JSON(http.StatusOK, gin.H{"status": "completed", "data": summary})
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	job, err := h.jobRepo.FindByID(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	switch {
	case job.IsCompleted():
		summary, err := h.transcriptRepo.GetSummary(c.Request.Context(), job.EntityID)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"status": "completed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "completed", "data": summary})
	case job.IsFailed():
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": job.ErrorMessage})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "processing"})
	}
}
