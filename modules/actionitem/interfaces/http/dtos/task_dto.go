package dtos

import (
	"time"

	"gitscribe/modules/actionitem/domain/entities"
)

type ExternalTaskRefResponse struct {
	Platform    string `json:"platform"`
	ExternalID  string `json:"external_id"`
	ExternalURL string `json:"external_url"`
}

type TaskResponse struct {
	ID                      string                    `json:"id"`
	MeetingID               string                    `json:"meeting_id"`
	AITaskID                string                    `json:"ai_task_id"`
	Title                   string                    `json:"title"`
	Description             string                    `json:"description"`
	Assignee                string                    `json:"assignee,omitempty"`
	DueDate                 *time.Time                `json:"due_date,omitempty"`
	DueDateText             string                    `json:"due_date_text,omitempty"`
	Priority                string                    `json:"priority"`
	Status                  string                    `json:"status"`
	Category                string                    `json:"category,omitempty"`
	BusinessImpact          string                    `json:"business_impact"`
	Dependencies            []string                  `json:"dependencies,omitempty"`
	MentionedBy             string                    `json:"mentioned_by,omitempty"`
	Context                 string                    `json:"context,omitempty"`
	ExplicitLevel           string                    `json:"explicit_level"`
	AIExtractedAt           time.Time                 `json:"ai_extracted_at"`
	AIConfidenceScore       float64                   `json:"ai_confidence_score"`
	SourceTranscriptSegment string                    `json:"source_transcript_segment,omitempty"`
	ExtractionMethod        string                    `json:"extraction_method"`
	ExternalTaskRefs        []ExternalTaskRefResponse `json:"external_task_refs,omitempty"`
}

func ToTaskResponse(t entities.Task) TaskResponse {
	refs := make([]ExternalTaskRefResponse, 0, len(t.ExternalTaskRefs))
	for _, ref := range t.ExternalTaskRefs {
		refs = append(refs, ExternalTaskRefResponse{Platform: ref.Platform, ExternalID: ref.ExternalID, ExternalURL: ref.ExternalURL})
	}
	return TaskResponse{
		ID:                      t.GetID(),
		MeetingID:               t.MeetingID,
		AITaskID:                t.AITaskID,
		Title:                   t.Title,
		Description:             t.Description,
		Assignee:                t.Assignee,
		DueDate:                 t.DueDate,
		DueDateText:             t.DueDateText,
		Priority:                string(t.Priority),
		Status:                  string(t.Status),
		Category:                t.Category,
		BusinessImpact:          string(t.BusinessImpact),
		Dependencies:            t.Dependencies,
		MentionedBy:             t.MentionedBy,
		Context:                 t.Context,
		ExplicitLevel:           string(t.ExplicitLevel),
		AIExtractedAt:           t.AIExtractedAt,
		AIConfidenceScore:       t.AIConfidenceScore,
		SourceTranscriptSegment: t.SourceTranscriptSegment,
		ExtractionMethod:        string(t.ExtractionMethod),
		ExternalTaskRefs:        refs,
	}
}

func ToTasksResponse(tasks []entities.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToTaskResponse(t))
	}
	return out
}

// DispatchResultResponse mirrors services.DispatchResult for the
// extract-tasks-comprehensive response envelope.
type DispatchResultResponse struct {
	TaskID      string `json:"task_id"`
	Platform    string `json:"platform"`
	ExternalID  string `json:"external_id,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
	Skipped     bool   `json:"skipped"`
	Error       string `json:"error,omitempty"`
}
