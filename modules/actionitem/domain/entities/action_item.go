package entities

import (
	"time"

	"gitscribe/seedwork/domain"
)

type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
	Urgent Priority = "urgent"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

type BusinessImpact string

const (
	ImpactLow      BusinessImpact = "low"
	ImpactMedium   BusinessImpact = "medium"
	ImpactHigh     BusinessImpact = "high"
	ImpactCritical BusinessImpact = "critical"
)

type ExplicitLevel string

const (
	LevelDirect   ExplicitLevel = "direct"
	LevelImplied  ExplicitLevel = "implied"
	LevelInferred ExplicitLevel = "inferred"
)

type ExtractionMethod string

const (
	ExtractionExplicit           ExtractionMethod = "explicit"
	ExtractionImplicit           ExtractionMethod = "implicit"
	ExtractionDependencyAnalysis ExtractionMethod = "dependency_analysis"
)

// Task is a child of Meeting holding the full AI-emitted extraction
// envelope. Every field the Extractor produces is preserved losslessly
// (spec.md §3 invariant) — this generalizes the teacher's ActionItem, which
// only carried Title/Description/Assignee/Priority/Context, to the full
// field set an extraction run emits. AITaskID is the key a re-run of
// extract_tasks matches against: existing rows are updated in place,
// unseen ids create new rows (spec.md §3 Task row-ownership rule).
type Task struct {
	domain.BaseEntity
	MeetingID             string           `json:"meeting_id" gorm:"column:meeting_id;not null;index"`
	AITaskID              string           `json:"ai_task_id" gorm:"column:ai_task_id;not null;index:idx_meeting_ai_task,priority:2"`
	Title                 string           `json:"title" gorm:"column:title;not null"`
	Description           string           `json:"description" gorm:"column:description;type:text;not null"`
	Assignee              string           `json:"assignee,omitempty" gorm:"column:assignee"`
	DueDate               *time.Time       `json:"due_date,omitempty" gorm:"column:due_date"`
	DueDateText           string           `json:"due_date_text,omitempty" gorm:"column:due_date_text"`
	Priority              Priority         `json:"priority" gorm:"column:priority;not null"`
	Status                TaskStatus       `json:"status" gorm:"column:status;not null"`
	Category              string           `json:"category,omitempty" gorm:"column:category"`
	BusinessImpact        BusinessImpact   `json:"business_impact" gorm:"column:business_impact;not null"`
	Dependencies          []string         `json:"dependencies,omitempty" gorm:"column:dependencies;serializer:json"`
	MentionedBy           string           `json:"mentioned_by,omitempty" gorm:"column:mentioned_by"`
	Context               string           `json:"context,omitempty" gorm:"column:context;type:text"`
	ExplicitLevel         ExplicitLevel    `json:"explicit_level" gorm:"column:explicit_level;not null"`
	AIExtractedAt         time.Time        `json:"ai_extracted_at" gorm:"column:ai_extracted_at;not null"`
	AIConfidenceScore     float64          `json:"ai_confidence_score" gorm:"column:ai_confidence_score;not null"`
	SourceTranscriptSegment string         `json:"source_transcript_segment,omitempty" gorm:"column:source_transcript_segment;type:text"`
	ExtractionMethod      ExtractionMethod `json:"extraction_method" gorm:"column:extraction_method;not null"`
	ExternalTaskRefs      []ExternalTaskRef `json:"external_task_refs,omitempty" gorm:"foreignKey:TaskID"`
}

// NewTask builds a Task from one extraction-run envelope. Status and
// row-level timestamps are set here; AIExtractedAt/AIConfidenceScore/etc.
// come straight from the LLM response the Extractor parsed.
func NewTask(meetingID, aiTaskID, title, description string, priority Priority, impact BusinessImpact, level ExplicitLevel, method ExtractionMethod, extractedAt time.Time, confidence float64) Task {
	t := Task{
		MeetingID:         meetingID,
		AITaskID:          aiTaskID,
		Title:             title,
		Description:       description,
		Priority:          priority,
		Status:            TaskPending,
		BusinessImpact:    impact,
		ExplicitLevel:     level,
		ExtractionMethod:  method,
		AIExtractedAt:     extractedAt,
		AIConfidenceScore: confidence,
	}
	t.SetID(domain.GenerateID())
	return t
}

func (t *Task) Start()     { t.Status = TaskInProgress }
func (t *Task) Complete()  { t.Status = TaskCompleted }
func (t *Task) Cancel()    { t.Status = TaskCancelled }

func (t *Task) SetAssignee(assignee string) { t.Assignee = assignee }
func (t *Task) SetDueDate(dueDate time.Time) { t.DueDate = &dueDate }
func (t *Task) ClearDueDate()                { t.DueDate = nil }

func (t *Task) HasAssignee() bool { return t.Assignee != "" }
func (t *Task) HasDueDate() bool  { return t.DueDate != nil }

func (t *Task) IsOverdue() bool {
	if t.DueDate == nil {
		return false
	}
	return time.Now().After(*t.DueDate)
}

// GetPriorityLevel returns a numeric representation of priority for sorting,
// carried over from the teacher's ActionItem.GetPriorityLevel unchanged.
func (t *Task) GetPriorityLevel() int {
	switch t.Priority {
	case Urgent:
		return 4
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	default:
		return 0
	}
}

// HasExternalTaskRefs and GetExternalTaskRefsByPlatform are the idempotent-
// dispatch check TaskProjector uses (spec.md §4.7): skip dispatch to a
// platform a task already has a ref for. Generalizes the teacher's
// ActionItem.HasTicketReferences/GetTicketReferencesBySystem from "ticket
// system" to "platform".
func (t *Task) HasExternalTaskRefs() bool {
	return len(t.ExternalTaskRefs) > 0
}

func (t *Task) GetExternalTaskRefsByPlatform(platform string) []ExternalTaskRef {
	var refs []ExternalTaskRef
	for _, ref := range t.ExternalTaskRefs {
		if ref.Platform == platform {
			refs = append(refs, ref)
		}
	}
	return refs
}

func (t *Task) HasExternalTaskRefFor(platform string) bool {
	return len(t.GetExternalTaskRefsByPlatform(platform)) > 0
}

func (Task) TableName() string {
	return "tasks"
}

// ExternalTaskRef records a task's dispatch to one external platform. At
// most one per (task_id, platform) — enforced by the composite unique
// index, mirroring the teacher's TicketReference but keyed by platform
// rather than free-form "system" string.
type ExternalTaskRef struct {
	domain.BaseEntity
	TaskID      string `json:"task_id" gorm:"column:task_id;not null;uniqueIndex:idx_task_platform"`
	Platform    string `json:"platform" gorm:"column:platform;not null;uniqueIndex:idx_task_platform"`
	ExternalID  string `json:"external_id" gorm:"column:external_id;not null"`
	ExternalURL string `json:"external_url" gorm:"column:external_url;not null"`
}

func NewExternalTaskRef(taskID, platform, externalID, externalURL string) ExternalTaskRef {
	ref := ExternalTaskRef{
		TaskID:      taskID,
		Platform:    platform,
		ExternalID:  externalID,
		ExternalURL: externalURL,
	}
	ref.SetID(domain.GenerateID())
	return ref
}

func (ExternalTaskRef) TableName() string {
	return "external_task_refs"
}
