package dtos

import (
	"time"

	"gitscribe/modules/meeting/domain/entities"
)

// MeetingResponse represents the response containing meeting data.
type MeetingResponse struct {
	ID               string                 `json:"id"`
	ExternalID       string                 `json:"external_id,omitempty"`
	Platform         entities.Platform      `json:"platform"`
	Title            string                 `json:"title"`
	Status           entities.MeetingStatus `json:"status"`
	StartedAt        time.Time              `json:"started_at"`
	EndedAt          *time.Time             `json:"ended_at,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
	ParticipantCount int                    `json:"participant_count"`
}

type MeetingsListResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
	Total    int               `json:"total"`
}

type ParticipantResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role,omitempty"`
	SpeakerLabel string `json:"speaker_label,omitempty"`
}

type TranscriptSegmentResponse struct {
	Sequence      int64   `json:"sequence"`
	SpeakerLabel  string  `json:"speaker_label,omitempty"`
	Text          string  `json:"text"`
	StartOffsetMS int64   `json:"start_offset_ms"`
	EndOffsetMS   int64   `json:"end_offset_ms"`
	Confidence    float64 `json:"confidence"`
}

// MeetingDetailResponse is the expanded view returned by /get-meeting/{id}:
// the meeting plus its participants and transcript segments.
type MeetingDetailResponse struct {
	MeetingResponse
	Participants []ParticipantResponse      `json:"participants"`
	Transcript   []TranscriptSegmentResponse `json:"transcript"`
}

func ToMeetingResponse(meeting *entities.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:               meeting.GetID(),
		ExternalID:       meeting.ExternalID,
		Platform:         meeting.Platform,
		Title:            meeting.Title,
		Status:           meeting.Status,
		StartedAt:        meeting.StartedAt,
		EndedAt:          meeting.EndedAt,
		CreatedAt:        meeting.GetCreatedAt(),
		UpdatedAt:        meeting.GetUpdatedAt(),
		ParticipantCount: len(meeting.Participants),
	}
}

func ToMeetingsListResponse(meetings []*entities.Meeting) MeetingsListResponse {
	responses := make([]MeetingResponse, len(meetings))
	for i, m := range meetings {
		responses[i] = ToMeetingResponse(m)
	}
	return MeetingsListResponse{Meetings: responses, Total: len(responses)}
}

func ToParticipantResponse(p entities.Participant) ParticipantResponse {
	return ParticipantResponse{ID: p.GetID(), Name: p.Name, Email: p.Email, Role: p.Role, SpeakerLabel: p.SpeakerLabel}
}
