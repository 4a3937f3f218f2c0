package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"gitscribe/seedwork/domain"
)

type Platform string

const (
	Zoom           Platform = "zoom"
	GoogleMeet     Platform = "google_meet"
	MicrosoftTeams Platform = "microsoft_teams"
	Generic        Platform = "generic"
)

type MeetingStatus string

const (
	Scheduled  MeetingStatus = "scheduled"
	InProgress MeetingStatus = "in_progress"
	Completed  MeetingStatus = "completed"
	Failed     MeetingStatus = "failed"
)

// Meeting is the durable record of a meeting's lifecycle. It is created on
// the first audio chunk the gateway receives for a session and finalized
// when the meeting-end signal arrives; the in-memory Session tracks the
// ephemeral pipeline state in between (see transcription.Session).
type Meeting struct {
	domain.BaseEntity
	ExternalID   string        `json:"external_id" gorm:"column:external_id"`
	Platform     Platform      `json:"platform" gorm:"column:platform;not null"`
	Title        string        `json:"title" gorm:"column:title;not null"`
	Status       MeetingStatus `json:"status" gorm:"column:status;not null"`
	StartedAt    time.Time     `json:"started_at" gorm:"column:started_at;not null"`
	EndedAt      *time.Time    `json:"ended_at,omitempty" gorm:"column:ended_at"`
	Fingerprint  string        `json:"fingerprint" gorm:"column:fingerprint;uniqueIndex;not null"`
	Participants []Participant `json:"participants,omitempty" gorm:"foreignKey:MeetingID"`
}

// NewMeeting creates a Meeting in the Scheduled state. Fingerprint is
// derived from platform+externalID+startedAt so that a reconnecting
// extension session cannot create a duplicate Meeting row for the same
// real-world meeting (spec.md §3 fingerprint-uniqueness invariant).
func NewMeeting(externalID string, platform Platform, title string, startedAt time.Time) Meeting {
	m := Meeting{
		ExternalID: externalID,
		Platform:   platform,
		Title:      title,
		Status:     Scheduled,
		StartedAt:  startedAt,
	}
	m.Fingerprint = Fingerprint(platform, externalID, startedAt)
	m.SetID(domain.GenerateID())
	return m
}

// Fingerprint computes the dedup key for a meeting. Two resolve requests
// describing the same platform/external-id/start-time resolve to the same
// Meeting row instead of creating a duplicate.
func Fingerprint(platform Platform, externalID string, startedAt time.Time) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d", platform, externalID, startedAt.Unix())
	return hex.EncodeToString(h.Sum(nil))
}

// Start transitions the meeting to in-progress on the first audio chunk.
func (m *Meeting) Start() {
	if m.Status == Scheduled {
		m.Status = InProgress
	}
}

// Finish transitions the meeting to completed on a meeting-end signal.
func (m *Meeting) Finish() {
	m.Status = Completed
	now := time.Now()
	m.EndedAt = &now
}

// Abort marks the meeting failed, e.g. after an unrecoverable transcriber error.
func (m *Meeting) Abort() {
	m.Status = Failed
	now := time.Now()
	m.EndedAt = &now
}

func (m *Meeting) IsActive() bool {
	return m.Status == InProgress
}

func (m *Meeting) Duration() *time.Duration {
	if m.EndedAt == nil {
		return nil
	}
	d := m.EndedAt.Sub(m.StartedAt)
	return &d
}

func (Meeting) TableName() string {
	return "meetings"
}

// Participant is a meeting attendee, named either from platform metadata or
// from speaker-diarization output once the Extractor has run.
type Participant struct {
	domain.BaseEntity
	MeetingID    string `json:"meeting_id" gorm:"column:meeting_id;not null;index"`
	Name         string `json:"name" gorm:"column:name;not null"`
	Email        string `json:"email,omitempty" gorm:"column:email"`
	Role         string `json:"role,omitempty" gorm:"column:role"`
	SpeakerLabel string `json:"speaker_label,omitempty" gorm:"column:speaker_label"`
}

func NewParticipant(meetingID, name, email, role string) Participant {
	p := Participant{
		MeetingID: meetingID,
		Name:      name,
		Email:     email,
		Role:      role,
	}
	p.SetID(domain.GenerateID())
	return p
}

func (Participant) TableName() string {
	return "participants"
}
