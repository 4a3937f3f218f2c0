package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"gitscribe/seedwork/domain"
)

// TranscriptChunk is one ordered unit of transcribed speech within a
// meeting. Sequence is monotonically increasing per meeting (spec.md §3) so
// chunks can be reassembled in order even if they arrive out of order over
// the WebSocket (e.g. after a reconnect retransmit). Fingerprint is a
// stable hash of normalized text plus a coarse time bucket; no two chunks
// of the same meeting may share one (spec.md §3 invariant).
type TranscriptChunk struct {
	domain.BaseEntity
	MeetingID     string  `json:"meeting_id" gorm:"column:meeting_id;not null;index"`
	Sequence      int64   `json:"sequence" gorm:"column:sequence;not null"`
	SpeakerLabel  string  `json:"speaker_label,omitempty" gorm:"column:speaker_label"`
	Text          string  `json:"text" gorm:"column:text;type:text;not null"`
	StartOffsetMS int64   `json:"start_offset_ms" gorm:"column:start_offset_ms;not null"`
	EndOffsetMS   int64   `json:"end_offset_ms" gorm:"column:end_offset_ms;not null"`
	Confidence    float64 `json:"confidence" gorm:"column:confidence"`
	Fingerprint   string  `json:"fingerprint" gorm:"column:fingerprint;size:64;not null;uniqueIndex:idx_chunk_meeting_fingerprint"`
}

// ChunkFingerprint hashes normalized text together with a coarse time
// bucket (the offset rounded down to the nearest second) so retransmits of
// the same window dedupe without requiring byte-identical timestamps.
func ChunkFingerprint(text string, startMS int64) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))
	bucket := startMS / 1000
	sum := sha256.Sum256([]byte(normalized + "|" + strconv.FormatInt(bucket, 10)))
	return hex.EncodeToString(sum[:])
}

func NewTranscriptChunk(meetingID string, sequence int64, text string, startMS, endMS int64, confidence float64) TranscriptChunk {
	c := TranscriptChunk{
		MeetingID:     meetingID,
		Sequence:      sequence,
		Text:          text,
		StartOffsetMS: startMS,
		EndOffsetMS:   endMS,
		Confidence:    confidence,
		Fingerprint:   ChunkFingerprint(text, startMS),
	}
	c.SetID(domain.GenerateID())
	return c
}

// IsHighConfidence reports whether the chunk's confidence is at least 0.7.
func (c *TranscriptChunk) IsHighConfidence() bool {
	return c.Confidence >= 0.7
}

func (TranscriptChunk) TableName() string {
	return "transcript_chunks"
}

// Summary is the Extractor's one-shot synthesis of a finished meeting
// (spec.md §3/§4.5): overview, key outcomes, decisions, participants named
// in the discussion, and next steps. A meeting has at most one Summary;
// re-finalization replaces it (last-writer-wins).
type Summary struct {
	domain.BaseEntity
	MeetingID    string   `json:"meeting_id" gorm:"column:meeting_id;uniqueIndex;not null"`
	Overview     string   `json:"overview" gorm:"column:overview;type:text"`
	KeyOutcomes  []string `json:"key_outcomes,omitempty" gorm:"column:key_outcomes;serializer:json"`
	Decisions    []string `json:"decisions,omitempty" gorm:"column:decisions;serializer:json"`
	Participants []string `json:"participants,omitempty" gorm:"column:participants;serializer:json"`
	NextSteps    []string `json:"next_steps,omitempty" gorm:"column:next_steps;serializer:json"`
	Model        string   `json:"model" gorm:"column:model"`
}

func NewSummary(meetingID, overview string, keyOutcomes, decisions, participants, nextSteps []string, model string) Summary {
	s := Summary{
		MeetingID:    meetingID,
		Overview:     overview,
		KeyOutcomes:  keyOutcomes,
		Decisions:    decisions,
		Participants: participants,
		NextSteps:    nextSteps,
		Model:        model,
	}
	s.SetID(domain.GenerateID())
	return s
}

func (Summary) TableName() string {
	return "summaries"
}
