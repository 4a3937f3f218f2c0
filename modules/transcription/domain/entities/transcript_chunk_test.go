package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkFingerprint_StableForNormalizedText(t *testing.T) {
	a := ChunkFingerprint("Hello   there,  world", 1200)
	b := ChunkFingerprint("hello there, world", 1999)

	assert.Equal(t, a, b, "same text and same second bucket should fingerprint identically")
}

func TestChunkFingerprint_DiffersAcrossTimeBucket(t *testing.T) {
	a := ChunkFingerprint("hello there", 1999)
	b := ChunkFingerprint("hello there", 2001)

	assert.NotEqual(t, a, b)
}

func TestChunkFingerprint_DiffersByText(t *testing.T) {
	a := ChunkFingerprint("hello there", 1000)
	b := ChunkFingerprint("goodbye there", 1000)

	assert.NotEqual(t, a, b)
}

func TestNewTranscriptChunk_SetsFingerprintAndID(t *testing.T) {
	chunk := NewTranscriptChunk("meeting-1", 3, "hello world", 1000, 2000, 0.9)

	assert.Equal(t, "meeting-1", chunk.MeetingID)
	assert.Equal(t, int64(3), chunk.Sequence)
	assert.NotEmpty(t, chunk.GetID())
	assert.Equal(t, ChunkFingerprint("hello world", 1000), chunk.Fingerprint)
}

func TestTranscriptChunk_IsHighConfidence(t *testing.T) {
	high := NewTranscriptChunk("meeting-1", 0, "ok", 0, 100, 0.7)
	low := NewTranscriptChunk("meeting-1", 1, "ok", 0, 100, 0.69)

	assert.True(t, high.IsHighConfidence())
	assert.False(t, low.IsHighConfidence())
}
