package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_AppendAudio_BuffersBelowWindow(t *testing.T) {
	s := NewSession("session-1", "meeting-1", 16000)

	window, err := s.AppendAudio(make([]byte, 100))

	require.NoError(t, err)
	assert.Nil(t, window, "a small chunk should not trigger a window yet")
	assert.Equal(t, StateOpen, s.State())
}

func TestSession_AppendAudio_FlushesOnWindowThreshold(t *testing.T) {
	s := NewSession("session-1", "meeting-1", 16000)
	windowBytes := int(windowDuration.Seconds()) * s.SampleRate * 2

	window, err := s.AppendAudio(make([]byte, windowBytes))

	require.NoError(t, err)
	require.NotNil(t, window)
	assert.Len(t, window, windowBytes)
	assert.Equal(t, StateFlushing, s.State())
}

func TestSession_ReopenForAudio_ReturnsToOpen(t *testing.T) {
	s := NewSession("session-1", "meeting-1", 16000)
	windowBytes := int(windowDuration.Seconds()) * s.SampleRate * 2
	_, err := s.AppendAudio(make([]byte, windowBytes))
	require.NoError(t, err)
	require.Equal(t, StateFlushing, s.State())

	s.ReopenForAudio()

	assert.Equal(t, StateOpen, s.State())
}

func TestSession_AppendAudio_RejectedOnceFinalizing(t *testing.T) {
	s := NewSession("session-1", "meeting-1", 16000)
	s.Finalize()

	_, err := s.AppendAudio([]byte{1, 2, 3})

	assert.Error(t, err)
}

func TestSession_Finalize_ReturnsBufferedAudio(t *testing.T) {
	s := NewSession("session-1", "meeting-1", 16000)
	_, err := s.AppendAudio([]byte{1, 2, 3})
	require.NoError(t, err)

	remaining := s.Finalize()

	assert.Equal(t, []byte{1, 2, 3}, remaining)
	assert.Equal(t, StateFinalizing, s.State())
}

func TestSession_NextSequence_StartsAtOneAndIsContiguous(t *testing.T) {
	s := NewSession("session-1", "meeting-1", 16000)

	assert.Equal(t, int64(1), s.NextSequence())
	assert.Equal(t, int64(2), s.NextSequence())
	assert.Equal(t, int64(3), s.NextSequence())
}

func TestSession_Close_IsTerminal(t *testing.T) {
	s := NewSession("session-1", "meeting-1", 16000)
	s.Close()

	assert.Equal(t, StateClosed, s.State())
	_, err := s.AppendAudio([]byte{1})
	assert.Error(t, err)
}
