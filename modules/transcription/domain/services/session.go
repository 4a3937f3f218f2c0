package services

import (
	"fmt"
	"sync"
	"time"
)

// State is the Session lifecycle spec.md §4.2 defines. A Session moves
// forward only, except that ReopenForAudio returns a flushing Session to
// open once its window has been handed off.
type State string

const (
	// StateOpen accepts AUDIO_CHUNK messages and buffers them for the next window.
	StateOpen State = "open"
	// StateFlushing is entered once a window threshold is hit; the buffered
	// audio is handed to the Transcriber while new audio keeps buffering.
	StateFlushing State = "flushing"
	// StateFinalizing is entered on a meeting-end signal: no further audio
	// is accepted, and the last window plus the Extractor pass must complete.
	StateFinalizing State = "finalizing"
	// StateClosed is terminal.
	StateClosed State = "closed"
)

// windowDuration is how much buffered audio triggers a transcription pass.
// Grounded in the teacher's AudioProcessingOptions defaults, which batch
// audio rather than transcribing every chunk individually.
const windowDuration = 5 * time.Second

// Session is the in-memory, per-meeting aggregate the WSGateway keeps for
// the lifetime of a WebSocket connection. It owns the audio buffer and
// sequence counter behind its own mutex; SessionManager hands each full
// window to its shared transcription worker pool. There is no per-session
// single-writer goroutine.
type Session struct {
	mu sync.Mutex

	ID        string
	MeetingID string
	SampleRate int

	state        State
	buffer       []byte
	bufferStart  time.Time
	sequence     int64
	lastActivity time.Time
}

func NewSession(id, meetingID string, sampleRate int) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		MeetingID:    meetingID,
		SampleRate:   sampleRate,
		state:        StateOpen,
		lastActivity: now,
		sequence:     1,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AppendAudio buffers a chunk. It returns a non-nil audio window once
// enough audio has accumulated to warrant a transcription pass; the caller
// is then responsible for handing that window to the Transcriber.
func (s *Session) AppendAudio(chunk []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen && s.state != StateFlushing {
		return nil, fmt.Errorf("session %s is %s, not accepting audio", s.ID, s.state)
	}

	if len(s.buffer) == 0 {
		s.bufferStart = time.Now()
	}
	s.buffer = append(s.buffer, chunk...)
	s.lastActivity = time.Now()

	windowBytes := int(windowDuration.Seconds()) * s.SampleRate * 2 // 16-bit mono PCM
	if len(s.buffer) < windowBytes {
		return nil, nil
	}

	s.state = StateFlushing
	window := s.buffer
	s.buffer = nil
	return window, nil
}

// ReopenForAudio returns a flushing session back to open once its window
// has been handed off, so subsequent chunks buffer normally again.
func (s *Session) ReopenForAudio() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateFlushing {
		s.state = StateOpen
	}
}

// Finalize drains any remaining buffered audio and moves the session to
// StateFinalizing. The returned window (possibly empty) must still be
// transcribed before the meeting can be marked complete.
func (s *Session) Finalize() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateFinalizing
	window := s.buffer
	s.buffer = nil
	return window
}

func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateClosed
}

func (s *Session) NextSequence() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.sequence
	s.sequence++
	return seq
}

func (s *Session) IdleSince() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastActivity)
}
