package dtos

// Envelope is the length-delimited JSON message shape every WebSocket
// frame uses (spec.md §4.1): a required discriminator plus a free-form
// payload, decoded a second time into the concrete type once Type is known.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

const (
	TypeHandshake           = "HANDSHAKE"
	TypeHandshakeAck        = "HANDSHAKE_ACK"
	TypeAudioChunk          = "AUDIO_CHUNK"
	TypeAudioChunkEnhanced  = "AUDIO_CHUNK_ENHANCED"
	TypeMeetingEvent        = "MEETING_EVENT"
	TypeGetSessionInfo      = "GET_SESSION_INFO"
	TypeTranscriptionResult = "TRANSCRIPTION_RESULT"
	TypeMeetingUpdate       = "MEETING_UPDATE"
	TypeProcessingStatus    = "PROCESSING_STATUS"
	TypeProcessingComplete  = "PROCESSING_COMPLETE"
	TypeError               = "ERROR"
	TypeSessionInfo         = "SESSION_INFO"
)

type HandshakeMessage struct {
	ClientType   string   `json:"clientType"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type HandshakeAckMessage struct {
	ServerVersion     string   `json:"serverVersion"`
	Status            string   `json:"status"`
	SupportedFeatures []string `json:"supportedFeatures"`
	Timestamp         int64    `json:"timestamp"`
}

type AudioMetadata struct {
	Platform    string `json:"platform"`
	MeetingURL  string `json:"meetingUrl"`
	SampleRate  int    `json:"sampleRate"`
	Channels    int    `json:"channels"`
	SampleWidth int    `json:"sampleWidth"`
	ChunkSize   int    `json:"chunkSize"`
}

type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	IsHost bool   `json:"isHost"`
}

type AudioChunkMessage struct {
	Data      string        `json:"data"`
	Timestamp int64         `json:"timestamp"`
	Metadata  AudioMetadata `json:"metadata"`
}

type AudioChunkEnhancedMessage struct {
	AudioChunkMessage
	Participants      []Participant `json:"participants"`
	ParticipantCount  int           `json:"participant_count"`
}

type MeetingEventMessage struct {
	EventType string                 `json:"eventType"`
	Data      map[string]interface{} `json:"data"`
}

// BufferFlushComplete reads the flag from either camelCase or snake_case
// key, per spec.md §4.1.
func (m MeetingEventMessage) BufferFlushComplete() bool {
	if v, ok := m.Data["bufferFlushComplete"]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	if v, ok := m.Data["buffer_flush_complete"]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

type TranscriptionResultMessage struct {
	Text         string  `json:"text"`
	Timestamp    int64   `json:"timestamp"`
	Confidence   float64 `json:"confidence"`
	SpeakerLabel string  `json:"speakerLabel,omitempty"`
	Sequence     int64   `json:"sequence"`
}

type ProcessingStatusMessage struct {
	Stage string `json:"stage"`
}

type ProcessingCompleteMessage struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type SessionInfoMessage struct {
	MeetingID        string  `json:"meeting_id"`
	ParticipantCount int     `json:"participant_count"`
	ChunkCount       int     `json:"chunk_count"`
	TranscriptLength int     `json:"transcript_length"`
	IdleSeconds      float64 `json:"idle_seconds"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}
