package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	actionentities "gitscribe/modules/actionitem/domain/entities"
	actionrepositories "gitscribe/modules/actionitem/domain/repositories"
	actioninfrarepos "gitscribe/modules/actionitem/infrastructure/repositories"
	actionservices "gitscribe/modules/actionitem/application/services"
	extractionservices "gitscribe/modules/extraction/domain/services"
	meetingcommands "gitscribe/modules/meeting/application/commands"
	meetingentities "gitscribe/modules/meeting/domain/entities"
	meetingservices "gitscribe/modules/meeting/application/services"
	"gitscribe/modules/transcription/domain/entities"
	"gitscribe/modules/transcription/domain/repositories"
	transcriptioninfrarepos "gitscribe/modules/transcription/infrastructure/repositories"
	"gitscribe/modules/transcription/domain/services"
	"gitscribe/modules/transcription/interfaces/http/dtos"
	"gitscribe/seedwork/application/worker"
	"gitscribe/seedwork/infrastructure/config"
	"gitscribe/seedwork/infrastructure/events"
)

// Outbound is the function the WSGateway registers per connection to push
// an asynchronous message back to the client. Kept as a plain func rather
// than a connection handle so Session never holds a back-pointer to the
// gateway (spec.md §9's cyclic-ownership redesign flag).
type Outbound func(envelope dtos.Envelope)

// GatewaySession pairs the domain Session state machine with the
// gateway-facing bookkeeping (participant registry, cumulative transcript,
// outbound callback) spec.md §4.2 assigns to a Session.
type GatewaySession struct {
	mu sync.Mutex

	MeetingID string
	Session   *services.Session
	send      Outbound

	participants         map[string]dtos.Participant
	cumulativeTranscript strings.Builder
	chunkCount           int
}

func (gs *GatewaySession) info() dtos.SessionInfoMessage {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return dtos.SessionInfoMessage{
		MeetingID:        gs.MeetingID,
		ParticipantCount: len(gs.participants),
		ChunkCount:       gs.chunkCount,
		TranscriptLength: gs.cumulativeTranscript.Len(),
		IdleSeconds:      gs.Session.IdleSince().Seconds(),
	}
}

// SessionManager owns every live GatewaySession and the bounded worker
// pools spec.md §5 requires (transcription, LLM, integration dispatch),
// built on seedwork/application/worker.Pool. It is the single place that
// wires Session, Transcriber, Extractor, Store, and TaskProjector together.
type SessionManager struct {
	meetingService  *meetingservices.MeetingService
	transcriber     services.Transcriber
	transcriptRepo  repositories.TranscriptRepository
	extractor       *extractionservices.Extractor
	taskRepo        actionrepositories.TaskRepository
	projector       *actionservices.TaskProjector
	transcriberTimeout time.Duration
	eventBus        events.EventBus
	db              *gorm.DB

	transcriptionPool *worker.Pool
	llmPool           *worker.Pool
	integrationPool   *worker.Pool

	mu       sync.RWMutex
	sessions map[string]*GatewaySession
}

func NewSessionManager(
	meetingService *meetingservices.MeetingService,
	transcriber services.Transcriber,
	transcriptRepo repositories.TranscriptRepository,
	extractor *extractionservices.Extractor,
	taskRepo actionrepositories.TaskRepository,
	projector *actionservices.TaskProjector,
	eventBus events.EventBus,
	cfg config.TranscriberConfig,
	db *gorm.DB,
) *SessionManager {
	workerCount := cfg.WorkerCount
	if workerCount < 1 {
		workerCount = 4
	}
	return &SessionManager{
		meetingService:     meetingService,
		transcriber:        transcriber,
		transcriptRepo:     transcriptRepo,
		extractor:          extractor,
		taskRepo:           taskRepo,
		projector:          projector,
		eventBus:           eventBus,
		transcriberTimeout: cfg.Timeout,
		db:                 db,
		transcriptionPool:  worker.NewPool(workerCount, workerCount*4),
		llmPool:            worker.NewPool(2, 8),
		integrationPool:    worker.NewPool(2, 8),
		sessions:           make(map[string]*GatewaySession),
	}
}

// ResolveSession derives the stable meeting id from platform+meetingURL and
// attaches to the existing GatewaySession if one is already open, or
// creates one, resolving/persisting the Meeting row in the process
// (spec.md §4.1 "identical ids from different connections attach to the
// same Session").
func (sm *SessionManager) ResolveSession(ctx context.Context, platform, meetingURL, title string, sampleRate int, send Outbound) (*GatewaySession, error) {
	meetingID := services.DeriveMeetingID(platform, meetingURL, time.Now())

	sm.mu.Lock()
	if gs, ok := sm.sessions[meetingID]; ok && gs.Session.State() != services.StateClosed {
		sm.mu.Unlock()
		return gs, nil
	}
	sm.mu.Unlock()

	meeting, err := sm.meetingService.ResolveMeeting(ctx, meetingcommands.CreateMeetingCommand{
		ExternalID: meetingURL,
		Platform:   meetingentities.Platform(platform),
		Title:      title,
		StartedAt:  time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("resolving meeting: %w", err)
	}
	if err := sm.meetingService.StartMeeting(ctx, meeting.GetID()); err != nil {
		log.Printf("starting meeting %s: %v", meeting.GetID(), err)
	}

	gs := &GatewaySession{
		MeetingID:    meeting.GetID(),
		Session:      services.NewSession(meeting.GetID(), meeting.GetID(), sampleRate),
		send:         send,
		participants: make(map[string]dtos.Participant),
	}

	sm.mu.Lock()
	sm.sessions[meetingID] = gs
	sm.mu.Unlock()

	return gs, nil
}

func (sm *SessionManager) UpdateParticipants(gs *GatewaySession, participants []dtos.Participant) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	for _, p := range participants {
		gs.participants[p.ID] = p
	}
}

// maxChunkSeconds is the upper bound spec.md §6 places on a single
// AUDIO_CHUNK message ("chunks ≤ 30 seconds"); larger declared chunks are
// rejected with an error rather than buffered.
const maxChunkSeconds = 30

// IngestAudio decodes base64 audio, buffers it on the Session, and — once a
// window is ready — submits a transcription job to the bounded pool.
// spec.md §4.2: a chunk whose declared length is zero is rejected; spec.md
// §6: a chunk longer than maxChunkSeconds is rejected.
func (sm *SessionManager) IngestAudio(ctx context.Context, gs *GatewaySession, base64Data string, metadata dtos.AudioMetadata) error {
	if metadata.ChunkSize == 0 {
		return fmt.Errorf("audio chunk has zero declared length")
	}

	raw, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return fmt.Errorf("decoding audio chunk: %w", err)
	}

	sampleRate := metadata.SampleRate
	if sampleRate == 0 {
		sampleRate = 16000
	}
	sampleWidth := metadata.SampleWidth
	if sampleWidth == 0 {
		sampleWidth = 2
	}
	channels := metadata.Channels
	if channels == 0 {
		channels = 1
	}
	maxBytes := maxChunkSeconds * sampleRate * sampleWidth * channels
	if len(raw) > maxBytes {
		return fmt.Errorf("audio chunk exceeds maximum of %d seconds", maxChunkSeconds)
	}

	window, err := gs.Session.AppendAudio(raw)
	if err != nil {
		return err
	}
	if window == nil {
		return nil
	}

	sm.transcriptionPool.Submit(func() {
		sm.transcribeWindow(gs, window, metadata.SampleRate)
		gs.Session.ReopenForAudio()
	})
	return nil
}

func (sm *SessionManager) transcribeWindow(gs *GatewaySession, window []byte, sampleRate int) {
	if sampleRate == 0 {
		sampleRate = 16000
	}
	ctx := context.Background()
	if sm.transcriberTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sm.transcriberTimeout)
		defer cancel()
	}

	if !sm.transcriber.Available() {
		log.Printf("transcriber unavailable, dropping window for meeting %s", gs.MeetingID)
		return
	}

	result, err := sm.transcriber.Transcribe(ctx, window, sampleRate)
	if err != nil {
		log.Printf("transcription failed for meeting %s: %v", gs.MeetingID, err)
		return
	}

	sm.ingestTranscription(ctx, gs, result.Text, result.Confidence, result.SpeakerLabel)
}

// ingestTranscription implements spec.md §4.2's fingerprint-dedup rule and
// emits TRANSCRIPTION_RESULT. The sequence number comes from
// Session.NextSequence; updates to the cumulative transcript and chunk
// count are serialized on gs.mu.
func (sm *SessionManager) ingestTranscription(ctx context.Context, gs *GatewaySession, text string, confidence float64, speakerLabel string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	sequence := gs.Session.NextSequence()
	startMS := time.Now().UnixMilli()
	chunk := entities.NewTranscriptChunk(gs.MeetingID, sequence, text, startMS, startMS, confidence)
	chunk.SpeakerLabel = speakerLabel

	alreadyPresent, err := sm.transcriptRepo.AppendChunk(ctx, &chunk)
	if err != nil {
		log.Printf("persisting transcript chunk for meeting %s: %v", gs.MeetingID, err)
		return
	}
	if alreadyPresent {
		return
	}

	gs.mu.Lock()
	if gs.cumulativeTranscript.Len() > 0 {
		gs.cumulativeTranscript.WriteString(" ")
	}
	gs.cumulativeTranscript.WriteString(text)
	gs.chunkCount++
	gs.mu.Unlock()

	gs.send(dtos.Envelope{
		Type: dtos.TypeTranscriptionResult,
		Data: dtos.TranscriptionResultMessage{
			Text:         text,
			Timestamp:    startMS,
			Confidence:   confidence,
			SpeakerLabel: speakerLabel,
			Sequence:     sequence,
		},
	})
}

// Finalize drains the session through extraction, persistence, and
// integration dispatch, emitting PROCESSING_STATUS at each boundary and
// PROCESSING_COMPLETE at the end (spec.md §4.2 finalize).
func (sm *SessionManager) Finalize(ctx context.Context, gs *GatewaySession) {
	remaining := gs.Session.Finalize()
	if len(remaining) > 0 && sm.transcriber.Available() {
		result, err := sm.transcriber.Transcribe(ctx, remaining, gs.Session.SampleRate)
		if err == nil {
			sm.ingestTranscription(ctx, gs, result.Text, result.Confidence, result.SpeakerLabel)
		}
	}

	gs.send(dtos.Envelope{Type: dtos.TypeProcessingStatus, Data: dtos.ProcessingStatusMessage{Stage: "transcription_done"}})

	sm.llmPool.Submit(func() {
		sm.runExtraction(gs)
	})
}

// runExtraction summarizes and extracts tasks for a finalized meeting, then
// persists both in a single scoped transaction (spec.md §4.6: "all
// multi-row writes for one extraction run execute in one scoped
// transaction; partial failure rolls back the entire run"). A failure
// anywhere in this pipeline is carried through to dispatchTasks so the
// eventual PROCESSING_COMPLETE reports status "error" rather than silently
// claiming success over partial state (spec.md §8).
func (sm *SessionManager) runExtraction(gs *GatewaySession) {
	ctx := context.Background()

	gs.mu.Lock()
	transcript := gs.cumulativeTranscript.String()
	gs.mu.Unlock()

	summaryDoc, err := sm.extractor.Summarize(ctx, transcript, gs.MeetingID)
	if err != nil {
		log.Printf("summarization failed for meeting %s: %v", gs.MeetingID, err)
		sm.dispatchTasks(gs, nil, fmt.Errorf("summarization failed: %w", err))
		return
	}
	summary := entities.NewSummary(gs.MeetingID, summaryDoc.Overview, summaryDoc.KeyOutcomes, summaryDoc.Decisions, summaryDoc.Participants, summaryDoc.NextSteps, sm.extractorModelName())

	tasks, err := sm.extractor.ExtractTasks(ctx, gs.MeetingID, transcript, gs.MeetingID)
	if err != nil {
		log.Printf("task extraction failed for meeting %s: %v", gs.MeetingID, err)
		sm.dispatchTasks(gs, nil, fmt.Errorf("task extraction failed: %w", err))
		return
	}

	if err := sm.persistExtraction(ctx, &summary, tasks); err != nil {
		log.Printf("persisting extraction results for meeting %s: %v", gs.MeetingID, err)
		sm.dispatchTasks(gs, nil, fmt.Errorf("persisting extraction results: %w", err))
		return
	}

	gs.send(dtos.Envelope{Type: dtos.TypeProcessingStatus, Data: dtos.ProcessingStatusMessage{Stage: "extraction_done"}})
	sm.publish("tasks.extracted", map[string]interface{}{"meeting_id": gs.MeetingID, "task_count": len(tasks)})

	sm.integrationPool.Submit(func() {
		sm.dispatchTasks(gs, tasks, nil)
	})
}

// persistExtraction saves the summary and upserts every task inside one
// GORM transaction, scoping both repositories to the transaction's *gorm.DB
// so a failure partway through rolls the whole run back. Falls back to two
// independent writes only when no db was wired (unit tests constructing a
// SessionManager directly).
func (sm *SessionManager) persistExtraction(ctx context.Context, summary *entities.Summary, tasks []actionentities.Task) error {
	if sm.db == nil {
		if err := sm.transcriptRepo.SaveSummary(ctx, summary); err != nil {
			return err
		}
		for i := range tasks {
			if err := sm.taskRepo.Upsert(ctx, &tasks[i]); err != nil {
				return err
			}
		}
		return nil
	}

	return sm.db.Transaction(func(tx *gorm.DB) error {
		transcriptRepo := transcriptioninfrarepos.NewGormTranscriptRepository(tx)
		taskRepo := actioninfrarepos.NewGormTaskRepository(tx)

		if err := transcriptRepo.SaveSummary(ctx, summary); err != nil {
			return err
		}
		for i := range tasks {
			if err := taskRepo.Upsert(ctx, &tasks[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// publish is a no-op when no EventBus was wired, so tests and the one
// fallback path that constructs a SessionManager without one stay simple.
func (sm *SessionManager) publish(eventType string, event interface{}) {
	if sm.eventBus == nil {
		return
	}
	if err := sm.eventBus.Publish(eventType, event); err != nil {
		log.Printf("publishing event %s: %v", eventType, err)
	}
}

func (sm *SessionManager) extractorModelName() string {
	return "extractor"
}

// dispatchTasks pushes tasks to configured integrations and closes out the
// session. extractionErr, when non-nil, means runExtraction hit a permanent
// failure upstream (summarization, task extraction, or persistence); tasks
// is nil in that case and dispatch is skipped, but the meeting is still
// finished and the session still torn down — only the final
// PROCESSING_COMPLETE status reflects the failure (spec.md §7/§8).
func (sm *SessionManager) dispatchTasks(gs *GatewaySession, tasks []actionentities.Task, extractionErr error) {
	ctx := context.Background()
	if extractionErr == nil {
		sm.projector.DispatchTasks(ctx, tasks)
	}

	gs.send(dtos.Envelope{Type: dtos.TypeProcessingStatus, Data: dtos.ProcessingStatusMessage{Stage: "integration_done"}})

	if err := sm.meetingService.FinishMeeting(ctx, gs.MeetingID); err != nil {
		log.Printf("finishing meeting %s: %v", gs.MeetingID, err)
	}
	sm.publish("meeting.finished", map[string]interface{}{"meeting_id": gs.MeetingID})

	gs.Session.Close()
	sm.mu.Lock()
	delete(sm.sessions, gs.MeetingID)
	sm.mu.Unlock()

	if extractionErr != nil {
		gs.send(dtos.Envelope{Type: dtos.TypeProcessingComplete, Data: dtos.ProcessingCompleteMessage{Status: "error", Error: extractionErr.Error()}})
		return
	}
	gs.send(dtos.Envelope{Type: dtos.TypeProcessingComplete, Data: dtos.ProcessingCompleteMessage{Status: "success"}})
}

// Info returns the SESSION_INFO snapshot for GET_SESSION_INFO.
func (sm *SessionManager) Info(gs *GatewaySession) dtos.SessionInfoMessage {
	return gs.info()
}
