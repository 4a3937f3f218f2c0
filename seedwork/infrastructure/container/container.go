package container

import (
	actionrepositories "gitscribe/modules/actionitem/domain/repositories"
	actioninfrarepos "gitscribe/modules/actionitem/infrastructure/repositories"
	actionservices "gitscribe/modules/actionitem/application/services"
	actionhandlers "gitscribe/modules/actionitem/interfaces/http/handlers"
	actionroutes "gitscribe/modules/actionitem/interfaces/http/routes"

	extractionservices "gitscribe/modules/extraction/application/services"
	extractiondomainservices "gitscribe/modules/extraction/domain/services"
	extractionhandlers "gitscribe/modules/extraction/interfaces/http/handlers"
	extractionroutes "gitscribe/modules/extraction/interfaces/http/routes"

	integrationproviders "gitscribe/modules/integration/infrastructure/providers"
	integrationservices "gitscribe/modules/integration/domain/services"

	meetingrepositories "gitscribe/modules/meeting/domain/repositories"
	meetinginfrarepos "gitscribe/modules/meeting/infrastructure/repositories"
	meetingservices "gitscribe/modules/meeting/application/services"
	meetinghandlers "gitscribe/modules/meeting/interfaces/http/handlers"
	meetingroutes "gitscribe/modules/meeting/interfaces/http/routes"

	transcriptionrepositories "gitscribe/modules/transcription/domain/repositories"
	transcriptioninfrarepos "gitscribe/modules/transcription/infrastructure/repositories"
	transcriptioninfraproviders "gitscribe/modules/transcription/infrastructure/providers"
	transcriptiondomainservices "gitscribe/modules/transcription/domain/services"
	transcriptionappservices "gitscribe/modules/transcription/application/services"
	transcriptionhandlers "gitscribe/modules/transcription/interfaces/http/handlers"
	transcriptionroutes "gitscribe/modules/transcription/interfaces/http/routes"

	"gitscribe/seedwork/infrastructure/config"
	"gitscribe/seedwork/infrastructure/events"
	"gitscribe/seedwork/infrastructure/store"
)

// Container wires every module's repositories, services, and HTTP surface
// off of a single Store connection, the way the teacher's container wires
// every module off of a single Firebase client and GORM connection.
type Container struct {
	Config   *config.Config
	Store    *store.Store
	EventBus events.EventBus

	MeetingService          *meetingservices.MeetingService
	TaskRepository          actionrepositories.TaskRepository
	TranscriptRepository    transcriptionrepositories.TranscriptRepository
	ProcessingJobRepository *store.ProcessingJobRepository

	Transcriber        transcriptiondomainservices.Transcriber
	LLMClient          extractiondomainservices.LLMClient
	Extractor          *extractiondomainservices.Extractor
	IntegrationClients []integrationservices.IntegrationClient
	TaskProjector      *actionservices.TaskProjector

	SessionManager      *transcriptionappservices.SessionManager
	TranscriptProcessor *extractionservices.TranscriptProcessor

	WSGateway          *transcriptionhandlers.WSGateway
	AvailableTools     *transcriptionhandlers.AvailableToolsHandler
	MeetingHandlers    *meetinghandlers.MeetingHandlers
	TaskHandlers       *actionhandlers.TaskHandlers
	ExtractionHandlers *extractionhandlers.ExtractionHandlers

	MeetingRoutes       *meetingroutes.MeetingRoutes
	TaskRoutes          *actionroutes.TaskRoutes
	ExtractionRoutes    *extractionroutes.ExtractionRoutes
	TranscriptionRoutes *transcriptionroutes.TranscriptionRoutes
}

// NewContainer loads configuration, opens the store, and wires every
// module's dependency chain bottom-up: repositories, then domain services,
// then application services, then HTTP handlers and routes.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	st, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	meetingRepo := meetingRepository(st)
	taskRepo := actioninfrarepos.NewGormTaskRepository(st.DB)
	transcriptRepo := transcriptioninfrarepos.NewGormTranscriptRepository(st.DB)
	jobRepo := store.NewProcessingJobRepository(st.DB)

	meetingService := meetingservices.NewMeetingService(meetingRepo)

	transcriber := transcriptioninfraproviders.NewSubprocessTranscriber(cfg.Transcriber.BinaryPath, cfg.Transcriber.ModelPath)
	llmClient := extractionservices.NewLLMClient(cfg.LLM)
	extractor := extractiondomainservices.NewExtractor(llmClient)

	clients := integrationClients(cfg.Integration)
	projector := actionservices.NewTaskProjector(taskRepo, clients)

	eventBus := events.NewMemoryEventBus()
	sessionManager := transcriptionappservices.NewSessionManager(
		meetingService, transcriber, transcriptRepo, extractor, taskRepo, projector, eventBus, cfg.Transcriber, st.DB,
	)
	transcriptProcessor := extractionservices.NewTranscriptProcessor(extractor, transcriptRepo, taskRepo, projector)

	wsGateway := transcriptionhandlers.NewWSGateway(sessionManager, cfg.Server.WSIdleTimeout)
	availableTools := transcriptionhandlers.NewAvailableToolsHandler(transcriber, llmClient, clients)
	meetingHandlers := meetinghandlers.NewMeetingHandlers(meetingService, transcriptRepo)
	taskHandlers := actionhandlers.NewTaskHandlers(taskRepo)
	extractionHandlers := extractionhandlers.NewExtractionHandlers(transcriptProcessor, meetingService, transcriptRepo, jobRepo)

	return &Container{
		Config:   cfg,
		Store:    st,
		EventBus: eventBus,

		MeetingService:          meetingService,
		TaskRepository:          taskRepo,
		TranscriptRepository:    transcriptRepo,
		ProcessingJobRepository: jobRepo,

		Transcriber:        transcriber,
		LLMClient:          llmClient,
		Extractor:          extractor,
		IntegrationClients: clients,
		TaskProjector:      projector,

		SessionManager:      sessionManager,
		TranscriptProcessor: transcriptProcessor,

		WSGateway:          wsGateway,
		AvailableTools:     availableTools,
		MeetingHandlers:    meetingHandlers,
		TaskHandlers:       taskHandlers,
		ExtractionHandlers: extractionHandlers,

		MeetingRoutes:       meetingroutes.NewMeetingRoutes(meetingHandlers),
		TaskRoutes:          actionroutes.NewTaskRoutes(taskHandlers),
		ExtractionRoutes:    extractionroutes.NewExtractionRoutes(extractionHandlers),
		TranscriptionRoutes: transcriptionroutes.NewTranscriptionRoutes(wsGateway, availableTools),
	}, nil
}

func openStore(cfg config.StoreConfig) (*store.Store, error) {
	if cfg.Type == "remote" {
		return store.NewRemoteStore(cfg)
	}
	return store.NewEmbeddedStore(cfg)
}

func meetingRepository(st *store.Store) meetingrepositories.MeetingRepository {
	return meetinginfrarepos.NewGormMeetingRepository(st.DB)
}

// integrationClients builds the configured IntegrationClient set (spec.md
// §4.8). A client is still constructed when its credentials are blank;
// Available() reports false and TaskProjector/AvailableToolsHandler surface
// that instead of dispatch attempts failing at call time.
func integrationClients(cfg config.IntegrationConfig) []integrationservices.IntegrationClient {
	return []integrationservices.IntegrationClient{
		integrationproviders.NewNotionClient(cfg.NotionToken, cfg.NotionDatabaseID),
		integrationproviders.NewClickUpClient(cfg.ClickUpToken, cfg.ClickUpListID),
		integrationproviders.NewSlackClient(cfg.SlackToken, cfg.SlackChannel),
	}
}

// Close releases the underlying store connection.
func (c *Container) Close() error {
	return c.Store.Close()
}
