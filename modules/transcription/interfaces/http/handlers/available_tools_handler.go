package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	extractionservices "gitscribe/modules/extraction/domain/services"
	integrationservices "gitscribe/modules/integration/domain/services"
	transcriptionservices "gitscribe/modules/transcription/domain/services"
)

// AvailableToolsResponse reports which provider each pluggable component is
// backed by and whether it's currently usable. Generalizes the teacher's
// AudioProcessorFactory.GetProviderCapabilities/GetAvailableProviders
// (spec.md SUPPLEMENTED FEATURES) from audio-only to every pluggable
// component this codebase has.
type AvailableToolsResponse struct {
	Transcriber  ToolStatus   `json:"transcriber"`
	LLM          ToolStatus   `json:"llm"`
	Integrations []ToolStatus `json:"integrations"`
}

type ToolStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

type AvailableToolsHandler struct {
	transcriber transcriptionservices.Transcriber
	llm         extractionservices.LLMClient
	clients     []integrationservices.IntegrationClient
}

func NewAvailableToolsHandler(transcriber transcriptionservices.Transcriber, llm extractionservices.LLMClient, clients []integrationservices.IntegrationClient) *AvailableToolsHandler {
	return &AvailableToolsHandler{transcriber: transcriber, llm: llm, clients: clients}
}

func (h *AvailableToolsHandler) GetAvailableTools(c *gin.Context) {
	integrations := make([]ToolStatus, 0, len(h.clients))
	for _, client := range h.clients {
		integrations = append(integrations, ToolStatus{Name: client.Platform(), Available: client.Available()})
	}

	c.JSON(http.StatusOK, AvailableToolsResponse{
		Transcriber:  ToolStatus{Name: "subprocess", Available: h.transcriber.Available()},
		LLM:          ToolStatus{Name: h.llm.Name(), Available: h.llm.Name() != "none"},
		Integrations: integrations,
	})
}
