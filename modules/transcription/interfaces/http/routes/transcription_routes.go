package routes

import (
	"github.com/gin-gonic/gin"

	"gitscribe/modules/transcription/interfaces/http/handlers"
)

type TranscriptionRoutes struct {
	gateway             *handlers.WSGateway
	availableTools      *handlers.AvailableToolsHandler
}

func NewTranscriptionRoutes(gateway *handlers.WSGateway, availableTools *handlers.AvailableToolsHandler) *TranscriptionRoutes {
	return &TranscriptionRoutes{gateway: gateway, availableTools: availableTools}
}

// SetupRoutes registers the WebSocket ingress (spec.md §4.1/§6) and the
// available-tools capability endpoint. The extension connects on
// /ws/audio; /ws and /ws/audio-stream are accepted aliases for the same
// gateway.
func (r *TranscriptionRoutes) SetupRoutes(router *gin.RouterGroup) {
	router.GET("/ws/audio", r.gateway.HandleConnection)
	router.GET("/ws", r.gateway.HandleConnection)
	router.GET("/ws/audio-stream", r.gateway.HandleConnection)
	router.GET("/available-tools", r.availableTools.GetAvailableTools)
}
