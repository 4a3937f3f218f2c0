package routes

import (
	"github.com/gin-gonic/gin"

	"gitscribe/modules/extraction/interfaces/http/handlers"
)

type ExtractionRoutes struct {
	handlers *handlers.ExtractionHandlers
}

func NewExtractionRoutes(handlers *handlers.ExtractionHandlers) *ExtractionRoutes {
	return &ExtractionRoutes{handlers: handlers}
}

func (r *ExtractionRoutes) SetupRoutes(router *gin.RouterGroup) {
	router.POST("/identify-speakers", r.handlers.IdentifySpeakers)
	router.POST("/generate-summary", r.handlers.GenerateSummary)
	router.POST("/extract-tasks", r.handlers.ExtractTasks)
	router.POST("/extract-tasks-comprehensive", r.handlers.ExtractTasksComprehensive)
	router.POST("/process-transcript-with-tools", r.handlers.ProcessTranscriptWithTools)
	router.POST("/save-transcript", r.handlers.SaveTranscript)
	router.POST("/process-transcript", r.handlers.ProcessTranscript)
	router.GET("/get-summary/:id", r.handlers.GetSummary)
}
