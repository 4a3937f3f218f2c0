package routes

import (
	"github.com/gin-gonic/gin"

	"gitscribe/modules/actionitem/interfaces/http/handlers"
)

type TaskRoutes struct {
	handlers *handlers.TaskHandlers
}

func NewTaskRoutes(handlers *handlers.TaskHandlers) *TaskRoutes {
	return &TaskRoutes{handlers: handlers}
}

func (r *TaskRoutes) SetupRoutes(router *gin.RouterGroup) {
	router.GET("/get-tasks", r.handlers.GetTasks)
}
