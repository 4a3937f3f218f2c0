package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitscribe/modules/actionitem/domain/repositories"
	"gitscribe/modules/actionitem/interfaces/http/dtos"
)

// TaskHandlers serves the read-mostly REST surface over persisted tasks.
// GetTasks requires the meeting_id query parameter and answers 400 without
// it; listing tasks across all meetings is not supported. No auth/ownership
// checks, matching the rest of this codebase's no-multi-tenancy stance.
type TaskHandlers struct {
	taskRepo repositories.TaskRepository
}

func NewTaskHandlers(taskRepo repositories.TaskRepository) *TaskHandlers {
	return &TaskHandlers{taskRepo: taskRepo}
}

func (h *TaskHandlers) GetTasks(c *gin.Context) {
	meetingID := c.Query("meeting_id")
	if meetingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meeting_id is required"})
		return
	}

	tasks, err := h.taskRepo.FindByMeetingID(c.Request.Context(), meetingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": dtos.ToTasksResponse(tasks)})
}
