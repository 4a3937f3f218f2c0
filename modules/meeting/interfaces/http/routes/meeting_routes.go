package routes

import (
	"github.com/gin-gonic/gin"

	"gitscribe/modules/meeting/interfaces/http/handlers"
)

// MeetingRoutes registers the read-side meeting REST surface.
type MeetingRoutes struct {
	meetingHandlers *handlers.MeetingHandlers
}

func NewMeetingRoutes(meetingHandlers *handlers.MeetingHandlers) *MeetingRoutes {
	return &MeetingRoutes{meetingHandlers: meetingHandlers}
}

// Setup registers the meeting routes on the given router group.
func (mr *MeetingRoutes) Setup(router *gin.RouterGroup) {
	router.GET("/health", mr.meetingHandlers.Health)
	router.GET("/get-meetings", mr.meetingHandlers.GetMeetings)
	router.GET("/get-meeting/:id", mr.meetingHandlers.GetMeetingByID)
}
