package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gitscribe/modules/meeting/application/queries"
	"gitscribe/modules/meeting/application/services"
	"gitscribe/modules/meeting/interfaces/http/dtos"
	transcriptionrepositories "gitscribe/modules/transcription/domain/repositories"
	"gitscribe/seedwork/domain"
)

// MeetingHandlers serves the read-side REST surface over persisted meetings
// (spec.md §6). Meeting creation is driven by the WSGateway, not this REST
// surface — there is no multi-tenant ownership to authenticate here
// (authentication is an explicit non-goal of the system).
type MeetingHandlers struct {
	meetingService *services.MeetingService
	transcriptRepo transcriptionrepositories.TranscriptRepository
}

func NewMeetingHandlers(meetingService *services.MeetingService, transcriptRepo transcriptionrepositories.TranscriptRepository) *MeetingHandlers {
	return &MeetingHandlers{meetingService: meetingService, transcriptRepo: transcriptRepo}
}

// Health reports basic service liveness.
func (h *MeetingHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// GetMeetings returns recent meetings.
func (h *MeetingHandlers) GetMeetings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	meetings, err := h.meetingService.GetMeetings(c.Request.Context(), queries.GetMeetingsQuery{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve meetings"})
		return
	}

	c.JSON(http.StatusOK, dtos.ToMeetingsListResponse(meetings))
}

// GetMeetingByID returns a single meeting by ID.
func (h *MeetingHandlers) GetMeetingByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meeting id is required"})
		return
	}

	meeting, err := h.meetingService.GetMeetingByID(c.Request.Context(), queries.GetMeetingByIDQuery{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get meeting"})
		return
	}

	chunks, err := h.transcriptRepo.ListChunks(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transcript"})
		return
	}

	participants := make([]dtos.ParticipantResponse, 0, len(meeting.Participants))
	for _, p := range meeting.Participants {
		participants = append(participants, dtos.ToParticipantResponse(p))
	}
	segments := make([]dtos.TranscriptSegmentResponse, 0, len(chunks))
	for _, chunk := range chunks {
		segments = append(segments, dtos.TranscriptSegmentResponse{
			Sequence:      chunk.Sequence,
			SpeakerLabel:  chunk.SpeakerLabel,
			Text:          chunk.Text,
			StartOffsetMS: chunk.StartOffsetMS,
			EndOffsetMS:   chunk.EndOffsetMS,
			Confidence:    chunk.Confidence,
		})
	}

	c.JSON(http.StatusOK, dtos.MeetingDetailResponse{
		MeetingResponse: dtos.ToMeetingResponse(meeting),
		Participants:    participants,
		Transcript:      segments,
	})
}
