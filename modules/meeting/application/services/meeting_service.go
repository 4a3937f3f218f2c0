package services

import (
	"context"
	"errors"
	"fmt"

	"gitscribe/modules/meeting/application/commands"
	"gitscribe/modules/meeting/application/queries"
	"gitscribe/modules/meeting/domain/entities"
	"gitscribe/modules/meeting/domain/repositories"
	"gitscribe/seedwork/domain"
)

// MeetingService orchestrates Meeting lifecycle transitions. It is the
// durable counterpart to the in-memory Session: SessionManager resolves and
// starts the Meeting when a session's first audio chunk arrives and
// finishes it after extraction, keeping the persisted Meeting row in sync
// with the ephemeral session state machine (spec.md §4.2, §4.6).
type MeetingService struct {
	meetingRepo repositories.MeetingRepository
}

func NewMeetingService(meetingRepo repositories.MeetingRepository) *MeetingService {
	return &MeetingService{meetingRepo: meetingRepo}
}

// ResolveMeeting returns the existing Meeting for this fingerprint, or
// creates one, implementing spec.md §3's fingerprint-uniqueness invariant.
func (s *MeetingService) ResolveMeeting(ctx context.Context, cmd commands.CreateMeetingCommand) (*entities.Meeting, error) {
	fingerprint := entities.Fingerprint(cmd.Platform, cmd.ExternalID, cmd.StartedAt)

	existing, err := s.meetingRepo.FindByFingerprint(ctx, fingerprint)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("looking up meeting by fingerprint: %w", err)
	}

	meeting := entities.NewMeeting(cmd.ExternalID, cmd.Platform, cmd.Title, cmd.StartedAt)
	if err := s.meetingRepo.Save(ctx, &meeting); err != nil {
		return nil, fmt.Errorf("persisting meeting: %w", err)
	}
	return &meeting, nil
}

// StartMeeting transitions the Meeting to in-progress on the first audio chunk.
func (s *MeetingService) StartMeeting(ctx context.Context, meetingID string) error {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return err
	}
	meeting.Start()
	return s.meetingRepo.Update(ctx, meeting)
}

// FinishMeeting transitions the Meeting to completed on a meeting-end signal.
func (s *MeetingService) FinishMeeting(ctx context.Context, meetingID string) error {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return err
	}
	meeting.Finish()
	return s.meetingRepo.Update(ctx, meeting)
}

// AbortMeeting marks the Meeting failed after an unrecoverable pipeline error.
func (s *MeetingService) AbortMeeting(ctx context.Context, meetingID string) error {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return err
	}
	meeting.Abort()
	return s.meetingRepo.Update(ctx, meeting)
}

func (s *MeetingService) SaveParticipants(ctx context.Context, meetingID string, participants []entities.Participant) error {
	return s.meetingRepo.SaveParticipants(ctx, meetingID, participants)
}

func (s *MeetingService) GetMeetings(ctx context.Context, query queries.GetMeetingsQuery) ([]*entities.Meeting, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}
	return s.meetingRepo.List(ctx, limit, query.Offset)
}

func (s *MeetingService) GetMeetingByID(ctx context.Context, query queries.GetMeetingByIDQuery) (*entities.Meeting, error) {
	return s.meetingRepo.FindByID(ctx, query.ID)
}
