package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"ptcoach/backend/internal/domain"
)

type RequestRescheduleInput struct {
	CustomerID        string
	SessionID         uuid.UUID
	RequestedDate     time.Time
	RequestedTimeSlot uuid.UUID
}

// RequestReschedule attaches a pending move to a scheduled session. The
// availability and conflict flags are computed now but purely advisory;
// approval re-validates both.
func (s *Service) RequestReschedule(ctx context.Context, in RequestRescheduleInput) (domain.RescheduleRequest, error) {
	if in.CustomerID == "" {
		return domain.RescheduleRequest{}, validationError("customer_id is required")
	}
	if in.SessionID == uuid.Nil {
		return domain.RescheduleRequest{}, validationError("session_id is required")
	}
	if in.RequestedDate.IsZero() {
		return domain.RescheduleRequest{}, validationError("requested_date is required")
	}
	if in.RequestedTimeSlot == uuid.Nil {
		return domain.RescheduleRequest{}, validationError("requested_time_slot_id is required")
	}

	session, err := s.repo.GetSession(ctx, in.SessionID)
	if err != nil {
		return domain.RescheduleRequest{}, err
	}
	if session.CustomerID != in.CustomerID {
		return domain.RescheduleRequest{}, authorizationError("session belongs to another customer")
	}
	if session.Status != domain.SessionStatusScheduled {
		return domain.RescheduleRequest{}, policyError("only a scheduled session can be rescheduled")
	}

	date := domain.DateOnly(in.RequestedDate)
	weekday := domain.ISOWeekday(date)

	available, err := s.repo.CoachSlotAvailable(ctx, session.CoachID, weekday, in.RequestedTimeSlot)
	if err != nil {
		return domain.RescheduleRequest{}, err
	}
	conflict, err := s.repo.SessionConflict(ctx, session.CoachID, date, in.RequestedTimeSlot)
	if err != nil {
		return domain.RescheduleRequest{}, err
	}

	return s.repo.CreateRescheduleRequest(ctx, domain.RescheduleRequest{
		SessionID:          session.ID,
		RequestedDate:      date,
		RequestedDayOfWeek: weekday,
		RequestedTimeSlot:  in.RequestedTimeSlot,
		WeeklyAvailable:    available,
		HasConflict:        conflict,
	})
}

type DecideRescheduleInput struct {
	CoachID   string
	SessionID uuid.UUID
	Decision  Decision
	// Reason is optional context for a deny. Nothing persists it; it is
	// surfaced to the customer in the response only.
	Reason string
}

// RescheduleDecision is the outcome of a coach's reschedule decision:
// the session (moved on approve, untouched on deny) and the deny reason,
// if one was given.
type RescheduleDecision struct {
	Session    domain.PtSession
	DenyReason string
}

// DecideReschedule resolves a session's open reschedule request. Deny
// discards the request and leaves the session exactly as it was;
// approve mutates the session in place after re-validation.
func (s *Service) DecideReschedule(ctx context.Context, in DecideRescheduleInput) (RescheduleDecision, error) {
	if in.CoachID == "" {
		return RescheduleDecision{}, validationError("coach_id is required")
	}
	if in.SessionID == uuid.Nil {
		return RescheduleDecision{}, validationError("session_id is required")
	}

	session, err := s.repo.GetSession(ctx, in.SessionID)
	if err != nil {
		return RescheduleDecision{}, err
	}
	if session.CoachID != in.CoachID {
		return RescheduleDecision{}, authorizationError("session belongs to another coach")
	}
	if _, err := s.repo.OpenReschedule(ctx, in.SessionID); err != nil {
		return RescheduleDecision{}, err
	}

	switch in.Decision {
	case DecisionApprove:
		moved, err := s.repo.ApproveReschedule(ctx, in.SessionID)
		if err != nil {
			return RescheduleDecision{}, err
		}
		return RescheduleDecision{Session: moved}, nil
	case DecisionDeny:
		if err := s.repo.DenyReschedule(ctx, in.SessionID); err != nil {
			return RescheduleDecision{}, err
		}
		return RescheduleDecision{Session: session, DenyReason: strings.TrimSpace(in.Reason)}, nil
	default:
		return RescheduleDecision{}, validationError("decision must be APPROVE or DENY")
	}
}

func (s *Service) CancelSession(ctx context.Context, actorID string, sessionID uuid.UUID, reason string) (domain.PtSession, error) {
	if actorID == "" {
		return domain.PtSession{}, validationError("actor id is required")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.PtSession{}, validationError("cancel reason is required")
	}

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return domain.PtSession{}, err
	}
	if !session.IsParty(actorID) {
		return domain.PtSession{}, authorizationError("session belongs to another customer and coach")
	}
	if session.Status != domain.SessionStatusScheduled {
		return domain.PtSession{}, policyError("only a scheduled session can be cancelled")
	}

	return s.repo.CancelSession(ctx, sessionID, reason)
}

// DeleteCancelledSession removes a cancelled session's row. Pure
// bookkeeping acknowledgment; cancellation itself never deletes.
func (s *Service) DeleteCancelledSession(ctx context.Context, actorID string, sessionID uuid.UUID) error {
	if actorID == "" {
		return validationError("actor id is required")
	}

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.IsParty(actorID) {
		return authorizationError("session belongs to another customer and coach")
	}
	if session.Status != domain.SessionStatusCancelled {
		return policyError("only a cancelled session can be deleted")
	}

	return s.repo.DeleteSession(ctx, sessionID)
}

func (s *Service) CompleteSession(ctx context.Context, coachID string, sessionID uuid.UUID) (domain.PtSession, error) {
	if coachID == "" {
		return domain.PtSession{}, validationError("coach_id is required")
	}

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return domain.PtSession{}, err
	}
	if session.CoachID != coachID {
		return domain.PtSession{}, authorizationError("session belongs to another coach")
	}
	if session.Status != domain.SessionStatusScheduled {
		return domain.PtSession{}, policyError("only a scheduled session can be completed")
	}
	if s.requireElapsed && session.SessionDate.After(domain.DateOnly(s.now())) {
		return domain.PtSession{}, policyError("session date has not elapsed")
	}

	return s.repo.CompleteSession(ctx, sessionID)
}

func (s *Service) AddSessionNote(ctx context.Context, coachID string, sessionID uuid.UUID, content string) (domain.SessionNote, error) {
	if coachID == "" {
		return domain.SessionNote{}, validationError("coach_id is required")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.SessionNote{}, validationError("content is required")
	}

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return domain.SessionNote{}, err
	}
	if session.CoachID != coachID {
		return domain.SessionNote{}, authorizationError("session belongs to another coach")
	}

	return s.repo.CreateSessionNote(ctx, domain.SessionNote{
		SessionID: session.ID,
		CoachID:   coachID,
		Content:   content,
	})
}

func (s *Service) UpdateSessionNote(ctx context.Context, coachID string, noteID uuid.UUID, content string) (domain.SessionNote, error) {
	if coachID == "" {
		return domain.SessionNote{}, validationError("coach_id is required")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.SessionNote{}, validationError("content is required")
	}

	note, err := s.repo.GetSessionNote(ctx, noteID)
	if err != nil {
		return domain.SessionNote{}, err
	}
	if note.CoachID != coachID {
		return domain.SessionNote{}, authorizationError("note belongs to another coach")
	}

	note.Content = content
	return s.repo.UpdateSessionNote(ctx, note)
}

type SubmitFeedbackInput struct {
	CustomerID string
	SessionID  uuid.UUID
	Rating     int
	Comment    string
}

func (s *Service) SubmitFeedback(ctx context.Context, in SubmitFeedbackInput) (domain.Feedback, error) {
	if in.CustomerID == "" {
		return domain.Feedback{}, validationError("customer_id is required")
	}
	if in.SessionID == uuid.Nil {
		return domain.Feedback{}, validationError("session_id is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return domain.Feedback{}, validationError("rating must be between 1 and 5")
	}

	session, err := s.repo.GetSession(ctx, in.SessionID)
	if err != nil {
		return domain.Feedback{}, err
	}
	if session.CustomerID != in.CustomerID {
		return domain.Feedback{}, authorizationError("session belongs to another customer")
	}
	if session.Status != domain.SessionStatusCompleted {
		return domain.Feedback{}, policyError("feedback requires a completed session")
	}

	return s.repo.CreateFeedback(ctx, domain.Feedback{
		SessionID:  session.ID,
		CustomerID: in.CustomerID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	})
}

func (s *Service) CoachFeedback(ctx context.Context, coachID string) ([]domain.Feedback, error) {
	if coachID == "" {
		return nil, validationError("coach_id is required")
	}
	return s.repo.ListCoachFeedback(ctx, coachID)
}
