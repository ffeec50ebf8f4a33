package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"ptcoach/backend/internal/domain"
	"ptcoach/backend/internal/store"
)

type CreateBookingRequestInput struct {
	CustomerID string
	CoachID    string
	StartDate  time.Time
	EndDate    time.Time
	Slots      []domain.SlotKey
}

func (s *Service) CreateBookingRequest(ctx context.Context, in CreateBookingRequestInput) (domain.BookingRequest, error) {
	if in.CustomerID == "" {
		return domain.BookingRequest{}, validationError("customer_id is required")
	}
	if in.CoachID == "" {
		return domain.BookingRequest{}, validationError("coach_id is required")
	}
	if in.CoachID == in.CustomerID {
		return domain.BookingRequest{}, validationError("customer and coach must differ")
	}

	start := domain.DateOnly(in.StartDate)
	end := domain.DateOnly(in.EndDate)
	if start.IsZero() || in.StartDate.IsZero() || in.EndDate.IsZero() {
		return domain.BookingRequest{}, validationError("start_date and end_date are required")
	}
	if end.Before(start) {
		return domain.BookingRequest{}, validationError("end_date must not be before start_date")
	}

	slots, err := domain.NormalizeSlotKeys(in.Slots)
	if err != nil {
		return domain.BookingRequest{}, validationError(err.Error())
	}

	if err := s.checkMembership(ctx, in.CustomerID); err != nil {
		return domain.BookingRequest{}, err
	}

	// The duplicate-request/active-schedule guard runs again inside the
	// repo under the customer lock; this is not a TOCTOU hole.
	return s.repo.CreateBookingRequest(ctx, domain.BookingRequest{
		CustomerID: in.CustomerID,
		CoachID:    in.CoachID,
		StartDate:  start,
		EndDate:    end,
		Status:     domain.BookingRequestStatusPending,
	}, slots)
}

type Decision string

const (
	DecisionAccept  Decision = "ACCEPT"
	DecisionApprove Decision = "APPROVE"
	DecisionDeny    Decision = "DENY"
)

type DecideBookingRequestInput struct {
	CoachID   string
	RequestID uuid.UUID
	Decision  Decision
	Reason    string
}

// DecideBookingRequest applies the coach's accept/deny. Accept runs the
// session generator synchronously; the request is accepted even when
// every occurrence is skipped, and the skipped list is returned so the
// caller can surface a warning.
func (s *Service) DecideBookingRequest(ctx context.Context, in DecideBookingRequestInput) (store.AcceptResult, error) {
	if in.CoachID == "" {
		return store.AcceptResult{}, validationError("coach_id is required")
	}
	if in.RequestID == uuid.Nil {
		return store.AcceptResult{}, validationError("request_id is required")
	}

	req, err := s.repo.GetBookingRequest(ctx, in.RequestID)
	if err != nil {
		return store.AcceptResult{}, err
	}
	if req.CoachID != in.CoachID {
		return store.AcceptResult{}, authorizationError("booking request belongs to another coach")
	}
	if req.Status != domain.BookingRequestStatusPending {
		return store.AcceptResult{}, policyError("booking request is already " + strings.ToLower(string(req.Status)))
	}

	switch in.Decision {
	case DecisionAccept:
		return s.repo.AcceptBookingRequest(ctx, in.RequestID)
	case DecisionDeny:
		reason := strings.TrimSpace(in.Reason)
		if reason == "" {
			return store.AcceptResult{}, validationError("deny reason is required")
		}
		denied, err := s.repo.DenyBookingRequest(ctx, in.RequestID, reason)
		if err != nil {
			return store.AcceptResult{}, err
		}
		return store.AcceptResult{Request: denied}, nil
	default:
		return store.AcceptResult{}, validationError("decision must be ACCEPT or DENY")
	}
}

// DeleteBookingRequest withdraws a customer's own pending request.
// Deleting an already-deleted request is a no-op success.
func (s *Service) DeleteBookingRequest(ctx context.Context, customerID string, requestID uuid.UUID) error {
	if customerID == "" {
		return validationError("customer_id is required")
	}
	if requestID == uuid.Nil {
		return validationError("request_id is required")
	}

	req, err := s.repo.GetBookingRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.CustomerID != customerID {
		return authorizationError("booking request belongs to another customer")
	}
	if req.Status == domain.BookingRequestStatusDeleted {
		return nil
	}
	if req.Status != domain.BookingRequestStatusPending {
		return policyError("only a pending request can be withdrawn")
	}

	return s.repo.DeleteBookingRequest(ctx, requestID)
}

// Schedule is an actor's calendar view: their sessions plus the booking
// requests still awaiting or carrying a coach decision.
type Schedule struct {
	Sessions        []domain.PtSession
	PendingRequests []domain.BookingRequest
	DeniedRequests  []domain.BookingRequest
}

func (s *Service) ListSchedule(ctx context.Context, actorID string, role domain.ActorRole) (Schedule, error) {
	if actorID == "" {
		return Schedule{}, validationError("actor id is required")
	}

	sessions, err := s.repo.ListSessions(ctx, actorID, role)
	if err != nil {
		return Schedule{}, err
	}
	pending, err := s.repo.ListBookingRequests(ctx, actorID, role, []domain.BookingRequestStatus{domain.BookingRequestStatusPending})
	if err != nil {
		return Schedule{}, err
	}
	denied, err := s.repo.ListBookingRequests(ctx, actorID, role, []domain.BookingRequestStatus{domain.BookingRequestStatusDenied})
	if err != nil {
		return Schedule{}, err
	}

	return Schedule{
		Sessions:        sessions,
		PendingRequests: pending,
		DeniedRequests:  denied,
	}, nil
}
