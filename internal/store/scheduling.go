package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ptcoach/backend/internal/domain"
)

// AcceptResult is what an accepted booking request produced: the updated
// request, the sessions that made it onto the calendar, and the
// occurrences skipped because the slot was already taken.
type AcceptResult struct {
	Request domain.BookingRequest
	Created []domain.PtSession
	Skipped []domain.SessionOccurrence
}

type SchedulingRepository interface {
	ListTimeSlots(ctx context.Context) ([]domain.TimeSlot, error)

	WeeklyAvailability(ctx context.Context, coachID string) ([]domain.WeeklyAvailability, error)
	ReplaceWeeklyAvailability(ctx context.Context, coachID string, rows []domain.WeeklyAvailability) error
	CoachPoolAvailability(ctx context.Context) ([]domain.CoachWeeklySlots, error)
	CoachSlotAvailable(ctx context.Context, coachID string, dayOfWeek int16, timeSlotID uuid.UUID) (bool, error)

	CreateBookingRequest(ctx context.Context, req domain.BookingRequest, slots []domain.SlotKey) (domain.BookingRequest, error)
	GetBookingRequest(ctx context.Context, requestID uuid.UUID) (domain.BookingRequest, error)
	BookingRequestSlots(ctx context.Context, requestID uuid.UUID) ([]domain.BookingRequestSlot, error)
	ListBookingRequests(ctx context.Context, actorID string, role domain.ActorRole, statuses []domain.BookingRequestStatus) ([]domain.BookingRequest, error)
	// HasOpenBooking reports whether the customer holds a PENDING request
	// and whether they have a live generated schedule.
	HasOpenBooking(ctx context.Context, customerID string) (pending bool, active bool, err error)
	AcceptBookingRequest(ctx context.Context, requestID uuid.UUID) (AcceptResult, error)
	DenyBookingRequest(ctx context.Context, requestID uuid.UUID, reason string) (domain.BookingRequest, error)
	DeleteBookingRequest(ctx context.Context, requestID uuid.UUID) error

	GetSession(ctx context.Context, sessionID uuid.UUID) (domain.PtSession, error)
	ListSessions(ctx context.Context, actorID string, role domain.ActorRole) ([]domain.PtSession, error)
	SessionConflict(ctx context.Context, coachID string, date time.Time, timeSlotID uuid.UUID) (bool, error)
	CancelSession(ctx context.Context, sessionID uuid.UUID, reason string) (domain.PtSession, error)
	CompleteSession(ctx context.Context, sessionID uuid.UUID) (domain.PtSession, error)
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error

	CreateRescheduleRequest(ctx context.Context, rr domain.RescheduleRequest) (domain.RescheduleRequest, error)
	OpenReschedule(ctx context.Context, sessionID uuid.UUID) (domain.RescheduleRequest, error)
	ApproveReschedule(ctx context.Context, sessionID uuid.UUID) (domain.PtSession, error)
	DenyReschedule(ctx context.Context, sessionID uuid.UUID) error

	CreateSessionNote(ctx context.Context, note domain.SessionNote) (domain.SessionNote, error)
	GetSessionNote(ctx context.Context, noteID uuid.UUID) (domain.SessionNote, error)
	UpdateSessionNote(ctx context.Context, note domain.SessionNote) (domain.SessionNote, error)

	CreateFeedback(ctx context.Context, fb domain.Feedback) (domain.Feedback, error)
	ListCoachFeedback(ctx context.Context, coachID string) ([]domain.Feedback, error)
}
