package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ptcoach/backend/internal/domain"
)

// SchedulingTx is the slice of storage operations the invariant-bearing
// flows need inside one advisory-locked transaction: session generation
// on accept, the single-active-booking guard on submit, and the
// reschedule approval re-check.
type SchedulingTx interface {
	HasPendingRequest(ctx context.Context, customerID string) (bool, error)
	HasActiveSchedule(ctx context.Context, customerID string) (bool, error)
	InsertBookingRequest(ctx context.Context, req domain.BookingRequest, slots []domain.BookingRequestSlot) (domain.BookingRequest, error)

	PatternSlots(ctx context.Context, requestID uuid.UUID) ([]domain.BookingRequestSlot, error)
	// HasLiveSession reports whether a non-cancelled session other than
	// exceptID occupies (coachID, date, timeSlotID). Pass uuid.Nil to
	// consider every session.
	HasLiveSession(ctx context.Context, coachID string, date time.Time, timeSlotID uuid.UUID, exceptID uuid.UUID) (bool, error)
	InsertSession(ctx context.Context, s domain.PtSession) (domain.PtSession, error)

	CoachSlotAvailable(ctx context.Context, coachID string, dayOfWeek int16, timeSlotID uuid.UUID) (bool, error)
	UpdateSessionSchedule(ctx context.Context, sessionID uuid.UUID, date time.Time, dayOfWeek int16, timeSlotID uuid.UUID) (domain.PtSession, error)
	DeleteReschedule(ctx context.Context, sessionID uuid.UUID) error
}
