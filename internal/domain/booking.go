package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BookingRequestStatus string

const (
	BookingRequestStatusPending  BookingRequestStatus = "PENDING"
	BookingRequestStatusAccepted BookingRequestStatus = "ACCEPTED"
	BookingRequestStatusDenied   BookingRequestStatus = "DENIED"
	BookingRequestStatusDeleted  BookingRequestStatus = "DELETED"
)

// Terminal reports whether no further transition is defined from s.
func (s BookingRequestStatus) Terminal() bool {
	return s == BookingRequestStatusAccepted ||
		s == BookingRequestStatusDenied ||
		s == BookingRequestStatusDeleted
}

// BookingRequest is a customer's ask for a recurring weekly schedule
// with one coach over a bounded date window.
type BookingRequest struct {
	bun.BaseModel `bun:"table:booking_requests"`

	ID         uuid.UUID            `bun:"id,pk,type:uuid"`
	CustomerID string               `bun:"customer_id,notnull"`
	CoachID    string               `bun:"coach_id,notnull"`
	StartDate  time.Time            `bun:"start_date,notnull"`
	EndDate    time.Time            `bun:"end_date,notnull"`
	Status     BookingRequestStatus `bun:"status,notnull"`
	DenyReason string               `bun:"deny_reason"`
	CreatedAt  time.Time            `bun:"created_at,notnull"`
	UpdatedAt  time.Time            `bun:"updated_at,notnull"`
}

func (r *BookingRequest) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if r.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			r.ID = id
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		r.UpdatedAt = now
	}
	return nil
}

// BookingRequestSlot is one weekday/slot cell of a request's weekly
// pattern. Unique per (request_id, day_of_week, time_slot_id).
type BookingRequestSlot struct {
	bun.BaseModel `bun:"table:booking_request_slots"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	RequestID  uuid.UUID `bun:"request_id,notnull,type:uuid"`
	DayOfWeek  int16     `bun:"day_of_week,notnull"`
	TimeSlotID uuid.UUID `bun:"time_slot_id,notnull,type:uuid"`
}

func (s *BookingRequestSlot) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && s.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		s.ID = id
	}
	return nil
}

func (s BookingRequestSlot) Key() SlotKey {
	return SlotKey{DayOfWeek: s.DayOfWeek, TimeSlotID: s.TimeSlotID}
}
