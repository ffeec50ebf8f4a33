package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "SCHEDULED"
	SessionStatusCompleted SessionStatus = "COMPLETED"
	SessionStatusCancelled SessionStatus = "CANCELLED"
)

// PtSession is one concrete dated training session. No two non-cancelled
// sessions may share (coach_id, session_date, time_slot_id); a partial
// unique index backs that invariant.
type PtSession struct {
	bun.BaseModel `bun:"table:pt_sessions"`

	ID           uuid.UUID     `bun:"id,pk,type:uuid"`
	RequestID    uuid.UUID     `bun:"request_id,notnull,type:uuid"`
	CoachID      string        `bun:"coach_id,notnull"`
	CustomerID   string        `bun:"customer_id,notnull"`
	SessionDate  time.Time     `bun:"session_date,notnull"`
	DayOfWeek    int16         `bun:"day_of_week,notnull"`
	TimeSlotID   uuid.UUID     `bun:"time_slot_id,notnull,type:uuid"`
	Status       SessionStatus `bun:"status,notnull"`
	CancelReason string        `bun:"cancel_reason"`
	CreatedAt    time.Time     `bun:"created_at,notnull"`
	UpdatedAt    time.Time     `bun:"updated_at,notnull"`
}

func (s *PtSession) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if s.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			s.ID = id
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		s.UpdatedAt = now
	}
	return nil
}

// IsParty reports whether actorID is the customer or the coach of the
// session.
func (s PtSession) IsParty(actorID string) bool {
	return actorID == s.CustomerID || actorID == s.CoachID
}

// RescheduleRequest is the transient single-session move awaiting coach
// approval. unique(session_id) keeps at most one open per session; it is
// deleted on approve and on deny.
type RescheduleRequest struct {
	bun.BaseModel `bun:"table:reschedule_requests"`

	ID                 uuid.UUID `bun:"id,pk,type:uuid"`
	SessionID          uuid.UUID `bun:"session_id,notnull,type:uuid"`
	RequestedDate      time.Time `bun:"requested_date,notnull"`
	RequestedDayOfWeek int16     `bun:"requested_day_of_week,notnull"`
	RequestedTimeSlot  uuid.UUID `bun:"requested_time_slot_id,notnull,type:uuid"`
	WeeklyAvailable    bool      `bun:"weekly_available,notnull"`
	HasConflict        bool      `bun:"has_conflict,notnull"`
	CreatedAt          time.Time `bun:"created_at,notnull"`
}

func (r *RescheduleRequest) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		if r.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			r.ID = id
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now().UTC()
		}
	}
	return nil
}

// SessionNote is coach-authored free text on a session, editable only by
// its author.
type SessionNote struct {
	bun.BaseModel `bun:"table:session_notes"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	SessionID uuid.UUID `bun:"session_id,notnull,type:uuid"`
	CoachID   string    `bun:"coach_id,notnull"`
	Content   string    `bun:"content,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

func (n *SessionNote) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if n.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			n.ID = id
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = now
		}
		if n.UpdatedAt.IsZero() {
			n.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		n.UpdatedAt = now
	}
	return nil
}

// Feedback is a customer's one-shot rating of a completed session.
// unique(session_id, customer_id) enforces the at-most-one invariant.
type Feedback struct {
	bun.BaseModel `bun:"table:feedbacks"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	SessionID  uuid.UUID `bun:"session_id,notnull,type:uuid"`
	CustomerID string    `bun:"customer_id,notnull"`
	Rating     int       `bun:"rating,notnull"`
	Comment    string    `bun:"comment"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

func (f *Feedback) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		if f.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			f.ID = id
		}
		if f.CreatedAt.IsZero() {
			f.CreatedAt = time.Now().UTC()
		}
	}
	return nil
}
