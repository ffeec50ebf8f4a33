package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// WeeklyAvailability marks one weekday/slot cell of a coach's weekly
// grid. At most one row exists per (coach_id, day_of_week, time_slot_id);
// a save replaces the coach's whole grid.
type WeeklyAvailability struct {
	bun.BaseModel `bun:"table:weekly_availabilities"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	CoachID     string    `bun:"coach_id,notnull"`
	DayOfWeek   int16     `bun:"day_of_week,notnull"`
	TimeSlotID  uuid.UUID `bun:"time_slot_id,notnull,type:uuid"`
	IsAvailable bool      `bun:"is_available,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

func (a *WeeklyAvailability) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}
