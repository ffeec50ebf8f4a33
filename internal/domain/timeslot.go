package domain

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TimeSlot is one entry of the facility-wide daily slot catalog. The
// catalog is seeded by migration and identical for every coach; the
// engine never creates or deletes slots.
type TimeSlot struct {
	bun.BaseModel `bun:"table:time_slots"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	SlotIndex int       `bun:"slot_index,notnull"`
	StartTime string    `bun:"start_time,notnull"`
	EndTime   string    `bun:"end_time,notnull"`
}

// SlotKey identifies one cell of a weekly pattern: a weekday (1=Monday
// through 7=Sunday) paired with a catalog slot.
type SlotKey struct {
	DayOfWeek  int16
	TimeSlotID uuid.UUID
}

func (k SlotKey) less(other SlotKey) bool {
	if k.DayOfWeek != other.DayOfWeek {
		return k.DayOfWeek < other.DayOfWeek
	}
	return k.TimeSlotID.String() < other.TimeSlotID.String()
}
