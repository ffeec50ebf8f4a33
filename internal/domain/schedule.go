package domain

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

// SessionOccurrence is one concrete calendar-dated instantiation of a
// weekly-pattern slot, before any conflict checking.
type SessionOccurrence struct {
	Date       time.Time
	DayOfWeek  int16
	TimeSlotID uuid.UUID
}

// ISOWeekday maps a date to 1=Monday through 7=Sunday.
func ISOWeekday(t time.Time) int16 {
	wd := t.Weekday()
	if wd == time.Sunday {
		return 7
	}
	return int16(wd)
}

// DateOnly truncates t to a UTC calendar date. All session dates are
// facility-local and stored date-only.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ExpandWeeklyPattern lists every occurrence of the pattern slots whose
// date falls inside [startDate, endDate], ordered by date then slot key.
// Duplicate pattern slots are collapsed; weekdays outside 1..7 are
// rejected.
func ExpandWeeklyPattern(startDate, endDate time.Time, slots []SlotKey) ([]SessionOccurrence, error) {
	start := DateOnly(startDate)
	end := DateOnly(endDate)
	if end.Before(start) {
		return nil, errors.New("end_date must not be before start_date")
	}
	if len(slots) == 0 {
		return nil, errors.New("at least one pattern slot is required")
	}

	byWeekday := make(map[int16][]uuid.UUID, len(slots))
	seen := make(map[SlotKey]struct{}, len(slots))
	for _, k := range slots {
		if k.DayOfWeek < 1 || k.DayOfWeek > 7 {
			return nil, errors.New("invalid weekday")
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		byWeekday[k.DayOfWeek] = append(byWeekday[k.DayOfWeek], k.TimeSlotID)
	}
	for _, ids := range byWeekday {
		sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	}

	out := make([]SessionOccurrence, 0, 16)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := ISOWeekday(d)
		for _, slotID := range byWeekday[wd] {
			out = append(out, SessionOccurrence{
				Date:       d,
				DayOfWeek:  wd,
				TimeSlotID: slotID,
			})
		}
	}
	return out, nil
}

// NormalizeSlotKeys dedupes and sorts a pattern, rejecting empty sets
// and out-of-range weekdays. Used on request submission and match
// preview input.
func NormalizeSlotKeys(slots []SlotKey) ([]SlotKey, error) {
	if len(slots) == 0 {
		return nil, errors.New("at least one pattern slot is required")
	}
	seen := make(map[SlotKey]struct{}, len(slots))
	out := make([]SlotKey, 0, len(slots))
	for _, k := range slots {
		if k.DayOfWeek < 1 || k.DayOfWeek > 7 {
			return nil, errors.New("invalid weekday")
		}
		if k.TimeSlotID == uuid.Nil {
			return nil, errors.New("time_slot_id is required")
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out, nil
}
