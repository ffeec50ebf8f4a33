package http

import (
	"time"

	"github.com/google/uuid"

	"ptcoach/backend/internal/domain"
	"ptcoach/backend/internal/service/scheduling"
	"ptcoach/backend/internal/store"
)

const dateLayout = "2006-01-02"

type slotKeyJSON struct {
	DayOfWeek  int16     `json:"day_of_week"`
	TimeSlotID uuid.UUID `json:"time_slot_id"`
}

func (k slotKeyJSON) toDomain() domain.SlotKey {
	return domain.SlotKey{DayOfWeek: k.DayOfWeek, TimeSlotID: k.TimeSlotID}
}

func toSlotKeysJSON(keys []domain.SlotKey) []slotKeyJSON {
	out := make([]slotKeyJSON, 0, len(keys))
	for _, k := range keys {
		out = append(out, slotKeyJSON{DayOfWeek: k.DayOfWeek, TimeSlotID: k.TimeSlotID})
	}
	return out
}

type timeSlotJSON struct {
	ID        uuid.UUID `json:"id"`
	SlotIndex int       `json:"slot_index"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

func toTimeSlotJSON(t domain.TimeSlot) timeSlotJSON {
	return timeSlotJSON{ID: t.ID, SlotIndex: t.SlotIndex, StartTime: t.StartTime, EndTime: t.EndTime}
}

type availabilityCellJSON struct {
	DayOfWeek   int16     `json:"day_of_week"`
	TimeSlotID  uuid.UUID `json:"time_slot_id"`
	IsAvailable bool      `json:"is_available"`
}

type coachMatchJSON struct {
	CoachID          string        `json:"coach_id"`
	MatchedSlots     int           `json:"matched_slots"`
	RequestedSlots   int           `json:"requested_slots"`
	UnavailableSlots []slotKeyJSON `json:"unavailable_slots"`
}

func toCoachMatchesJSON(ms []domain.CoachMatch) []coachMatchJSON {
	out := make([]coachMatchJSON, 0, len(ms))
	for _, m := range ms {
		out = append(out, coachMatchJSON{
			CoachID:          m.CoachID,
			MatchedSlots:     m.MatchedSlots,
			RequestedSlots:   m.RequestedSlots,
			UnavailableSlots: toSlotKeysJSON(m.UnavailableSlots),
		})
	}
	return out
}

type bookingRequestJSON struct {
	ID         uuid.UUID `json:"id"`
	CustomerID string    `json:"customer_id"`
	CoachID    string    `json:"coach_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Status     string    `json:"status"`
	DenyReason string    `json:"deny_reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toBookingRequestJSON(r domain.BookingRequest) bookingRequestJSON {
	return bookingRequestJSON{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		CoachID:    r.CoachID,
		StartDate:  r.StartDate.Format(dateLayout),
		EndDate:    r.EndDate.Format(dateLayout),
		Status:     string(r.Status),
		DenyReason: r.DenyReason,
		CreatedAt:  r.CreatedAt,
	}
}

func toBookingRequestsJSON(rs []domain.BookingRequest) []bookingRequestJSON {
	out := make([]bookingRequestJSON, 0, len(rs))
	for _, r := range rs {
		out = append(out, toBookingRequestJSON(r))
	}
	return out
}

type sessionJSON struct {
	ID           uuid.UUID `json:"id"`
	RequestID    uuid.UUID `json:"request_id"`
	CoachID      string    `json:"coach_id"`
	CustomerID   string    `json:"customer_id"`
	SessionDate  string    `json:"session_date"`
	DayOfWeek    int16     `json:"day_of_week"`
	TimeSlotID   uuid.UUID `json:"time_slot_id"`
	Status       string    `json:"status"`
	CancelReason string    `json:"cancel_reason,omitempty"`
}

func toSessionJSON(s domain.PtSession) sessionJSON {
	return sessionJSON{
		ID:           s.ID,
		RequestID:    s.RequestID,
		CoachID:      s.CoachID,
		CustomerID:   s.CustomerID,
		SessionDate:  s.SessionDate.Format(dateLayout),
		DayOfWeek:    s.DayOfWeek,
		TimeSlotID:   s.TimeSlotID,
		Status:       string(s.Status),
		CancelReason: s.CancelReason,
	}
}

func toSessionsJSON(ss []domain.PtSession) []sessionJSON {
	out := make([]sessionJSON, 0, len(ss))
	for _, s := range ss {
		out = append(out, toSessionJSON(s))
	}
	return out
}

type occurrenceJSON struct {
	SessionDate string    `json:"session_date"`
	DayOfWeek   int16     `json:"day_of_week"`
	TimeSlotID  uuid.UUID `json:"time_slot_id"`
}

func toOccurrencesJSON(occs []domain.SessionOccurrence) []occurrenceJSON {
	out := make([]occurrenceJSON, 0, len(occs))
	for _, o := range occs {
		out = append(out, occurrenceJSON{
			SessionDate: o.Date.Format(dateLayout),
			DayOfWeek:   o.DayOfWeek,
			TimeSlotID:  o.TimeSlotID,
		})
	}
	return out
}

type decideBookingResponse struct {
	Request            bookingRequestJSON `json:"request"`
	GeneratedSessions  []sessionJSON      `json:"generated_sessions"`
	SkippedOccurrences []occurrenceJSON   `json:"skipped_occurrences"`
}

func toDecideBookingResponse(res store.AcceptResult) decideBookingResponse {
	return decideBookingResponse{
		Request:            toBookingRequestJSON(res.Request),
		GeneratedSessions:  toSessionsJSON(res.Created),
		SkippedOccurrences: toOccurrencesJSON(res.Skipped),
	}
}

type rescheduleRequestJSON struct {
	SessionID         uuid.UUID `json:"session_id"`
	RequestedDate     string    `json:"requested_date"`
	RequestedTimeSlot uuid.UUID `json:"requested_time_slot_id"`
	WeeklyAvailable   bool      `json:"weekly_available"`
	HasConflict       bool      `json:"has_conflict"`
}

func toRescheduleRequestJSON(r domain.RescheduleRequest) rescheduleRequestJSON {
	return rescheduleRequestJSON{
		SessionID:         r.SessionID,
		RequestedDate:     r.RequestedDate.Format(dateLayout),
		RequestedTimeSlot: r.RequestedTimeSlot,
		WeeklyAvailable:   r.WeeklyAvailable,
		HasConflict:       r.HasConflict,
	}
}

type decideRescheduleResponse struct {
	Session    sessionJSON `json:"session"`
	DenyReason string      `json:"deny_reason,omitempty"`
}

func toDecideRescheduleResponse(d scheduling.RescheduleDecision) decideRescheduleResponse {
	return decideRescheduleResponse{
		Session:    toSessionJSON(d.Session),
		DenyReason: d.DenyReason,
	}
}

type sessionNoteJSON struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	CoachID   string    `json:"coach_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toSessionNoteJSON(n domain.SessionNote) sessionNoteJSON {
	return sessionNoteJSON{
		ID:        n.ID,
		SessionID: n.SessionID,
		CoachID:   n.CoachID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

type feedbackJSON struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"session_id"`
	CustomerID string    `json:"customer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toFeedbackJSON(f domain.Feedback) feedbackJSON {
	return feedbackJSON{
		ID:         f.ID,
		SessionID:  f.SessionID,
		CustomerID: f.CustomerID,
		Rating:     f.Rating,
		Comment:    f.Comment,
		CreatedAt:  f.CreatedAt,
	}
}

type scheduleJSON struct {
	Sessions        []sessionJSON        `json:"sessions"`
	PendingRequests []bookingRequestJSON `json:"pending_requests"`
	DeniedRequests  []bookingRequestJSON `json:"denied_requests"`
}

func toScheduleJSON(s scheduling.Schedule) scheduleJSON {
	return scheduleJSON{
		Sessions:        toSessionsJSON(s.Sessions),
		PendingRequests: toBookingRequestsJSON(s.PendingRequests),
		DeniedRequests:  toBookingRequestsJSON(s.DeniedRequests),
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
