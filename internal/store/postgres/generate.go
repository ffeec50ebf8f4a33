package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"ptcoach/backend/internal/domain"
	"ptcoach/backend/internal/store"
)

func (t schedulingTx) HasPendingRequest(ctx context.Context, customerID string) (bool, error) {
	return t.tx.NewSelect().
		Model((*domain.BookingRequest)(nil)).
		Where("customer_id = ?", customerID).
		Where("status = ?", domain.BookingRequestStatusPending).
		Exists(ctx)
}

func (t schedulingTx) HasActiveSchedule(ctx context.Context, customerID string) (bool, error) {
	return t.tx.NewSelect().
		Model((*domain.PtSession)(nil)).
		Where("customer_id = ?", customerID).
		Where("status = ?", domain.SessionStatusScheduled).
		Exists(ctx)
}

func (t schedulingTx) InsertBookingRequest(ctx context.Context, req domain.BookingRequest, slots []domain.BookingRequestSlot) (domain.BookingRequest, error) {
	m := req
	if _, err := t.tx.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.BookingRequest{}, err
	}
	for i := range slots {
		slots[i].RequestID = m.ID
	}
	if len(slots) > 0 {
		if _, err := t.tx.NewInsert().Model(&slots).Exec(ctx); err != nil {
			return domain.BookingRequest{}, err
		}
	}
	return m, nil
}

func selectPatternSlots(ctx context.Context, db bun.IDB, requestID uuid.UUID) ([]domain.BookingRequestSlot, error) {
	var rows []domain.BookingRequestSlot
	err := db.NewSelect().
		Model(&rows).
		Where("request_id = ?", requestID).
		OrderExpr("day_of_week ASC, time_slot_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (t schedulingTx) PatternSlots(ctx context.Context, requestID uuid.UUID) ([]domain.BookingRequestSlot, error) {
	return selectPatternSlots(ctx, t.tx, requestID)
}

func (t schedulingTx) HasLiveSession(ctx context.Context, coachID string, date time.Time, timeSlotID uuid.UUID, exceptID uuid.UUID) (bool, error) {
	q := t.tx.NewSelect().
		Model((*domain.PtSession)(nil)).
		Where("coach_id = ?", coachID).
		Where("session_date = ?", domain.DateOnly(date)).
		Where("time_slot_id = ?", timeSlotID).
		Where("status <> ?", domain.SessionStatusCancelled)
	if exceptID != uuid.Nil {
		q = q.Where("id <> ?", exceptID)
	}
	return q.Exists(ctx)
}

func (t schedulingTx) InsertSession(ctx context.Context, s domain.PtSession) (domain.PtSession, error) {
	m := s
	_, err := t.tx.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err, "pt_sessions_live_slot_key") {
			return domain.PtSession{}, store.ErrConflict
		}
		return domain.PtSession{}, err
	}
	return m, nil
}

func (t schedulingTx) CoachSlotAvailable(ctx context.Context, coachID string, dayOfWeek int16, timeSlotID uuid.UUID) (bool, error) {
	return t.tx.NewSelect().
		Model((*domain.WeeklyAvailability)(nil)).
		Where("coach_id = ?", coachID).
		Where("day_of_week = ?", dayOfWeek).
		Where("time_slot_id = ?", timeSlotID).
		Where("is_available = TRUE").
		Exists(ctx)
}

func (t schedulingTx) UpdateSessionSchedule(ctx context.Context, sessionID uuid.UUID, date time.Time, dayOfWeek int16, timeSlotID uuid.UUID) (domain.PtSession, error) {
	var s domain.PtSession
	err := t.tx.NewSelect().
		Model(&s).
		Where("id = ?", sessionID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return domain.PtSession{}, err
	}

	s.SessionDate = domain.DateOnly(date)
	s.DayOfWeek = dayOfWeek
	s.TimeSlotID = timeSlotID
	_, err = t.tx.NewUpdate().
		Model(&s).
		Column("session_date", "day_of_week", "time_slot_id", "updated_at").
		Where("id = ?", sessionID).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err, "pt_sessions_live_slot_key") {
			return domain.PtSession{}, store.ErrConflict
		}
		return domain.PtSession{}, err
	}
	return s, nil
}

func (t schedulingTx) DeleteReschedule(ctx context.Context, sessionID uuid.UUID) error {
	_, err := t.tx.NewDelete().
		Model((*domain.RescheduleRequest)(nil)).
		Where("session_id = ?", sessionID).
		Exec(ctx)
	return err
}

// ensureSingleActiveBooking enforces the submit-time invariant: one
// PENDING request and one live generated schedule per customer, checked
// under the customer advisory lock.
func ensureSingleActiveBooking(ctx context.Context, tx store.SchedulingTx, customerID string) error {
	pending, err := tx.HasPendingRequest(ctx, customerID)
	if err != nil {
		return err
	}
	if pending {
		return store.ErrDuplicateRequest
	}
	active, err := tx.HasActiveSchedule(ctx, customerID)
	if err != nil {
		return err
	}
	if active {
		return store.ErrActiveSchedule
	}
	return nil
}

// generateSessions expands an accepted request's weekly pattern into
// dated sessions. Occurrences whose slot is already taken are skipped
// and reported, never failing the batch: some sessions beat a fully
// blocked request.
func generateSessions(ctx context.Context, tx store.SchedulingTx, req domain.BookingRequest, slots []domain.BookingRequestSlot) ([]domain.PtSession, []domain.SessionOccurrence, error) {
	keys := make([]domain.SlotKey, 0, len(slots))
	for _, s := range slots {
		keys = append(keys, s.Key())
	}
	occs, err := domain.ExpandWeeklyPattern(req.StartDate, req.EndDate, keys)
	if err != nil {
		return nil, nil, err
	}

	created := make([]domain.PtSession, 0, len(occs))
	var skipped []domain.SessionOccurrence
	for _, occ := range occs {
		taken, err := tx.HasLiveSession(ctx, req.CoachID, occ.Date, occ.TimeSlotID, uuid.Nil)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			skipped = append(skipped, occ)
			continue
		}
		s, err := tx.InsertSession(ctx, domain.PtSession{
			RequestID:   req.ID,
			CoachID:     req.CoachID,
			CustomerID:  req.CustomerID,
			SessionDate: occ.Date,
			DayOfWeek:   occ.DayOfWeek,
			TimeSlotID:  occ.TimeSlotID,
			Status:      domain.SessionStatusScheduled,
		})
		if errors.Is(err, store.ErrConflict) {
			skipped = append(skipped, occ)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		created = append(created, s)
	}
	return created, skipped, nil
}

// applyReschedule re-validates the requested move under the coach lock
// and mutates the session in place. The advisory flags stored at request
// time are ignored here; state may have drifted since.
func applyReschedule(ctx context.Context, tx store.SchedulingTx, s domain.PtSession, rr domain.RescheduleRequest) (domain.PtSession, error) {
	date := domain.DateOnly(rr.RequestedDate)
	weekday := domain.ISOWeekday(date)

	available, err := tx.CoachSlotAvailable(ctx, s.CoachID, weekday, rr.RequestedTimeSlot)
	if err != nil {
		return domain.PtSession{}, err
	}
	if !available {
		return domain.PtSession{}, store.ErrSlotUnavailable
	}

	taken, err := tx.HasLiveSession(ctx, s.CoachID, date, rr.RequestedTimeSlot, s.ID)
	if err != nil {
		return domain.PtSession{}, err
	}
	if taken {
		return domain.PtSession{}, store.ErrConflict
	}

	updated, err := tx.UpdateSessionSchedule(ctx, s.ID, date, weekday, rr.RequestedTimeSlot)
	if err != nil {
		return domain.PtSession{}, err
	}
	if err := tx.DeleteReschedule(ctx, s.ID); err != nil {
		return domain.PtSession{}, err
	}
	return updated, nil
}
