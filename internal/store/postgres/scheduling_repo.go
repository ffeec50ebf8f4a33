package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"ptcoach/backend/internal/domain"
	"ptcoach/backend/internal/store"
)

type SchedulingRepo struct {
	db *bun.DB
}

func NewSchedulingRepo(db *bun.DB) *SchedulingRepo {
	return &SchedulingRepo{db: db}
}

type schedulingTx struct {
	tx bun.Tx
}

// Advisory locks serialize the conflict-sensitive flows. Coach locks
// guard the session calendar (generate, reschedule approve); customer
// locks guard the single-active-booking check at submit. The key prefix
// keeps the two keyspaces from colliding on equal ids.
func lockCoachCalendar(ctx context.Context, tx bun.Tx, coachID string) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", "coach:"+coachID).Exec(ctx)
	return err
}

func lockCustomerBookings(ctx context.Context, tx bun.Tx, customerID string) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", "customer:"+customerID).Exec(ctx)
	return err
}

func (r *SchedulingRepo) ListTimeSlots(ctx context.Context) ([]domain.TimeSlot, error) {
	var rows []domain.TimeSlot
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("slot_index ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SchedulingRepo) WeeklyAvailability(ctx context.Context, coachID string) ([]domain.WeeklyAvailability, error) {
	var rows []domain.WeeklyAvailability
	err := r.db.NewSelect().
		Model(&rows).
		Where("coach_id = ?", coachID).
		OrderExpr("day_of_week ASC, time_slot_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SchedulingRepo) ReplaceWeeklyAvailability(ctx context.Context, coachID string, rows []domain.WeeklyAvailability) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockCoachCalendar(ctx, tx, coachID); err != nil {
			return err
		}
		_, err := tx.NewDelete().
			Model((*domain.WeeklyAvailability)(nil)).
			Where("coach_id = ?", coachID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		_, err = tx.NewInsert().Model(&rows).Exec(ctx)
		return err
	})
}

func (r *SchedulingRepo) CoachPoolAvailability(ctx context.Context) ([]domain.CoachWeeklySlots, error) {
	var rows []domain.WeeklyAvailability
	err := r.db.NewSelect().
		Model(&rows).
		Where("is_available = TRUE").
		OrderExpr("coach_id ASC, day_of_week ASC, time_slot_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CoachWeeklySlots, 0)
	for _, row := range rows {
		key := domain.SlotKey{DayOfWeek: row.DayOfWeek, TimeSlotID: row.TimeSlotID}
		if n := len(out); n > 0 && out[n-1].CoachID == row.CoachID {
			out[n-1].Slots = append(out[n-1].Slots, key)
			continue
		}
		out = append(out, domain.CoachWeeklySlots{CoachID: row.CoachID, Slots: []domain.SlotKey{key}})
	}
	return out, nil
}

func (r *SchedulingRepo) CoachSlotAvailable(ctx context.Context, coachID string, dayOfWeek int16, timeSlotID uuid.UUID) (bool, error) {
	return r.db.NewSelect().
		Model((*domain.WeeklyAvailability)(nil)).
		Where("coach_id = ?", coachID).
		Where("day_of_week = ?", dayOfWeek).
		Where("time_slot_id = ?", timeSlotID).
		Where("is_available = TRUE").
		Exists(ctx)
}

func (r *SchedulingRepo) CreateBookingRequest(ctx context.Context, req domain.BookingRequest, keys []domain.SlotKey) (domain.BookingRequest, error) {
	var out domain.BookingRequest
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockCustomerBookings(ctx, tx, req.CustomerID); err != nil {
			return err
		}
		stx := schedulingTx{tx: tx}
		if err := ensureSingleActiveBooking(ctx, stx, req.CustomerID); err != nil {
			return err
		}
		slots := make([]domain.BookingRequestSlot, 0, len(keys))
		for _, k := range keys {
			slots = append(slots, domain.BookingRequestSlot{
				DayOfWeek:  k.DayOfWeek,
				TimeSlotID: k.TimeSlotID,
			})
		}
		created, err := stx.InsertBookingRequest(ctx, req, slots)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return domain.BookingRequest{}, err
	}
	return out, nil
}

func (r *SchedulingRepo) GetBookingRequest(ctx context.Context, requestID uuid.UUID) (domain.BookingRequest, error) {
	var req domain.BookingRequest
	err := r.db.NewSelect().
		Model(&req).
		Where("id = ?", requestID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BookingRequest{}, store.ErrNotFound
	}
	if err != nil {
		return domain.BookingRequest{}, err
	}
	return req, nil
}

func (r *SchedulingRepo) BookingRequestSlots(ctx context.Context, requestID uuid.UUID) ([]domain.BookingRequestSlot, error) {
	return selectPatternSlots(ctx, r.db, requestID)
}

func (r *SchedulingRepo) ListBookingRequests(ctx context.Context, actorID string, role domain.ActorRole, statuses []domain.BookingRequestStatus) ([]domain.BookingRequest, error) {
	var rows []domain.BookingRequest
	q := r.db.NewSelect().Model(&rows)
	if role == domain.RoleCoach {
		q = q.Where("coach_id = ?", actorID)
	} else {
		q = q.Where("customer_id = ?", actorID)
	}
	if len(statuses) > 0 {
		q = q.Where("status IN (?)", bun.In(statuses))
	}
	err := q.OrderExpr("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SchedulingRepo) HasOpenBooking(ctx context.Context, customerID string) (bool, bool, error) {
	pending, err := r.db.NewSelect().
		Model((*domain.BookingRequest)(nil)).
		Where("customer_id = ?", customerID).
		Where("status = ?", domain.BookingRequestStatusPending).
		Exists(ctx)
	if err != nil {
		return false, false, err
	}
	active, err := r.db.NewSelect().
		Model((*domain.PtSession)(nil)).
		Where("customer_id = ?", customerID).
		Where("status = ?", domain.SessionStatusScheduled).
		Exists(ctx)
	if err != nil {
		return false, false, err
	}
	return pending, active, nil
}

func (r *SchedulingRepo) AcceptBookingRequest(ctx context.Context, requestID uuid.UUID) (store.AcceptResult, error) {
	var out store.AcceptResult
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var req domain.BookingRequest
		err := tx.NewSelect().
			Model(&req).
			Where("id = ?", requestID).
			Limit(1).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}
		if req.Status != domain.BookingRequestStatusPending {
			return store.ErrConflict
		}
		if err := lockCoachCalendar(ctx, tx, req.CoachID); err != nil {
			return err
		}

		req.Status = domain.BookingRequestStatusAccepted
		res, err := tx.NewUpdate().
			Model(&req).
			Column("status", "updated_at").
			Where("id = ? AND status = ?", requestID, domain.BookingRequestStatusPending).
			Exec(ctx)
		if err != nil {
			return err
		}
		if affected, err := res.RowsAffected(); err != nil {
			return err
		} else if affected == 0 {
			return store.ErrConflict
		}

		stx := schedulingTx{tx: tx}
		slots, err := stx.PatternSlots(ctx, requestID)
		if err != nil {
			return err
		}
		created, skipped, err := generateSessions(ctx, stx, req, slots)
		if err != nil {
			return err
		}
		out = store.AcceptResult{Request: req, Created: created, Skipped: skipped}
		return nil
	})
	if err != nil {
		return store.AcceptResult{}, err
	}
	return out, nil
}

func (r *SchedulingRepo) DenyBookingRequest(ctx context.Context, requestID uuid.UUID, reason string) (domain.BookingRequest, error) {
	req, err := r.GetBookingRequest(ctx, requestID)
	if err != nil {
		return domain.BookingRequest{}, err
	}
	if req.Status != domain.BookingRequestStatusPending {
		return domain.BookingRequest{}, store.ErrConflict
	}

	req.Status = domain.BookingRequestStatusDenied
	req.DenyReason = reason
	res, err := r.db.NewUpdate().
		Model(&req).
		Column("status", "deny_reason", "updated_at").
		Where("id = ? AND status = ?", requestID, domain.BookingRequestStatusPending).
		Exec(ctx)
	if err != nil {
		return domain.BookingRequest{}, err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return domain.BookingRequest{}, err
	} else if affected == 0 {
		return domain.BookingRequest{}, store.ErrConflict
	}
	return req, nil
}

func (r *SchedulingRepo) DeleteBookingRequest(ctx context.Context, requestID uuid.UUID) error {
	req := domain.BookingRequest{ID: requestID, Status: domain.BookingRequestStatusDeleted}
	res, err := r.db.NewUpdate().
		Model(&req).
		Column("status", "updated_at").
		Where("id = ? AND status = ?", requestID, domain.BookingRequestStatusPending).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetBookingRequest(ctx, requestID); err != nil {
			return err
		}
		return store.ErrConflict
	}
	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
