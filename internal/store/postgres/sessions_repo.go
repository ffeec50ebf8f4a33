package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"ptcoach/backend/internal/domain"
	"ptcoach/backend/internal/store"
)

func (r *SchedulingRepo) GetSession(ctx context.Context, sessionID uuid.UUID) (domain.PtSession, error) {
	var s domain.PtSession
	err := r.db.NewSelect().
		Model(&s).
		Where("id = ?", sessionID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PtSession{}, store.ErrNotFound
	}
	if err != nil {
		return domain.PtSession{}, err
	}
	return s, nil
}

func (r *SchedulingRepo) ListSessions(ctx context.Context, actorID string, role domain.ActorRole) ([]domain.PtSession, error) {
	var rows []domain.PtSession
	q := r.db.NewSelect().Model(&rows)
	if role == domain.RoleCoach {
		q = q.Where("coach_id = ?", actorID)
	} else {
		q = q.Where("customer_id = ?", actorID)
	}
	err := q.OrderExpr("session_date ASC, time_slot_id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SchedulingRepo) SessionConflict(ctx context.Context, coachID string, date time.Time, timeSlotID uuid.UUID) (bool, error) {
	return r.db.NewSelect().
		Model((*domain.PtSession)(nil)).
		Where("coach_id = ?", coachID).
		Where("session_date = ?", domain.DateOnly(date)).
		Where("time_slot_id = ?", timeSlotID).
		Where("status <> ?", domain.SessionStatusCancelled).
		Exists(ctx)
}

func (r *SchedulingRepo) CancelSession(ctx context.Context, sessionID uuid.UUID, reason string) (domain.PtSession, error) {
	s, err := r.GetSession(ctx, sessionID)
	if err != nil {
		return domain.PtSession{}, err
	}
	if s.Status != domain.SessionStatusScheduled {
		return domain.PtSession{}, store.ErrConflict
	}

	s.Status = domain.SessionStatusCancelled
	s.CancelReason = reason
	res, err := r.db.NewUpdate().
		Model(&s).
		Column("status", "cancel_reason", "updated_at").
		Where("id = ? AND status = ?", sessionID, domain.SessionStatusScheduled).
		Exec(ctx)
	if err != nil {
		return domain.PtSession{}, err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return domain.PtSession{}, err
	} else if affected == 0 {
		return domain.PtSession{}, store.ErrConflict
	}
	return s, nil
}

func (r *SchedulingRepo) CompleteSession(ctx context.Context, sessionID uuid.UUID) (domain.PtSession, error) {
	s, err := r.GetSession(ctx, sessionID)
	if err != nil {
		return domain.PtSession{}, err
	}
	if s.Status != domain.SessionStatusScheduled {
		return domain.PtSession{}, store.ErrConflict
	}

	s.Status = domain.SessionStatusCompleted
	res, err := r.db.NewUpdate().
		Model(&s).
		Column("status", "updated_at").
		Where("id = ? AND status = ?", sessionID, domain.SessionStatusScheduled).
		Exec(ctx)
	if err != nil {
		return domain.PtSession{}, err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return domain.PtSession{}, err
	} else if affected == 0 {
		return domain.PtSession{}, store.ErrConflict
	}
	return s, nil
}

func (r *SchedulingRepo) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.PtSession)(nil)).
		Where("id = ? AND status = ?", sessionID, domain.SessionStatusCancelled).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetSession(ctx, sessionID); err != nil {
			return err
		}
		return store.ErrConflict
	}
	return nil
}

func (r *SchedulingRepo) CreateRescheduleRequest(ctx context.Context, rr domain.RescheduleRequest) (domain.RescheduleRequest, error) {
	m := rr
	_, err := r.db.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.RescheduleRequest{}, store.ErrConflict
		}
		return domain.RescheduleRequest{}, err
	}
	return m, nil
}

func (r *SchedulingRepo) OpenReschedule(ctx context.Context, sessionID uuid.UUID) (domain.RescheduleRequest, error) {
	var rr domain.RescheduleRequest
	err := r.db.NewSelect().
		Model(&rr).
		Where("session_id = ?", sessionID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RescheduleRequest{}, store.ErrNotFound
	}
	if err != nil {
		return domain.RescheduleRequest{}, err
	}
	return rr, nil
}

func (r *SchedulingRepo) ApproveReschedule(ctx context.Context, sessionID uuid.UUID) (domain.PtSession, error) {
	var out domain.PtSession
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var s domain.PtSession
		err := tx.NewSelect().
			Model(&s).
			Where("id = ?", sessionID).
			Limit(1).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}
		if s.Status != domain.SessionStatusScheduled {
			return store.ErrConflict
		}

		var rr domain.RescheduleRequest
		err = tx.NewSelect().
			Model(&rr).
			Where("session_id = ?", sessionID).
			Limit(1).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := lockCoachCalendar(ctx, tx, s.CoachID); err != nil {
			return err
		}
		updated, err := applyReschedule(ctx, schedulingTx{tx: tx}, s, rr)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return domain.PtSession{}, err
	}
	return out, nil
}

func (r *SchedulingRepo) DenyReschedule(ctx context.Context, sessionID uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.RescheduleRequest)(nil)).
		Where("session_id = ?", sessionID).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *SchedulingRepo) CreateSessionNote(ctx context.Context, note domain.SessionNote) (domain.SessionNote, error) {
	m := note
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.SessionNote{}, err
	}
	return m, nil
}

func (r *SchedulingRepo) GetSessionNote(ctx context.Context, noteID uuid.UUID) (domain.SessionNote, error) {
	var n domain.SessionNote
	err := r.db.NewSelect().
		Model(&n).
		Where("id = ?", noteID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SessionNote{}, store.ErrNotFound
	}
	if err != nil {
		return domain.SessionNote{}, err
	}
	return n, nil
}

func (r *SchedulingRepo) UpdateSessionNote(ctx context.Context, note domain.SessionNote) (domain.SessionNote, error) {
	res, err := r.db.NewUpdate().
		Model(&note).
		Column("content", "updated_at").
		Where("id = ?", note.ID).
		Exec(ctx)
	if err != nil {
		return domain.SessionNote{}, err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return domain.SessionNote{}, err
	} else if affected == 0 {
		return domain.SessionNote{}, store.ErrNotFound
	}
	return note, nil
}

func (r *SchedulingRepo) CreateFeedback(ctx context.Context, fb domain.Feedback) (domain.Feedback, error) {
	m := fb
	_, err := r.db.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.Feedback{}, store.ErrConflict
		}
		return domain.Feedback{}, err
	}
	return m, nil
}

// coachFeedbackQuery joins through pt_sessions to scope feedback rows by
// coach. bun aliases the model table to "feedback"; the join and order
// clauses must use that alias, not the table name.
func (r *SchedulingRepo) coachFeedbackQuery(rows *[]domain.Feedback, coachID string) *bun.SelectQuery {
	return r.db.NewSelect().
		Model(rows).
		Join("JOIN pt_sessions AS ps ON ps.id = feedback.session_id").
		Where("ps.coach_id = ?", coachID).
		OrderExpr("feedback.created_at DESC")
}

func (r *SchedulingRepo) ListCoachFeedback(ctx context.Context, coachID string) ([]domain.Feedback, error) {
	var rows []domain.Feedback
	if err := r.coachFeedbackQuery(&rows, coachID).Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}
