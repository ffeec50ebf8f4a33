package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ptcoach/backend/internal/domain"
	"ptcoach/backend/internal/store"
)

// MembershipChecker is the external entitlement gate: may this customer
// book a coach at all. Consulted before match preview and request
// creation.
type MembershipChecker interface {
	CanBook(ctx context.Context, customerID string) (bool, error)
}

type Service struct {
	repo           store.SchedulingRepository
	membership     MembershipChecker
	requireElapsed bool
	now            func() time.Time
}

// Options carry the engine's policy toggles.
type Options struct {
	// RequireElapsedCompletion makes completeSession reject sessions
	// whose date is still in the future.
	RequireElapsedCompletion bool
	// Now overrides the clock, for tests.
	Now func() time.Time
}

func NewService(repo store.SchedulingRepository, membership MembershipChecker, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:           repo,
		membership:     membership,
		requireElapsed: opts.RequireElapsedCompletion,
		now:            now,
	}
}

func (s *Service) TimeSlots(ctx context.Context) ([]domain.TimeSlot, error) {
	return s.repo.ListTimeSlots(ctx)
}

func (s *Service) WeeklyAvailability(ctx context.Context, coachID string) ([]domain.WeeklyAvailability, error) {
	if coachID == "" {
		return nil, validationError("coach_id is required")
	}
	return s.repo.WeeklyAvailability(ctx, coachID)
}

// AvailabilityCell is one weekday/slot cell of a submitted grid.
type AvailabilityCell struct {
	DayOfWeek   int16
	TimeSlotID  uuid.UUID
	IsAvailable bool
}

// SaveWeeklyAvailability fully replaces the coach's weekly grid with the
// submitted cells. Callers submit the whole grid; omitted cells are
// simply gone after the save.
func (s *Service) SaveWeeklyAvailability(ctx context.Context, coachID string, cells []AvailabilityCell) error {
	if coachID == "" {
		return validationError("coach_id is required")
	}

	seen := make(map[domain.SlotKey]struct{}, len(cells))
	rows := make([]domain.WeeklyAvailability, 0, len(cells))
	for _, c := range cells {
		if c.DayOfWeek < 1 || c.DayOfWeek > 7 {
			return validationError("day_of_week must be between 1 and 7")
		}
		if c.TimeSlotID == uuid.Nil {
			return validationError("time_slot_id is required")
		}
		key := domain.SlotKey{DayOfWeek: c.DayOfWeek, TimeSlotID: c.TimeSlotID}
		if _, ok := seen[key]; ok {
			return validationError("duplicate grid cell")
		}
		seen[key] = struct{}{}
		rows = append(rows, domain.WeeklyAvailability{
			CoachID:     coachID,
			DayOfWeek:   c.DayOfWeek,
			TimeSlotID:  c.TimeSlotID,
			IsAvailable: c.IsAvailable,
		})
	}

	return s.repo.ReplaceWeeklyAvailability(ctx, coachID, rows)
}

// MatchPreview is the read-only coach ranking for a desired weekly
// pattern. Nothing is reserved; staleness is resolved at accept time.
type MatchPreview struct {
	FullMatches    []domain.CoachMatch
	PartialMatches []domain.CoachMatch
}

func (s *Service) PreviewMatches(ctx context.Context, customerID string, desired []domain.SlotKey, endDate time.Time) (MatchPreview, error) {
	if customerID == "" {
		return MatchPreview{}, validationError("customer_id is required")
	}
	if endDate.IsZero() {
		return MatchPreview{}, validationError("end_date is required")
	}

	normalized, err := domain.NormalizeSlotKeys(desired)
	if err != nil {
		return MatchPreview{}, validationError(err.Error())
	}

	if err := s.checkMembership(ctx, customerID); err != nil {
		return MatchPreview{}, err
	}
	if err := s.checkNoOpenBooking(ctx, customerID); err != nil {
		return MatchPreview{}, err
	}

	pool, err := s.repo.CoachPoolAvailability(ctx)
	if err != nil {
		return MatchPreview{}, err
	}

	full, partial := domain.MatchCoaches(normalized, pool)
	return MatchPreview{FullMatches: full, PartialMatches: partial}, nil
}

func (s *Service) checkMembership(ctx context.Context, customerID string) error {
	allowed, err := s.membership.CanBook(ctx, customerID)
	if err != nil {
		return err
	}
	if !allowed {
		return policyError("membership plan does not include coach booking")
	}
	return nil
}

func (s *Service) checkNoOpenBooking(ctx context.Context, customerID string) error {
	pending, active, err := s.repo.HasOpenBooking(ctx, customerID)
	if err != nil {
		return err
	}
	if pending {
		return store.ErrDuplicateRequest
	}
	if active {
		return store.ErrActiveSchedule
	}
	return nil
}
