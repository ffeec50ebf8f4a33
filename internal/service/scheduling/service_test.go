package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"ptcoach/backend/internal/domain"
	"ptcoach/backend/internal/store"
)

type fakeRepo struct {
	listTimeSlotsFn       func(ctx context.Context) ([]domain.TimeSlot, error)
	weeklyAvailabilityFn  func(ctx context.Context, coachID string) ([]domain.WeeklyAvailability, error)
	replaceAvailabilityFn func(ctx context.Context, coachID string, rows []domain.WeeklyAvailability) error
	coachPoolFn           func(ctx context.Context) ([]domain.CoachWeeklySlots, error)
	coachSlotAvailableFn  func(ctx context.Context, coachID string, dayOfWeek int16, timeSlotID uuid.UUID) (bool, error)
	createBookingFn       func(ctx context.Context, req domain.BookingRequest, slots []domain.SlotKey) (domain.BookingRequest, error)
	getBookingFn          func(ctx context.Context, requestID uuid.UUID) (domain.BookingRequest, error)
	bookingSlotsFn        func(ctx context.Context, requestID uuid.UUID) ([]domain.BookingRequestSlot, error)
	listBookingsFn        func(ctx context.Context, actorID string, role domain.ActorRole, statuses []domain.BookingRequestStatus) ([]domain.BookingRequest, error)
	hasOpenBookingFn      func(ctx context.Context, customerID string) (bool, bool, error)
	acceptBookingFn       func(ctx context.Context, requestID uuid.UUID) (store.AcceptResult, error)
	denyBookingFn         func(ctx context.Context, requestID uuid.UUID, reason string) (domain.BookingRequest, error)
	deleteBookingFn       func(ctx context.Context, requestID uuid.UUID) error
	getSessionFn          func(ctx context.Context, sessionID uuid.UUID) (domain.PtSession, error)
	listSessionsFn        func(ctx context.Context, actorID string, role domain.ActorRole) ([]domain.PtSession, error)
	sessionConflictFn     func(ctx context.Context, coachID string, date time.Time, timeSlotID uuid.UUID) (bool, error)
	cancelSessionFn       func(ctx context.Context, sessionID uuid.UUID, reason string) (domain.PtSession, error)
	completeSessionFn     func(ctx context.Context, sessionID uuid.UUID) (domain.PtSession, error)
	deleteSessionFn       func(ctx context.Context, sessionID uuid.UUID) error
	createRescheduleFn    func(ctx context.Context, rr domain.RescheduleRequest) (domain.RescheduleRequest, error)
	openRescheduleFn      func(ctx context.Context, sessionID uuid.UUID) (domain.RescheduleRequest, error)
	approveRescheduleFn   func(ctx context.Context, sessionID uuid.UUID) (domain.PtSession, error)
	denyRescheduleFn      func(ctx context.Context, sessionID uuid.UUID) error
	createNoteFn          func(ctx context.Context, note domain.SessionNote) (domain.SessionNote, error)
	getNoteFn             func(ctx context.Context, noteID uuid.UUID) (domain.SessionNote, error)
	updateNoteFn          func(ctx context.Context, note domain.SessionNote) (domain.SessionNote, error)
	createFeedbackFn      func(ctx context.Context, fb domain.Feedback) (domain.Feedback, error)
	listCoachFeedbackFn   func(ctx context.Context, coachID string) ([]domain.Feedback, error)
}

func (f *fakeRepo) ListTimeSlots(ctx context.Context) ([]domain.TimeSlot, error) {
	if f.listTimeSlotsFn == nil {
		panic("ListTimeSlots not configured")
	}
	return f.listTimeSlotsFn(ctx)
}

func (f *fakeRepo) WeeklyAvailability(ctx context.Context, coachID string) ([]domain.WeeklyAvailability, error) {
	if f.weeklyAvailabilityFn == nil {
		panic("WeeklyAvailability not configured")
	}
	return f.weeklyAvailabilityFn(ctx, coachID)
}

func (f *fakeRepo) ReplaceWeeklyAvailability(ctx context.Context, coachID string, rows []domain.WeeklyAvailability) error {
	if f.replaceAvailabilityFn == nil {
		panic("ReplaceWeeklyAvailability not configured")
	}
	return f.replaceAvailabilityFn(ctx, coachID, rows)
}

func (f *fakeRepo) CoachPoolAvailability(ctx context.Context) ([]domain.CoachWeeklySlots, error) {
	if f.coachPoolFn == nil {
		panic("CoachPoolAvailability not configured")
	}
	return f.coachPoolFn(ctx)
}

func (f *fakeRepo) CoachSlotAvailable(ctx context.Context, coachID string, dayOfWeek int16, timeSlotID uuid.UUID) (bool, error) {
	if f.coachSlotAvailableFn == nil {
		panic("CoachSlotAvailable not configured")
	}
	return f.coachSlotAvailableFn(ctx, coachID, dayOfWeek, timeSlotID)
}

func (f *fakeRepo) CreateBookingRequest(ctx context.Context, req domain.BookingRequest, slots []domain.SlotKey) (domain.BookingRequest, error) {
	if f.createBookingFn == nil {
		panic("CreateBookingRequest not configured")
	}
	return f.createBookingFn(ctx, req, slots)
}

func (f *fakeRepo) GetBookingRequest(ctx context.Context, requestID uuid.UUID) (domain.BookingRequest, error) {
	if f.getBookingFn == nil {
		panic("GetBookingRequest not configured")
	}
	return f.getBookingFn(ctx, requestID)
}

func (f *fakeRepo) BookingRequestSlots(ctx context.Context, requestID uuid.UUID) ([]domain.BookingRequestSlot, error) {
	if f.bookingSlotsFn == nil {
		panic("BookingRequestSlots not configured")
	}
	return f.bookingSlotsFn(ctx, requestID)
}

func (f *fakeRepo) ListBookingRequests(ctx context.Context, actorID string, role domain.ActorRole, statuses []domain.BookingRequestStatus) ([]domain.BookingRequest, error) {
	if f.listBookingsFn == nil {
		panic("ListBookingRequests not configured")
	}
	return f.listBookingsFn(ctx, actorID, role, statuses)
}

func (f *fakeRepo) HasOpenBooking(ctx context.Context, customerID string) (bool, bool, error) {
	if f.hasOpenBookingFn == nil {
		panic("HasOpenBooking not configured")
	}
	return f.hasOpenBookingFn(ctx, customerID)
}

func (f *fakeRepo) AcceptBookingRequest(ctx context.Context, requestID uuid.UUID) (store.AcceptResult, error) {
	if f.acceptBookingFn == nil {
		panic("AcceptBookingRequest not configured")
	}
	return f.acceptBookingFn(ctx, requestID)
}

func (f *fakeRepo) DenyBookingRequest(ctx context.Context, requestID uuid.UUID, reason string) (domain.BookingRequest, error) {
	if f.denyBookingFn == nil {
		panic("DenyBookingRequest not configured")
	}
	return f.denyBookingFn(ctx, requestID, reason)
}

func (f *fakeRepo) DeleteBookingRequest(ctx context.Context, requestID uuid.UUID) error {
	if f.deleteBookingFn == nil {
		panic("DeleteBookingRequest not configured")
	}
	return f.deleteBookingFn(ctx, requestID)
}

func (f *fakeRepo) GetSession(ctx context.Context, sessionID uuid.UUID) (domain.PtSession, error) {
	if f.getSessionFn == nil {
		panic("GetSession not configured")
	}
	return f.getSessionFn(ctx, sessionID)
}

func (f *fakeRepo) ListSessions(ctx context.Context, actorID string, role domain.ActorRole) ([]domain.PtSession, error) {
	if f.listSessionsFn == nil {
		panic("ListSessions not configured")
	}
	return f.listSessionsFn(ctx, actorID, role)
}

func (f *fakeRepo) SessionConflict(ctx context.Context, coachID string, date time.Time, timeSlotID uuid.UUID) (bool, error) {
	if f.sessionConflictFn == nil {
		panic("SessionConflict not configured")
	}
	return f.sessionConflictFn(ctx, coachID, date, timeSlotID)
}

func (f *fakeRepo) CancelSession(ctx context.Context, sessionID uuid.UUID, reason string) (domain.PtSession, error) {
	if f.cancelSessionFn == nil {
		panic("CancelSession not configured")
	}
	return f.cancelSessionFn(ctx, sessionID, reason)
}

func (f *fakeRepo) CompleteSession(ctx context.Context, sessionID uuid.UUID) (domain.PtSession, error) {
	if f.completeSessionFn == nil {
		panic("CompleteSession not configured")
	}
	return f.completeSessionFn(ctx, sessionID)
}

func (f *fakeRepo) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	if f.deleteSessionFn == nil {
		panic("DeleteSession not configured")
	}
	return f.deleteSessionFn(ctx, sessionID)
}

func (f *fakeRepo) CreateRescheduleRequest(ctx context.Context, rr domain.RescheduleRequest) (domain.RescheduleRequest, error) {
	if f.createRescheduleFn == nil {
		panic("CreateRescheduleRequest not configured")
	}
	return f.createRescheduleFn(ctx, rr)
}

func (f *fakeRepo) OpenReschedule(ctx context.Context, sessionID uuid.UUID) (domain.RescheduleRequest, error) {
	if f.openRescheduleFn == nil {
		panic("OpenReschedule not configured")
	}
	return f.openRescheduleFn(ctx, sessionID)
}

func (f *fakeRepo) ApproveReschedule(ctx context.Context, sessionID uuid.UUID) (domain.PtSession, error) {
	if f.approveRescheduleFn == nil {
		panic("ApproveReschedule not configured")
	}
	return f.approveRescheduleFn(ctx, sessionID)
}

func (f *fakeRepo) DenyReschedule(ctx context.Context, sessionID uuid.UUID) error {
	if f.denyRescheduleFn == nil {
		panic("DenyReschedule not configured")
	}
	return f.denyRescheduleFn(ctx, sessionID)
}

func (f *fakeRepo) CreateSessionNote(ctx context.Context, note domain.SessionNote) (domain.SessionNote, error) {
	if f.createNoteFn == nil {
		panic("CreateSessionNote not configured")
	}
	return f.createNoteFn(ctx, note)
}

func (f *fakeRepo) GetSessionNote(ctx context.Context, noteID uuid.UUID) (domain.SessionNote, error) {
	if f.getNoteFn == nil {
		panic("GetSessionNote not configured")
	}
	return f.getNoteFn(ctx, noteID)
}

func (f *fakeRepo) UpdateSessionNote(ctx context.Context, note domain.SessionNote) (domain.SessionNote, error) {
	if f.updateNoteFn == nil {
		panic("UpdateSessionNote not configured")
	}
	return f.updateNoteFn(ctx, note)
}

func (f *fakeRepo) CreateFeedback(ctx context.Context, fb domain.Feedback) (domain.Feedback, error) {
	if f.createFeedbackFn == nil {
		panic("CreateFeedback not configured")
	}
	return f.createFeedbackFn(ctx, fb)
}

func (f *fakeRepo) ListCoachFeedback(ctx context.Context, coachID string) ([]domain.Feedback, error) {
	if f.listCoachFeedbackFn == nil {
		panic("ListCoachFeedback not configured")
	}
	return f.listCoachFeedbackFn(ctx, coachID)
}

type fakeMembership struct {
	canBook bool
	err     error
}

func (f fakeMembership) CanBook(ctx context.Context, customerID string) (bool, error) {
	return f.canBook, f.err
}

var testSlotID = uuid.MustParse("00000000-0000-0000-0000-00000000a001")

func newTestService(repo *fakeRepo, opts Options) *Service {
	return NewService(repo, fakeMembership{canBook: true}, opts)
}

func TestSaveWeeklyAvailability_RejectsDuplicateCell(t *testing.T) {
	svc := newTestService(&fakeRepo{}, Options{})

	err := svc.SaveWeeklyAvailability(context.Background(), "coach-1", []AvailabilityCell{
		{DayOfWeek: 1, TimeSlotID: testSlotID, IsAvailable: true},
		{DayOfWeek: 1, TimeSlotID: testSlotID, IsAvailable: false},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if vErr.Error() != "duplicate grid cell" {
		t.Fatalf("error = %q, want %q", vErr.Error(), "duplicate grid cell")
	}
}

func TestSaveWeeklyAvailability_FullReplace(t *testing.T) {
	var gotCoach string
	var gotRows []domain.WeeklyAvailability
	svc := newTestService(&fakeRepo{
		replaceAvailabilityFn: func(ctx context.Context, coachID string, rows []domain.WeeklyAvailability) error {
			gotCoach = coachID
			gotRows = rows
			return nil
		},
	}, Options{})

	err := svc.SaveWeeklyAvailability(context.Background(), "coach-1", []AvailabilityCell{
		{DayOfWeek: 2, TimeSlotID: testSlotID, IsAvailable: true},
	})
	if err != nil {
		t.Fatalf("SaveWeeklyAvailability error: %v", err)
	}
	if gotCoach != "coach-1" {
		t.Fatalf("coachID = %q, want coach-1", gotCoach)
	}
	if len(gotRows) != 1 || gotRows[0].CoachID != "coach-1" || !gotRows[0].IsAvailable {
		t.Fatalf("rows = %+v, want one available cell owned by coach-1", gotRows)
	}
}

func TestPreviewMatches_BlockedByMembership(t *testing.T) {
	svc := NewService(&fakeRepo{}, fakeMembership{canBook: false}, Options{})

	_, err := svc.PreviewMatches(context.Background(), "cust-1",
		[]domain.SlotKey{{DayOfWeek: 1, TimeSlotID: testSlotID}},
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatalf("expected error")
	}
	var pErr *PolicyError
	if !errors.As(err, &pErr) {
		t.Fatalf("error type = %T, want *PolicyError", err)
	}
}

func TestPreviewMatches_BlockedByOpenBooking(t *testing.T) {
	tests := []struct {
		name    string
		pending bool
		active  bool
		wantErr error
	}{
		{name: "pending request", pending: true, wantErr: store.ErrDuplicateRequest},
		{name: "active schedule", active: true, wantErr: store.ErrActiveSchedule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeRepo{
				hasOpenBookingFn: func(ctx context.Context, customerID string) (bool, bool, error) {
					return tt.pending, tt.active, nil
				},
			}, Options{})

			_, err := svc.PreviewMatches(context.Background(), "cust-1",
				[]domain.SlotKey{{DayOfWeek: 1, TimeSlotID: testSlotID}},
				time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPreviewMatches_RanksPool(t *testing.T) {
	desired := []domain.SlotKey{
		{DayOfWeek: 1, TimeSlotID: testSlotID},
		{DayOfWeek: 3, TimeSlotID: testSlotID},
	}
	svc := newTestService(&fakeRepo{
		hasOpenBookingFn: func(ctx context.Context, customerID string) (bool, bool, error) {
			return false, false, nil
		},
		coachPoolFn: func(ctx context.Context) ([]domain.CoachWeeklySlots, error) {
			return []domain.CoachWeeklySlots{
				{CoachID: "coach-partial", Slots: desired[:1]},
				{CoachID: "coach-full", Slots: desired},
			}, nil
		},
	}, Options{})

	preview, err := svc.PreviewMatches(context.Background(), "cust-1", desired,
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("PreviewMatches error: %v", err)
	}
	if len(preview.FullMatches) != 1 || preview.FullMatches[0].CoachID != "coach-full" {
		t.Fatalf("full = %+v, want coach-full", preview.FullMatches)
	}
	if len(preview.PartialMatches) != 1 || preview.PartialMatches[0].CoachID != "coach-partial" {
		t.Fatalf("partial = %+v, want coach-partial", preview.PartialMatches)
	}
}

func TestCreateBookingRequest_Validation(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	slots := []domain.SlotKey{{DayOfWeek: 1, TimeSlotID: testSlotID}}

	tests := []struct {
		name    string
		in      CreateBookingRequestInput
		wantErr string
	}{
		{
			name:    "missing customer",
			in:      CreateBookingRequestInput{CoachID: "coach-1", StartDate: start, EndDate: end, Slots: slots},
			wantErr: "customer_id is required",
		},
		{
			name:    "customer equals coach",
			in:      CreateBookingRequestInput{CustomerID: "u1", CoachID: "u1", StartDate: start, EndDate: end, Slots: slots},
			wantErr: "customer and coach must differ",
		},
		{
			name:    "end before start",
			in:      CreateBookingRequestInput{CustomerID: "cust-1", CoachID: "coach-1", StartDate: end, EndDate: start, Slots: slots},
			wantErr: "end_date must not be before start_date",
		},
		{
			name:    "empty pattern",
			in:      CreateBookingRequestInput{CustomerID: "cust-1", CoachID: "coach-1", StartDate: start, EndDate: end},
			wantErr: "at least one pattern slot is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeRepo{}, Options{})
			_, err := svc.CreateBookingRequest(context.Background(), tt.in)
			if err == nil {
				t.Fatalf("expected error")
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if vErr.Error() != tt.wantErr {
				t.Fatalf("error = %q, want %q", vErr.Error(), tt.wantErr)
			}
		})
	}
}

func TestCreateBookingRequest_SubmitsPendingWithNormalizedDates(t *testing.T) {
	var got domain.BookingRequest
	svc := newTestService(&fakeRepo{
		createBookingFn: func(ctx context.Context, req domain.BookingRequest, slots []domain.SlotKey) (domain.BookingRequest, error) {
			got = req
			return req, nil
		},
	}, Options{})

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}

	_, err = svc.CreateBookingRequest(context.Background(), CreateBookingRequestInput{
		CustomerID: "cust-1",
		CoachID:    "coach-1",
		StartDate:  time.Date(2026, 3, 1, 15, 30, 0, 0, loc),
		EndDate:    time.Date(2026, 4, 1, 8, 0, 0, 0, loc),
		Slots:      []domain.SlotKey{{DayOfWeek: 1, TimeSlotID: testSlotID}},
	})
	if err != nil {
		t.Fatalf("CreateBookingRequest error: %v", err)
	}
	if got.Status != domain.BookingRequestStatusPending {
		t.Fatalf("status = %q, want PENDING", got.Status)
	}
	if !got.StartDate.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start_date = %v, want UTC midnight 2026-03-01", got.StartDate)
	}
}

func TestDecideBookingRequest_DenyRequiresReason(t *testing.T) {
	requestID := uuid.MustParse("00000000-0000-0000-0000-000000000010")
	svc := newTestService(&fakeRepo{
		getBookingFn: func(ctx context.Context, id uuid.UUID) (domain.BookingRequest, error) {
			return domain.BookingRequest{ID: id, CoachID: "coach-1", Status: domain.BookingRequestStatusPending}, nil
		},
	}, Options{})

	_, err := svc.DecideBookingRequest(context.Background(), DecideBookingRequestInput{
		CoachID:   "coach-1",
		RequestID: requestID,
		Decision:  DecisionDeny,
		Reason:    "   ",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if vErr.Error() != "deny reason is required" {
		t.Fatalf("error = %q, want %q", vErr.Error(), "deny reason is required")
	}
}

func TestDecideBookingRequest_WrongCoach(t *testing.T) {
	requestID := uuid.MustParse("00000000-0000-0000-0000-000000000010")
	svc := newTestService(&fakeRepo{
		getBookingFn: func(ctx context.Context, id uuid.UUID) (domain.BookingRequest, error) {
			return domain.BookingRequest{ID: id, CoachID: "coach-2", Status: domain.BookingRequestStatusPending}, nil
		},
	}, Options{})

	_, err := svc.DecideBookingRequest(context.Background(), DecideBookingRequestInput{
		CoachID:   "coach-1",
		RequestID: requestID,
		Decision:  DecisionAccept,
	})
	var aErr *AuthorizationError
	if !errors.As(err, &aErr) {
		t.Fatalf("error type = %T, want *AuthorizationError", err)
	}
}

func TestDecideBookingRequest_AlreadyDecided(t *testing.T) {
	requestID := uuid.MustParse("00000000-0000-0000-0000-000000000010")
	svc := newTestService(&fakeRepo{
		getBookingFn: func(ctx context.Context, id uuid.UUID) (domain.BookingRequest, error) {
			return domain.BookingRequest{ID: id, CoachID: "coach-1", Status: domain.BookingRequestStatusAccepted}, nil
		},
	}, Options{})

	_, err := svc.DecideBookingRequest(context.Background(), DecideBookingRequestInput{
		CoachID:   "coach-1",
		RequestID: requestID,
		Decision:  DecisionAccept,
	})
	var pErr *PolicyError
	if !errors.As(err, &pErr) {
		t.Fatalf("error type = %T, want *PolicyError", err)
	}
	if pErr.Error() != "booking request is already accepted" {
		t.Fatalf("error = %q, want %q", pErr.Error(), "booking request is already accepted")
	}
}

func TestDecideBookingRequest_AcceptReturnsSkipped(t *testing.T) {
	requestID := uuid.MustParse("00000000-0000-0000-0000-000000000010")
	skipped := domain.SessionOccurrence{
		Date:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		DayOfWeek:  1,
		TimeSlotID: testSlotID,
	}
	svc := newTestService(&fakeRepo{
		getBookingFn: func(ctx context.Context, id uuid.UUID) (domain.BookingRequest, error) {
			return domain.BookingRequest{ID: id, CoachID: "coach-1", Status: domain.BookingRequestStatusPending}, nil
		},
		acceptBookingFn: func(ctx context.Context, id uuid.UUID) (store.AcceptResult, error) {
			return store.AcceptResult{
				Request: domain.BookingRequest{ID: id, Status: domain.BookingRequestStatusAccepted},
				Skipped: []domain.SessionOccurrence{skipped},
			}, nil
		},
	}, Options{})

	res, err := svc.DecideBookingRequest(context.Background(), DecideBookingRequestInput{
		CoachID:   "coach-1",
		RequestID: requestID,
		Decision:  DecisionAccept,
	})
	if err != nil {
		t.Fatalf("DecideBookingRequest error: %v", err)
	}
	if res.Request.Status != domain.BookingRequestStatusAccepted {
		t.Fatalf("status = %q, want ACCEPTED", res.Request.Status)
	}
	if len(res.Skipped) != 1 || !res.Skipped[0].Date.Equal(skipped.Date) {
		t.Fatalf("skipped = %+v, want the conflicting occurrence", res.Skipped)
	}
}

func TestDeleteBookingRequest_IdempotentWhenAlreadyDeleted(t *testing.T) {
	requestID := uuid.MustParse("00000000-0000-0000-0000-000000000010")
	svc := newTestService(&fakeRepo{
		getBookingFn: func(ctx context.Context, id uuid.UUID) (domain.BookingRequest, error) {
			return domain.BookingRequest{ID: id, CustomerID: "cust-1", Status: domain.BookingRequestStatusDeleted}, nil
		},
	}, Options{})

	if err := svc.DeleteBookingRequest(context.Background(), "cust-1", requestID); err != nil {
		t.Fatalf("DeleteBookingRequest error: %v", err)
	}
}

func TestDeleteBookingRequest_OnlyPending(t *testing.T) {
	requestID := uuid.MustParse("00000000-0000-0000-0000-000000000010")
	svc := newTestService(&fakeRepo{
		getBookingFn: func(ctx context.Context, id uuid.UUID) (domain.BookingRequest, error) {
			return domain.BookingRequest{ID: id, CustomerID: "cust-1", Status: domain.BookingRequestStatusAccepted}, nil
		},
	}, Options{})

	err := svc.DeleteBookingRequest(context.Background(), "cust-1", requestID)
	var pErr *PolicyError
	if !errors.As(err, &pErr) {
		t.Fatalf("error type = %T, want *PolicyError", err)
	}
}
