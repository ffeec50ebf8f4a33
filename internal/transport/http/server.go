// Package http exposes the scheduling engine over REST. Handlers stay
// thin: decode, call the service, map the error taxonomy onto statuses.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"ptcoach/backend/internal/domain"
	"ptcoach/backend/internal/service/scheduling"
	"ptcoach/backend/internal/store"
)

type schedulingService interface {
	TimeSlots(ctx context.Context) ([]domain.TimeSlot, error)
	WeeklyAvailability(ctx context.Context, coachID string) ([]domain.WeeklyAvailability, error)
	SaveWeeklyAvailability(ctx context.Context, coachID string, cells []scheduling.AvailabilityCell) error
	PreviewMatches(ctx context.Context, customerID string, desired []domain.SlotKey, endDate time.Time) (scheduling.MatchPreview, error)
	CreateBookingRequest(ctx context.Context, in scheduling.CreateBookingRequestInput) (domain.BookingRequest, error)
	DecideBookingRequest(ctx context.Context, in scheduling.DecideBookingRequestInput) (store.AcceptResult, error)
	DeleteBookingRequest(ctx context.Context, customerID string, requestID uuid.UUID) error
	ListSchedule(ctx context.Context, actorID string, role domain.ActorRole) (scheduling.Schedule, error)
	RequestReschedule(ctx context.Context, in scheduling.RequestRescheduleInput) (domain.RescheduleRequest, error)
	DecideReschedule(ctx context.Context, in scheduling.DecideRescheduleInput) (scheduling.RescheduleDecision, error)
	CancelSession(ctx context.Context, actorID string, sessionID uuid.UUID, reason string) (domain.PtSession, error)
	DeleteCancelledSession(ctx context.Context, actorID string, sessionID uuid.UUID) error
	CompleteSession(ctx context.Context, coachID string, sessionID uuid.UUID) (domain.PtSession, error)
	AddSessionNote(ctx context.Context, coachID string, sessionID uuid.UUID, content string) (domain.SessionNote, error)
	UpdateSessionNote(ctx context.Context, coachID string, noteID uuid.UUID, content string) (domain.SessionNote, error)
	SubmitFeedback(ctx context.Context, in scheduling.SubmitFeedbackInput) (domain.Feedback, error)
	CoachFeedback(ctx context.Context, coachID string) ([]domain.Feedback, error)
}

type Server struct {
	svc    schedulingService
	log    *slog.Logger
	pinger func(ctx context.Context) error
}

func NewServer(svc schedulingService, log *slog.Logger, pinger func(ctx context.Context) error) *Server {
	if pinger == nil {
		pinger = func(context.Context) error { return nil }
	}
	return &Server{svc: svc, log: log, pinger: pinger}
}

// Router builds the full route table. Everything under /api/v1 requires
// a bearer token; /healthz is open for probes.
func (s *Server) Router(jwtSecret string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(Authenticate(jwtSecret, s.log))

	api.HandleFunc("/time-slots", s.handleListTimeSlots).Methods(http.MethodGet)

	api.HandleFunc("/coaches/{coachID}/availability", s.handleGetAvailability).Methods(http.MethodGet)
	api.HandleFunc("/coaches/{coachID}/availability", s.handlePutAvailability).Methods(http.MethodPut)
	api.HandleFunc("/coaches/{coachID}/feedback", s.handleCoachFeedback).Methods(http.MethodGet)

	api.HandleFunc("/matches/preview", s.handlePreviewMatches).Methods(http.MethodPost)

	api.HandleFunc("/booking-requests", s.handleCreateBookingRequest).Methods(http.MethodPost)
	api.HandleFunc("/booking-requests/{requestID}/decision", s.handleDecideBookingRequest).Methods(http.MethodPost)
	api.HandleFunc("/booking-requests/{requestID}", s.handleDeleteBookingRequest).Methods(http.MethodDelete)

	api.HandleFunc("/schedule", s.handleListSchedule).Methods(http.MethodGet)

	api.HandleFunc("/sessions/{sessionID}/reschedule", s.handleRequestReschedule).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionID}/reschedule/decision", s.handleDecideReschedule).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionID}/cancel", s.handleCancelSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionID}/complete", s.handleCompleteSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionID}", s.handleDeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{sessionID}/notes", s.handleAddSessionNote).Methods(http.MethodPost)
	api.HandleFunc("/notes/{noteID}", s.handleUpdateSessionNote).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{sessionID}/feedback", s.handleSubmitFeedback).Methods(http.MethodPost)

	return handlers.RecoveryHandler(handlers.RecoveryLogger(&recoveryLogger{log: s.log}))(r)
}

type recoveryLogger struct {
	log *slog.Logger
}

func (l *recoveryLogger) Println(args ...any) {
	l.log.Error("panic recovered", slog.Any("detail", args))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.pinger(r.Context()); err != nil {
		s.log.Error("health check failed", slog.Any("err", err))
		writeJSONError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
