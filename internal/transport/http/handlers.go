package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"ptcoach/backend/internal/domain"
	"ptcoach/backend/internal/service/scheduling"
)

func (s *Server) actor(w http.ResponseWriter, r *http.Request) (Actor, bool) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
	}
	return actor, ok
}

func (s *Server) requireRole(w http.ResponseWriter, r *http.Request, role domain.ActorRole) (Actor, bool) {
	actor, ok := s.actor(w, r)
	if !ok {
		return Actor{}, false
	}
	if actor.Role != role {
		writeJSONError(w, http.StatusForbidden, "operation requires the "+string(role)+" role")
		return Actor{}, false
	}
	return actor, true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, name+" must be a valid uuid")
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) handleListTimeSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := s.svc.TimeSlots(r.Context())
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	out := make([]timeSlotJSON, 0, len(slots))
	for _, t := range slots {
		out = append(out, toTimeSlotJSON(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"time_slots": out})
}

func (s *Server) handleGetAvailability(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.actor(w, r); !ok {
		return
	}
	coachID := mux.Vars(r)["coachID"]

	rows, err := s.svc.WeeklyAvailability(r.Context(), coachID)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	cells := make([]availabilityCellJSON, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, availabilityCellJSON{
			DayOfWeek:   row.DayOfWeek,
			TimeSlotID:  row.TimeSlotID,
			IsAvailable: row.IsAvailable,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"coach_id": coachID, "cells": cells})
}

func (s *Server) handlePutAvailability(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireRole(w, r, domain.RoleCoach)
	if !ok {
		return
	}
	if mux.Vars(r)["coachID"] != actor.ID {
		writeJSONError(w, http.StatusForbidden, "coaches may only edit their own availability")
		return
	}

	var body struct {
		Cells []availabilityCellJSON `json:"cells"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	cells := make([]scheduling.AvailabilityCell, 0, len(body.Cells))
	for _, c := range body.Cells {
		cells = append(cells, scheduling.AvailabilityCell{
			DayOfWeek:   c.DayOfWeek,
			TimeSlotID:  c.TimeSlotID,
			IsAvailable: c.IsAvailable,
		})
	}

	if err := s.svc.SaveWeeklyAvailability(r.Context(), actor.ID, cells); err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleCoachFeedback(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.actor(w, r); !ok {
		return
	}

	fbs, err := s.svc.CoachFeedback(r.Context(), mux.Vars(r)["coachID"])
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	out := make([]feedbackJSON, 0, len(fbs))
	for _, f := range fbs {
		out = append(out, toFeedbackJSON(f))
	}
	writeJSON(w, http.StatusOK, map[string]any{"feedback": out})
}

func (s *Server) handlePreviewMatches(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireRole(w, r, domain.RoleCustomer)
	if !ok {
		return
	}

	var body struct {
		Slots   []slotKeyJSON `json:"slots"`
		EndDate string        `json:"end_date"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	endDate, err := parseDate(body.EndDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "end_date must be formatted as YYYY-MM-DD")
		return
	}

	desired := make([]domain.SlotKey, 0, len(body.Slots))
	for _, k := range body.Slots {
		desired = append(desired, k.toDomain())
	}

	preview, err := s.svc.PreviewMatches(r.Context(), actor.ID, desired, endDate)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"full_matches":    toCoachMatchesJSON(preview.FullMatches),
		"partial_matches": toCoachMatchesJSON(preview.PartialMatches),
	})
}

func (s *Server) handleCreateBookingRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireRole(w, r, domain.RoleCustomer)
	if !ok {
		return
	}

	var body struct {
		CoachID   string        `json:"coach_id"`
		StartDate string        `json:"start_date"`
		EndDate   string        `json:"end_date"`
		Slots     []slotKeyJSON `json:"slots"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	start, err := parseDate(body.StartDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "start_date must be formatted as YYYY-MM-DD")
		return
	}
	end, err := parseDate(body.EndDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "end_date must be formatted as YYYY-MM-DD")
		return
	}

	slots := make([]domain.SlotKey, 0, len(body.Slots))
	for _, k := range body.Slots {
		slots = append(slots, k.toDomain())
	}

	req, err := s.svc.CreateBookingRequest(r.Context(), scheduling.CreateBookingRequestInput{
		CustomerID: actor.ID,
		CoachID:    body.CoachID,
		StartDate:  start,
		EndDate:    end,
		Slots:      slots,
	})
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingRequestJSON(req))
}

func (s *Server) handleDecideBookingRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireRole(w, r, domain.RoleCoach)
	if !ok {
		return
	}
	requestID, ok := pathUUID(w, r, "requestID")
	if !ok {
		return
	}

	var body struct {
		Decision string `json:"decision"`
		Reason   string `json:"reason"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	res, err := s.svc.DecideBookingRequest(r.Context(), scheduling.DecideBookingRequestInput{
		CoachID:   actor.ID,
		RequestID: requestID,
		Decision:  scheduling.Decision(body.Decision),
		Reason:    body.Reason,
	})
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDecideBookingResponse(res))
}

func (s *Server) handleDeleteBookingRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireRole(w, r, domain.RoleCustomer)
	if !ok {
		return
	}
	requestID, ok := pathUUID(w, r, "requestID")
	if !ok {
		return
	}

	if err := s.svc.DeleteBookingRequest(r.Context(), actor.ID, requestID); err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListSchedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}

	schedule, err := s.svc.ListSchedule(r.Context(), actor.ID, actor.Role)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleJSON(schedule))
}

func (s *Server) handleRequestReschedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireRole(w, r, domain.RoleCustomer)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	var body struct {
		RequestedDate     string    `json:"requested_date"`
		RequestedTimeSlot uuid.UUID `json:"requested_time_slot_id"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	date, err := parseDate(body.RequestedDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "requested_date must be formatted as YYYY-MM-DD")
		return
	}

	rr, err := s.svc.RequestReschedule(r.Context(), scheduling.RequestRescheduleInput{
		CustomerID:        actor.ID,
		SessionID:         sessionID,
		RequestedDate:     date,
		RequestedTimeSlot: body.RequestedTimeSlot,
	})
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRescheduleRequestJSON(rr))
}

func (s *Server) handleDecideReschedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireRole(w, r, domain.RoleCoach)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	var body struct {
		Decision string `json:"decision"`
		Reason   string `json:"reason"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	decision, err := s.svc.DecideReschedule(r.Context(), scheduling.DecideRescheduleInput{
		CoachID:   actor.ID,
		SessionID: sessionID,
		Decision:  scheduling.Decision(body.Decision),
		Reason:    body.Reason,
	})
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDecideRescheduleResponse(decision))
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	session, err := s.svc.CancelSession(r.Context(), actor.ID, sessionID, body.Reason)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionJSON(session))
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireRole(w, r, domain.RoleCoach)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	session, err := s.svc.CompleteSession(r.Context(), actor.ID, sessionID)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionJSON(session))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	if err := s.svc.DeleteCancelledSession(r.Context(), actor.ID, sessionID); err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleAddSessionNote(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireRole(w, r, domain.RoleCoach)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	note, err := s.svc.AddSessionNote(r.Context(), actor.ID, sessionID, body.Content)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionNoteJSON(note))
}

func (s *Server) handleUpdateSessionNote(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireRole(w, r, domain.RoleCoach)
	if !ok {
		return
	}
	noteID, ok := pathUUID(w, r, "noteID")
	if !ok {
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	note, err := s.svc.UpdateSessionNote(r.Context(), actor.ID, noteID, body.Content)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionNoteJSON(note))
}

func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireRole(w, r, domain.RoleCustomer)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	var body struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	fb, err := s.svc.SubmitFeedback(r.Context(), scheduling.SubmitFeedbackInput{
		CustomerID: actor.ID,
		SessionID:  sessionID,
		Rating:     body.Rating,
		Comment:    body.Comment,
	})
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFeedbackJSON(fb))
}
