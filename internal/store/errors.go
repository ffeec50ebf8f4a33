package store

import "errors"

var (
	ErrConflict         = errors.New("conflict")
	ErrNotFound         = errors.New("not found")
	ErrDuplicateRequest = errors.New("customer already has a pending booking request")
	ErrActiveSchedule   = errors.New("customer already has an active schedule")
	ErrSlotUnavailable  = errors.New("slot is outside the coach's weekly availability")
)
