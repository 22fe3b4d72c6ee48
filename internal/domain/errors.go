package domain

import "errors"

var (
	// ErrInvalidInput is returned for malformed or out-of-range input. Callers re-prompt.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyPaid blocks modification and cancellation of a paid reservation
	ErrAlreadyPaid = errors.New("reservation already paid")

	// ErrNotPaid blocks returning a vehicle whose reservation is unpaid
	ErrNotPaid = errors.New("reservation not paid")

	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")

	ErrVehicleUnavailable = errors.New("vehicle unavailable")
	ErrReservationClosed  = errors.New("reservation already closed")
	ErrNotClosed          = errors.New("reservation not closed")
	ErrAlreadyRated       = errors.New("reservation already rated")
	ErrUnauthorized       = errors.New("unauthorized")
)
