package service

import "errors"

// Expected outcomes of the booking workflow. Losing a reservation race is
// normal under concurrent access, so all of these are recoverable sentinels
// the transport layer maps to user-facing responses.
var (
	ErrNotFound        = errors.New("not found")
	ErrSlotUnavailable = errors.New("slot is no longer available")
	ErrSlotExpired     = errors.New("slot start time has passed")
	ErrForbidden       = errors.New("actor is not allowed to perform this action")
	ErrInvalidState    = errors.New("operation not valid for the current state")
	ErrDuplicate       = errors.New("already exists")
	ErrCapacityFull    = errors.New("course capacity reached")
	ErrOpenSession     = errors.New("an open session already exists")
	ErrNoOpenSession   = errors.New("no open session to close")
)
