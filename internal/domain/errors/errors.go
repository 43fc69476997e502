package errors

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidRequest    = errors.New("invalid request data")
	ErrIllegalTransition = errors.New("illegal state transition")
	ErrNotConnected      = errors.New("database not connected")
	ErrNoneEligible      = errors.New("no eligible order")
	ErrStateConflict     = errors.New("order state changed concurrently")
	ErrNegativeResult    = errors.New("increment would make value negative")
)
