package errors

import "errors"

var (
	ErrInvalidID = errors.New("invalid booking ID format")

	ErrTimeConflict = errors.New("booking time conflicts with existing booking")

	ErrInvalidTimeRange = errors.New("timeTo must be after timeFrom")

	ErrSlotLocked = errors.New("booking slot is locked by another request")
)
