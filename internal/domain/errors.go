package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEquipmentNotFound   = errors.New("equipment not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrEmptyCart           = errors.New("reservation must contain at least one item")
	ErrInvalidDateRange    = errors.New("invalid date range")
	ErrInvalidStatus       = errors.New("invalid reservation status")
)

// AvailabilityError reports which item could not be booked and how many
// units were still available for the requested range.
type AvailabilityError struct {
	EquipmentName string
	Requested     int32
	Available     int32
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("equipment %q is not available: requested %d, available %d",
		e.EquipmentName, e.Requested, e.Available)
}

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
