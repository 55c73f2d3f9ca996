package table

import (
	"fmt"

	"dinein/internal/pkg/errs"
)

// Status represents the occupancy state of a dining table.
// It implements a state machine with defined transitions so tables always
// follow the correct floor workflow.
//
// State transitions:
//
//	            ┌─────> Reserved ────┐
//	            │           │        │ (expiry sweep / release)
//	Available ──┼─────> Occupied <───┘
//	    ^       │           │
//	    └───────┴───────────┘
//	         (release is always allowed and idempotent)
//
// Maintenance is set and cleared administratively and never entered through
// the transition methods.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Available means the table is free to reserve or seat.
	Available

	// Occupied means the table carries an in-flight order, or is a member of
	// a merge group that is about to carry one.
	Occupied

	// Reserved means the table is held for a future guest. Reservations carry
	// a fixed expiry window and are released by the sweep once expired.
	Reserved

	// Maintenance means the table is out of service and cannot be reserved
	// or seated.
	Maintenance
)

// getStatusStrings returns a map of Status values to their string
// representations, including Unknown for display purposes.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "Unknown",
		Available:   "Available",
		Occupied:    "Occupied",
		Reserved:    "Reserved",
		Maintenance: "Maintenance",
	}
}

// getValidStatusStrings returns only valid Status values, to support
// validation of values arriving from persistence or the API.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Available:   "Available",
		Occupied:    "Occupied",
		Reserved:    "Reserved",
		Maintenance: "Maintenance",
	}
}

// StatusFromString parses a status name as stored in read models.
// Returns an error for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid table status", s),
	)
}

// Validate checks that the Status is one of the valid values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateReserve checks whether a reservation may be taken from this status
// without performing the transition. Only Available tables can be reserved;
// the caller gets a status-specific error otherwise so the UI can report
// "already occupied" and "already reserved" distinctly.
func (s Status) ValidateReserve() error {
	switch s {
	case Available:
		return nil
	case Occupied:
		return ErrTableAlreadyOccupied
	case Reserved:
		return ErrTableAlreadyReserved
	case Maintenance:
		return ErrTableUnderMaintenance
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to reserve from", s.String()),
		)
	}
}

// ValidateOccupy checks whether the table may be seated from this status.
// Seating is allowed from Available and from Reserved (the reservation is
// consumed), but not from Occupied or Maintenance.
func (s Status) ValidateOccupy() error {
	if s != Available && s != Reserved {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to occupy from", s.String()),
		)
	}
	return nil
}

// Reserve transitions the status to Reserved.
//
// Valid transitions:
//   - Available -> Reserved
func (s Status) Reserve() (Status, error) {
	if err := s.ValidateReserve(); err != nil {
		return 0, err
	}
	return Reserved, nil
}

// Occupy transitions the status to Occupied.
//
// Valid transitions:
//   - Available -> Occupied (walk-in seating)
//   - Reserved -> Occupied (reservation consumed)
func (s Status) Occupy() (Status, error) {
	if err := s.ValidateOccupy(); err != nil {
		return 0, err
	}
	return Occupied, nil
}

// Release transitions the status to Available. Releasing is always allowed;
// releasing an Available table is a no-op, which makes the expiry sweep and
// split idempotent.
func (s Status) Release() (Status, error) {
	return Available, nil
}
