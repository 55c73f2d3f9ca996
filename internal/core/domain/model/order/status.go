package order

import (
	"errors"
	"fmt"

	"dinein/internal/pkg/errs"
)

var (
	// ErrOrderAlreadyTransferred is returned when transferring an order that
	// has already been handed to the manager. Callers implementing retry
	// semantics treat this as idempotent success, not failure.
	ErrOrderAlreadyTransferred = errors.New("order is already transferred")

	// ErrOrderNotEditable is returned when mutating items on an order that
	// has left staff ownership.
	ErrOrderNotEditable = errors.New("order is no longer editable")
)

// Status represents the lifecycle state of an order.
// The lifecycle is monotonic: no sequence of operations moves an order
// backward.
//
// State transitions:
//
//	Temporary ──> Ongoing ──> Transferred ──> Settled
//	    │            │
//	    └────────────┴──> Cancelled
//
// Temporary means items exist but the order has not been durably persisted;
// Ongoing means persisted and staff-editable; Transferred means handed to the
// manager and frozen to staff; Settled and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Temporary is the initial status: the device is building the order
	// locally and nothing durable exists yet.
	Temporary

	// Ongoing means the order is durably persisted and staff-owned.
	// This is the commit point after which other devices at the location can
	// discover the order.
	Ongoing

	// Transferred means the staff-to-manager handoff completed. Staff-side
	// editing is disabled; the manager settles from here.
	Transferred

	// Settled means payment was recorded. Terminal.
	Settled

	// Cancelled means the order was abandoned before transfer. Terminal.
	// An order cancelled after first persist stays recorded for audit.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "Unknown",
		Temporary:   "Temporary",
		Ongoing:     "Ongoing",
		Transferred: "Transferred",
		Settled:     "Settled",
		Cancelled:   "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Temporary:   "Temporary",
		Ongoing:     "Ongoing",
		Transferred: "Transferred",
		Settled:     "Settled",
		Cancelled:   "Cancelled",
	}
}

// StatusFromString parses a status name as stored in read models and cache
// snapshots.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid order status", s),
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

// Editable reports whether staff may still mutate the order's items.
func (s Status) Editable() bool {
	return s == Temporary || s == Ongoing
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == Settled || s == Cancelled
}

// Place transitions the status to Ongoing.
//
// Valid transitions:
//   - Temporary -> Ongoing (first durable persist)
func (s Status) Place() (Status, error) {
	if s != Temporary {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to place", s.String()),
		)
	}
	return Ongoing, nil
}

// Transfer transitions the status to Transferred.
//
// Valid transitions:
//   - Ongoing -> Transferred
//
// Transferring an already transferred or settled order returns
// ErrOrderAlreadyTransferred so callers can implement idempotent retries.
func (s Status) Transfer() (Status, error) {
	if s == Transferred || s == Settled {
		return 0, ErrOrderAlreadyTransferred
	}
	if s != Ongoing {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to transfer", s.String()),
		)
	}
	return Transferred, nil
}

// Settle transitions the status to Settled.
//
// Valid transitions:
//   - Transferred -> Settled
func (s Status) Settle() (Status, error) {
	if s != Transferred {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to settle", s.String()),
		)
	}
	return Settled, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Temporary -> Cancelled
//   - Ongoing -> Cancelled
func (s Status) Cancel() (Status, error) {
	if !s.Editable() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return Cancelled, nil
}
