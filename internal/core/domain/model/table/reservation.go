package table

import (
	"errors"
	"time"

	"dinein/internal/core/domain/model/kernel"
)

// ReservationWindow is the fixed hold duration for a table reservation.
// A reservation taken at t expires at t+ReservationWindow and is released by
// the periodic sweep some time after that.
const ReservationWindow = 2 * time.Hour

// ErrReservationIsNotConstructed is returned when a Reservation instance was
// not created through the NewReservation factory method.
var ErrReservationIsNotConstructed = errors.New("Reservation must be created via NewReservation constructor")

// ErrCustomerNameIsRequired is returned when a reservation is taken without
// a customer name.
var ErrCustomerNameIsRequired = errors.New("customer name is required")

// Reservation is a value object describing a hold on a table: who took it,
// for whom, and when it lapses. It lives inside the Table aggregate and is
// cleared when the table is occupied or released.
type Reservation struct {
	reservedBy    kernel.UUID
	customerName  string
	customerPhone string
	notes         string
	reservedAt    time.Time
	expiresAt     time.Time

	isConstructed bool
}

// NewReservation creates a reservation held by the given staff identity
// starting at now. The expiry is fixed at now+ReservationWindow; there is no
// per-reservation override.
func NewReservation(reservedBy kernel.UUID, customerName, customerPhone, notes string, now time.Time) (Reservation, error) {
	if err := reservedBy.Validate(); err != nil {
		return Reservation{}, err
	}
	if customerName == "" {
		return Reservation{}, ErrCustomerNameIsRequired
	}

	return Reservation{
		reservedBy:    reservedBy,
		customerName:  customerName,
		customerPhone: customerPhone,
		notes:         notes,
		reservedAt:    now,
		expiresAt:     now.Add(ReservationWindow),
		isConstructed: true,
	}, nil
}

// RestoreReservation reconstructs a reservation from persistence without
// recomputing the expiry, preserving the original window.
func RestoreReservation(reservedBy kernel.UUID, customerName, customerPhone, notes string, reservedAt, expiresAt time.Time) (Reservation, error) {
	if err := reservedBy.Validate(); err != nil {
		return Reservation{}, err
	}

	return Reservation{
		reservedBy:    reservedBy,
		customerName:  customerName,
		customerPhone: customerPhone,
		notes:         notes,
		reservedAt:    reservedAt,
		expiresAt:     expiresAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Reservation was created through a constructor.
func (r Reservation) Validate() error {
	if !r.isConstructed {
		return ErrReservationIsNotConstructed
	}
	return nil
}

// ReservedBy returns the staff identity that took the reservation.
func (r Reservation) ReservedBy() kernel.UUID {
	return r.reservedBy
}

// CustomerName returns the guest name the table is held for.
func (r Reservation) CustomerName() string {
	return r.customerName
}

// CustomerPhone returns the guest contact number, possibly empty.
func (r Reservation) CustomerPhone() string {
	return r.customerPhone
}

// Notes returns free-form reservation notes, possibly empty.
func (r Reservation) Notes() string {
	return r.notes
}

// ReservedAt returns the time the reservation was taken.
func (r Reservation) ReservedAt() time.Time {
	return r.reservedAt
}

// ExpiresAt returns the time the reservation lapses.
func (r Reservation) ExpiresAt() time.Time {
	return r.expiresAt
}

// Expired reports whether the reservation has lapsed as of now.
// Expiry is eventual: a lapsed reservation stays on the table until the
// sweep or an explicit occupy/release clears it.
func (r Reservation) Expired(now time.Time) bool {
	return r.expiresAt.Before(now)
}
