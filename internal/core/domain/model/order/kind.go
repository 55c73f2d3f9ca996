package order

import (
	"fmt"

	"dinein/internal/pkg/errs"
)

// Type distinguishes how the order will be fulfilled. Dine-in orders occupy
// tables; takeaway and delivery orders do not.
type Type int

const (
	// TypeUnknown represents an invalid or undefined order type.
	TypeUnknown Type = iota

	// DineIn orders are eaten at one or more tables.
	DineIn

	// Takeaway orders are packed for pickup at the counter.
	Takeaway

	// Delivery orders leave the premises with a rider.
	Delivery
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown: "Unknown",
		DineIn:      "DineIn",
		Takeaway:    "Takeaway",
		Delivery:    "Delivery",
	}
}

// TypeFromString parses an order type name.
func TypeFromString(s string) (Type, error) {
	for t, name := range getTypeStrings() {
		if t != TypeUnknown && name == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"orderType is invalid",
		fmt.Errorf("%q is not a valid order type", s),
	)
}

// Validate checks that the Type is one of the valid values.
func (t Type) Validate() error {
	if t != DineIn && t != Takeaway && t != Delivery {
		return errs.NewValueIsInvalidErrorWithCause("orderType is invalid", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// OccupiesTables reports whether orders of this type seat physical tables.
func (t Type) OccupiesTables() bool {
	return t == DineIn
}

func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return "Unknown"
}

// Mode distinguishes where the order is driven from: a fixed counter till or
// a staff device carried to the table.
type Mode int

const (
	// ModeUnknown represents an invalid or undefined order mode.
	ModeUnknown Mode = iota

	// Counter orders are keyed in at the till.
	Counter

	// Tableside orders are built on a handheld at the table.
	Tableside
)

func getModeStrings() map[Mode]string {
	return map[Mode]string{
		ModeUnknown: "Unknown",
		Counter:     "Counter",
		Tableside:   "Tableside",
	}
}

// ModeFromString parses an order mode name.
func ModeFromString(s string) (Mode, error) {
	for m, name := range getModeStrings() {
		if m != ModeUnknown && name == s {
			return m, nil
		}
	}
	return ModeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"orderMode is invalid",
		fmt.Errorf("%q is not a valid order mode", s),
	)
}

// Validate checks that the Mode is one of the valid values.
func (m Mode) Validate() error {
	if m != Counter && m != Tableside {
		return errs.NewValueIsInvalidErrorWithCause("orderMode is invalid", fmt.Errorf("%d is not a valid order mode", m))
	}
	return nil
}

func (m Mode) String() string {
	if s, ok := getModeStrings()[m]; ok {
		return s
	}
	return "Unknown"
}
