package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// BookingKind distinguishes a client reservation from an admin-imposed
// block. The original site encoded the block as a reservation with
// last_name "BLOCKED"; here the tag is explicit and the sentinel names
// are only kept as display values on legacy rows.
type BookingKind string

const (
	BookingClient     BookingKind = "client"
	BookingAdminBlock BookingKind = "admin_block"
)

// Legacy sentinel identity written by the old admin panel for blocks.
const (
	legacyBlockFirstName = "ADMIN"
	legacyBlockLastName  = "BLOCKED"
	legacyBlockPhone     = "0000000000"
)

var ErrInvalidBooking = errors.New("invalid booking")

// Booking occupies one slot on one date.
type Booking struct {
	ID        int64       `json:"id"`
	Date      string      `json:"date"` // YYYY-MM-DD
	Time      string      `json:"time"` // HH:MM, normalized on ingestion
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Phone     string      `json:"phone"`
	Kind      BookingKind `json:"kind"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewAdminBlock builds the block record for a slot, carrying the legacy
// sentinel identity so the old admin views keep rendering it.
func NewAdminBlock(date, clock string) *Booking {
	return &Booking{
		Date:      date,
		Time:      NormalizeClock(clock),
		FirstName: legacyBlockFirstName,
		LastName:  legacyBlockLastName,
		Phone:     legacyBlockPhone,
		Kind:      BookingAdminBlock,
	}
}

// KindFromLegacy recovers the variant for rows written before the kind
// column existed.
func KindFromLegacy(kind, lastName string) BookingKind {
	if kind != "" {
		return BookingKind(kind)
	}
	if lastName == legacyBlockLastName {
		return BookingAdminBlock
	}
	return BookingClient
}

// Validate checks a record before any store call.
func (b *Booking) Validate() error {
	if _, err := ParseDateKey(b.Date); err != nil {
		return err
	}
	if _, err := ParseClock(b.Time); err != nil {
		return err
	}
	if b.Kind == BookingAdminBlock {
		return nil
	}
	if strings.TrimSpace(b.FirstName) == "" || strings.TrimSpace(b.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalidBooking)
	}
	if strings.TrimSpace(b.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidBooking)
	}
	return nil
}

// DisplayName renders the client identity for admin views.
func (b *Booking) DisplayName() string {
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}
