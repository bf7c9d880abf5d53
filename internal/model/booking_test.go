package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingValidate(t *testing.T) {
	valid := Booking{
		Date:      "2026-10-03",
		Time:      "14:30",
		FirstName: "Marie",
		LastName:  "Dupont",
		Phone:     "0612345678",
		Kind:      BookingClient,
	}

	tests := []struct {
		name    string
		mutate  func(b *Booking)
		wantErr bool
	}{
		{name: "valid client", mutate: func(b *Booking) {}},
		{name: "bad date", mutate: func(b *Booking) { b.Date = "03/10/2026" }, wantErr: true},
		{name: "bad time", mutate: func(b *Booking) { b.Time = "14h30" }, wantErr: true},
		{name: "missing first name", mutate: func(b *Booking) { b.FirstName = "  " }, wantErr: true},
		{name: "missing last name", mutate: func(b *Booking) { b.LastName = "" }, wantErr: true},
		{name: "missing phone", mutate: func(b *Booking) { b.Phone = "" }, wantErr: true},
		{name: "block needs no identity", mutate: func(b *Booking) {
			b.Kind = BookingAdminBlock
			b.FirstName, b.LastName, b.Phone = "", "", ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			err := b.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewAdminBlock(t *testing.T) {
	b := NewAdminBlock("2026-10-03", "18:30:00")
	assert.Equal(t, BookingAdminBlock, b.Kind)
	assert.Equal(t, "18:30", b.Time)
	assert.Equal(t, "BLOCKED", b.LastName)
	assert.NoError(t, b.Validate())
}

func TestKindFromLegacy(t *testing.T) {
	assert.Equal(t, BookingAdminBlock, KindFromLegacy("admin_block", "Dupont"))
	assert.Equal(t, BookingClient, KindFromLegacy("client", "BLOCKED"))
	assert.Equal(t, BookingAdminBlock, KindFromLegacy("", "BLOCKED"))
	assert.Equal(t, BookingClient, KindFromLegacy("", "Dupont"))
}
