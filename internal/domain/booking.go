package domain

import "time"

// Booking is one occupant of a slot.
// (OrgID, Date, Hour) identifies the slot it belongs to.
type Booking struct {
	ID            int64
	OrgID         int64
	UserID        int64
	Date          Date
	Hour          int
	Status        SlotStatus // status of the slot at the moment it was last written
	CreatedBySelf bool       // false when an admin booked on behalf of the user

	// Denormalized data for display
	UserName  string
	UserPhone string
	Comment   string

	CreatedAt time.Time
}

// SlotKey identifies a slot inside the whole system.
type SlotKey struct {
	OrgID int64
	Date  Date
	Hour  int
}

func (b Booking) SlotKey() SlotKey {
	return SlotKey{OrgID: b.OrgID, Date: b.Date, Hour: b.Hour}
}

// CreateBookingPayload data the Booking Store needs to persist a new booking.
// Status is the slot status computed before the write and applied to the whole slot.
type CreateBookingPayload struct {
	OrgID         int64
	UserID        int64
	Date          Date
	Hour          int
	Status        SlotStatus
	CreatedBySelf bool
	UserName      string
	UserPhone     string
	Comment       string
}

// DeleteBookingPayload data the Booking Store needs to remove a booking and
// persist the slot status that results from the removal.
type DeleteBookingPayload struct {
	BookingID       int64
	UserID          int64
	OrgID           int64
	CancelledBySelf bool
	ResultingStatus SlotStatus
}

// SlotOverride persisted status of one slot, independent of its occupants.
// Written on every create, cancel and manual toggle.
type SlotOverride struct {
	Date   Date
	Hour   int
	Status SlotStatus
}
