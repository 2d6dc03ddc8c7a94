package domain

// TimeSlot is a view over Bookings and ScheduleConfig at one point in time.
// It has no persistence of its own and is rebuilt on every grid compilation.
type TimeSlot struct {
	Date      Date
	Hour      int
	Status    SlotStatus
	Occupants []Booking
}

// Occupancy returns the number of bookings attached to the slot
func (s TimeSlot) Occupancy() int {
	return len(s.Occupants)
}

// IsOverflow returns true if the slot lies outside the configured hours
func (s TimeSlot) IsOverflow(cfg ScheduleConfig) bool {
	return !cfg.InRange(s.Hour)
}

// IsFull returns true if no more bookings fit into the slot
func (s TimeSlot) IsFull(cfg ScheduleConfig) bool {
	return s.Occupancy() >= cfg.MaxEntriesPerSlot
}

// IsBookable returns true if a new booking may be attempted in the slot
func (s TimeSlot) IsBookable(cfg ScheduleConfig) bool {
	return s.Status == StatusOpen && !s.IsFull(cfg)
}

// Day is one calendar date of the published grid.
type Day struct {
	Date        Date
	ShowThisDay bool // false for non-working days, kept for layout continuity
	Slots       []TimeSlot
}

// Slot finds the slot with the given hour.
func (d Day) Slot(hour int) (TimeSlot, bool) {
	for _, s := range d.Slots {
		if s.Hour == hour {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// Bookings returns every occupant of the day in slot order.
func (d Day) Bookings() []Booking {
	var out []Booking
	for _, s := range d.Slots {
		out = append(out, s.Occupants...)
	}
	return out
}
