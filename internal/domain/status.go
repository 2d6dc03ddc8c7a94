package domain

import (
	"fmt"
	"strings"
)

// SlotStatus two-valued slot state. The zero value is StatusOpen.
type SlotStatus uint8

const (
	StatusOpen SlotStatus = iota
	StatusClosed
)

func (s SlotStatus) String() string {
	if s == StatusClosed {
		return "closed"
	}
	return "open"
}

func (s SlotStatus) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

// Toggle returns the opposite status.
func (s SlotStatus) Toggle() SlotStatus {
	if s == StatusClosed {
		return StatusOpen
	}
	return StatusClosed
}

// ParseSlotStatus accepts "open" or "closed" in any case.
func ParseSlotStatus(s string) (SlotStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return StatusOpen, nil
	case "closed":
		return StatusClosed, nil
	default:
		return StatusOpen, fmt.Errorf("%w: %q", ErrInvalidSlotStatus, s)
	}
}

func (s SlotStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SlotStatus) UnmarshalText(b []byte) error {
	parsed, err := ParseSlotStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
