package availability

import "hotel-reservation/internal/pkg/ptr"

// Ceiling is the minimum number of rooms free on every night of a stay.
// An unknown ceiling never blocks a booking.
type Ceiling struct {
	minAvailable int
	known        bool
}

func Unknown() Ceiling {
	return Ceiling{}
}

func Known(minAvailable int) Ceiling {
	return Ceiling{minAvailable: max(minAvailable, 0), known: true}
}

func Aggregate(days []Day) Ceiling {
	if len(days) == 0 {
		return Unknown()
	}
	lowest := days[0].Available
	for _, d := range days[1:] {
		lowest = min(lowest, d.Available)
	}
	return Known(lowest)
}

func (c Ceiling) IsKnown() bool { return c.known }

func (c Ceiling) MinAvailable() (int, bool) {
	return c.minAvailable, c.known
}

// Value returns nil for an unknown ceiling.
func (c Ceiling) Value() *int {
	if !c.known {
		return nil
	}
	return ptr.To(c.minAvailable)
}

func (c Ceiling) Allows(roomCount int) bool {
	return !c.known || roomCount <= c.minAvailable
}
