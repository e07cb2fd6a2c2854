package occupancy

type Violation string

const (
	ViolationBelowRequired     Violation = "below_required_rooms"
	ViolationAboveAvailability Violation = "above_availability"
)

// RoomCount is the user's room selection against its two bounds. The
// requested count is bumped up to the required floor but never lowered,
// and never capped to the availability ceiling.
type RoomCount struct {
	Requested int
	Required  int
	Ceiling   *int
	Bumped    bool
}

func NewRoomCount(requested, required int, ceiling *int) RoomCount {
	rc := RoomCount{Requested: requested, Required: required, Ceiling: ceiling}
	if rc.Requested < rc.Required {
		rc.Requested = rc.Required
		rc.Bumped = true
	}
	return rc
}

func (rc RoomCount) CanDecrement() bool {
	return rc.Requested > rc.Required
}

func (rc RoomCount) CanIncrement() bool {
	if rc.Ceiling == nil {
		return true
	}
	return rc.Requested < *rc.Ceiling
}

func (rc RoomCount) Violations() []Violation {
	var out []Violation
	if rc.Requested < rc.Required {
		out = append(out, ViolationBelowRequired)
	}
	if rc.Ceiling != nil && rc.Requested > *rc.Ceiling {
		out = append(out, ViolationAboveAvailability)
	}
	return out
}
