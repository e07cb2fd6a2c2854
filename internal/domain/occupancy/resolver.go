package occupancy

// Result is the guest tally for a room type, independent of how many rooms
// end up being booked.
type Result struct {
	RequiredRoomCount  int
	TotalAdults        int
	TotalChildren      int
	AdditionalAdults   int
	AdditionalChildren int

	profile Profile
}

// Split is the base/extra guest allocation for a concrete room count.
type Split struct {
	RoomCount            int
	BaseOccupancyCovered int
	MaxCapacity          int
	ValidTotalGuests     int
	BaseAdultsCovered    int
	BaseChildrenCovered  int
	ExtraAdultsCount     int
	ExtraChildrenCount   int
}

func Resolve(profile Profile, baseAdults, baseChildren int, guests []AdditionalGuest) Result {
	res := Result{profile: profile}
	for _, g := range CountedGuests(guests) {
		if profile.IsAdult(g.Age) {
			res.AdditionalAdults++
		} else {
			res.AdditionalChildren++
		}
	}

	res.TotalAdults = max(baseAdults, 0) + res.AdditionalAdults
	res.TotalChildren = max(baseChildren, 0) + res.AdditionalChildren
	res.RequiredRoomCount = requiredRooms(res.TotalGuests(), profile.TotalOccupancyPerRoom)
	return res
}

func (r Result) TotalGuests() int {
	return r.TotalAdults + r.TotalChildren
}

func (r Result) Profile() Profile {
	return r.profile
}

// Split allocates base occupancy to adults first and offers what is left to
// children. Everyone not covered is charged as an extra guest.
func (r Result) Split(roomCount int) Split {
	roomCount = max(roomCount, 0)
	baseCovered := roomCount * max(r.profile.MinAdultsPerRoom, 0)
	maxCapacity := roomCount * max(r.profile.TotalOccupancyPerRoom, 0)

	adultsCovered := min(r.TotalAdults, baseCovered)
	remaining := baseCovered - adultsCovered
	childrenCovered := min(r.TotalChildren, remaining)

	return Split{
		RoomCount:            roomCount,
		BaseOccupancyCovered: baseCovered,
		MaxCapacity:          maxCapacity,
		ValidTotalGuests:     min(r.TotalGuests(), maxCapacity),
		BaseAdultsCovered:    adultsCovered,
		BaseChildrenCovered:  childrenCovered,
		ExtraAdultsCount:     r.TotalAdults - adultsCovered,
		ExtraChildrenCount:   r.TotalChildren - childrenCovered,
	}
}

func (s Split) ExtraGuests() int {
	return s.ExtraAdultsCount + s.ExtraChildrenCount
}

func requiredRooms(totalGuests, perRoom int) int {
	if perRoom <= 0 || totalGuests <= 0 {
		return 1
	}
	return max((totalGuests+perRoom-1)/perRoom, 1)
}
