package occupancy

import (
	"regexp"
	"strconv"
	"strings"
)

const DefaultChildAgeThreshold = 12

var ageRegex = regexp.MustCompile(`\d+`)

// Profile holds the occupancy limits of a room type.
type Profile struct {
	MinAdultsPerRoom      int
	TotalOccupancyPerRoom int
	ChildAgeThreshold     int
	TotalRoomsAtProperty  int
}

// ParseChildAgeThreshold reads the first number out of a free-text child
// policy such as "Children 12 years and above are charged as adults".
func ParseChildAgeThreshold(policy string) int {
	match := ageRegex.FindString(strings.TrimSpace(policy))
	if match == "" {
		return DefaultChildAgeThreshold
	}
	age, err := strconv.Atoi(match)
	if err != nil || age <= 0 {
		return DefaultChildAgeThreshold
	}
	return age
}

func (p Profile) childAgeThreshold() int {
	if p.ChildAgeThreshold <= 0 {
		return DefaultChildAgeThreshold
	}
	return p.ChildAgeThreshold
}

// IsAdult classifies a guest by age; the threshold age itself counts as adult.
func (p Profile) IsAdult(age int) bool {
	return age >= p.childAgeThreshold()
}

type AdditionalGuest struct {
	Name         string
	Age          int
	Relationship string
}

// Counted reports whether the guest takes part in occupancy and pricing.
func (g AdditionalGuest) Counted() bool {
	return strings.TrimSpace(g.Name) != "" && g.Age > 0
}

func CountedGuests(guests []AdditionalGuest) []AdditionalGuest {
	out := make([]AdditionalGuest, 0, len(guests))
	for _, g := range guests {
		if g.Counted() {
			out = append(out, g)
		}
	}
	return out
}
