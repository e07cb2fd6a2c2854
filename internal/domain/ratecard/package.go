package ratecard

const (
	MealPlanBreakfast = "CP"
	MealPlanRoomOnly  = "EP"
)

// Package is one row of a room's rate card.
type Package struct {
	ID                         string
	RoomCount                  int
	AC                         bool
	NonAC                      bool
	BasePrice                  float64
	NetRate                    float64
	ExtraAdultRateWithMattress float64
	ExtraChildRateWithMattress float64
	BreakfastIncluded          bool
	MinRooms                   int
	AdditionalRules            string
	MealPlan                   string
}

// UnitPrice is the per-room per-night price, falling back to the net rate
// when the base price is absent.
func (p Package) UnitPrice() float64 {
	if p.BasePrice > 0 {
		return p.BasePrice
	}
	return p.NetRate
}

// MatchesAC reports whether the package serves the given AC preference.
// Packages flagged both AC and non-AC, or neither, match either preference.
func (p Package) MatchesAC(preferAC bool) bool {
	if p.AC == p.NonAC {
		return true
	}
	if preferAC {
		return p.AC
	}
	return p.NonAC
}

func (p Package) ResolvedMealPlan() string {
	if p.MealPlan != "" {
		return p.MealPlan
	}
	if p.BreakfastIncluded {
		return MealPlanBreakfast
	}
	return MealPlanRoomOnly
}

type Card []Package

func (c Card) Find(id string) (Package, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

func (c Card) IsEmpty() bool {
	return len(c) == 0
}
