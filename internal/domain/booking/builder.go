package booking

import (
	"errors"
	"fmt"
	"strings"

	"hotel-reservation/internal/domain/occupancy"
	"hotel-reservation/internal/domain/pricing"
	"hotel-reservation/internal/domain/ratecard"
	"hotel-reservation/internal/domain/stay"
)

var (
	ErrMissingHotel   = errors.New("hotel id is required")
	ErrMissingUser    = errors.New("user id is required")
	ErrMissingRoom    = errors.New("room id is required")
	ErrMissingPackage = errors.New("a rate package must be resolved")
	ErrMissingDates   = errors.New("valid stay dates are required")
)

const remarksSeparator = " | "

type BuildInput struct {
	HotelID   string
	UserID    string
	RoomID    string
	Guest     GuestForm
	Guests    []occupancy.AdditionalGuest
	Occupancy occupancy.Result
	Split     occupancy.Split
	Breakdown pricing.Breakdown
	Package   *ratecard.Package
	Dates     stay.DateRange
}

func Build(in BuildInput) (*Request, error) {
	switch {
	case strings.TrimSpace(in.HotelID) == "":
		return nil, ErrMissingHotel
	case strings.TrimSpace(in.UserID) == "":
		return nil, ErrMissingUser
	case strings.TrimSpace(in.RoomID) == "":
		return nil, ErrMissingRoom
	case in.Package == nil:
		return nil, ErrMissingPackage
	case in.Dates.IsZero() || in.Dates.Nights() == 0:
		return nil, ErrMissingDates
	}

	mealPlan := in.Package.ResolvedMealPlan()
	b := in.Breakdown

	return &Request{
		HotelID:  in.HotelID,
		UserID:   in.UserID,
		Guest:    in.Guest,
		CheckIn:  in.Dates.CheckInString(),
		CheckOut: in.Dates.CheckOutString(),
		FromMs:   in.Dates.FromMillis(),
		ToMs:     in.Dates.ToMillis(),
		Rooms: []RoomRequirement{{
			RoomID:       in.RoomID,
			PackageID:    in.Package.ID,
			RoomCount:    in.Split.RoomCount,
			Adults:       in.Occupancy.TotalAdults,
			Children:     in.Occupancy.TotalChildren,
			Nights:       in.Dates.Nights(),
			RatePerNight: in.Package.UnitPrice(),
			MealPlan:     mealPlan,
		}},
		TotalAdults:         in.Occupancy.TotalAdults,
		TotalChildren:       in.Occupancy.TotalChildren,
		ExtraAdults:         in.Split.ExtraAdultsCount,
		ExtraChildren:       in.Split.ExtraChildrenCount,
		ExtraAdultsAmount:   b.ExtraAdultsTotal,
		ExtraChildrenAmount: b.ExtraChildrenTotal,
		Subtotal:            b.Subtotal,
		TaxAmount:           b.Taxes,
		DiscountAmount:      b.Discount,
		TotalAmount:         b.Total,
		AdvanceAmount:       b.AmountToPayNow,
		BalanceAmount:       b.RemainingBalance,
		MealPlan:            mealPlan,
		Remarks:             Remarks(in.Guest.SpecialRequests, in.Guests, in.Occupancy.Profile()),
	}, nil
}

// Remarks appends one line per counted additional guest to the special requests.
func Remarks(specialRequests string, guests []occupancy.AdditionalGuest, profile occupancy.Profile) string {
	var parts []string
	if s := strings.TrimSpace(specialRequests); s != "" {
		parts = append(parts, s)
	}
	for i, g := range occupancy.CountedGuests(guests) {
		parts = append(parts, describeGuest(i+1, g, profile))
	}
	return strings.Join(parts, remarksSeparator)
}

func describeGuest(n int, g occupancy.AdditionalGuest, profile occupancy.Profile) string {
	kind := "Child"
	if profile.IsAdult(g.Age) {
		kind = "Adult"
	}
	line := fmt.Sprintf("Additional Guest %d: %s (%s, Age: %d", n, strings.TrimSpace(g.Name), kind, g.Age)
	if rel := strings.TrimSpace(g.Relationship); rel != "" {
		line += ", Relationship: " + rel
	}
	return line + ")"
}
