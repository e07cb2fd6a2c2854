package room

import (
	"hotel-reservation/internal/domain/occupancy"
	"hotel-reservation/internal/domain/pricing"
	"hotel-reservation/internal/domain/ratecard"
)

// Source is either a live room from the booking API or a static fallback
// room from the marketing catalog.
type Source interface {
	isSource()
}

type Live struct {
	Room APIRoom
}

type Static struct {
	Room FallbackRoom
}

func (Live) isSource()   {}
func (Static) isSource() {}

type APIRoom struct {
	ID             string
	HotelID        string
	Name           string
	MinAdults      int
	TotalOccupancy int
	ChildPolicy    string
	TotalRooms     int
	Pricing        ratecard.Card
	Packages       ratecard.Card
	Tax            pricing.TaxConfig
	Images         []string
}

// FallbackRoom is a display-only room with one flat nightly price.
type FallbackRoom struct {
	ID       string
	HotelID  string
	Name     string
	Capacity int
	Price    float64
	Images   []string
}

// DisplayRoom is the one room shape the rest of the service consumes.
type DisplayRoom struct {
	ID       string
	HotelID  string
	Name     string
	Profile  occupancy.Profile
	RateCard ratecard.Card
	Tax      pricing.TaxConfig
	Images   []string
	Live     bool
}

func Normalize(src Source) DisplayRoom {
	switch s := src.(type) {
	case Live:
		return normalizeLive(s.Room)
	case Static:
		return normalizeStatic(s.Room)
	default:
		return DisplayRoom{}
	}
}

func normalizeLive(r APIRoom) DisplayRoom {
	card := r.Pricing
	if card.IsEmpty() {
		card = r.Packages
	}
	return DisplayRoom{
		ID:      r.ID,
		HotelID: r.HotelID,
		Name:    r.Name,
		Profile: occupancy.Profile{
			MinAdultsPerRoom:      r.MinAdults,
			TotalOccupancyPerRoom: r.TotalOccupancy,
			ChildAgeThreshold:     occupancy.ParseChildAgeThreshold(r.ChildPolicy),
			TotalRoomsAtProperty:  r.TotalRooms,
		},
		RateCard: card,
		Tax:      r.Tax,
		Images:   r.Images,
		Live:     true,
	}
}

func normalizeStatic(r FallbackRoom) DisplayRoom {
	capacity := max(r.Capacity, 1)
	var card ratecard.Card
	if r.Price > 0 {
		card = ratecard.Card{{
			ID:        "static-" + r.ID,
			RoomCount: 1,
			BasePrice: r.Price,
			MinRooms:  1,
		}}
	}
	return DisplayRoom{
		ID:      r.ID,
		HotelID: r.HotelID,
		Name:    r.Name,
		Profile: occupancy.Profile{
			MinAdultsPerRoom:      capacity,
			TotalOccupancyPerRoom: capacity,
			ChildAgeThreshold:     occupancy.DefaultChildAgeThreshold,
		},
		RateCard: card,
		Images:   r.Images,
	}
}
