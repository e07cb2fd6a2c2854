//go:build unit || e2e

package builder

import (
	"hotel-reservation/internal/domain/availability"
	"hotel-reservation/internal/domain/booking"
	"hotel-reservation/internal/domain/occupancy"
	"hotel-reservation/internal/domain/pricing"
	"hotel-reservation/internal/domain/ratecard"
	"hotel-reservation/internal/domain/stay"
	reqdto "hotel-reservation/internal/handler/dto/request"
	"hotel-reservation/internal/pkg/ptr"
	usecaseavail "hotel-reservation/internal/usecase/availability"
	"hotel-reservation/internal/usecase/queries"
)

type QuoteBuilder struct {
	SessionID string
	UserID    string
	HotelID   string
	RoomID    string
	CheckIn   string
	CheckOut  string
	Adults    int
	Children  int
	Guests    []occupancy.AdditionalGuest
	Rooms     int
	AC        *bool
	PackageID string
	Discount  float64
}

func NewQuoteBuilder() *QuoteBuilder {
	return &QuoteBuilder{
		SessionID: "session-1",
		UserID:    "user-1",
		HotelID:   "hotel-1",
		RoomID:    "room-deluxe",
		CheckIn:   "2025-03-10",
		CheckOut:  "2025-03-12",
		Adults:    2,
		Rooms:     1,
	}
}

func (b *QuoteBuilder) With(mutate func(*QuoteBuilder)) *QuoteBuilder {
	mutate(b)
	return b
}

func (b *QuoteBuilder) WithDates(checkIn, checkOut string) *QuoteBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *QuoteBuilder) WithGuests(adults, children int) *QuoteBuilder {
	b.Adults = adults
	b.Children = children
	return b
}

func (b *QuoteBuilder) WithAdditionalGuest(name string, age int, relationship string) *QuoteBuilder {
	b.Guests = append(b.Guests, occupancy.AdditionalGuest{Name: name, Age: age, Relationship: relationship})
	return b
}

func (b *QuoteBuilder) WithRooms(n int) *QuoteBuilder {
	b.Rooms = n
	return b
}

// Build methods
func (b *QuoteBuilder) BuildInput() queries.QuoteInput {
	return queries.QuoteInput{
		SessionID:      b.SessionID,
		UserID:         b.UserID,
		HotelID:        b.HotelID,
		RoomID:         b.RoomID,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		BaseAdults:     b.Adults,
		BaseChildren:   b.Children,
		Guests:         b.Guests,
		RequestedRooms: b.Rooms,
		ACPreference:   b.AC,
		PackageID:      b.PackageID,
		Discount:       b.Discount,
	}
}

func (b *QuoteBuilder) BuildRequestDTO() reqdto.QuoteRequest {
	guests := make([]reqdto.AdditionalGuestRequest, 0, len(b.Guests))
	for _, g := range b.Guests {
		guests = append(guests, reqdto.AdditionalGuestRequest{Name: g.Name, Age: g.Age, Relationship: g.Relationship})
	}
	req := reqdto.QuoteRequest{
		HotelID:          b.HotelID,
		RoomID:           b.RoomID,
		CheckIn:          b.CheckIn,
		CheckOut:         b.CheckOut,
		Adults:           b.Adults,
		Children:         b.Children,
		AdditionalGuests: guests,
		Rooms:            ptr.To(b.Rooms),
		AC:               b.AC,
		PackageID:        b.PackageID,
	}
	if b.Discount > 0 {
		req.Discount = ptr.To(b.Discount)
	}
	return req
}

func (b *QuoteBuilder) BuildSubmitDTO(guest reqdto.GuestRequest) reqdto.SubmitReservationRequest {
	return reqdto.SubmitReservationRequest{QuoteRequest: b.BuildRequestDTO(), Guest: guest}
}

// BuildQuote runs the pricing pipeline over the snapshot for the given room and
// known availability ceiling, as the quote use case would.
func (b *QuoteBuilder) BuildQuote(rb *RoomBuilder, minAvailable int) *queries.Quote {
	display := rb.BuildDisplay()
	dates, err := stay.ParseDateRange(b.CheckIn, b.CheckOut)
	if err != nil {
		panic(err)
	}
	occ := occupancy.Resolve(display.Profile, b.Adults, b.Children, b.Guests)
	ceiling := availability.Known(minAvailable)
	rc := occupancy.NewRoomCount(b.Rooms, occ.RequiredRoomCount, ceiling.Value())

	var pkg *ratecard.Package
	if p, ok := ratecard.SelectPackage(display.RateCard, rc.Requested, b.AC, b.PackageID); ok {
		pkg = &p
	}
	split := occ.Split(rc.Requested)
	blocking := booking.Evaluate(booking.GateInput{
		HotelID:    b.HotelID,
		RoomID:     b.RoomID,
		UserID:     b.UserID,
		BaseAdults: b.Adults,
		Dates:      dates,
		Package:    pkg,
		RoomCount:  rc,
	})

	return &queries.Quote{
		Room:         display,
		Dates:        dates,
		Occupancy:    occ,
		Split:        split,
		RoomCount:    rc,
		Availability: usecaseavail.Snapshot{Ceiling: ceiling},
		Package:      pkg,
		Breakdown:    pricing.Compute(pkg, dates.Nights(), rc.Requested, split, display.Tax, b.Discount),
		Blocking:     blocking,
		CanSubmit:    len(blocking) == 0,
		Generation:   1,
	}
}

func NewGuestForm() booking.GuestForm {
	return booking.GuestForm{
		FirstName:       "Asha",
		LastName:        "Rao",
		Email:           "asha@example.com",
		Phone:           "9876543210",
		City:            "Pune",
		Country:         "India",
		SpecialRequests: "Late check-in",
	}
}

func NewGuestRequest() reqdto.GuestRequest {
	g := NewGuestForm()
	return reqdto.GuestRequest{
		FirstName:       g.FirstName,
		LastName:        g.LastName,
		Email:           g.Email,
		Phone:           g.Phone,
		City:            g.City,
		Country:         g.Country,
		SpecialRequests: g.SpecialRequests,
	}
}
