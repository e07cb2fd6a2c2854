package request

import (
	"strings"

	"hotel-reservation/internal/domain/booking"
	"hotel-reservation/internal/domain/occupancy"
	"hotel-reservation/internal/pkg/patch"
	"hotel-reservation/internal/usecase/commands"
	"hotel-reservation/internal/usecase/queries"
)

type AdditionalGuestRequest struct {
	Name         string `json:"name" binding:"max=100"`
	Age          int    `json:"age" binding:"min=0,max=120"`
	Relationship string `json:"relationship,omitempty" binding:"max=50"`
}

// QuoteRequest is the review form snapshot. Dates may be blank while the
// guest is still choosing them.
type QuoteRequest struct {
	HotelID          string                   `json:"hotelId" binding:"required,max=64"`
	RoomID           string                   `json:"roomId" binding:"required,max=64"`
	CheckIn          string                   `json:"checkIn" binding:"omitempty,date"`
	CheckOut         string                   `json:"checkOut" binding:"omitempty,date"`
	Adults           int                      `json:"adults" binding:"min=0,max=50"`
	Children         int                      `json:"children" binding:"min=0,max=50"`
	AdditionalGuests []AdditionalGuestRequest `json:"additionalGuests,omitempty" binding:"max=20,dive"`
	Rooms            *int                     `json:"rooms,omitempty" binding:"omitempty,min=0,max=100"`
	AC               *bool                    `json:"ac,omitempty"`
	PackageID        string                   `json:"packageId,omitempty" binding:"max=64"`
	Discount         *float64                 `json:"discount,omitempty" binding:"omitempty,min=0"`
}

func (r QuoteRequest) ToInput(sessionID, userID string) queries.QuoteInput {
	guests := make([]occupancy.AdditionalGuest, 0, len(r.AdditionalGuests))
	for _, g := range r.AdditionalGuests {
		guest := occupancy.AdditionalGuest{Name: g.Name, Age: g.Age, Relationship: g.Relationship}
		patch.TrimSpace(&guest.Name, &guest.Relationship)
		guests = append(guests, guest)
	}
	return queries.QuoteInput{
		SessionID:      sessionID,
		UserID:         userID,
		HotelID:        strings.TrimSpace(r.HotelID),
		RoomID:         strings.TrimSpace(r.RoomID),
		CheckIn:        strings.TrimSpace(r.CheckIn),
		CheckOut:       strings.TrimSpace(r.CheckOut),
		BaseAdults:     r.Adults,
		BaseChildren:   r.Children,
		Guests:         guests,
		RequestedRooms: patch.Coalesce(r.Rooms, 0),
		ACPreference:   r.AC,
		PackageID:      strings.TrimSpace(r.PackageID),
		Discount:       patch.Coalesce(r.Discount, 0),
	}
}

type GuestRequest struct {
	FirstName       string `json:"firstName" binding:"required,max=100"`
	LastName        string `json:"lastName" binding:"max=100"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required,min=7,max=20"`
	Address         string `json:"address,omitempty" binding:"max=300"`
	City            string `json:"city,omitempty" binding:"max=100"`
	State           string `json:"state,omitempty" binding:"max=100"`
	Country         string `json:"country,omitempty" binding:"max=100"`
	PostalCode      string `json:"postalCode,omitempty" binding:"max=20"`
	SpecialRequests string `json:"specialRequests,omitempty" binding:"max=1000"`
}

func (g GuestRequest) ToDomain() booking.GuestForm {
	form := booking.GuestForm{
		FirstName:       g.FirstName,
		LastName:        g.LastName,
		Email:           g.Email,
		Phone:           g.Phone,
		Address:         g.Address,
		City:            g.City,
		State:           g.State,
		Country:         g.Country,
		PostalCode:      g.PostalCode,
		SpecialRequests: g.SpecialRequests,
	}
	patch.TrimSpace(&form.FirstName, &form.LastName, &form.Email, &form.Phone, &form.Address,
		&form.City, &form.State, &form.Country, &form.PostalCode, &form.SpecialRequests)
	return form
}

type SubmitReservationRequest struct {
	QuoteRequest
	Guest GuestRequest `json:"guest"`
}

func (r SubmitReservationRequest) ToInput(userID, idempotencyKey string) commands.SubmitInput {
	return commands.SubmitInput{
		Quote:          r.QuoteRequest.ToInput("", userID),
		Guest:          r.Guest.ToDomain(),
		IdempotencyKey: idempotencyKey,
	}
}

// StayQuery carries the optional stay dates of room and availability lookups.
type StayQuery struct {
	CheckIn  string `form:"checkIn" binding:"omitempty,date"`
	CheckOut string `form:"checkOut" binding:"omitempty,date"`
}

type RoomURI struct {
	HotelID string `uri:"hotelId" binding:"required,max=64"`
	RoomID  string `uri:"roomId" binding:"required,max=64"`
}
