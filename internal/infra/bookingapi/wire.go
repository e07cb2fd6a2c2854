package bookingapi

import (
	"strings"

	"hotel-reservation/internal/domain/availability"
	"hotel-reservation/internal/domain/booking"
	"hotel-reservation/internal/domain/pricing"
	"hotel-reservation/internal/domain/ratecard"
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/domain/stay"
)

type dateFilter struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

type roomDetailsRequest struct {
	HotelID           string     `json:"hotelId"`
	RoomID            string     `json:"roomId"`
	DateFilter        dateFilter `json:"dateFilter"`
	PackageType       string     `json:"packageType,omitempty"`
	ShowRoomsWithRate bool       `json:"showRoomsWithRate"`
}

type roomDetailsResponse struct {
	Room    *roomWire     `json:"room"`
	Pricing []packageWire `json:"pricing"`
	Package []packageWire `json:"package"`
	Message string        `json:"message"`
}

type roomWire struct {
	ID               string    `json:"_id"`
	HotelID          string    `json:"hotelId"`
	Name             string    `json:"roomName"`
	MinAdultsPerRoom int       `json:"minAdultsPerRoom"`
	TotalOccupancy   int       `json:"totalOccupancy"`
	ChildPolicy      string    `json:"childPolicy"`
	TotalRooms       int       `json:"totalRooms"`
	Images           []string  `json:"images"`
	Hotel            hotelWire `json:"hotel"`
}

type hotelWire struct {
	HasGST        bool    `json:"hasGST"`
	GSTPercentage float64 `json:"gstPercentage"`
}

type packageWire struct {
	ID                     string  `json:"_id"`
	RoomCount              int     `json:"roomCount"`
	AC                     bool    `json:"ac"`
	NonAC                  bool    `json:"nonac"`
	BasePrice              float64 `json:"basePrice"`
	NetRate                float64 `json:"netRate"`
	ExtraAdultWithMattress float64 `json:"extraAdultWithMattress"`
	ExtraChildWithMattress float64 `json:"extraChildWithMattress"`
	BreakfastIncluded      bool    `json:"breakfastIncluded"`
	MinRooms               int     `json:"minRooms"`
	AdditionalRules        string  `json:"additionalRules"`
	MealPlan               string  `json:"mealPlan"`
	// GST is carried by some rate rows but hotel-level configuration is authoritative.
	GST float64 `json:"gst,omitempty"`
}

type calendarRequest struct {
	HotelID    string `json:"hotelId"`
	RoomTypeID string `json:"roomTypeId"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

type calendarResponse struct {
	Calendar struct {
		Days []dayWire `json:"days"`
	} `json:"calendar"`
}

type dayWire struct {
	Date      string `json:"date"`
	Available int    `json:"available"`
}

type roomRequirementWire struct {
	RoomID       string  `json:"roomId"`
	PackageID    string  `json:"packageId"`
	NoOfRooms    int     `json:"noOfRooms"`
	Adults       int     `json:"adults"`
	Children     int     `json:"children"`
	Nights       int     `json:"nights"`
	RatePerNight float64 `json:"ratePerNight"`
	MealPlan     string  `json:"mealPlan"`
}

type createBookingRequest struct {
	HotelID             string                `json:"hotelId"`
	UserID              string                `json:"userId"`
	FirstName           string                `json:"firstName"`
	LastName            string                `json:"lastName"`
	Email               string                `json:"email"`
	Phone               string                `json:"phone"`
	Address             string                `json:"address,omitempty"`
	City                string                `json:"city,omitempty"`
	State               string                `json:"state,omitempty"`
	Country             string                `json:"country,omitempty"`
	Pincode             string                `json:"pincode,omitempty"`
	CheckInDate         string                `json:"checkInDate"`
	CheckOutDate        string                `json:"checkOutDate"`
	DateFilter          dateFilter            `json:"dateFilter"`
	RoomRequirements    []roomRequirementWire `json:"roomRequirements"`
	TotalAdults         int                   `json:"totalAdults"`
	TotalChildren       int                   `json:"totalChildren"`
	ExtraAdults         int                   `json:"extraAdults"`
	ExtraChildren       int                   `json:"extraChildren"`
	ExtraAdultsAmount   float64               `json:"extraAdultsAmount"`
	ExtraChildrenAmount float64               `json:"extraChildrenAmount"`
	Subtotal            float64               `json:"subtotal"`
	TaxAmount           float64               `json:"taxAmount"`
	Discount            float64               `json:"discount"`
	TotalAmount         float64               `json:"totalAmount"`
	AdvanceAmount       float64               `json:"advanceAmount"`
	BalanceAmount       float64               `json:"balanceAmount"`
	MealPlan            string                `json:"mealPlan"`
	Remarks             string                `json:"remarks,omitempty"`
}

type createBookingResponse struct {
	Success    *bool  `json:"success"`
	BookingID  string `json:"bookingId"`
	PaymentURL string `json:"paymentUrl"`
	Message    string `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

func (p packageWire) toDomain() ratecard.Package {
	return ratecard.Package{
		ID:                         p.ID,
		RoomCount:                  p.RoomCount,
		AC:                         p.AC,
		NonAC:                      p.NonAC,
		BasePrice:                  p.BasePrice,
		NetRate:                    p.NetRate,
		ExtraAdultRateWithMattress: p.ExtraAdultWithMattress,
		ExtraChildRateWithMattress: p.ExtraChildWithMattress,
		BreakfastIncluded:          p.BreakfastIncluded,
		MinRooms:                   p.MinRooms,
		AdditionalRules:            p.AdditionalRules,
		MealPlan:                   strings.ToUpper(strings.TrimSpace(p.MealPlan)),
	}
}

func toCard(rows []packageWire) ratecard.Card {
	if len(rows) == 0 {
		return nil
	}
	card := make(ratecard.Card, 0, len(rows))
	for _, r := range rows {
		card = append(card, r.toDomain())
	}
	return card
}

func (r roomDetailsResponse) toDomain(hotelID string) room.APIRoom {
	w := r.Room
	apiRoom := room.APIRoom{
		ID:             w.ID,
		HotelID:        w.HotelID,
		Name:           w.Name,
		MinAdults:      w.MinAdultsPerRoom,
		TotalOccupancy: w.TotalOccupancy,
		ChildPolicy:    w.ChildPolicy,
		TotalRooms:     w.TotalRooms,
		Pricing:        toCard(r.Pricing),
		Packages:       toCard(r.Package),
		Tax: pricing.TaxConfig{
			HasGST:        w.Hotel.HasGST,
			GSTPercentage: w.Hotel.GSTPercentage,
		},
		Images: w.Images,
	}
	if apiRoom.HotelID == "" {
		apiRoom.HotelID = hotelID
	}
	return apiRoom
}

// days with unparseable dates are dropped rather than failing the month
func (c calendarResponse) toDomain() []availability.Day {
	days := make([]availability.Day, 0, len(c.Calendar.Days))
	for _, d := range c.Calendar.Days {
		date, err := stay.ParseDate(d.Date)
		if err != nil {
			continue
		}
		days = append(days, availability.Day{Date: date, Available: max(d.Available, 0)})
	}
	return days
}

func fromBookingRequest(req *booking.Request) createBookingRequest {
	rooms := make([]roomRequirementWire, 0, len(req.Rooms))
	for _, r := range req.Rooms {
		rooms = append(rooms, roomRequirementWire{
			RoomID:       r.RoomID,
			PackageID:    r.PackageID,
			NoOfRooms:    r.RoomCount,
			Adults:       r.Adults,
			Children:     r.Children,
			Nights:       r.Nights,
			RatePerNight: r.RatePerNight,
			MealPlan:     r.MealPlan,
		})
	}
	return createBookingRequest{
		HotelID:             req.HotelID,
		UserID:              req.UserID,
		FirstName:           req.Guest.FirstName,
		LastName:            req.Guest.LastName,
		Email:               req.Guest.Email,
		Phone:               req.Guest.Phone,
		Address:             req.Guest.Address,
		City:                req.Guest.City,
		State:               req.Guest.State,
		Country:             req.Guest.Country,
		Pincode:             req.Guest.PostalCode,
		CheckInDate:         req.CheckIn,
		CheckOutDate:        req.CheckOut,
		DateFilter:          dateFilter{From: req.FromMs, To: req.ToMs},
		RoomRequirements:    rooms,
		TotalAdults:         req.TotalAdults,
		TotalChildren:       req.TotalChildren,
		ExtraAdults:         req.ExtraAdults,
		ExtraChildren:       req.ExtraChildren,
		ExtraAdultsAmount:   req.ExtraAdultsAmount,
		ExtraChildrenAmount: req.ExtraChildrenAmount,
		Subtotal:            req.Subtotal,
		TaxAmount:           req.TaxAmount,
		Discount:            req.DiscountAmount,
		TotalAmount:         req.TotalAmount,
		AdvanceAmount:       req.AdvanceAmount,
		BalanceAmount:       req.BalanceAmount,
		MealPlan:            req.MealPlan,
		Remarks:             req.Remarks,
	}
}
