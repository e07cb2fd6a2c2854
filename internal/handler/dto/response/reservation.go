package response

import (
	"log/slog"

	"github.com/jinzhu/copier"

	"hotel-reservation/internal/domain/booking"
	"hotel-reservation/internal/domain/occupancy"
	"hotel-reservation/internal/domain/pricing"
	"hotel-reservation/internal/domain/ratecard"
	"hotel-reservation/internal/usecase/commands"
	"hotel-reservation/internal/usecase/queries"
)

type BreakdownResponse struct {
	BaseRoomPrice      float64 `json:"baseRoomPrice"`
	Nights             int     `json:"nights"`
	Rooms              int     `json:"rooms"`
	BaseTotal          float64 `json:"baseTotal"`
	ExtraAdultsCount   int     `json:"extraAdultsCount"`
	ExtraChildrenCount int     `json:"extraChildrenCount"`
	ExtraAdultsTotal   float64 `json:"extraAdultsTotal"`
	ExtraChildrenTotal float64 `json:"extraChildrenTotal"`
	Subtotal           float64 `json:"subtotal"`
	HasGST             bool    `json:"hasGST"`
	GSTPercentage      float64 `json:"gstPercentage"`
	Taxes              float64 `json:"taxes"`
	Discount           float64 `json:"discount"`
	Total              float64 `json:"total"`
	AmountToPayNow     float64 `json:"amountToPayNow"`
	RemainingBalance   float64 `json:"remainingBalance"`
}

type OccupancyResponse struct {
	RequiredRoomCount    int `json:"requiredRoomCount"`
	TotalAdults          int `json:"totalAdults"`
	TotalChildren        int `json:"totalChildren"`
	AdditionalAdults     int `json:"additionalAdults"`
	AdditionalChildren   int `json:"additionalChildren"`
	BaseOccupancyCovered int `json:"baseOccupancyCovered"`
	MaxCapacity          int `json:"maxCapacity"`
	ValidTotalGuests     int `json:"validTotalGuests"`
	ExtraAdultsCount     int `json:"extraAdultsCount"`
	ExtraChildrenCount   int `json:"extraChildrenCount"`
	ChildAgeThreshold    int `json:"childAgeThreshold"`
}

type RoomCountResponse struct {
	Selected     int  `json:"selected"`
	Required     int  `json:"required"`
	Ceiling      *int `json:"ceiling,omitempty"`
	Adjusted     bool `json:"adjusted"`
	CanDecrement bool `json:"canDecrement"`
	CanIncrement bool `json:"canIncrement"`
}

type PackageResponse struct {
	ID                         string  `json:"id"`
	RoomCount                  int     `json:"roomCount"`
	AC                         bool    `json:"ac"`
	NonAC                      bool    `json:"nonAc"`
	UnitPrice                  float64 `json:"unitPrice"`
	ExtraAdultRateWithMattress float64 `json:"extraAdultRateWithMattress"`
	ExtraChildRateWithMattress float64 `json:"extraChildRateWithMattress"`
	BreakfastIncluded          bool    `json:"breakfastIncluded"`
	MinRooms                   int     `json:"minRooms,omitempty"`
	AdditionalRules            string  `json:"additionalRules,omitempty"`
	MealPlan                   string  `json:"mealPlan"`
}

type QuoteResponse struct {
	Generation   uint64            `json:"generation"`
	CheckIn      string            `json:"checkIn,omitempty"`
	CheckOut     string            `json:"checkOut,omitempty"`
	RoomName     string            `json:"roomName,omitempty"`
	Breakdown    BreakdownResponse `json:"breakdown"`
	Occupancy    OccupancyResponse `json:"occupancy"`
	RoomCount    RoomCountResponse `json:"roomCount"`
	MinAvailable *int              `json:"minAvailable,omitempty"`
	Package      *PackageResponse  `json:"package,omitempty"`
	Blocking     []string          `json:"blocking"`
	Warnings     []string          `json:"warnings"`
	CanSubmit    bool              `json:"canSubmit"`
}

type SubmitResponse struct {
	BookingID      string `json:"bookingId,omitempty"`
	PaymentURL     string `json:"paymentUrl"`
	IdempotencyKey string `json:"idempotencyKey"`
	Replayed       bool   `json:"replayed,omitempty"`
}

func FromBreakdown(b pricing.Breakdown) BreakdownResponse {
	var out BreakdownResponse
	// field names line up one to one
	if err := copier.Copy(&out, &b); err != nil {
		slog.Error("breakdown mapping failed", "error", err)
	}
	return out
}

func FromPackage(p *ratecard.Package) *PackageResponse {
	if p == nil {
		return nil
	}
	out := &PackageResponse{}
	if err := copier.Copy(out, p); err != nil {
		slog.Error("package mapping failed", "package_id", p.ID, "error", err)
	}
	out.UnitPrice = p.UnitPrice()
	out.MealPlan = p.ResolvedMealPlan()
	return out
}

func fromOccupancy(r occupancy.Result, s occupancy.Split) OccupancyResponse {
	return OccupancyResponse{
		RequiredRoomCount:    r.RequiredRoomCount,
		TotalAdults:          r.TotalAdults,
		TotalChildren:        r.TotalChildren,
		AdditionalAdults:     r.AdditionalAdults,
		AdditionalChildren:   r.AdditionalChildren,
		BaseOccupancyCovered: s.BaseOccupancyCovered,
		MaxCapacity:          s.MaxCapacity,
		ValidTotalGuests:     s.ValidTotalGuests,
		ExtraAdultsCount:     s.ExtraAdultsCount,
		ExtraChildrenCount:   s.ExtraChildrenCount,
		ChildAgeThreshold:    r.Profile().ChildAgeThreshold,
	}
}

func fromRoomCount(rc occupancy.RoomCount) RoomCountResponse {
	return RoomCountResponse{
		Selected:     rc.Requested,
		Required:     rc.Required,
		Ceiling:      rc.Ceiling,
		Adjusted:     rc.Bumped,
		CanDecrement: rc.CanDecrement(),
		CanIncrement: rc.CanIncrement(),
	}
}

func FromQuote(q *queries.Quote) *QuoteResponse {
	resp := &QuoteResponse{
		Generation:   q.Generation,
		RoomName:     q.Room.Name,
		Breakdown:    FromBreakdown(q.Breakdown),
		Occupancy:    fromOccupancy(q.Occupancy, q.Split),
		RoomCount:    fromRoomCount(q.RoomCount),
		MinAvailable: q.Availability.Ceiling.Value(),
		Package:      FromPackage(q.Package),
		Blocking:     BlockReasons(q.Blocking),
		Warnings:     make([]string, 0, len(q.Warnings)),
		CanSubmit:    q.CanSubmit,
	}
	if !q.Dates.IsZero() {
		resp.CheckIn = q.Dates.CheckInString()
		resp.CheckOut = q.Dates.CheckOutString()
	}
	for _, w := range q.Warnings {
		resp.Warnings = append(resp.Warnings, string(w))
	}
	return resp
}

func BlockReasons(reasons []booking.BlockReason) []string {
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, string(r))
	}
	return out
}

func FromSubmitResult(r *commands.SubmitResult) *SubmitResponse {
	return &SubmitResponse{
		BookingID:      r.BookingID,
		PaymentURL:     r.PaymentURL,
		IdempotencyKey: r.IdempotencyKey,
		Replayed:       r.Replayed,
	}
}
