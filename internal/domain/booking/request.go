package booking

// GuestForm is the contact block filled in on the review page.
type GuestForm struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Address         string
	City            string
	State           string
	Country         string
	PostalCode      string
	SpecialRequests string
}

func (g GuestForm) FullName() string {
	switch {
	case g.FirstName == "":
		return g.LastName
	case g.LastName == "":
		return g.FirstName
	default:
		return g.FirstName + " " + g.LastName
	}
}

type RoomRequirement struct {
	RoomID       string
	PackageID    string
	RoomCount    int
	Adults       int
	Children     int
	Nights       int
	RatePerNight float64
	MealPlan     string
}

// Request is the outbound booking-creation payload.
type Request struct {
	HotelID  string
	UserID   string
	Guest    GuestForm
	CheckIn  string
	CheckOut string
	FromMs   int64
	ToMs     int64
	Rooms    []RoomRequirement

	TotalAdults         int
	TotalChildren       int
	ExtraAdults         int
	ExtraChildren       int
	ExtraAdultsAmount   float64
	ExtraChildrenAmount float64
	Subtotal            float64
	TaxAmount           float64
	DiscountAmount      float64
	TotalAmount         float64
	AdvanceAmount       float64
	BalanceAmount       float64
	MealPlan            string
	Remarks             string
}

// Confirmation is the booking API's answer; the flow ends by redirecting to PaymentURL.
type Confirmation struct {
	BookingID  string
	PaymentURL string
	Message    string
}
