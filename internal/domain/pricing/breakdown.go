package pricing

import (
	"math"

	"hotel-reservation/internal/domain/occupancy"
	"hotel-reservation/internal/domain/ratecard"
)

// AdvancePaymentRatio is the share of the total collected at booking time.
const AdvancePaymentRatio = 0.30

// TaxConfig is hotel-level GST configuration. Tax-looking fields on rate
// packages are ignored.
type TaxConfig struct {
	HasGST        bool
	GSTPercentage float64
}

type Breakdown struct {
	BaseRoomPrice      float64
	Nights             int
	Rooms              int
	BaseTotal          float64
	ExtraAdultsCount   int
	ExtraChildrenCount int
	ExtraAdultsTotal   float64
	ExtraChildrenTotal float64
	Subtotal           float64
	HasGST             bool
	GSTPercentage      float64
	Taxes              float64
	Discount           float64
	Total              float64
	AmountToPayNow     float64
	RemainingBalance   float64
}

func (b Breakdown) IsZero() bool {
	return b == Breakdown{}
}

// Compute never fails: a missing package or a zero-night stay yields an
// all-zero breakdown and submission is blocked elsewhere.
func Compute(pkg *ratecard.Package, nights, rooms int, split occupancy.Split, tax TaxConfig, discount float64) Breakdown {
	if pkg == nil || nights <= 0 {
		return Breakdown{}
	}
	rooms = max(rooms, 0)
	discount = math.Max(discount, 0)

	unit := pkg.UnitPrice()
	baseTotal := unit * float64(nights) * float64(rooms)
	extraAdults := float64(split.ExtraAdultsCount) * pkg.ExtraAdultRateWithMattress * float64(nights)
	extraChildren := float64(split.ExtraChildrenCount) * pkg.ExtraChildRateWithMattress * float64(nights)
	subtotal := baseTotal + extraAdults + extraChildren

	var taxes float64
	if tax.HasGST {
		taxes = round2(subtotal * tax.GSTPercentage / 100)
	}

	total := round2(math.Max(0, subtotal+taxes-discount))
	advance := round2(total * AdvancePaymentRatio)

	return Breakdown{
		BaseRoomPrice:      unit,
		Nights:             nights,
		Rooms:              rooms,
		BaseTotal:          round2(baseTotal),
		ExtraAdultsCount:   split.ExtraAdultsCount,
		ExtraChildrenCount: split.ExtraChildrenCount,
		ExtraAdultsTotal:   round2(extraAdults),
		ExtraChildrenTotal: round2(extraChildren),
		Subtotal:           round2(subtotal),
		HasGST:             tax.HasGST,
		GSTPercentage:      tax.GSTPercentage,
		Taxes:              taxes,
		Discount:           discount,
		Total:              total,
		AmountToPayNow:     advance,
		RemainingBalance:   round2(total - advance),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
