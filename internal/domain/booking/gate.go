package booking

import (
	"strings"

	"hotel-reservation/internal/domain/occupancy"
	"hotel-reservation/internal/domain/ratecard"
	"hotel-reservation/internal/domain/stay"
)

type BlockReason string

const (
	BlockMissingDates       BlockReason = "missing_dates"
	BlockZeroNights         BlockReason = "zero_nights"
	BlockMissingHotel       BlockReason = "missing_hotel"
	BlockMissingRoom        BlockReason = "missing_room"
	BlockMissingUser        BlockReason = "missing_user"
	BlockMissingAdults      BlockReason = "missing_adults"
	BlockRateCardEmpty      BlockReason = "rate_card_empty"
	BlockBelowRequiredRooms BlockReason = BlockReason(occupancy.ViolationBelowRequired)
	BlockAboveAvailability  BlockReason = BlockReason(occupancy.ViolationAboveAvailability)
)

type GateInput struct {
	HotelID string
	RoomID  string
	UserID  string
	// BaseAdults is the adult count picked on the form, before additional guests.
	BaseAdults int
	Dates      stay.DateRange
	Package    *ratecard.Package
	RoomCount  occupancy.RoomCount
}

// Evaluate lists every reason submission must stay disabled. An unknown
// availability ceiling is not a reason.
func Evaluate(in GateInput) []BlockReason {
	var reasons []BlockReason
	if strings.TrimSpace(in.HotelID) == "" {
		reasons = append(reasons, BlockMissingHotel)
	}
	if strings.TrimSpace(in.RoomID) == "" {
		reasons = append(reasons, BlockMissingRoom)
	}
	if strings.TrimSpace(in.UserID) == "" {
		reasons = append(reasons, BlockMissingUser)
	}
	if in.BaseAdults < 1 {
		reasons = append(reasons, BlockMissingAdults)
	}
	switch {
	case in.Dates.IsZero():
		reasons = append(reasons, BlockMissingDates)
	case in.Dates.Nights() == 0:
		reasons = append(reasons, BlockZeroNights)
	}
	if in.Package == nil {
		reasons = append(reasons, BlockRateCardEmpty)
	}
	for _, v := range in.RoomCount.Violations() {
		reasons = append(reasons, BlockReason(v))
	}
	return reasons
}
