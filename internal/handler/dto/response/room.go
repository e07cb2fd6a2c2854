package response

import (
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/domain/stay"
	"hotel-reservation/internal/usecase/queries"
)

type RoomResponse struct {
	ID                    string            `json:"id"`
	HotelID               string            `json:"hotelId"`
	Name                  string            `json:"name"`
	MinAdultsPerRoom      int               `json:"minAdultsPerRoom"`
	TotalOccupancyPerRoom int               `json:"totalOccupancyPerRoom"`
	ChildAgeThreshold     int               `json:"childAgeThreshold"`
	TotalRooms            int               `json:"totalRooms,omitempty"`
	HasGST                bool              `json:"hasGST"`
	GSTPercentage         float64           `json:"gstPercentage"`
	RateCard              []PackageResponse `json:"rateCard"`
	Images                []string          `json:"images,omitempty"`
	Live                  bool              `json:"live"`
}

type AvailabilityDayResponse struct {
	Date      string `json:"date"`
	Available int    `json:"available"`
}

type AvailabilityResponse struct {
	Days         []AvailabilityDayResponse `json:"days"`
	MinAvailable *int                      `json:"minAvailable,omitempty"`
	Error        string                    `json:"error,omitempty"`
}

func FromDisplayRoom(r *room.DisplayRoom) *RoomResponse {
	card := make([]PackageResponse, 0, len(r.RateCard))
	for i := range r.RateCard {
		card = append(card, *FromPackage(&r.RateCard[i]))
	}
	return &RoomResponse{
		ID:                    r.ID,
		HotelID:               r.HotelID,
		Name:                  r.Name,
		MinAdultsPerRoom:      r.Profile.MinAdultsPerRoom,
		TotalOccupancyPerRoom: r.Profile.TotalOccupancyPerRoom,
		ChildAgeThreshold:     r.Profile.ChildAgeThreshold,
		TotalRooms:            r.Profile.TotalRoomsAtProperty,
		HasGST:                r.Tax.HasGST,
		GSTPercentage:         r.Tax.GSTPercentage,
		RateCard:              card,
		Images:                r.Images,
		Live:                  r.Live,
	}
}

// AvailabilityErrorMessage is the calendar failure text shown next to the
// room counter; it never blocks the booking.
const AvailabilityErrorMessage = "Availability could not be loaded"

func FromAvailability(v *queries.AvailabilityView) *AvailabilityResponse {
	days := make([]AvailabilityDayResponse, 0, len(v.Snapshot.Days))
	for _, d := range v.Snapshot.Days {
		days = append(days, AvailabilityDayResponse{
			Date:      d.Date.Format(stay.DateLayout),
			Available: d.Available,
		})
	}
	resp := &AvailabilityResponse{
		Days:         days,
		MinAvailable: v.Snapshot.Ceiling.Value(),
	}
	if v.Err != nil {
		resp.Error = AvailabilityErrorMessage
	}
	return resp
}
