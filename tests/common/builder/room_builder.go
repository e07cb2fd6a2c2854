//go:build unit || e2e

package builder

import (
	"hotel-reservation/internal/domain/occupancy"
	"hotel-reservation/internal/domain/pricing"
	"hotel-reservation/internal/domain/ratecard"
	"hotel-reservation/internal/domain/room"
)

type RoomBuilder struct {
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
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		ID:             "room-deluxe",
		HotelID:        "hotel-1",
		Name:           "Deluxe Room",
		MinAdults:      2,
		TotalOccupancy: 3,
		ChildPolicy:    "Children 12 years and above are charged as adults",
		TotalRooms:     10,
		Pricing: ratecard.Card{
			NewPackageBuilder().WithID("pkg-1").WithRoomCount(1).Build(),
			NewPackageBuilder().WithID("pkg-2").WithRoomCount(2).Build(),
			NewPackageBuilder().WithID("pkg-4").WithRoomCount(4).Build(),
		},
		Tax: pricing.TaxConfig{HasGST: true, GSTPercentage: 12},
	}
}

func (b *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(b)
	return b
}

func (b *RoomBuilder) WithCard(card ratecard.Card) *RoomBuilder {
	b.Pricing = card
	return b
}

func (b *RoomBuilder) WithOccupancy(minAdults, total int) *RoomBuilder {
	b.MinAdults = minAdults
	b.TotalOccupancy = total
	return b
}

func (b *RoomBuilder) WithoutGST() *RoomBuilder {
	b.Tax = pricing.TaxConfig{}
	return b
}

// Build methods
func (b *RoomBuilder) BuildAPIRoom() room.APIRoom {
	return room.APIRoom{
		ID:             b.ID,
		HotelID:        b.HotelID,
		Name:           b.Name,
		MinAdults:      b.MinAdults,
		TotalOccupancy: b.TotalOccupancy,
		ChildPolicy:    b.ChildPolicy,
		TotalRooms:     b.TotalRooms,
		Pricing:        b.Pricing,
		Packages:       b.Packages,
		Tax:            b.Tax,
	}
}

func (b *RoomBuilder) BuildSource() room.Source {
	return room.Live{Room: b.BuildAPIRoom()}
}

func (b *RoomBuilder) BuildDisplay() room.DisplayRoom {
	return room.Normalize(b.BuildSource())
}

func (b *RoomBuilder) BuildProfile() occupancy.Profile {
	return b.BuildDisplay().Profile
}

type PackageBuilder struct {
	pkg ratecard.Package
}

func NewPackageBuilder() *PackageBuilder {
	return &PackageBuilder{pkg: ratecard.Package{
		ID:                         "pkg-1",
		RoomCount:                  1,
		AC:                         true,
		NonAC:                      true,
		BasePrice:                  1000,
		NetRate:                    900,
		ExtraAdultRateWithMattress: 300,
		ExtraChildRateWithMattress: 150,
		MinRooms:                   1,
	}}
}

func (b *PackageBuilder) WithID(id string) *PackageBuilder {
	b.pkg.ID = id
	return b
}

func (b *PackageBuilder) WithRoomCount(n int) *PackageBuilder {
	b.pkg.RoomCount = n
	return b
}

func (b *PackageBuilder) WithAC(ac, nonAC bool) *PackageBuilder {
	b.pkg.AC = ac
	b.pkg.NonAC = nonAC
	return b
}

func (b *PackageBuilder) WithBasePrice(price float64) *PackageBuilder {
	b.pkg.BasePrice = price
	return b
}

func (b *PackageBuilder) WithMealPlan(plan string) *PackageBuilder {
	b.pkg.MealPlan = plan
	return b
}

func (b *PackageBuilder) Build() ratecard.Package {
	return b.pkg
}
