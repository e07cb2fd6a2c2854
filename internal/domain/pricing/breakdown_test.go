//go:build unit

package pricing_test

import (
	"testing"

	"hotel-reservation/internal/domain/occupancy"
	"hotel-reservation/internal/domain/pricing"
	"hotel-reservation/internal/domain/ratecard"
	"hotel-reservation/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	t.Run("full breakdown with GST and the advance split", func(t *testing.T) {
		pkg := builder.NewPackageBuilder().Build()
		split := occupancy.Split{RoomCount: 2, ExtraAdultsCount: 1}

		got := pricing.Compute(&pkg, 2, 2, split, pricing.TaxConfig{HasGST: true, GSTPercentage: 12}, 0)

		want := pricing.Breakdown{
			BaseRoomPrice:    1000,
			Nights:           2,
			Rooms:            2,
			BaseTotal:        4000,
			ExtraAdultsCount: 1,
			ExtraAdultsTotal: 600,
			Subtotal:         4600,
			HasGST:           true,
			GSTPercentage:    12,
			Taxes:            552,
			Total:            5152,
			AmountToPayNow:   1545.6,
			RemainingBalance: 3606.4,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Compute() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("discount never drives the total negative", func(t *testing.T) {
		pkg := builder.NewPackageBuilder().WithBasePrice(500).Build()

		got := pricing.Compute(&pkg, 1, 2, occupancy.Split{}, pricing.TaxConfig{}, 5000)

		assert.Equal(t, 1000.0, got.Subtotal)
		assert.Equal(t, 0.0, got.Taxes)
		assert.Equal(t, 0.0, got.Total)
		assert.Equal(t, 0.0, got.AmountToPayNow)
		assert.Equal(t, 0.0, got.RemainingBalance)
	})

	t.Run("extra children are charged per night", func(t *testing.T) {
		pkg := builder.NewPackageBuilder().Build()
		got := pricing.Compute(&pkg, 3, 1, occupancy.Split{ExtraChildrenCount: 2}, pricing.TaxConfig{}, 0)
		assert.Equal(t, 900.0, got.ExtraChildrenTotal)
		assert.Equal(t, 3900.0, got.Total)
	})

	t.Run("missing package yields a zero breakdown", func(t *testing.T) {
		assert.True(t, pricing.Compute(nil, 2, 1, occupancy.Split{}, pricing.TaxConfig{}, 0).IsZero())
	})

	t.Run("zero nights yields a zero breakdown", func(t *testing.T) {
		pkg := ratecard.Package{BasePrice: 1000}
		assert.True(t, pricing.Compute(&pkg, 0, 1, occupancy.Split{}, pricing.TaxConfig{}, 0).IsZero())
	})

	t.Run("advance and balance always add up to the total", func(t *testing.T) {
		pkg := builder.NewPackageBuilder().WithBasePrice(1234.57).Build()
		got := pricing.Compute(&pkg, 3, 1, occupancy.Split{}, pricing.TaxConfig{HasGST: true, GSTPercentage: 18}, 0)
		assert.InDelta(t, got.Total, got.AmountToPayNow+got.RemainingBalance, 0.001)
	})
}
