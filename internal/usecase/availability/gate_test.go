//go:build unit

package availability_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domavail "hotel-reservation/internal/domain/availability"
	"hotel-reservation/internal/domain/stay"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/usecase/availability"
)

type MockCalendarSource struct {
	mock.Mock
}

func (m *MockCalendarSource) MonthCalendar(ctx context.Context, hotelID, roomID string, month domavail.Month) ([]domavail.Day, error) {
	args := m.Called(ctx, hotelID, roomID, month)
	days, _ := args.Get(0).([]domavail.Day)
	return days, args.Error(1)
}

func day(y int, m time.Month, d, available int) domavail.Day {
	return domavail.Day{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Available: available}
}

func mustRange(t *testing.T, in, out string) stay.DateRange {
	t.Helper()
	r, err := stay.ParseDateRange(in, out)
	require.NoError(t, err)
	return r
}

func newGate(src *MockCalendarSource) availability.Gate {
	return availability.NewGate(src, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestComputeCeiling(t *testing.T) {
	jan := domavail.Month{Year: 2025, Month: time.January}
	feb := domavail.Month{Year: 2025, Month: time.February}

	t.Run("stay crossing a month boundary reads both months and ignores check-out day", func(t *testing.T) {
		src := new(MockCalendarSource)
		src.On("MonthCalendar", mock.Anything, "h1", "r1", jan).
			Return([]domavail.Day{day(2025, 1, 30, 5), day(2025, 1, 31, 3)}, nil).Once()
		src.On("MonthCalendar", mock.Anything, "h1", "r1", feb).
			Return([]domavail.Day{day(2025, 2, 1, 4), day(2025, 2, 2, 0)}, nil).Once()

		snap, err := newGate(src).ComputeCeiling(context.Background(), "h1", "r1", mustRange(t, "2025-01-30", "2025-02-02"))
		require.NoError(t, err)

		n, ok := snap.Ceiling.MinAvailable()
		assert.True(t, ok)
		assert.Equal(t, 3, n)
		assert.Len(t, snap.Days, 3)
		src.AssertExpectations(t)
	})

	t.Run("check-out on the first of a month does not fetch that month", func(t *testing.T) {
		src := new(MockCalendarSource)
		src.On("MonthCalendar", mock.Anything, "h1", "r1", jan).
			Return([]domavail.Day{day(2025, 1, 31, 2)}, nil).Once()

		snap, err := newGate(src).ComputeCeiling(context.Background(), "h1", "r1", mustRange(t, "2025-01-31", "2025-02-01"))
		require.NoError(t, err)
		assert.Equal(t, 2, *snap.Ceiling.Value())
		src.AssertNotCalled(t, "MonthCalendar", mock.Anything, "h1", "r1", feb)
	})

	t.Run("no matching days yields unknown ceiling", func(t *testing.T) {
		src := new(MockCalendarSource)
		src.On("MonthCalendar", mock.Anything, "h1", "r1", jan).Return([]domavail.Day{}, nil)

		snap, err := newGate(src).ComputeCeiling(context.Background(), "h1", "r1", mustRange(t, "2025-01-10", "2025-01-12"))
		require.NoError(t, err)
		assert.False(t, snap.Ceiling.IsKnown())
		assert.True(t, snap.Ceiling.Allows(100))
	})

	t.Run("fetch failure is reported with unknown ceiling", func(t *testing.T) {
		src := new(MockCalendarSource)
		src.On("MonthCalendar", mock.Anything, "h1", "r1", jan).Return(nil, errors.New("timeout"))
		src.On("MonthCalendar", mock.Anything, "h1", "r1", feb).Return([]domavail.Day{day(2025, 2, 1, 1)}, nil).Maybe()

		snap, err := newGate(src).ComputeCeiling(context.Background(), "h1", "r1", mustRange(t, "2025-01-30", "2025-02-02"))
		require.Error(t, err)
		assert.True(t, errs.Is(err, availability.ErrCalendarUnavailable))
		assert.False(t, snap.Ceiling.IsKnown())
	})

	t.Run("missing identifiers skip the fetch", func(t *testing.T) {
		src := new(MockCalendarSource)

		snap, err := newGate(src).ComputeCeiling(context.Background(), "", "r1", mustRange(t, "2025-01-10", "2025-01-12"))
		require.NoError(t, err)
		assert.False(t, snap.Ceiling.IsKnown())
		src.AssertNotCalled(t, "MonthCalendar", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
