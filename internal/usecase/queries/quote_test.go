//go:build unit

package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domavail "hotel-reservation/internal/domain/availability"
	"hotel-reservation/internal/domain/booking"
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/domain/stay"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/infra/bookingapi"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/pkg/generation"
	"hotel-reservation/internal/usecase/availability"
	"hotel-reservation/internal/usecase/queries"
	"hotel-reservation/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRoomCatalog struct {
	mock.Mock
}

func (m *MockRoomCatalog) Lookup(ctx context.Context, q bookingapi.RoomQuery) (room.Source, error) {
	args := m.Called(ctx, q)
	src, _ := args.Get(0).(room.Source)
	return src, args.Error(1)
}

type MockGate struct {
	mock.Mock
}

func (m *MockGate) ComputeCeiling(ctx context.Context, hotelID, roomID string, dates stay.DateRange) (availability.Snapshot, error) {
	args := m.Called(ctx, hotelID, roomID, dates)
	snap, _ := args.Get(0).(availability.Snapshot)
	return snap, args.Error(1)
}

type fixture struct {
	catalog *MockRoomCatalog
	gate    *MockGate
	tracker *generation.Tracker
	sut     queries.QuoteQueries
}

func newFixture() *fixture {
	f := &fixture{
		catalog: new(MockRoomCatalog),
		gate:    new(MockGate),
		tracker: generation.NewTracker(time.Minute, clock.NewMockClock(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))),
	}
	f.sut = queries.NewQuoteQueries(f.catalog, f.gate, f.tracker, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func knownSnapshot(minAvailable int) availability.Snapshot {
	return availability.Snapshot{Ceiling: domavail.Known(minAvailable)}
}

func TestQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("prices a complete snapshot", func(t *testing.T) {
		f := newFixture()
		in := builder.NewQuoteBuilder().
			WithGuests(3, 0).
			WithAdditionalGuest("Meera", 8, "Daughter").
			WithRooms(2).
			BuildInput()

		f.catalog.On("Lookup", mock.Anything, mock.MatchedBy(func(q bookingapi.RoomQuery) bool {
			return q.HotelID == "hotel-1" && q.RoomID == "room-deluxe" && q.Dates.Nights() == 2
		})).Return(builder.NewRoomBuilder().BuildSource(), nil).Once()
		f.gate.On("ComputeCeiling", mock.Anything, "hotel-1", "room-deluxe", mock.Anything).
			Return(knownSnapshot(4), nil).Once()

		q, err := f.sut.Quote(ctx, in)
		require.NoError(t, err)

		assert.True(t, q.CanSubmit)
		assert.Empty(t, q.Blocking)
		assert.Empty(t, q.Warnings)
		assert.Equal(t, 2, q.RoomCount.Requested)
		require.NotNil(t, q.Package)
		assert.Equal(t, "pkg-2", q.Package.ID)
		assert.Equal(t, 4000.0, q.Breakdown.BaseTotal)
		assert.Equal(t, 0, q.Split.ExtraAdultsCount)
		assert.Equal(t, 0, q.Split.ExtraChildrenCount)
		assert.Equal(t, 4480.0, q.Breakdown.Total)
		assert.NotZero(t, q.Generation)
		f.catalog.AssertExpectations(t)
		f.gate.AssertExpectations(t)
	})

	t.Run("a stay without adults still prices but cannot be submitted", func(t *testing.T) {
		f := newFixture()
		in := builder.NewQuoteBuilder().WithGuests(0, 0).WithRooms(1).BuildInput()

		f.catalog.On("Lookup", mock.Anything, mock.Anything).Return(builder.NewRoomBuilder().BuildSource(), nil)
		f.gate.On("ComputeCeiling", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(knownSnapshot(4), nil)

		q, err := f.sut.Quote(ctx, in)
		require.NoError(t, err)

		assert.Equal(t, []booking.BlockReason{booking.BlockMissingAdults}, q.Blocking)
		assert.False(t, q.CanSubmit)
		assert.Equal(t, 2240.0, q.Breakdown.Total)
	})

	t.Run("missing dates block without any lookup", func(t *testing.T) {
		f := newFixture()
		in := builder.NewQuoteBuilder().WithDates("", "").BuildInput()

		q, err := f.sut.Quote(ctx, in)
		require.NoError(t, err)

		assert.Equal(t, []booking.BlockReason{booking.BlockMissingDates}, q.Blocking)
		assert.False(t, q.CanSubmit)
		assert.True(t, q.Breakdown.IsZero())
		f.catalog.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})

	t.Run("malformed dates are an input error", func(t *testing.T) {
		f := newFixture()
		in := builder.NewQuoteBuilder().WithDates("2025-03-12", "2025-03-10").BuildInput()

		_, err := f.sut.Quote(ctx, in)
		assert.True(t, errs.Is(err, queries.ErrInvalidDates))
	})

	t.Run("requested rooms are bumped to the required count", func(t *testing.T) {
		f := newFixture()
		in := builder.NewQuoteBuilder().WithGuests(5, 2).WithRooms(1).BuildInput()

		f.catalog.On("Lookup", mock.Anything, mock.Anything).Return(builder.NewRoomBuilder().BuildSource(), nil)
		f.gate.On("ComputeCeiling", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(knownSnapshot(5), nil)

		q, err := f.sut.Quote(ctx, in)
		require.NoError(t, err)

		assert.Equal(t, 3, q.Occupancy.RequiredRoomCount)
		assert.Equal(t, 3, q.RoomCount.Requested)
		assert.Contains(t, q.Warnings, queries.WarnRoomCountAdjusted)
		assert.Equal(t, "pkg-4", q.Package.ID)
		assert.True(t, q.CanSubmit)
	})

	t.Run("selection above the ceiling is blocked", func(t *testing.T) {
		f := newFixture()
		in := builder.NewQuoteBuilder().WithRooms(2).BuildInput()

		f.catalog.On("Lookup", mock.Anything, mock.Anything).Return(builder.NewRoomBuilder().BuildSource(), nil)
		f.gate.On("ComputeCeiling", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(knownSnapshot(1), nil)

		q, err := f.sut.Quote(ctx, in)
		require.NoError(t, err)

		assert.Equal(t, []booking.BlockReason{booking.BlockAboveAvailability}, q.Blocking)
		assert.False(t, q.RoomCount.CanIncrement())
		assert.False(t, q.CanSubmit)
	})

	t.Run("availability failure is only a warning", func(t *testing.T) {
		f := newFixture()
		in := builder.NewQuoteBuilder().BuildInput()

		f.catalog.On("Lookup", mock.Anything, mock.Anything).Return(builder.NewRoomBuilder().BuildSource(), nil)
		f.gate.On("ComputeCeiling", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(availability.Snapshot{}, errs.Mark(errors.New("boom"), availability.ErrCalendarUnavailable))

		q, err := f.sut.Quote(ctx, in)
		require.NoError(t, err)

		assert.Equal(t, []queries.Warning{queries.WarnAvailabilityUnknown}, q.Warnings)
		assert.False(t, q.Availability.Ceiling.IsKnown())
		assert.True(t, q.CanSubmit)
	})

	t.Run("static rooms skip the availability calendar", func(t *testing.T) {
		f := newFixture()
		in := builder.NewQuoteBuilder().BuildInput()

		f.catalog.On("Lookup", mock.Anything, mock.Anything).Return(room.Static{Room: room.FallbackRoom{
			ID: "room-deluxe", HotelID: "hotel-1", Name: "Garden Cottage", Capacity: 2, Price: 2000,
		}}, nil)

		q, err := f.sut.Quote(ctx, in)
		require.NoError(t, err)

		assert.Equal(t, []queries.Warning{queries.WarnStaticRoom}, q.Warnings)
		assert.Equal(t, 4000.0, q.Breakdown.Total)
		f.gate.AssertNotCalled(t, "ComputeCeiling", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty rate card blocks submission", func(t *testing.T) {
		f := newFixture()
		in := builder.NewQuoteBuilder().BuildInput()

		f.catalog.On("Lookup", mock.Anything, mock.Anything).Return(builder.NewRoomBuilder().WithCard(nil).BuildSource(), nil)
		f.gate.On("ComputeCeiling", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(knownSnapshot(3), nil)

		q, err := f.sut.Quote(ctx, in)
		require.NoError(t, err)

		assert.Equal(t, []booking.BlockReason{booking.BlockRateCardEmpty}, q.Blocking)
		assert.True(t, q.Breakdown.IsZero())
	})

	t.Run("room not found upstream", func(t *testing.T) {
		f := newFixture()
		in := builder.NewQuoteBuilder().BuildInput()

		notFound := infra.WrapUpstreamErr(slog.New(slog.NewTextHandler(io.Discard, nil)),
			infra.KindNotFound, 404, "", "room details", errors.New("missing"))
		f.catalog.On("Lookup", mock.Anything, mock.Anything).Return(nil, notFound)

		_, err := f.sut.Quote(ctx, in)
		assert.True(t, errs.Is(err, queries.ErrRoomNotFound))
	})

	t.Run("room lookup failure", func(t *testing.T) {
		f := newFixture()
		in := builder.NewQuoteBuilder().BuildInput()

		f.catalog.On("Lookup", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		_, err := f.sut.Quote(ctx, in)
		assert.True(t, errs.Is(err, queries.ErrRoomLookupFailed))
	})

	t.Run("superseded quote is discarded", func(t *testing.T) {
		f := newFixture()
		in := builder.NewQuoteBuilder().BuildInput()

		f.catalog.On("Lookup", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { f.tracker.Begin(in.SessionID) }).
			Return(builder.NewRoomBuilder().BuildSource(), nil)
		f.gate.On("ComputeCeiling", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(knownSnapshot(3), nil)

		_, err := f.sut.Quote(ctx, in)
		assert.ErrorIs(t, err, queries.ErrStaleQuote)
	})

	t.Run("cancelled request surfaces the context error", func(t *testing.T) {
		f := newFixture()
		in := builder.NewQuoteBuilder().BuildInput()
		cctx, cancel := context.WithCancel(ctx)

		f.catalog.On("Lookup", mock.Anything, mock.Anything).Return(builder.NewRoomBuilder().BuildSource(), nil)
		f.gate.On("ComputeCeiling", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(availability.Snapshot{}, context.Canceled)

		_, err := f.sut.Quote(cctx, in)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the snapshot", func(t *testing.T) {
		f := newFixture()
		f.gate.On("ComputeCeiling", mock.Anything, "hotel-1", "room-1", mock.Anything).Return(knownSnapshot(2), nil)

		view, err := f.sut.Availability(ctx, "hotel-1", "room-1", "2025-03-10", "2025-03-12")
		require.NoError(t, err)
		assert.NoError(t, view.Err)
		assert.Equal(t, 2, *view.Snapshot.Ceiling.Value())
	})

	t.Run("calendar failure is reported in the view", func(t *testing.T) {
		f := newFixture()
		f.gate.On("ComputeCeiling", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(availability.Snapshot{}, availability.ErrCalendarUnavailable)

		view, err := f.sut.Availability(ctx, "hotel-1", "room-1", "2025-03-10", "2025-03-12")
		require.NoError(t, err)
		assert.Error(t, view.Err)
		assert.Nil(t, view.Snapshot.Ceiling.Value())
	})

	t.Run("missing dates", func(t *testing.T) {
		f := newFixture()
		_, err := f.sut.Availability(ctx, "hotel-1", "room-1", "", "2025-03-12")
		assert.True(t, errs.Is(err, queries.ErrInvalidDates))
	})
}

func TestRoom(t *testing.T) {
	f := newFixture()
	f.catalog.On("Lookup", mock.Anything, mock.MatchedBy(func(q bookingapi.RoomQuery) bool {
		return q.Dates.IsZero()
	})).Return(builder.NewRoomBuilder().BuildSource(), nil)

	got, err := f.sut.Room(context.Background(), "hotel-1", "room-deluxe", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Deluxe Room", got.Name)
	assert.True(t, got.Live)
}
