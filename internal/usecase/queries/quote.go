package queries

import (
	"context"
	"log/slog"
	"strings"

	"hotel-reservation/internal/domain/booking"
	"hotel-reservation/internal/domain/occupancy"
	"hotel-reservation/internal/domain/pricing"
	"hotel-reservation/internal/domain/ratecard"
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/domain/stay"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/infra/bookingapi"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/pkg/generation"
	"hotel-reservation/internal/usecase/availability"
)

var (
	ErrInvalidDates     = errs.New("invalid stay dates")
	ErrRoomNotFound     = errs.New("room not found")
	ErrRoomLookupFailed = errs.New("room lookup failed")
	ErrStaleQuote       = errs.New("quote superseded by a newer request")
)

type Warning string

const (
	WarnAvailabilityUnknown Warning = "availability_unavailable"
	WarnRoomCountAdjusted   Warning = "room_count_adjusted"
	WarnStaticRoom          Warning = "static_room"
)

type RoomCatalog interface {
	Lookup(ctx context.Context, q bookingapi.RoomQuery) (room.Source, error)
}

// QuoteInput is one snapshot of the review form.
type QuoteInput struct {
	SessionID      string
	UserID         string
	HotelID        string
	RoomID         string
	CheckIn        string
	CheckOut       string
	BaseAdults     int
	BaseChildren   int
	Guests         []occupancy.AdditionalGuest
	RequestedRooms int
	ACPreference   *bool
	PackageID      string
	Discount       float64
}

type Quote struct {
	Room         room.DisplayRoom
	Dates        stay.DateRange
	Occupancy    occupancy.Result
	Split        occupancy.Split
	RoomCount    occupancy.RoomCount
	Availability availability.Snapshot
	Package      *ratecard.Package
	Breakdown    pricing.Breakdown
	Blocking     []booking.BlockReason
	Warnings     []Warning
	CanSubmit    bool
	Generation   uint64
}

type AvailabilityView struct {
	Snapshot availability.Snapshot
	// Err is set when the calendar could not be read; the snapshot is then unknown.
	Err error
}

type QuoteQueries interface {
	Quote(ctx context.Context, in QuoteInput) (*Quote, error)
	Room(ctx context.Context, hotelID, roomID, checkIn, checkOut string) (*room.DisplayRoom, error)
	Availability(ctx context.Context, hotelID, roomID, checkIn, checkOut string) (*AvailabilityView, error)
}

type quoteQueriesImpl struct {
	catalog RoomCatalog
	gate    availability.Gate
	tracker *generation.Tracker
	logger  *slog.Logger
}

func NewQuoteQueries(catalog RoomCatalog, gate availability.Gate, tracker *generation.Tracker, logger *slog.Logger) QuoteQueries {
	return &quoteQueriesImpl{catalog: catalog, gate: gate, tracker: tracker, logger: logger}
}

func (q *quoteQueriesImpl) Quote(ctx context.Context, in QuoteInput) (*Quote, error) {
	tok := q.tracker.Begin(in.SessionID)

	if strings.TrimSpace(in.CheckIn) == "" || strings.TrimSpace(in.CheckOut) == "" {
		return &Quote{
			Blocking:   []booking.BlockReason{booking.BlockMissingDates},
			Generation: tok.Generation,
		}, nil
	}
	dates, err := stay.ParseDateRange(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDates)
	}

	display, err := q.lookup(ctx, in.HotelID, in.RoomID, dates)
	if err != nil {
		return nil, err
	}

	occ := occupancy.Resolve(display.Profile, in.BaseAdults, in.BaseChildren, in.Guests)

	var warnings []Warning
	snap := availability.Snapshot{}
	if display.Live {
		var availErr error
		snap, availErr = q.gate.ComputeCeiling(ctx, in.HotelID, in.RoomID, dates)
		if availErr != nil {
			if ctx.Err() != nil {
				return nil, errs.Wrap(ctx.Err(), "quote cancelled")
			}
			warnings = append(warnings, WarnAvailabilityUnknown)
		}
	} else {
		warnings = append(warnings, WarnStaticRoom)
	}

	rc := occupancy.NewRoomCount(in.RequestedRooms, occ.RequiredRoomCount, snap.Ceiling.Value())
	if rc.Bumped && in.RequestedRooms > 0 {
		warnings = append(warnings, WarnRoomCountAdjusted)
	}

	var pkg *ratecard.Package
	if p, ok := ratecard.SelectPackage(display.RateCard, rc.Requested, in.ACPreference, in.PackageID); ok {
		pkg = &p
	}

	split := occ.Split(rc.Requested)
	breakdown := pricing.Compute(pkg, dates.Nights(), rc.Requested, split, display.Tax, in.Discount)

	blocking := booking.Evaluate(booking.GateInput{
		HotelID:    in.HotelID,
		RoomID:     in.RoomID,
		UserID:     in.UserID,
		BaseAdults: in.BaseAdults,
		Dates:      dates,
		Package:    pkg,
		RoomCount:  rc,
	})

	if !q.tracker.IsCurrent(tok) {
		return nil, ErrStaleQuote
	}

	return &Quote{
		Room:         display,
		Dates:        dates,
		Occupancy:    occ,
		Split:        split,
		RoomCount:    rc,
		Availability: snap,
		Package:      pkg,
		Breakdown:    breakdown,
		Blocking:     blocking,
		Warnings:     warnings,
		CanSubmit:    len(blocking) == 0,
		Generation:   tok.Generation,
	}, nil
}

func (q *quoteQueriesImpl) Room(ctx context.Context, hotelID, roomID, checkIn, checkOut string) (*room.DisplayRoom, error) {
	var dates stay.DateRange
	if checkIn != "" || checkOut != "" {
		var err error
		dates, err = stay.ParseDateRange(checkIn, checkOut)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidDates)
		}
	}

	display, err := q.lookup(ctx, hotelID, roomID, dates)
	if err != nil {
		return nil, err
	}
	return &display, nil
}

func (q *quoteQueriesImpl) Availability(ctx context.Context, hotelID, roomID, checkIn, checkOut string) (*AvailabilityView, error) {
	dates, err := stay.ParseDateRange(checkIn, checkOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDates)
	}

	snap, err := q.gate.ComputeCeiling(ctx, hotelID, roomID, dates)
	if err != nil && ctx.Err() != nil {
		return nil, errs.Wrap(ctx.Err(), "availability cancelled")
	}
	return &AvailabilityView{Snapshot: snap, Err: err}, nil
}

func (q *quoteQueriesImpl) lookup(ctx context.Context, hotelID, roomID string, dates stay.DateRange) (room.DisplayRoom, error) {
	src, err := q.catalog.Lookup(ctx, bookingapi.RoomQuery{HotelID: hotelID, RoomID: roomID, Dates: dates})
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return room.DisplayRoom{}, errs.Mark(err, ErrRoomNotFound)
		case ctx.Err() != nil:
			return room.DisplayRoom{}, errs.Wrap(ctx.Err(), "room lookup cancelled")
		default:
			q.logger.Error("room lookup failed",
				slog.String("hotel_id", hotelID),
				slog.String("room_id", roomID),
				slog.String("error", err.Error()))
			return room.DisplayRoom{}, errs.Mark(err, ErrRoomLookupFailed)
		}
	}
	return room.Normalize(src), nil
}
