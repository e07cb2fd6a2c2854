package availability

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	domavail "hotel-reservation/internal/domain/availability"
	"hotel-reservation/internal/domain/stay"
	"hotel-reservation/internal/pkg/errs"
)

const maxConcurrentMonths = 4

var ErrCalendarUnavailable = errs.New("availability calendar unavailable")

type CalendarSource interface {
	MonthCalendar(ctx context.Context, hotelID, roomID string, month domavail.Month) ([]domavail.Day, error)
}

// Snapshot is the availability seen for the nights of one stay.
type Snapshot struct {
	Days    []domavail.Day
	Ceiling domavail.Ceiling
}

type Gate interface {
	// ComputeCeiling fetches every month the stay touches and reduces the nights
	// to a room ceiling. On failure the snapshot carries an unknown ceiling and
	// the error is marked ErrCalendarUnavailable.
	ComputeCeiling(ctx context.Context, hotelID, roomID string, dates stay.DateRange) (Snapshot, error)
}

type gateImpl struct {
	source CalendarSource
	logger *slog.Logger
}

func NewGate(source CalendarSource, logger *slog.Logger) Gate {
	return &gateImpl{source: source, logger: logger}
}

func (g *gateImpl) ComputeCeiling(ctx context.Context, hotelID, roomID string, dates stay.DateRange) (Snapshot, error) {
	unknown := Snapshot{Ceiling: domavail.Unknown()}
	if hotelID == "" || roomID == "" || dates.IsZero() {
		return unknown, nil
	}

	months := domavail.MonthsTouched(dates)
	if len(months) == 0 {
		return unknown, nil
	}

	perMonth := make([][]domavail.Day, len(months))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentMonths)
	for i, m := range months {
		eg.Go(func() error {
			days, err := g.source.MonthCalendar(egCtx, hotelID, roomID, m)
			if err != nil {
				return errs.Wrapf(err, "calendar %s", m)
			}
			perMonth[i] = days
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		g.logger.Warn("availability fetch failed",
			slog.String("hotel_id", hotelID),
			slog.String("room_id", roomID),
			slog.String("error", err.Error()))
		return unknown, errs.Mark(err, ErrCalendarUnavailable)
	}

	var all []domavail.Day
	for _, days := range perMonth {
		all = append(all, days...)
	}
	nights := domavail.Window(all, dates)
	return Snapshot{Days: nights, Ceiling: domavail.Aggregate(nights)}, nil
}
