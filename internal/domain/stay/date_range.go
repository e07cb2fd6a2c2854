package stay

import (
	"errors"
	"math"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

const day = 24 * time.Hour

var (
	ErrMissingDates = errors.New("check-in and check-out dates are required")
	ErrInvalidDate  = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvertedDate = errors.New("check-out must not be before check-in")
)

// DateRange is a stay in UTC calendar days. CheckOut is exclusive for
// availability and inclusive of the last night for pricing.
type DateRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	checkIn = strings.TrimSpace(checkIn)
	checkOut = strings.TrimSpace(checkOut)
	if checkIn == "" || checkOut == "" {
		return DateRange{}, ErrMissingDates
	}

	in, err := ParseDate(checkIn)
	if err != nil {
		return DateRange{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(in, out)
}

func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	in := TruncateDay(checkIn)
	out := TruncateDay(checkOut)
	if out.Before(in) {
		return DateRange{}, ErrInvertedDate
	}
	return DateRange{checkIn: in, checkOut: out}, nil
}

// ParseDate accepts a bare date or an RFC 3339 timestamp and returns UTC midnight.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return TruncateDay(t), nil
	}
	return time.Time{}, ErrInvalidDate
}

func TruncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func (r DateRange) CheckIn() time.Time  { return r.checkIn }
func (r DateRange) CheckOut() time.Time { return r.checkOut }

func (r DateRange) IsZero() bool {
	return r.checkIn.IsZero() && r.checkOut.IsZero()
}

func (r DateRange) Nights() int {
	if r.IsZero() {
		return 0
	}
	return int(math.Ceil(float64(r.checkOut.Sub(r.checkIn)) / float64(day)))
}

// Contains reports whether t falls on a night of the stay: checkIn <= t < checkOut.
func (r DateRange) Contains(t time.Time) bool {
	d := TruncateDay(t)
	return !d.Before(r.checkIn) && d.Before(r.checkOut)
}

func (r DateRange) FromMillis() int64 { return r.checkIn.UnixMilli() }
func (r DateRange) ToMillis() int64   { return r.checkOut.UnixMilli() }

func (r DateRange) CheckInString() string  { return r.checkIn.Format(DateLayout) }
func (r DateRange) CheckOutString() string { return r.checkOut.Format(DateLayout) }
