package availability

import (
	"fmt"
	"time"

	"hotel-reservation/internal/domain/stay"
)

type Day struct {
	Date      time.Time
	Available int
}

type Month struct {
	Year  int
	Month time.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// MonthsTouched lists every calendar month holding at least one night of the
// stay, in chronological order.
func MonthsTouched(r stay.DateRange) []Month {
	if r.Nights() == 0 {
		return nil
	}

	last := r.CheckOut().AddDate(0, 0, -1)
	cur := time.Date(r.CheckIn().Year(), r.CheckIn().Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC)

	var months []Month
	for !cur.After(end) {
		months = append(months, Month{Year: cur.Year(), Month: cur.Month()})
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}

// Window keeps the days that are nights of the stay; the check-out day is excluded.
func Window(days []Day, r stay.DateRange) []Day {
	out := make([]Day, 0, len(days))
	for _, d := range days {
		if r.Contains(d.Date) {
			out = append(out, d)
		}
	}
	return out
}
