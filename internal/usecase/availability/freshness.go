package availability

import "context"

type freshCalendarKey struct{}

// WithFreshCalendar marks ctx so calendar sources skip any cached month and
// read the booking API directly.
func WithFreshCalendar(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshCalendarKey{}, true)
}

func FreshCalendar(ctx context.Context) bool {
	fresh, _ := ctx.Value(freshCalendarKey{}).(bool)
	return fresh
}
