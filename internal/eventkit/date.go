package eventkit

import "time"

// DateComponents is the store's native calendar-component date shape,
// at minute granularity. ComponentsOf and Time are exact inverses for
// any instant representable in both systems.
type DateComponents struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
}

// ComponentsOf decomposes t into calendar components in t's location.
// Seconds and finer are dropped.
func ComponentsOf(t time.Time) DateComponents {
	return DateComponents{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// Time recomposes the components into an instant in the given location.
func (c DateComponents) Time(loc *time.Location) time.Time {
	return time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, 0, 0, loc)
}

// IsZero reports whether c holds no date at all.
func (c DateComponents) IsZero() bool {
	return c == DateComponents{}
}
