package calendar

import (
	"fmt"
	"time"
)

// timeLayouts are the accepted input formats, tried in order. Layouts
// without an offset are interpreted in the local time zone.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses a date or date-time string. RFC3339 keeps its
// offset; offset-less forms are local. A bare date means local
// midnight.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339 {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use RFC3339, YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD)", s)
}
