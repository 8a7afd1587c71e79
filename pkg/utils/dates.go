package utils

import (
	"math"
	"time"
)

// DefaultDateLayout is used by FormatDate when no layout is given.
const DefaultDateLayout = "January 2, 2006"

// DaysDifference returns the number of whole days between a and b, rounded up.
// The order of the arguments does not matter.
func DaysDifference(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}

// CurrentYear returns the current year in local time.
func CurrentYear() int {
	return time.Now().Year()
}

// FormatDate formats t with layout, or DefaultDateLayout when layout is
// empty. The zero time formats as "".
func FormatDate(t time.Time, layout ...string) string {
	if t.IsZero() {
		return ""
	}
	l := DefaultDateLayout
	if len(layout) > 0 && layout[0] != "" {
		l = layout[0]
	}
	return t.Format(l)
}
