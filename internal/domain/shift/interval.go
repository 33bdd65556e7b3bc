package shift

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// TimeOfDay is a minute-resolution time of day, stored as minutes since
// midnight in [0, 1439]. Seconds are always zero in canonical storage.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:mm" or the storage form "HH:mm:ss"
// (seconds are discarded).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	return TimeOfDay(hour*60 + minute), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String returns the display form "HH:mm".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Storage returns the canonical storage form "HH:mm:ss" with seconds zeroed.
func (t TimeOfDay) Storage() string {
	return fmt.Sprintf("%02d:%02d:00", t.Hour(), t.Minute())
}

// Interval is a half-open shift interval [Start, End) within one calendar
// day. End numerically less than or equal to Start means the shift crosses
// midnight into the next day.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseInterval builds an Interval from two time-of-day strings.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

// Wraps reports whether the interval crosses midnight.
func (iv Interval) Wraps() bool {
	return iv.End <= iv.Start
}

// linearized returns the interval on a 48-hour timeline: the end is pushed
// a day forward when the interval wraps, so that start < end always holds.
func (iv Interval) linearized() (start, end int) {
	start = int(iv.Start)
	end = int(iv.End)
	if end <= start {
		end += minutesPerDay
	}
	return start, end
}

// Overlaps reports whether two intervals that share a calendar day label
// occupy any common minute. Touching endpoints do not overlap, so
// back-to-back shifts are legal.
//
// Both sides are linearized onto a 48-hour timeline, then compared with and
// without a one-day shift on either side: a late-night interval must not
// collide with an early-morning one on the same day label, while a wrapping
// interval must collide with anything starting before its wrapped end.
func (iv Interval) Overlaps(other Interval) bool {
	as, ae := iv.linearized()
	bs, be := other.linearized()

	if as < be && ae > bs {
		return true
	}
	if as+minutesPerDay < be && ae+minutesPerDay > bs {
		return true
	}
	if bs+minutesPerDay < ae && be+minutesPerDay > as {
		return true
	}
	return false
}

// Conflicts reports whether the candidate interval overlaps any of the
// existing intervals. Intervals whose shift id equals excludeID are skipped,
// so an update never conflicts with the row it is replacing.
func Conflicts(candidate Interval, existing []Shift, excludeID int64) bool {
	for _, s := range existing {
		if excludeID != 0 && s.ID == excludeID {
			continue
		}
		if candidate.Overlaps(s.Interval()) {
			return true
		}
	}
	return false
}
