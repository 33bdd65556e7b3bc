package shift

import (
	"testing"
)

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q) error: %v", s, err)
	}
	return tod
}

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	iv, err := ParseInterval(start, end)
	if err != nil {
		t.Fatalf("ParseInterval(%q, %q) error: %v", start, end, err)
	}
	return iv
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"00:00", "00:00", false},
		{"09:30", "09:30", false},
		{"23:59", "23:59", false},
		{"22:55:00", "22:55", false}, // storage form with seconds
		{"24:00", "", true},
		{"12:60", "", true},
		{"", "", true},
		{"abc", "", true},
		{"12-30", "", true},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q) = %v, want error", c.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q) error: %v", c.input, err)
			continue
		}
		if got.String() != c.want {
			t.Errorf("ParseTimeOfDay(%q).String() = %q, want %q", c.input, got.String(), c.want)
		}
	}
}

func TestTimeOfDayStorage(t *testing.T) {
	if got := mustTime(t, "09:05").Storage(); got != "09:05:00" {
		t.Errorf("Storage() = %q, want %q", got, "09:05:00")
	}
	// seconds on the way in are zeroed on the way out
	if got := mustTime(t, "22:55:30").Storage(); got != "22:55:00" {
		t.Errorf("Storage() = %q, want %q", got, "22:55:00")
	}
}

func TestIntervalWraps(t *testing.T) {
	cases := []struct {
		start, end string
		want       bool
	}{
		{"09:00", "17:00", false},
		{"22:00", "02:00", true},
		{"23:59", "00:00", true},
		{"00:00", "23:59", false},
	}
	for _, c := range cases {
		iv := mustInterval(t, c.start, c.end)
		if got := iv.Wraps(); got != c.want {
			t.Errorf("[%s,%s).Wraps() = %v, want %v", c.start, c.end, got, c.want)
		}
	}
}

func TestIntervalOverlaps(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		{"disjoint same day", "09:00", "12:00", "13:00", "17:00", false},
		{"plain overlap", "09:00", "12:00", "11:00", "14:00", true},
		{"contained", "09:00", "17:00", "10:00", "11:00", true},
		{"touching endpoints never conflict", "09:00", "17:00", "17:00", "22:00", false},
		{"touching endpoints reversed", "17:00", "22:00", "09:00", "17:00", false},
		{"late shift vs wrapping shift", "22:00", "23:00", "22:55", "00:55", true},
		{"early shift vs previous night wrap", "00:00", "06:00", "23:00", "01:00", true},
		{"early shift vs non-wrapping late shift", "00:00", "06:00", "22:00", "23:59", false},
		{"two wrapping shifts", "22:00", "02:00", "23:00", "03:00", true},
		{"wrap touching at midnight boundary", "20:00", "00:00", "00:00", "04:00", false},
	}
	for _, c := range cases {
		a := mustInterval(t, c.aStart, c.aEnd)
		b := mustInterval(t, c.bStart, c.bEnd)
		if got := a.Overlaps(b); got != c.want {
			t.Errorf("%s: [%s,%s).Overlaps([%s,%s)) = %v, want %v",
				c.name, c.aStart, c.aEnd, c.bStart, c.bEnd, got, c.want)
		}
		// overlap is symmetric
		if got := b.Overlaps(a); got != c.want {
			t.Errorf("%s (reversed): got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestConflicts(t *testing.T) {
	existing := []Shift{
		{ID: 1, Start: mustTime(t, "09:00"), End: mustTime(t, "17:00")},
		{ID: 2, Start: mustTime(t, "22:00"), End: mustTime(t, "02:00")},
	}

	if !Conflicts(mustInterval(t, "16:00", "18:00"), existing, 0) {
		t.Error("expected conflict with the day shift")
	}
	if !Conflicts(mustInterval(t, "01:00", "03:00"), existing, 0) {
		t.Error("expected conflict with the wrapping night shift")
	}
	if Conflicts(mustInterval(t, "17:00", "21:00"), existing, 0) {
		t.Error("touching interval must not conflict")
	}
	// the shift being edited is excluded from its own check
	if Conflicts(mustInterval(t, "08:00", "16:00"), existing, 1) {
		t.Error("excluded shift must not conflict with itself")
	}
	if !Conflicts(mustInterval(t, "08:00", "16:00"), existing, 2) {
		t.Error("exclusion of another id must not mask the conflict")
	}
}
