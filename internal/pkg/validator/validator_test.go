package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestParseRotaDate(t *testing.T) {
	cases := []struct {
		input string
		want  string // yyyy-mm-dd, empty means error expected
	}{
		{"14/07/2025", "2025-07-14"},
		{"14/07/2025 (Mon)", "2025-07-14"},
		{"01/01/2026 (Thursday)", "2026-01-01"},
		{"  14/07/2025  ", "2025-07-14"},
		{"29/02/2024", "2024-02-29"},
		{"2025-07-14", ""},
		{"32/01/2025", ""},
		{"14/13/2025", ""},
		{"(Mon)", ""},
		{"", ""},
	}
	for _, c := range cases {
		got, err := ParseRotaDate(c.input)
		if c.want == "" {
			if err == nil {
				t.Errorf("ParseRotaDate(%q) = %v, want error", c.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRotaDate(%q) error: %v", c.input, err)
			continue
		}
		if got.Format("2006-01-02") != c.want {
			t.Errorf("ParseRotaDate(%q) = %s, want %s", c.input, got.Format("2006-01-02"), c.want)
		}
	}
}

func TestFormatRotaDate(t *testing.T) {
	d := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	if got := FormatRotaDate(d); got != "14/07/2025" {
		t.Errorf("FormatRotaDate = %q, want %q", got, "14/07/2025")
	}

	// round trip, weekday label dropped
	parsed, err := ParseRotaDate("05/01/2026 (Mon)")
	if err != nil {
		t.Fatalf("ParseRotaDate error: %v", err)
	}
	if got := FormatRotaDate(parsed); got != "05/01/2026" {
		t.Errorf("round trip = %q, want %q", got, "05/01/2026")
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"admin", "am", "manager", "employee"}
	if !IsInSlice("am", slice) {
		t.Error("IsInSlice(am) = false, want true")
	}
	if IsInSlice("owner", slice) {
		t.Error("IsInSlice(owner) = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "day", Message: "Invalid day"},
		{Field: "startTime", Message: "Invalid time"},
	}
	if errs.Error() == "" {
		t.Error("Error() must not be empty")
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "day", Message: "Invalid day"},
		{Field: "startTime", Message: "Invalid time"},
	}
	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() has %d entries, want 2", len(m))
	}
	if m["day"] != "Invalid day" {
		t.Errorf("ToMap()[day] = %q", m["day"])
	}
}
