package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	d, err := Parse("2026-03-10")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.March || d.Day() != 10 {
		t.Errorf("got %v", d)
	}

	if _, err := Parse("10.03.2026"); err == nil {
		t.Error("expected error for non-ISO format")
	}
	if _, err := Parse("2026-13-40"); err == nil {
		t.Error("expected error for impossible date")
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		start string
		days  int
		want  string
	}{
		{"2026-03-10", 1, "2026-03-11"},
		{"2026-03-10", 0, "2026-03-10"},
		{"2026-03-31", 1, "2026-04-01"},
		{"2026-12-31", 1, "2027-01-01"},
		{"2026-03-01", -1, "2026-02-28"},
		// Leap year.
		{"2028-02-28", 1, "2028-02-29"},
	}

	for _, tt := range tests {
		d, err := Parse(tt.start)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.start, err)
		}
		if got := d.AddDays(tt.days).String(); got != tt.want {
			t.Errorf("%s + %dd = %s, want %s", tt.start, tt.days, got, tt.want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2026, time.March, 10)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"2026-03-10"` {
		t.Errorf("marshaled as %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.String() != d.String() {
		t.Errorf("round trip: %s != %s", back.String(), d.String())
	}
}
