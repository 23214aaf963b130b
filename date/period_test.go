package date

import (
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	testCases := []struct {
		name   string
		in     Date
		period Period
		want   Range
	}{
		{
			name:   "A single day",
			in:     New(2025, time.September, 8),
			period: Daily,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 8)},
		},
		{
			name:   "A Wednesday",
			in:     New(2025, time.September, 10),
			period: Weekly,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 14)},
		},
		{
			name:   "A Sunday",
			in:     New(2025, time.September, 14),
			period: Weekly,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 14)},
		},
		{
			name:   "A leap year",
			in:     New(2024, time.February, 15),
			period: Monthly,
			want:   Range{From: New(2024, time.February, 1), To: New(2024, time.February, 29)},
		},
		{
			name:   "Second quarter",
			in:     New(2025, time.May, 20),
			period: Quarterly,
			want:   Range{From: New(2025, time.April, 1), To: New(2025, time.June, 30)},
		},
		{
			name:   "A year",
			in:     New(2025, time.May, 20),
			period: Yearly,
			want:   Range{From: New(2025, time.January, 1), To: New(2025, time.December, 31)},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewRange(tc.in, tc.period); got != tc.want {
				t.Errorf("NewRange(%v, %v) = %v, want %v", tc.in, tc.period, got, tc.want)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(New(2025, time.October, 15), Monthly)
	for _, tc := range []struct {
		on   Date
		want bool
	}{
		{New(2025, time.October, 1), true},
		{New(2025, time.October, 31), true},
		{New(2025, time.September, 30), false},
		{New(2025, time.November, 1), false},
	} {
		if got := r.Contains(tc.on); got != tc.want {
			t.Errorf("Contains(%v) = %v, want %v", tc.on, got, tc.want)
		}
	}
}

func TestRangeIdentifier(t *testing.T) {
	on := New(2025, time.October, 15)
	for _, tc := range []struct {
		r    Range
		want string
	}{
		{NewRange(on, Daily), "2025-10-15"},
		{NewRange(on, Monthly), "2025-10"},
		{NewRange(on, Yearly), "2025"},
		{NewRange(on, Weekly), "2025-10-13_2025-10-19"},
	} {
		if got := tc.r.Identifier(); got != tc.want {
			t.Errorf("Identifier() = %q, want %q", got, tc.want)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{in: "day", want: Daily},
		{in: "Week", want: Weekly},
		{in: " month ", want: Monthly},
		{in: "quarter", want: Quarterly},
		{in: "year", want: Yearly},
		{in: "yearly", wantErr: true},
		{in: "fortnight", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParsePeriod(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePeriod(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPeriodNamesRoundTrip(t *testing.T) {
	for _, name := range Periods() {
		p, err := ParsePeriod(name)
		if err != nil {
			t.Fatal(err)
		}
		if p.String() != name {
			t.Errorf("ParsePeriod(%q).String() = %q", name, p.String())
		}
	}
}
