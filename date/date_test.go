package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "2025/07/01", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2025, time.January, 32), New(2025, time.February, 1); got != want {
		t.Errorf("New(2025-01-32) = %v, want %v", got, want)
	}
}

func TestJSON(t *testing.T) {
	type doc struct {
		On Date `json:"on"`
	}
	data, err := json.Marshal(doc{On: New(2023, time.October, 5)})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(data), `{"on":"2023-10-05"}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	var back doc
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.On != New(2023, time.October, 5) {
		t.Errorf("Unmarshal() = %v", back.On)
	}

	var empty doc
	if err := json.Unmarshal([]byte(`{"on":""}`), &empty); err != nil {
		t.Fatalf("Unmarshal(empty) error = %v", err)
	}
	if !empty.On.IsZero() {
		t.Errorf("Unmarshal(empty) = %v, want zero date", empty.On)
	}
}
