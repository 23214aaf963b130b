package fintrack

import (
	"encoding/json"
	"testing"
)

func TestAmount_Arithmetic(t *testing.T) {
	// floats are converted exactly, 0.1+0.2 is 0.3
	if got := A(0.1).Add(A(0.2)); !got.Equal(A(0.3)) {
		t.Errorf("0.1+0.2 = %v, want 0.3", got)
	}
	if got := A(15).Mul(200); !got.Equal(A(3000)) {
		t.Errorf("15*200 = %v", got)
	}
	if got := A(3000).Div(200); !got.Equal(A(15)) {
		t.Errorf("3000/200 = %v", got)
	}
	if got := A(-12.5).Abs(); !got.Equal(A(12.5)) {
		t.Errorf("|-12.5| = %v", got)
	}
	if got := A(25).Percent(A(200)); got.String() != "12.5" {
		t.Errorf("25/200 = %v%%, want 12.5%%", got)
	}
	if got := A(25).Percent(Amount{}); !got.IsZero() {
		t.Errorf("25/0 = %v%%, want 0", got)
	}
}

func TestAmount_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Balance Amount `json:"balance"`
	}{A(-1234.5)})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(data), `{"balance":-1234.5}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	for _, in := range []string{`12.75`, `"12.75"`} {
		var a Amount
		if err := json.Unmarshal([]byte(in), &a); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", in, err)
		}
		if !a.Equal(A(12.75)) {
			t.Errorf("Unmarshal(%s) = %v, want 12.75", in, a)
		}
	}
}

func TestAmount_Format(t *testing.T) {
	testCases := []struct {
		amount   Amount
		currency string
		want     string
	}{
		{A(1234.5), "USD", "$1,234.50"},
		{A(0.004), "USD", "$0.00"},
		{A(99.999), "USD", "$100.00"},
	}
	for _, tc := range testCases {
		if got := tc.amount.Format(tc.currency); got != tc.want {
			t.Errorf("Format(%v, %s) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("1500.25")
	if err != nil || !a.Equal(A(1500.25)) {
		t.Errorf("ParseAmount(1500.25) = %v, %v", a, err)
	}
	if _, err := ParseAmount("12,5"); err == nil {
		t.Errorf("ParseAmount(12,5) expected an error")
	}
}
