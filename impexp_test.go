package fintrack

import (
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/etnz/fintrack/date"
	"github.com/google/go-cmp/cmp"
)

func ofxLine(fitid, amount, name, memo string, typ ofxgo.TrnType, on time.Time) ofxgo.Transaction {
	var amt ofxgo.Amount
	if _, ok := amt.SetString(amount); !ok {
		panic("invalid amount " + amount)
	}
	return ofxgo.Transaction{
		TrnType:  typ,
		DtPosted: ofxgo.Date{Time: on},
		TrnAmt:   amt,
		FiTID:    ofxgo.String(fitid),
		Name:     ofxgo.String(name),
		Memo:     ofxgo.String(memo),
	}
}

func TestFromOFX(t *testing.T) {
	on := time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC)
	lines := []ofxgo.Transaction{
		ofxLine("A1", "-42.50", "GROCERY", "card 1234", ofxgo.TrnTypeDebit, on),
		ofxLine("A2", "2500", "ACME PAYROLL", "", ofxgo.TrnTypeCredit, on),
		ofxLine("A3", "0", "ADJUSTMENT", "", ofxgo.TrnTypeOther, on),
	}
	got, err := fromOFX("acc", lines)
	if err != nil {
		t.Fatalf("fromOFX() error = %v", err)
	}
	want := []Transaction{
		{AccountID: "acc", Date: date.New(2025, time.October, 3), Amount: A(42.5), Type: Expense, Category: "debit", Note: "GROCERY card 1234 [fitid:A1]"},
		{AccountID: "acc", Date: date.New(2025, time.October, 3), Amount: A(2500), Type: Income, Category: "credit", Note: "ACME PAYROLL [fitid:A2]"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fromOFX() mismatch (-want +got):\n%s", diff)
	}
}

func TestLedger_HasNote(t *testing.T) {
	l := newTestLedger()
	l.RecordTransaction(Transaction{AccountID: "acc", Amount: A(1), Type: Expense, Note: "GROCERY [fitid:A1]"})

	testCases := []struct {
		account, note string
		want          bool
	}{
		{"acc", "GROCERY again [fitid:A1]", true},
		{"other", "GROCERY [fitid:A1]", false},
		{"acc", "GROCERY [fitid:A2]", false},
		{"acc", "GROCERY", false},
	}
	for _, tc := range testCases {
		if got := l.hasNote(tc.account, tc.note); got != tc.want {
			t.Errorf("hasNote(%q, %q) = %v, want %v", tc.account, tc.note, got, tc.want)
		}
	}
}
