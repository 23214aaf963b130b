package fintrack

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/etnz/fintrack/date"
)

// this file contains functions to import bank statements.

// ImportOFX records the lines of an OFX bank or credit card statement as
// transactions on the account accountID.
//
// Credits become incomes and debits expenses. Lines already imported into this
// account (same FITID) are skipped, so a statement can be imported twice.
// It returns the transactions recorded.
func (l *Ledger) ImportOFX(accountID string, r io.Reader) ([]Transaction, error) {
	resp, err := ofxgo.ParseResponse(r)
	if err != nil {
		return nil, fmt.Errorf("could not parse OFX statement: %w", err)
	}
	lines, err := statementLines(resp)
	if err != nil {
		return nil, err
	}
	txs, err := fromOFX(accountID, lines)
	if err != nil {
		return nil, err
	}

	var recorded []Transaction
	for _, tx := range txs {
		if l.hasNote(accountID, tx.Note) {
			continue
		}
		recorded = append(recorded, l.RecordTransaction(tx))
	}
	return recorded, nil
}

// statementLines collects the transactions of every statement in the response.
func statementLines(resp *ofxgo.Response) ([]ofxgo.Transaction, error) {
	if len(resp.Bank) == 0 && len(resp.CreditCard) == 0 {
		return nil, errors.New("no bank or credit card statement in OFX response")
	}
	var lines []ofxgo.Transaction
	for _, msg := range append(resp.Bank, resp.CreditCard...) {
		switch stmt := msg.(type) {
		case *ofxgo.StatementResponse:
			if stmt.BankTranList != nil {
				lines = append(lines, stmt.BankTranList.Transactions...)
			}
		case *ofxgo.CCStatementResponse:
			if stmt.BankTranList != nil {
				lines = append(lines, stmt.BankTranList.Transactions...)
			}
		default:
			return nil, fmt.Errorf("unexpected OFX message %T", msg)
		}
	}
	return lines, nil
}

// fromOFX converts statement lines into transactions, ids are not set.
// Zero amount lines are dropped.
func fromOFX(accountID string, lines []ofxgo.Transaction) ([]Transaction, error) {
	txs := make([]Transaction, 0, len(lines))
	for _, line := range lines {
		amount, err := ParseAmount(line.TrnAmt.FloatString(8))
		if err != nil {
			return nil, fmt.Errorf("OFX transaction %q: %w", line.FiTID, err)
		}
		if amount.IsZero() {
			continue
		}
		typ := Income
		if amount.IsNegative() {
			typ = Expense
		}
		note := strings.TrimSpace(string(line.Name) + " " + string(line.Memo))
		if line.FiTID != "" {
			note = strings.TrimSpace(note + " " + fitidTag(string(line.FiTID)))
		}
		txs = append(txs, Transaction{
			AccountID: accountID,
			Date:      date.Of(line.DtPosted.Time),
			Amount:    amount.Abs(),
			Type:      typ,
			Category:  strings.ToLower(line.TrnType.String()),
			Note:      note,
		})
	}
	return txs, nil
}

func fitidTag(fitid string) string { return "[fitid:" + fitid + "]" }

// hasNote reports whether the account already has a transaction with the same
// FITID tag as note.
func (l *Ledger) hasNote(accountID, note string) bool {
	i := strings.LastIndex(note, "[fitid:")
	if i < 0 {
		return false
	}
	tag := note[i:]
	for _, tx := range l.transactions {
		if tx.AccountID == accountID && strings.HasSuffix(tx.Note, tag) {
			return true
		}
	}
	return false
}
