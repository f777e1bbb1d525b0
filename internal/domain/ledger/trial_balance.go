package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultBalanceTolerance is the rounding tolerance used when checking that
// a trial balance is balanced.
var DefaultBalanceTolerance = decimal.NewFromFloat(0.01)

// TrialBalanceLine is one account's contribution to the trial balance
type TrialBalanceLine struct {
	AccountID   uuid.UUID       `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType AccountType     `json:"account_type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance lists all account balances split into debit and credit
// columns according to each account type's normal side.
type TrialBalance struct {
	AsOf        time.Time          `json:"as_of"`
	Lines       []TrialBalanceLine `json:"lines"`
	TotalDebit  decimal.Decimal    `json:"total_debit"`
	TotalCredit decimal.Decimal    `json:"total_credit"`
}

// BuildTrialBalance computes a trial balance from account balances. A
// positive balance lands on the account's normal side; a negative balance
// flips to the opposite side with its sign inverted.
func BuildTrialBalance(asOf time.Time, accounts []Account) *TrialBalance {
	tb := &TrialBalance{
		AsOf:        asOf,
		Lines:       make([]TrialBalanceLine, 0, len(accounts)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for i := range accounts {
		acct := &accounts[i]
		line := TrialBalanceLine{
			AccountID:   acct.ID,
			AccountCode: acct.Code,
			AccountName: acct.Name,
			AccountType: acct.Type,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}

		balance := acct.CurrentBalance
		side := acct.Type.NormalSide()
		if balance.IsNegative() {
			balance = balance.Neg()
			if side == NormalSideDebit {
				side = NormalSideCredit
			} else {
				side = NormalSideDebit
			}
		}

		if side == NormalSideDebit {
			line.Debit = balance
			tb.TotalDebit = tb.TotalDebit.Add(balance)
		} else {
			line.Credit = balance
			tb.TotalCredit = tb.TotalCredit.Add(balance)
		}

		tb.Lines = append(tb.Lines, line)
	}

	return tb
}

// Difference returns TotalDebit - TotalCredit
func (tb *TrialBalance) Difference() decimal.Decimal {
	return tb.TotalDebit.Sub(tb.TotalCredit)
}

// IsBalanced reports whether the debit and credit totals agree within the
// given tolerance.
func (tb *TrialBalance) IsBalanced(tolerance decimal.Decimal) bool {
	return tb.Difference().Abs().LessThanOrEqual(tolerance)
}
