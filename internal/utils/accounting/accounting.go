package accounting

import (
	"fmt"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyScale is the fixed-point scale for all monetary amounts: 2 decimal
// places (minor currency units).
const MoneyScale = 2

// ValidScale reports whether amount has no fractional component finer than
// MoneyScale. All arithmetic stays exact because inputs are rejected at the
// boundary instead of rounded.
func ValidScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(MoneyScale))
}

// SignedAmount applies the accounting sign convention to an entry side for a
// given account type:
//
//	DEBIT  to ASSET/EXPENSE            -> +
//	CREDIT to ASSET/EXPENSE            -> -
//	DEBIT  to LIABILITY/EQUITY/REVENUE -> -
//	CREDIT to LIABILITY/EQUITY/REVENUE -> +
func SignedAmount(side domain.EntrySide, amount decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	isDebit := side == domain.Debit
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			return amount.Neg(), nil
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			return amount.Neg(), nil
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
	return amount, nil
}

// NaturalBalance returns the net balance of an account given its debit and
// credit totals, positive on the account's natural side: debit-normal for
// assets and expenses, credit-normal for liabilities, equity and revenue.
func NaturalBalance(accountType domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit)
	default:
		return credit.Sub(debit)
	}
}
