package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport is the per-account summation used to verify the books
// balance. TotalDebit must equal TotalCredit exactly.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report over a date range.
type PAndLReport struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// BalanceSheetReport represents a balance sheet as of a date. Equity includes
// a computed current-period earnings row so that
// TotalAssets == TotalLiabilities + TotalEquity holds exactly.
type BalanceSheetReport struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// AgingSide selects receivables or payables for an aging report.
type AgingSide string

const (
	AgingReceivables AgingSide = "AR"
	AgingPayables    AgingSide = "AP"
)

// AgingRow is one counterparty row of an aging report. Buckets are keyed on
// asOf minus the document's due date.
type AgingRow struct {
	Counterparty string          `json:"counterparty"`
	Current      decimal.Decimal `json:"current"`
	Days1To30    decimal.Decimal `json:"days1to30"`
	Days31To60   decimal.Decimal `json:"days31to60"`
	Days61To90   decimal.Decimal `json:"days61to90"`
	Over90       decimal.Decimal `json:"over90"`
	Total        decimal.Decimal `json:"total"`
}

// AgingReport buckets open source documents by days past due.
type AgingReport struct {
	AsOf  time.Time       `json:"asOf"`
	Side  AgingSide       `json:"side"`
	Rows  []AgingRow      `json:"rows"`
	Total decimal.Decimal `json:"total"`
}
