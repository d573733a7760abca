package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesInvoiceInput carries the totals of a sales invoice to be posted.
// Tax is computed by the caller on the post-discount subtotal; the ledger
// only checks that the lines balance.
type SalesInvoiceInput struct {
	InvoiceID  string          `json:"invoiceID" binding:"required"`
	Date       time.Time       `json:"date" binding:"required"`
	Subtotal   decimal.Decimal `json:"subtotal" binding:"required"` // after discount
	Tax        decimal.Decimal `json:"tax"`
	CostOfGoods decimal.Decimal `json:"costOfGoods"` // zero for service invoices
	CashSale   bool            `json:"cashSale"`     // debit Cash instead of Receivable
	Description string         `json:"description"`
}

// PurchaseBillInput carries the totals of a vendor bill to be posted.
type PurchaseBillInput struct {
	BillID      string          `json:"billID" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	Subtotal    decimal.Decimal `json:"subtotal" binding:"required"`
	Tax         decimal.Decimal `json:"tax"`
	Description string          `json:"description"`
}

// ExpenseInput carries one recorded expense to be posted.
type ExpenseInput struct {
	ExpenseID        string          `json:"expenseID" binding:"required"`
	Date             time.Time       `json:"date" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	Tax              decimal.Decimal `json:"tax"`
	ExpenseAccountID string          `json:"expenseAccountID" binding:"required"`
	PaidFromBank     bool            `json:"paidFromBank"`
	Description      string          `json:"description"`
}

// PayrollRunInput carries one payroll run's totals to be posted.
type PayrollRunInput struct {
	PayslipID   string          `json:"payslipID" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	GrossPay    decimal.Decimal `json:"grossPay" binding:"required"`
	Deductions  decimal.Decimal `json:"deductions"` // PAYE, pension etc., retained as a liability
	Description string          `json:"description"`
}

// FundTransferInput moves money between two of the tenant's own accounts.
type FundTransferInput struct {
	TransferID    string          `json:"transferID" binding:"required"`
	Date          time.Time       `json:"date" binding:"required"`
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description"`
}
