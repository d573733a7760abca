package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
)

func TestValidScale(t *testing.T) {
	assert.True(t, ValidScale(decimal.NewFromInt(100)))
	assert.True(t, ValidScale(decimal.RequireFromString("100.50")))
	assert.True(t, ValidScale(decimal.RequireFromString("0.01")))
	assert.True(t, ValidScale(decimal.RequireFromString("99.100"))) // trailing zero, still 2dp
	assert.False(t, ValidScale(decimal.RequireFromString("100.005")))
	assert.False(t, ValidScale(decimal.RequireFromString("0.001")))
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name        string
		side        domain.EntrySide
		accountType domain.AccountType
		want        int64
	}{
		{"debit to asset", domain.Debit, domain.Asset, 100},
		{"credit to asset", domain.Credit, domain.Asset, -100},
		{"debit to expense", domain.Debit, domain.Expense, 100},
		{"credit to liability", domain.Credit, domain.Liability, 100},
		{"debit to liability", domain.Debit, domain.Liability, -100},
		{"credit to equity", domain.Credit, domain.Equity, 100},
		{"credit to revenue", domain.Credit, domain.Revenue, 100},
		{"debit to revenue", domain.Debit, domain.Revenue, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SignedAmount(tt.side, amount, tt.accountType)
			assert.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)),
				"SignedAmount() = %s, want %d", got.String(), tt.want)
		})
	}
}

func TestSignedAmount_UnknownType(t *testing.T) {
	_, err := SignedAmount(domain.Debit, decimal.NewFromInt(1), domain.AccountType("CONTRA"))
	assert.Error(t, err)
}

func TestNaturalBalance(t *testing.T) {
	debit := decimal.NewFromInt(800)
	credit := decimal.NewFromInt(300)

	assert.True(t, NaturalBalance(domain.Asset, debit, credit).Equal(decimal.NewFromInt(500)))
	assert.True(t, NaturalBalance(domain.Expense, debit, credit).Equal(decimal.NewFromInt(500)))
	assert.True(t, NaturalBalance(domain.Liability, debit, credit).Equal(decimal.NewFromInt(-500)))
	assert.True(t, NaturalBalance(domain.Revenue, credit, debit).Equal(decimal.NewFromInt(500)))
}
