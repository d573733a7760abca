package domain

// AccountType defines the fundamental accounting type of an account.
// This is a closed taxonomy; no subtypes exist.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// ValidAccountType reports whether t is one of the five closed account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents one account in a tenant's chart of accounts.
// System accounts (IsSystem) are the ones the posting engine itself depends
// on (default cash, receivables, payables, retained earnings, ...); they can
// never be deactivated or retyped while ledger entries reference them.
type Account struct {
	AccountID   string      `json:"accountID"`
	TenantID    string      `json:"tenantID"`
	Code        string      `json:"code"` // stable short code, e.g. "1000"
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Description string      `json:"description"`
	IsSystem    bool        `json:"isSystem"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// System account names seeded at tenant onboarding. The posting producers
// resolve these by name, so the seed set is a provisioning contract: a tenant
// missing any of them is mis-provisioned.
const (
	AccountCash             = "Cash"
	AccountBank             = "Bank"
	AccountReceivable       = "Accounts Receivable"
	AccountInventory        = "Inventory"
	AccountVATRefundable    = "VAT Refundable"
	AccountFixedAssets      = "Fixed Assets"
	AccountAccumulatedDep   = "Accumulated Depreciation"
	AccountPayable          = "Accounts Payable"
	AccountVATPayable       = "VAT Payable"
	AccountPayrollLiability = "Payroll Liabilities"
	AccountOwnersCapital    = "Owner's Capital"
	AccountRetainedEarnings = "Retained Earnings"
	AccountSalesRevenue     = "Sales Revenue"
	AccountOtherIncome      = "Other Income"
	AccountCOGS             = "Cost of Goods Sold"
	AccountSalaries         = "Salaries & Wages"
	AccountDepExpense       = "Depreciation Expense"
	AccountBankCharges      = "Bank Charges"
)

// SeedAccount is one entry of the default chart of accounts.
type SeedAccount struct {
	Code string
	Name string
	Type AccountType
}

// DefaultChartOfAccounts is the system account seed set created for every new
// tenant. All of these are IsSystem=true.
var DefaultChartOfAccounts = []SeedAccount{
	{"1000", AccountCash, Asset},
	{"1100", AccountBank, Asset},
	{"1200", AccountReceivable, Asset},
	{"1300", AccountInventory, Asset},
	{"1400", AccountVATRefundable, Asset},
	{"1500", AccountFixedAssets, Asset},
	{"1510", AccountAccumulatedDep, Asset},
	{"2000", AccountPayable, Liability},
	{"2100", AccountVATPayable, Liability},
	{"2300", AccountPayrollLiability, Liability},
	{"3000", AccountOwnersCapital, Equity},
	{"3100", AccountRetainedEarnings, Equity},
	{"4000", AccountSalesRevenue, Revenue},
	{"4100", AccountOtherIncome, Revenue},
	{"5000", AccountCOGS, Expense},
	{"5100", AccountSalaries, Expense},
	{"5700", AccountBankCharges, Expense},
	{"5900", AccountDepExpense, Expense},
}
