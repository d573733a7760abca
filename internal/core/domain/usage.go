package domain

import "time"

// UsageSummary is the read contract consumed by the external billing
// observer. It exposes counts only; the billing module never reads ledger
// rows directly.
type UsageSummary struct {
	TenantID     string    `json:"tenantID"`
	AccountCount int64     `json:"accountCount"`
	VoucherCount int64     `json:"voucherCount"`
	EntryCount   int64     `json:"entryCount"`
	PeriodFrom   time.Time `json:"periodFrom"`
	PeriodTo     time.Time `json:"periodTo"`
}
