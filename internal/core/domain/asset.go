package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepreciationMethod selects how a fixed asset's periodic depreciation is
// computed.
type DepreciationMethod string

const (
	StraightLine     DepreciationMethod = "STRAIGHT_LINE"
	DecliningBalance DepreciationMethod = "DECLINING_BALANCE"
)

// AssetStatus indicates the lifecycle state of a fixed asset.
type AssetStatus string

const (
	AssetActive   AssetStatus = "ACTIVE"
	AssetDisposed AssetStatus = "DISPOSED"
)

// FixedAsset is a depreciable asset whose schedule drives the depreciation
// scheduler. Cost, salvage and accumulated depreciation use the tenant's
// base currency.
type FixedAsset struct {
	AssetID                 string             `json:"assetID"`
	TenantID                string             `json:"tenantID"`
	Code                    string             `json:"code"` // e.g. FA-0001
	Name                    string             `json:"name"`
	Category                string             `json:"category"`
	PurchaseDate            time.Time          `json:"purchaseDate"`
	Cost                    decimal.Decimal    `json:"cost"`
	SalvageValue            decimal.Decimal    `json:"salvageValue"`
	UsefulLifeMonths        int                `json:"usefulLifeMonths"`
	Method                  DepreciationMethod `json:"method"`
	DecliningRate           decimal.Decimal    `json:"decliningRate"` // monthly rate, only for DECLINING_BALANCE
	AccumulatedDepreciation decimal.Decimal    `json:"accumulatedDepreciation"`
	LastDepreciationPeriod  string             `json:"lastDepreciationPeriod"` // YYYY-MM, empty before the first run
	Status                  AssetStatus        `json:"status"`
	AuditFields
}

// NetBookValue is cost minus accumulated depreciation.
func (a FixedAsset) NetBookValue() decimal.Decimal {
	return a.Cost.Sub(a.AccumulatedDepreciation)
}

// PeriodAmount computes the depreciation charge for one period, clamped so
// the net book value never drops below the salvage value. A zero result
// means the asset is fully depreciated.
func (a FixedAsset) PeriodAmount() decimal.Decimal {
	depreciable := a.NetBookValue().Sub(a.SalvageValue)
	if depreciable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch a.Method {
	case DecliningBalance:
		amount = a.NetBookValue().Mul(a.DecliningRate).Round(2)
	default: // StraightLine
		if a.UsefulLifeMonths <= 0 {
			return decimal.Zero
		}
		amount = a.Cost.Sub(a.SalvageValue).
			Div(decimal.NewFromInt(int64(a.UsefulLifeMonths))).Round(2)
	}

	if amount.GreaterThan(depreciable) {
		amount = depreciable
	}
	return amount
}

// DepreciationReference is the idempotency key for one asset-period
// depreciation posting. Submitting the same pair twice is a no-op.
func (a FixedAsset) DepreciationReference(period string) string {
	return "DEP-" + period + "-" + a.Code
}
