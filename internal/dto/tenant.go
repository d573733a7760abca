package dto

import (
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
)

// CreateTenantRequest defines the data needed to provision a new tenant.
type CreateTenantRequest struct {
	Name                 string `json:"name" binding:"required"`
	Slug                 string `json:"slug" binding:"required,lowercase,alphanum"`
	BaseCurrencyCode     string `json:"baseCurrencyCode" binding:"omitempty,currencycode"`
	FiscalYearStartMonth int    `json:"fiscalYearStartMonth" binding:"omitempty,min=1,max=12"`
}

// TenantResponse defines the data returned for a tenant.
type TenantResponse struct {
	TenantID             string              `json:"tenantID"`
	Name                 string              `json:"name"`
	Slug                 string              `json:"slug"`
	Status               domain.TenantStatus `json:"status"`
	BaseCurrencyCode     string              `json:"baseCurrencyCode"`
	FiscalYearStartMonth int                 `json:"fiscalYearStartMonth"`
	CreatedAt            time.Time           `json:"createdAt"`
}

// ToTenantResponse converts a domain.Tenant to its response DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:             t.TenantID,
		Name:                 t.Name,
		Slug:                 t.Slug,
		Status:               t.Status,
		BaseCurrencyCode:     t.BaseCurrencyCode,
		FiscalYearStartMonth: t.FiscalYearStartMonth,
		CreatedAt:            t.CreatedAt,
	}
}
