package services

import (
	"context"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	"github.com/tenbooks/tenbooks_app/internal/dto"
)

// ProducerSvcFacade gathers the module-specific posting producers. Each
// producer only translates its business event into a balanced posting
// request and funnels it through the single commit entry point; none of
// them bypasses the engine's validation.
type ProducerSvcFacade interface {
	PostSalesInvoice(ctx context.Context, tenant *domain.Tenant, in dto.SalesInvoiceInput, userID string) (*domain.JournalVoucher, error)
	PostPurchaseBill(ctx context.Context, tenant *domain.Tenant, in dto.PurchaseBillInput, userID string) (*domain.JournalVoucher, error)
	PostExpense(ctx context.Context, tenant *domain.Tenant, in dto.ExpenseInput, userID string) (*domain.JournalVoucher, error)
	PostPayrollRun(ctx context.Context, tenant *domain.Tenant, in dto.PayrollRunInput, userID string) (*domain.JournalVoucher, error)
	PostFundTransfer(ctx context.Context, tenant *domain.Tenant, in dto.FundTransferInput, userID string) (*domain.JournalVoucher, error)
}
