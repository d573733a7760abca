package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
)

// ErrBooksUnbalanced is an integrity alarm: the trial balance does not net
// to zero. It should never occur while the posting engine's invariants hold;
// it is surfaced to operators and never auto-repaired, since silent repair
// could mask data loss.
var ErrBooksUnbalanced = errors.New("ledger integrity failure: trial balance does not net to zero")

// reportingService derives financial statements from committed entries.
// Nothing here stores derived state; every report is recomputed on call.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(rr portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: rr}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance sums debits and credits per account up to asOf and verifies
// the books net to zero. This is the primary regression detector for the
// posting engine.
func (s *reportingService) TrialBalance(ctx context.Context, tenant *domain.Tenant, asOf time.Time) (*domain.TrialBalanceReport, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, tenant.TenantID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data", slog.String("tenant_id", tenant.TenantID))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		s.LogError(ctx, ErrBooksUnbalanced, "Trial balance does not net to zero",
			slog.String("tenant_id", tenant.TenantID),
			slog.String("total_debit", totalDebit.String()),
			slog.String("total_credit", totalCredit.String()),
			slog.String("as_of", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("%w: debits %s, credits %s", ErrBooksUnbalanced, totalDebit.String(), totalCredit.String())
	}

	return &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}

// ProfitAndLoss sums revenue and expense movements within the range.
func (s *reportingService) ProfitAndLoss(ctx context.Context, tenant *domain.Tenant, from, to time.Time) (*domain.PAndLReport, error) {
	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, tenant.TenantID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve profit and loss data", slog.String("tenant_id", tenant.TenantID))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	totalRevenue := decimal.Zero
	for _, r := range revenue {
		totalRevenue = totalRevenue.Add(r.NetAmount)
	}
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.NetAmount)
	}

	return &domain.PAndLReport{
		From:          from,
		To:            to,
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetProfit:     totalRevenue.Sub(totalExpenses),
	}, nil
}

// BalanceSheet reports cumulative balances as of the date. Revenue and
// expense accounts are never closed in this ledger, so the earnings they
// accumulate are rolled into equity as a computed row; with that row the
// sheet balances exactly, not within a tolerance.
func (s *reportingService) BalanceSheet(ctx context.Context, tenant *domain.Tenant, asOf time.Time) (*domain.BalanceSheetReport, error) {
	assets, liabilities, equity, earnings, err := s.reportingRepo.GetBalanceSheetData(ctx, tenant.TenantID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data", slog.String("tenant_id", tenant.TenantID))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	equity = append(equity, earnings)

	totalAssets := decimal.Zero
	for _, a := range assets {
		totalAssets = totalAssets.Add(a.NetAmount)
	}
	totalLiabilities := decimal.Zero
	for _, l := range liabilities {
		totalLiabilities = totalLiabilities.Add(l.NetAmount)
	}
	totalEquity := decimal.Zero
	for _, e := range equity {
		totalEquity = totalEquity.Add(e.NetAmount)
	}

	if !totalAssets.Equal(totalLiabilities.Add(totalEquity)) {
		s.LogError(ctx, ErrBooksUnbalanced, "Balance sheet equation does not hold",
			slog.String("tenant_id", tenant.TenantID),
			slog.String("assets", totalAssets.String()),
			slog.String("liabilities", totalLiabilities.String()),
			slog.String("equity", totalEquity.String()))
		return nil, fmt.Errorf("%w: assets %s, liabilities+equity %s", ErrBooksUnbalanced,
			totalAssets.String(), totalLiabilities.Add(totalEquity).String())
	}

	return &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
	}, nil
}

// AgingReport buckets open receivables or payables by days past due.
func (s *reportingService) AgingReport(ctx context.Context, tenant *domain.Tenant, asOf time.Time, side domain.AgingSide) (*domain.AgingReport, error) {
	rows, err := s.reportingRepo.GetAgingData(ctx, tenant.TenantID, asOf, side)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve aging data",
			slog.String("tenant_id", tenant.TenantID), slog.String("side", string(side)))
		return nil, fmt.Errorf("failed to retrieve aging data: %w", err)
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Total)
	}
	return &domain.AgingReport{AsOf: asOf, Side: side, Rows: rows, Total: total}, nil
}
