package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetProfitAndLossData(ctx context.Context, tenantID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.AccountAmount), args.Get(1).([]domain.AccountAmount), args.Error(2)
}

func (m *MockReportingRepository) GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, domain.AccountAmount, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, nil, nil, domain.AccountAmount{}, args.Error(4)
	}
	return args.Get(0).([]domain.AccountAmount), args.Get(1).([]domain.AccountAmount), args.Get(2).([]domain.AccountAmount), args.Get(3).(domain.AccountAmount), args.Error(4)
}

func (m *MockReportingRepository) GetAgingData(ctx context.Context, tenantID string, asOf time.Time, side domain.AgingSide) ([]domain.AgingRow, error) {
	args := m.Called(ctx, tenantID, asOf, side)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AgingRow), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportRepo *MockReportingRepository
	service        portssvc.ReportingSvcFacade
	tenant         *domain.Tenant
	asOf           time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockReportRepo)
	suite.tenant = &domain.Tenant{TenantID: uuid.NewString(), Slug: "acme", Status: domain.TenantActive}
	suite.asOf = time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
}

// --- TrialBalance ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountName: domain.AccountCash, AccountType: domain.Asset, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		{AccountID: uuid.NewString(), AccountCode: "4000", AccountName: domain.AccountSalesRevenue, AccountType: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
	}

	suite.mockReportRepo.On("GetTrialBalanceData", ctx, suite.tenant.TenantID, suite.asOf).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.tenant, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalDebit.Equal(report.TotalCredit))
	suite.Len(report.Rows, 2)
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_IntegrityAlarm() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountCode: "1000", Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		{AccountCode: "4000", Debit: decimal.Zero, Credit: decimal.NewFromInt(499)},
	}

	suite.mockReportRepo.On("GetTrialBalanceData", ctx, suite.tenant.TenantID, suite.asOf).Return(rows, nil).Once()

	_, err := suite.service.TrialBalance(ctx, suite.tenant, suite.asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrBooksUnbalanced)
	suite.Contains(err.Error(), "500")
	suite.Contains(err.Error(), "499")
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_EmptyLedger() {
	ctx := context.Background()

	suite.mockReportRepo.On("GetTrialBalanceData", ctx, suite.tenant.TenantID, suite.asOf).
		Return([]domain.TrialBalanceRow{}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.tenant, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalDebit.IsZero())
	suite.True(report.TotalCredit.IsZero())
	suite.Empty(report.Rows)
}

// --- ProfitAndLoss ---

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_Totals() {
	ctx := context.Background()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	revenue := []domain.AccountAmount{
		{Code: "4000", Name: domain.AccountSalesRevenue, NetAmount: decimal.NewFromInt(10000)},
		{Code: "4100", Name: domain.AccountOtherIncome, NetAmount: decimal.NewFromInt(500)},
	}
	expenses := []domain.AccountAmount{
		{Code: "5000", Name: domain.AccountCOGS, NetAmount: decimal.NewFromInt(6000)},
	}

	suite.mockReportRepo.On("GetProfitAndLossData", ctx, suite.tenant.TenantID, from, suite.asOf).
		Return(revenue, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.tenant, from, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(10500)))
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(6000)))
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(4500)))
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_RepoError() {
	ctx := context.Background()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repoErr := assert.AnError

	suite.mockReportRepo.On("GetProfitAndLossData", ctx, suite.tenant.TenantID, from, suite.asOf).
		Return(nil, nil, repoErr).Once()

	_, err := suite.service.ProfitAndLoss(ctx, suite.tenant, from, suite.asOf)

	suite.Require().Error(err)
	suite.Contains(err.Error(), repoErr.Error())
}

// --- BalanceSheet ---

func (suite *ReportingServiceTestSuite) TestBalanceSheet_BalancesWithEarningsRow() {
	// Assets 1,500 = Liabilities 500 + Capital 600 + current period earnings 400.
	ctx := context.Background()
	assets := []domain.AccountAmount{
		{Code: "1000", Name: domain.AccountCash, NetAmount: decimal.NewFromInt(1500)},
	}
	liabilities := []domain.AccountAmount{
		{Code: "2000", Name: domain.AccountPayable, NetAmount: decimal.NewFromInt(500)},
	}
	equity := []domain.AccountAmount{
		{Code: "3000", Name: domain.AccountOwnersCapital, NetAmount: decimal.NewFromInt(600)},
	}
	earnings := domain.AccountAmount{Name: "Current period earnings", NetAmount: decimal.NewFromInt(400)}

	suite.mockReportRepo.On("GetBalanceSheetData", ctx, suite.tenant.TenantID, suite.asOf).
		Return(assets, liabilities, equity, earnings, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.tenant, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(1500)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity)))
	// The computed earnings row travels inside equity.
	suite.Require().Len(report.Equity, 2)
	suite.Equal("Current period earnings", report.Equity[1].Name)
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_IntegrityAlarm() {
	ctx := context.Background()
	assets := []domain.AccountAmount{{Code: "1000", NetAmount: decimal.NewFromInt(1500)}}
	liabilities := []domain.AccountAmount{{Code: "2000", NetAmount: decimal.NewFromInt(500)}}
	equity := []domain.AccountAmount{{Code: "3000", NetAmount: decimal.NewFromInt(600)}}
	earnings := domain.AccountAmount{Name: "Current period earnings", NetAmount: decimal.NewFromInt(399)}

	suite.mockReportRepo.On("GetBalanceSheetData", ctx, suite.tenant.TenantID, suite.asOf).
		Return(assets, liabilities, equity, earnings, nil).Once()

	_, err := suite.service.BalanceSheet(ctx, suite.tenant, suite.asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrBooksUnbalanced)
}

// --- AgingReport ---

func (suite *ReportingServiceTestSuite) TestAgingReport_Receivables() {
	ctx := context.Background()
	rows := []domain.AgingRow{
		{Counterparty: "Wale Stores", Current: decimal.NewFromInt(100), Days1To30: decimal.NewFromInt(50), Total: decimal.NewFromInt(150)},
		{Counterparty: "Ngozi Ltd", Over90: decimal.NewFromInt(75), Total: decimal.NewFromInt(75)},
	}

	suite.mockReportRepo.On("GetAgingData", ctx, suite.tenant.TenantID, suite.asOf, domain.AgingReceivables).
		Return(rows, nil).Once()

	report, err := suite.service.AgingReport(ctx, suite.tenant, suite.asOf, domain.AgingReceivables)

	suite.Require().NoError(err)
	suite.Equal(domain.AgingReceivables, report.Side)
	suite.True(report.Total.Equal(decimal.NewFromInt(225)))
	suite.Len(report.Rows, 2)
	suite.mockReportRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
