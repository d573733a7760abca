package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/core/services"
	"github.com/tenbooks/tenbooks_app/internal/dto"
)

// --- Mock AssetRepository ---
type MockAssetRepository struct {
	mock.Mock
}

var _ portsrepo.AssetRepositoryFacade = (*MockAssetRepository)(nil)

func (m *MockAssetRepository) FindAssetByID(ctx context.Context, tenantID string, assetID string) (*domain.FixedAsset, error) {
	args := m.Called(ctx, tenantID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FixedAsset), args.Error(1)
}

func (m *MockAssetRepository) ListActiveAssets(ctx context.Context, tenantID string) ([]domain.FixedAsset, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FixedAsset), args.Error(1)
}

func (m *MockAssetRepository) CountAssets(ctx context.Context, tenantID string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssetRepository) SaveAsset(ctx context.Context, asset domain.FixedAsset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) ApplyDepreciation(ctx context.Context, tenantID string, assetID string, amount decimal.Decimal, period string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tenantID, assetID, amount, period, updatedBy, now)
	return args.Error(0)
}

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) Commit(ctx context.Context, tenant *domain.Tenant, req domain.PostingRequest, creatorUserID string) (*domain.JournalVoucher, error) {
	args := m.Called(ctx, tenant, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalVoucher), args.Error(1)
}

func (m *MockPostingService) ReversePosting(ctx context.Context, tenant *domain.Tenant, voucherID string, userID string) (*domain.JournalVoucher, error) {
	args := m.Called(ctx, tenant, voucherID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalVoucher), args.Error(1)
}

func (m *MockPostingService) GetVoucher(ctx context.Context, tenant *domain.Tenant, voucherID string) (*domain.JournalVoucher, error) {
	args := m.Called(ctx, tenant, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalVoucher), args.Error(1)
}

func (m *MockPostingService) ListVouchers(ctx context.Context, tenant *domain.Tenant, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	args := m.Called(ctx, tenant, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListVouchersResponse), args.Error(1)
}

func (m *MockPostingService) ListEntriesByAccount(ctx context.Context, tenant *domain.Tenant, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, tenant, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

// --- Test Suite Setup ---
type DepreciationServiceTestSuite struct {
	suite.Suite
	mockAssetRepo   *MockAssetRepository
	mockVoucherRepo *MockVoucherRepository
	mockAccountSvc  *MockAccountService
	mockPostingSvc  *MockPostingService
	service         portssvc.DepreciationSvcFacade
	tenant          *domain.Tenant
	expenseAcct     *domain.Account
	accumAcct       *domain.Account
	userID          string
}

func (suite *DepreciationServiceTestSuite) SetupTest() {
	suite.mockAssetRepo = new(MockAssetRepository)
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockPostingSvc = new(MockPostingService)
	suite.service = services.NewDepreciationService(suite.mockAssetRepo, suite.mockVoucherRepo, suite.mockAccountSvc, suite.mockPostingSvc)

	suite.userID = uuid.NewString()
	suite.tenant = &domain.Tenant{TenantID: uuid.NewString(), Slug: "acme", Status: domain.TenantActive}
	suite.expenseAcct = &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenant.TenantID,
		Name:        domain.AccountDepExpense,
		AccountType: domain.Expense,
		IsSystem:    true,
		IsActive:    true,
	}
	suite.accumAcct = &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenant.TenantID,
		Name:        domain.AccountAccumulatedDep,
		AccountType: domain.Asset,
		IsSystem:    true,
		IsActive:    true,
	}
}

func (suite *DepreciationServiceTestSuite) straightLineAsset(code string) domain.FixedAsset {
	// 360,000 over 36 months with no salvage: 10,000 per period.
	return domain.FixedAsset{
		AssetID:                 uuid.NewString(),
		TenantID:                suite.tenant.TenantID,
		Code:                    code,
		Name:                    "Delivery Van " + code,
		PurchaseDate:            time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Cost:                    decimal.NewFromInt(360000),
		SalvageValue:            decimal.Zero,
		UsefulLifeMonths:        36,
		Method:                  domain.StraightLine,
		AccumulatedDepreciation: decimal.Zero,
		Status:                  domain.AssetActive,
	}
}

func (suite *DepreciationServiceTestSuite) expectSystemAccounts(ctx context.Context) {
	suite.mockAccountSvc.On("GetSystemAccount", ctx, suite.tenant, domain.AccountDepExpense).Return(suite.expenseAcct, nil).Once()
	suite.mockAccountSvc.On("GetSystemAccount", ctx, suite.tenant, domain.AccountAccumulatedDep).Return(suite.accumAcct, nil).Once()
}

// --- CreateAsset ---

func (suite *DepreciationServiceTestSuite) TestCreateAsset_Success() {
	ctx := context.Background()
	req := dto.CreateAssetRequest{
		Name:             "Delivery Van",
		PurchaseDate:     time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Cost:             decimal.NewFromInt(360000),
		UsefulLifeMonths: 36,
	}

	suite.mockAssetRepo.On("CountAssets", ctx, suite.tenant.TenantID).Return(int64(2), nil).Once()
	suite.mockAssetRepo.On("SaveAsset", ctx, mock.AnythingOfType("domain.FixedAsset")).
		Run(func(args mock.Arguments) {
			asset := args.Get(1).(domain.FixedAsset)
			suite.Equal("FA-0003", asset.Code)
			suite.Equal(domain.StraightLine, asset.Method)
			suite.Equal(domain.AssetActive, asset.Status)
			suite.True(asset.AccumulatedDepreciation.IsZero())
		}).
		Return(nil).Once()

	asset, err := suite.service.CreateAsset(ctx, suite.tenant, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("FA-0003", asset.Code)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *DepreciationServiceTestSuite) TestCreateAsset_NonPositiveCost() {
	ctx := context.Background()
	req := dto.CreateAssetRequest{Name: "Freebie", Cost: decimal.Zero, UsefulLifeMonths: 12}

	_, err := suite.service.CreateAsset(ctx, suite.tenant, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAsset)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "SaveAsset", mock.Anything, mock.Anything)
}

func (suite *DepreciationServiceTestSuite) TestCreateAsset_SalvageAboveCost() {
	ctx := context.Background()
	req := dto.CreateAssetRequest{
		Name:             "Van",
		Cost:             decimal.NewFromInt(100),
		SalvageValue:     decimal.NewFromInt(200),
		UsefulLifeMonths: 12,
	}

	_, err := suite.service.CreateAsset(ctx, suite.tenant, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAsset)
}

func (suite *DepreciationServiceTestSuite) TestCreateAsset_DecliningRateOutOfRange() {
	ctx := context.Background()
	req := dto.CreateAssetRequest{
		Name:          "Machine",
		Cost:          decimal.NewFromInt(1000),
		Method:        domain.DecliningBalance,
		DecliningRate: decimal.NewFromInt(1),
	}

	_, err := suite.service.CreateAsset(ctx, suite.tenant, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAsset)
}

// --- RunDepreciation ---

func (suite *DepreciationServiceTestSuite) TestRunDepreciation_PostsChargePerAsset() {
	ctx := context.Background()
	asset := suite.straightLineAsset("FA-0001")
	periodEnd := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	charge := decimal.NewFromInt(10000)

	suite.expectSystemAccounts(ctx)
	suite.mockAssetRepo.On("ListActiveAssets", ctx, suite.tenant.TenantID).
		Return([]domain.FixedAsset{asset}, nil).Once()
	suite.mockVoucherRepo.On("FindVoucherByReference", ctx, suite.tenant.TenantID, domain.SourceDepreciation, "DEP-2026-03-FA-0001").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPostingSvc.On("Commit", ctx, suite.tenant, mock.AnythingOfType("domain.PostingRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			req := args.Get(2).(domain.PostingRequest)
			suite.Equal(domain.SourceDepreciation, req.SourceModule)
			suite.True(req.Date.Equal(periodEnd))
			suite.Equal("DEP-2026-03-FA-0001", req.Reference)
			suite.Require().Len(req.Lines, 2)
			suite.Equal(suite.expenseAcct.AccountID, req.Lines[0].AccountID)
			suite.Equal(domain.Debit, req.Lines[0].Side)
			suite.True(req.Lines[0].Amount.Equal(charge))
			suite.Equal(suite.accumAcct.AccountID, req.Lines[1].AccountID)
			suite.Equal(domain.Credit, req.Lines[1].Side)
		}).
		Return(&domain.JournalVoucher{VoucherID: uuid.NewString(), VoucherNumber: "JV-2026-000020", Status: domain.Posted}, nil).Once()
	suite.mockAssetRepo.On("ApplyDepreciation", ctx, suite.tenant.TenantID, asset.AssetID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(charge) }),
		"2026-03", suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	result, err := suite.service.RunDepreciation(ctx, suite.tenant, "2026-03", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.AssetsPosted)
	suite.Equal(0, result.AssetsSkipped)
	suite.True(result.TotalPosted.Equal(charge))
	suite.Equal([]string{"JV-2026-000020"}, result.VoucherNumbers)
	suite.mockAssetRepo.AssertExpectations(suite.T())
	suite.mockVoucherRepo.AssertExpectations(suite.T())
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *DepreciationServiceTestSuite) TestRunDepreciation_Idempotent() {
	// A voucher already carries this asset-period reference, so the rerun
	// skips it without posting again. The asset row is re-applied with the
	// voucher's amount; the period stamp makes that a no-op here.
	ctx := context.Background()
	asset := suite.straightLineAsset("FA-0001")
	asset.AccumulatedDepreciation = decimal.NewFromInt(10000)
	asset.LastDepreciationPeriod = "2026-03"
	charge := decimal.NewFromInt(10000)

	suite.expectSystemAccounts(ctx)
	suite.mockAssetRepo.On("ListActiveAssets", ctx, suite.tenant.TenantID).
		Return([]domain.FixedAsset{asset}, nil).Once()
	suite.mockVoucherRepo.On("FindVoucherByReference", ctx, suite.tenant.TenantID, domain.SourceDepreciation, "DEP-2026-03-FA-0001").
		Return(&domain.JournalVoucher{VoucherID: uuid.NewString(), VoucherNumber: "JV-2026-000020", Amount: charge}, nil).Once()
	suite.mockAssetRepo.On("ApplyDepreciation", ctx, suite.tenant.TenantID, asset.AssetID, charge, "2026-03", suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	result, err := suite.service.RunDepreciation(ctx, suite.tenant, "2026-03", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.AssetsPosted)
	suite.Equal(1, result.AssetsSkipped)
	suite.True(result.TotalPosted.IsZero())
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *DepreciationServiceTestSuite) TestRunDepreciation_RepairsAssetAfterPartialFailure() {
	// A prior run posted the voucher but died before updating the asset:
	// the ledger says 10,000 depreciated, the asset row still says zero.
	// The rerun finds the voucher and re-applies its recorded amount to the
	// asset instead of skipping the repair forever.
	ctx := context.Background()
	asset := suite.straightLineAsset("FA-0001")
	charge := decimal.NewFromInt(10000)

	suite.expectSystemAccounts(ctx)
	suite.mockAssetRepo.On("ListActiveAssets", ctx, suite.tenant.TenantID).
		Return([]domain.FixedAsset{asset}, nil).Once()
	suite.mockVoucherRepo.On("FindVoucherByReference", ctx, suite.tenant.TenantID, domain.SourceDepreciation, "DEP-2026-03-FA-0001").
		Return(&domain.JournalVoucher{VoucherID: uuid.NewString(), VoucherNumber: "JV-2026-000020", Amount: charge}, nil).Once()
	suite.mockAssetRepo.On("ApplyDepreciation", ctx, suite.tenant.TenantID, asset.AssetID, charge, "2026-03", suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	result, err := suite.service.RunDepreciation(ctx, suite.tenant, "2026-03", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.AssetsPosted)
	suite.Equal(1, result.AssetsSkipped)
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAssetRepo.AssertNumberOfCalls(suite.T(), "ApplyDepreciation", 1)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *DepreciationServiceTestSuite) TestRunDepreciation_SkipsFutureAndFullyDepreciated() {
	ctx := context.Background()
	future := suite.straightLineAsset("FA-0001")
	future.PurchaseDate = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	done := suite.straightLineAsset("FA-0002")
	done.AccumulatedDepreciation = done.Cost

	suite.expectSystemAccounts(ctx)
	suite.mockAssetRepo.On("ListActiveAssets", ctx, suite.tenant.TenantID).
		Return([]domain.FixedAsset{future, done}, nil).Once()

	result, err := suite.service.RunDepreciation(ctx, suite.tenant, "2026-03", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.AssetsPosted)
	suite.Equal(2, result.AssetsSkipped)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "FindVoucherByReference", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DepreciationServiceTestSuite) TestRunDepreciation_BadPeriod() {
	_, err := suite.service.RunDepreciation(context.Background(), suite.tenant, "March 2026", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidPeriod)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetSystemAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DepreciationServiceTestSuite) TestRunDepreciation_MissingSystemAccount() {
	ctx := context.Background()

	suite.mockAccountSvc.On("GetSystemAccount", ctx, suite.tenant, domain.AccountDepExpense).
		Return(nil, services.ErrTenantNotProvisioned).Once()

	_, err := suite.service.RunDepreciation(ctx, suite.tenant, "2026-03", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTenantNotProvisioned)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "ListActiveAssets", mock.Anything, mock.Anything)
}

func (suite *DepreciationServiceTestSuite) TestRunDepreciation_PostingFailureAborts() {
	ctx := context.Background()
	asset := suite.straightLineAsset("FA-0001")

	suite.expectSystemAccounts(ctx)
	suite.mockAssetRepo.On("ListActiveAssets", ctx, suite.tenant.TenantID).
		Return([]domain.FixedAsset{asset}, nil).Once()
	suite.mockVoucherRepo.On("FindVoucherByReference", ctx, suite.tenant.TenantID, domain.SourceDepreciation, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPostingSvc.On("Commit", ctx, suite.tenant, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrConcurrentModification).Once()

	_, err := suite.service.RunDepreciation(ctx, suite.tenant, "2026-03", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConcurrentModification)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "ApplyDepreciation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestDepreciationService(t *testing.T) {
	suite.Run(t, new(DepreciationServiceTestSuite))
}
