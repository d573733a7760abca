package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/core/services"
	"github.com/tenbooks/tenbooks_app/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, tenantID string, name string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, typeFilter *domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, typeFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasUnreconciledEntries(ctx context.Context, tenantID string, accountID string) (bool, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, tenantID string, accountID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tenantID, accountID, updatedBy, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	tenant          *domain.Tenant
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.userID = uuid.NewString()
	suite.tenant = &domain.Tenant{
		TenantID:         uuid.NewString(),
		Slug:             "acme",
		Status:           domain.TenantActive,
		BaseCurrencyCode: "NGN",
	}
}

// --- CreateAccount ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "5200", Name: "Fuel & Transport", AccountType: domain.Expense}

	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.tenant.TenantID, req.Name).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(domain.Account)
			suite.Equal(suite.tenant.TenantID, account.TenantID)
			suite.Equal(req.Name, account.Name)
			suite.False(account.IsSystem)
			suite.True(account.IsActive)
			suite.Equal(suite.userID, account.CreatedBy)
		}).
		Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenant, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "9000", Name: "Misc", AccountType: "CONTRA"}

	_, err := suite.service.CreateAccount(ctx, suite.tenant, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateName() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "5200", Name: "Fuel & Transport", AccountType: domain.Expense}
	existing := &domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenant.TenantID, Name: req.Name}

	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.tenant.TenantID, req.Name).
		Return(existing, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.tenant, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateAccount)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateRace() {
	// The uniqueness precheck passed but the insert still collided.
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "5200", Name: "Fuel & Transport", AccountType: domain.Expense}

	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.tenant.TenantID, req.Name).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.Anything).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, suite.tenant, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateAccount)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// --- GetSystemAccount ---

func (suite *AccountServiceTestSuite) TestGetSystemAccount_Success() {
	ctx := context.Background()
	cash := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenant.TenantID,
		Name:        domain.AccountCash,
		AccountType: domain.Asset,
		IsSystem:    true,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.tenant.TenantID, domain.AccountCash).
		Return(cash, nil).Once()

	account, err := suite.service.GetSystemAccount(ctx, suite.tenant, domain.AccountCash)

	suite.Require().NoError(err)
	suite.Equal(cash.AccountID, account.AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetSystemAccount_Missing() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.tenant.TenantID, domain.AccountVATPayable).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetSystemAccount(ctx, suite.tenant, domain.AccountVATPayable)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTenantNotProvisioned)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetSystemAccount_NotSystem() {
	// A user account shadowing a system name does not satisfy provisioning.
	ctx := context.Background()
	impostor := &domain.Account{
		AccountID: uuid.NewString(),
		TenantID:  suite.tenant.TenantID,
		Name:      domain.AccountCash,
		IsSystem:  false,
		IsActive:  true,
	}

	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.tenant.TenantID, domain.AccountCash).
		Return(impostor, nil).Once()

	_, err := suite.service.GetSystemAccount(ctx, suite.tenant, domain.AccountCash)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTenantNotProvisioned)
}

// --- GetAccountByID / ListAccounts ---

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenant.TenantID, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.tenant, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_TypeFilter() {
	ctx := context.Background()
	expenseType := domain.Expense
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), TenantID: suite.tenant.TenantID, AccountType: domain.Expense, Name: "COGS"},
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenant.TenantID, &expenseType).
		Return(accounts, nil).Once()

	got, err := suite.service.ListAccounts(ctx, suite.tenant, &expenseType)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_InvalidTypeFilter() {
	ctx := context.Background()
	badType := domain.AccountType("CONTRA")

	_, err := suite.service.ListAccounts(ctx, suite.tenant, &badType)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything)
}

// --- DeactivateAccount ---

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID: uuid.NewString(),
		TenantID:  suite.tenant.TenantID,
		Name:      "Fuel & Transport",
		IsSystem:  false,
		IsActive:  true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenant.TenantID, account.AccountID).
		Return(account, nil).Once()
	suite.mockAccountRepo.On("HasUnreconciledEntries", ctx, suite.tenant.TenantID, account.AccountID).
		Return(false, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, suite.tenant.TenantID, account.AccountID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.tenant, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_SystemRefused() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID: uuid.NewString(),
		TenantID:  suite.tenant.TenantID,
		Name:      domain.AccountCash,
		IsSystem:  true,
		IsActive:  true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenant.TenantID, account.AccountID).
		Return(account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.tenant, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInUse)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_UnreconciledEntries() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID: uuid.NewString(),
		TenantID:  suite.tenant.TenantID,
		Name:      "Side Bank",
		IsSystem:  false,
		IsActive:  true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenant.TenantID, account.AccountID).
		Return(account, nil).Once()
	suite.mockAccountRepo.On("HasUnreconciledEntries", ctx, suite.tenant.TenantID, account.AccountID).
		Return(true, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.tenant, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInUse)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_RepoError() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenant.TenantID, IsActive: true}
	repoErr := assert.AnError

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenant.TenantID, account.AccountID).
		Return(account, nil).Once()
	suite.mockAccountRepo.On("HasUnreconciledEntries", ctx, suite.tenant.TenantID, account.AccountID).
		Return(false, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, suite.tenant.TenantID, account.AccountID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(repoErr).Once()

	err := suite.service.DeactivateAccount(ctx, suite.tenant, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.Contains(err.Error(), repoErr.Error())
}

// --- Run Test Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
