package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/core/services"
	"github.com/tenbooks/tenbooks_app/internal/dto"
	"github.com/tenbooks/tenbooks_app/internal/handlers"
	"github.com/tenbooks/tenbooks_app/internal/middleware"
)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

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

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

// --- Mock TenantService ---
type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) ResolveTenant(ctx context.Context, identifier string) (*domain.Tenant, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantService) SuspendTenant(ctx context.Context, tenantID string, updaterUserID string) error {
	args := m.Called(ctx, tenantID, updaterUserID)
	return args.Error(0)
}

func (m *MockTenantService) ActivateTenant(ctx context.Context, tenantID string, updaterUserID string) error {
	args := m.Called(ctx, tenantID, updaterUserID)
	return args.Error(0)
}

var _ portssvc.TenantSvcFacade = (*MockTenantService)(nil)

// --- Test Suite ---
type PostingHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPostingService *MockPostingService
	mockTenantService  *MockTenantService
	tenant             *domain.Tenant
}

func (suite *PostingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockPostingService = new(MockPostingService)
	suite.mockTenantService = new(MockTenantService)

	suite.tenant = &domain.Tenant{
		TenantID:         uuid.NewString(),
		Name:             "Acme Traders",
		Slug:             "acme",
		Status:           domain.TenantActive,
		BaseCurrencyCode: "NGN",
	}

	v1 := suite.router.Group("/api/v1", middleware.TenantResolver(suite.mockTenantService))
	handlers.RegisterPostingRoutes(v1, suite.mockPostingService)
}

// serve runs a request through the router with the tenant header set.
func (suite *PostingHandlerTestSuite) serve(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set(middleware.TenantHeader, suite.tenant.Slug)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *PostingHandlerTestSuite) expectResolvedTenant() {
	suite.mockTenantService.On("ResolveTenant", mock.Anything, suite.tenant.Slug).
		Return(suite.tenant, nil).Once()
}

// --- Test Cases ---

func (suite *PostingHandlerTestSuite) TestCreatePosting_Success() {
	suite.expectResolvedTenant()

	cashID := uuid.NewString()
	revenueID := uuid.NewString()
	body := dto.CreatePostingRequest{
		Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Lines: []dto.PostingLineRequest{
			{AccountID: cashID, Side: domain.Debit, Amount: decimal.NewFromInt(500)},
			{AccountID: revenueID, Side: domain.Credit, Amount: decimal.NewFromInt(500)},
		},
	}

	saved := &domain.JournalVoucher{
		VoucherID:     uuid.NewString(),
		TenantID:      suite.tenant.TenantID,
		VoucherNumber: "JV-2026-000042",
		Date:          body.Date,
		Description:   body.Description,
		SourceModule:  domain.SourceManual,
		Status:        domain.Posted,
		Amount:        decimal.NewFromInt(500),
	}

	suite.mockPostingService.On("Commit",
		mock.AnythingOfType("*context.valueCtx"),
		suite.tenant,
		mock.MatchedBy(func(req domain.PostingRequest) bool {
			return req.SourceModule == domain.SourceManual &&
				len(req.Lines) == 2 &&
				req.IsBalanced()
		}),
		"system",
	).Return(saved, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/vouchers", body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.VoucherResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(saved.VoucherID, resp.VoucherID)
	suite.Equal("JV-2026-000042", resp.VoucherNumber)
	suite.Equal(domain.Posted, resp.Status)

	suite.mockPostingService.AssertExpectations(suite.T())
	suite.mockTenantService.AssertExpectations(suite.T())
}

func (suite *PostingHandlerTestSuite) TestCreatePosting_ActorHeaderRecorded() {
	suite.expectResolvedTenant()

	actor := uuid.NewString()
	body := dto.CreatePostingRequest{
		Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Lines: []dto.PostingLineRequest{
			{AccountID: uuid.NewString(), Side: domain.Debit, Amount: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), Side: domain.Credit, Amount: decimal.NewFromInt(100)},
		},
	}

	suite.mockPostingService.On("Commit", mock.Anything, suite.tenant, mock.Anything, actor).
		Return(&domain.JournalVoucher{VoucherID: uuid.NewString()}, nil).Once()

	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req, err := http.NewRequest(http.MethodPost, "/api/v1/vouchers", bytes.NewReader(payload))
	suite.Require().NoError(err)
	req.Header.Set(middleware.TenantHeader, suite.tenant.Slug)
	req.Header.Set(middleware.ActorHeader, actor)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *PostingHandlerTestSuite) TestCreatePosting_UnbalancedRejected() {
	suite.expectResolvedTenant()

	body := dto.CreatePostingRequest{
		Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Description: "Off by one",
		Lines: []dto.PostingLineRequest{
			{AccountID: uuid.NewString(), Side: domain.Debit, Amount: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), Side: domain.Credit, Amount: decimal.NewFromInt(99)},
		},
	}

	suite.mockPostingService.On("Commit", mock.Anything, suite.tenant, mock.Anything, "system").
		Return(nil, services.ErrUnbalancedPosting).Once()

	w := suite.serve(http.MethodPost, "/api/v1/vouchers", body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *PostingHandlerTestSuite) TestCreatePosting_MalformedBody() {
	suite.expectResolvedTenant()

	w := suite.serve(http.MethodPost, "/api/v1/vouchers", gin.H{"description": 12})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "Commit")
}

func (suite *PostingHandlerTestSuite) TestCreatePosting_SuspendedTenant() {
	suite.mockTenantService.On("ResolveTenant", mock.Anything, suite.tenant.Slug).
		Return(nil, apperrors.ErrTenantSuspended).Once()

	body := dto.CreatePostingRequest{
		Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Description: "Should never land",
		Lines: []dto.PostingLineRequest{
			{AccountID: uuid.NewString(), Side: domain.Debit, Amount: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), Side: domain.Credit, Amount: decimal.NewFromInt(100)},
		},
	}

	w := suite.serve(http.MethodPost, "/api/v1/vouchers", body)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "Commit")
}

func (suite *PostingHandlerTestSuite) TestCreatePosting_MissingTenantHeader() {
	req, err := http.NewRequest(http.MethodPost, "/api/v1/vouchers", bytes.NewReader(nil))
	suite.Require().NoError(err)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTenantService.AssertNotCalled(suite.T(), "ResolveTenant")
	suite.mockPostingService.AssertNotCalled(suite.T(), "Commit")
}

func (suite *PostingHandlerTestSuite) TestGetVoucher_NotFound() {
	suite.expectResolvedTenant()

	voucherID := uuid.NewString()
	suite.mockPostingService.On("GetVoucher", mock.Anything, suite.tenant, voucherID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodGet, fmt.Sprintf("/api/v1/vouchers/%s", voucherID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *PostingHandlerTestSuite) TestReverseVoucher_AlreadyReversed() {
	suite.expectResolvedTenant()

	voucherID := uuid.NewString()
	suite.mockPostingService.On("ReversePosting", mock.Anything, suite.tenant, voucherID, "system").
		Return(nil, apperrors.ErrConflict).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/vouchers/%s/reverse", voucherID), nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *PostingHandlerTestSuite) TestListVouchers_PassesPagination() {
	suite.expectResolvedTenant()

	token := "b3BhcXVl"
	page := &dto.ListVouchersResponse{
		Vouchers: []dto.VoucherResponse{{VoucherID: uuid.NewString(), VoucherNumber: "JV-2026-000001"}},
	}

	suite.mockPostingService.On("ListVouchers",
		mock.Anything,
		suite.tenant,
		mock.MatchedBy(func(p dto.ListVouchersParams) bool {
			return p.Limit == 5 && p.NextToken != nil && *p.NextToken == token
		}),
	).Return(page, nil).Once()

	w := suite.serve(http.MethodGet, fmt.Sprintf("/api/v1/vouchers?limit=5&nextToken=%s", token), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListVouchersResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Vouchers, 1)
	suite.mockPostingService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestPostingHandler(t *testing.T) {
	suite.Run(t, new(PostingHandlerTestSuite))
}
