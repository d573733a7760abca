package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/dto"
	"github.com/tenbooks/tenbooks_app/internal/middleware"
)

// producerHandler exposes the module-specific posting producers. Each
// endpoint translates one business event into a balanced posting through
// the engine's single commit path.
type producerHandler struct {
	producerService portssvc.ProducerSvcFacade
}

func newProducerHandler(ps portssvc.ProducerSvcFacade) *producerHandler {
	return &producerHandler{producerService: ps}
}

func registerProducerRoutes(rg *gin.RouterGroup, producerService portssvc.ProducerSvcFacade) {
	h := newProducerHandler(producerService)

	postings := rg.Group("/postings")
	{
		postings.POST("/sales-invoice", h.postSalesInvoice)
		postings.POST("/purchase-bill", h.postPurchaseBill)
		postings.POST("/expense", h.postExpense)
		postings.POST("/payroll-run", h.postPayrollRun)
		postings.POST("/fund-transfer", h.postFundTransfer)
	}
}

// producerEndpoint binds the request body, runs the producer and writes the
// committed voucher. All five producers share this shape.
func producerEndpoint[T any](run func(c *gin.Context, tenant *domain.Tenant, in T, actor string) (*domain.JournalVoucher, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		tenant, ok := middleware.GetTenantFromContext(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
			return
		}

		var in T
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}

		actor := middleware.GetActorFromContext(c)
		voucher, err := run(c, tenant, in, actor)
		if err != nil {
			writePostingError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
	}
}

func (h *producerHandler) postSalesInvoice(c *gin.Context) {
	producerEndpoint(func(c *gin.Context, tenant *domain.Tenant, in dto.SalesInvoiceInput, actor string) (*domain.JournalVoucher, error) {
		return h.producerService.PostSalesInvoice(c.Request.Context(), tenant, in, actor)
	})(c)
}

func (h *producerHandler) postPurchaseBill(c *gin.Context) {
	producerEndpoint(func(c *gin.Context, tenant *domain.Tenant, in dto.PurchaseBillInput, actor string) (*domain.JournalVoucher, error) {
		return h.producerService.PostPurchaseBill(c.Request.Context(), tenant, in, actor)
	})(c)
}

func (h *producerHandler) postExpense(c *gin.Context) {
	producerEndpoint(func(c *gin.Context, tenant *domain.Tenant, in dto.ExpenseInput, actor string) (*domain.JournalVoucher, error) {
		return h.producerService.PostExpense(c.Request.Context(), tenant, in, actor)
	})(c)
}

func (h *producerHandler) postPayrollRun(c *gin.Context) {
	producerEndpoint(func(c *gin.Context, tenant *domain.Tenant, in dto.PayrollRunInput, actor string) (*domain.JournalVoucher, error) {
		return h.producerService.PostPayrollRun(c.Request.Context(), tenant, in, actor)
	})(c)
}

func (h *producerHandler) postFundTransfer(c *gin.Context) {
	producerEndpoint(func(c *gin.Context, tenant *domain.Tenant, in dto.FundTransferInput, actor string) (*domain.JournalVoucher, error) {
		return h.producerService.PostFundTransfer(c.Request.Context(), tenant, in, actor)
	})(c)
}
