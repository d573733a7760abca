package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/core/services"
	"github.com/tenbooks/tenbooks_app/internal/middleware"
)

// reportingHandler serves the derived financial statements. Every report is
// recomputed from committed entries on each request.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/profit-and-loss", h.profitAndLoss)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/aging", h.aging)
	}
}

// dateQuery parses a YYYY-MM-DD query parameter, defaulting to now.
func dateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Now(), true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

func writeReportError(c *gin.Context, logger *slog.Logger, err error) {
	if errors.Is(err, services.ErrBooksUnbalanced) {
		logger.Error("Ledger integrity alarm", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logger.Error("Failed to derive report", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive report"})
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}
	asOf, ok := dateQuery(c, "asOf")
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), tenant, asOf)
	if err != nil {
		writeReportError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}
	if from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from date is after to date"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), tenant, from, to)
	if err != nil {
		writeReportError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}
	asOf, ok := dateQuery(c, "asOf")
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), tenant, asOf)
	if err != nil {
		writeReportError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) aging(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}
	asOf, ok := dateQuery(c, "asOf")
	if !ok {
		return
	}

	side := domain.AgingSide(c.DefaultQuery("side", string(domain.AgingReceivables)))
	if side != domain.AgingReceivables && side != domain.AgingPayables {
		c.JSON(http.StatusBadRequest, gin.H{"error": "side must be AR or AP"})
		return
	}

	report, err := h.reportingService.AgingReport(c.Request.Context(), tenant, asOf, side)
	if err != nil {
		writeReportError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
