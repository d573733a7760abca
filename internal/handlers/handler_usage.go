package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/middleware"
)

// usageHandler serves the billing observer's read contract.
type usageHandler struct {
	usageService portssvc.UsageReaderSvc
}

func newUsageHandler(us portssvc.UsageReaderSvc) *usageHandler {
	return &usageHandler{usageService: us}
}

func registerUsageRoutes(rg *gin.RouterGroup, usageService portssvc.UsageReaderSvc) {
	h := newUsageHandler(usageService)
	rg.GET("/usage", h.getUsage)
}

func (h *usageHandler) getUsage(c *gin.Context) {
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

	summary, err := h.usageService.GetUsageSummary(c.Request.Context(), tenant, from, to)
	if err != nil {
		logger.Error("Failed to retrieve usage summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve usage summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
