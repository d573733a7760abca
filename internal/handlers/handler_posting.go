package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/core/services"
	"github.com/tenbooks/tenbooks_app/internal/dto"
	"github.com/tenbooks/tenbooks_app/internal/middleware"
)

// postingHandler handles voucher posting and retrieval requests.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newPostingHandler(ps portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{postingService: ps}
}

// RegisterPostingRoutes mounts the voucher endpoints on a tenant-scoped
// router group.
func RegisterPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingService)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.createPosting)
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/:voucherID", h.getVoucher)
		vouchers.POST("/:voucherID/reverse", h.reverseVoucher)
	}
	rg.GET("/accounts/:accountID/entries", h.listAccountEntries)
}

// writePostingError maps posting engine errors onto HTTP statuses.
// Rejections are client errors; a concurrency abort after retries is a
// conflict the caller may resubmit.
func writePostingError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyPosting),
		errors.Is(err, services.ErrUnbalancedPosting),
		errors.Is(err, services.ErrInvalidAmount):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnknownAccount):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConcurrentModification):
		c.JSON(http.StatusConflict, gin.H{"error": "posting conflicted with a concurrent commit, retry"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "voucher not found"})
	default:
		logger.Error("Posting operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Posting operation failed"})
	}
}

func (h *postingHandler) createPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}

	var req dto.CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePosting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	voucher, err := h.postingService.Commit(c.Request.Context(), tenant, req.ToPostingRequest(), actor)
	if err != nil {
		writePostingError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

func (h *postingHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}

	voucher, err := h.postingService.GetVoucher(c.Request.Context(), tenant, c.Param("voucherID"))
	if err != nil {
		writePostingError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

func (h *postingHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}

	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.postingService.ListVouchers(c.Request.Context(), tenant, params)
	if err != nil {
		logger.Error("Failed to list vouchers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vouchers"})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *postingHandler) reverseVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	voucher, err := h.postingService.ReversePosting(c.Request.Context(), tenant, c.Param("voucherID"), actor)
	if err != nil {
		writePostingError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

func (h *postingHandler) listAccountEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.postingService.ListEntriesByAccount(c.Request.Context(), tenant, c.Param("accountID"), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, page)
}
