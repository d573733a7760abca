package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/core/services"
	"github.com/tenbooks/tenbooks_app/internal/dto"
	"github.com/tenbooks/tenbooks_app/internal/middleware"
)

// assetHandler handles fixed-asset registration and depreciation runs.
type assetHandler struct {
	depreciationService portssvc.DepreciationSvcFacade
}

func newAssetHandler(ds portssvc.DepreciationSvcFacade) *assetHandler {
	return &assetHandler{depreciationService: ds}
}

func registerAssetRoutes(rg *gin.RouterGroup, depreciationService portssvc.DepreciationSvcFacade) {
	h := newAssetHandler(depreciationService)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("", h.listAssets)
	}
	rg.POST("/depreciation/run", h.runDepreciation)
}

func (h *assetHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	asset, err := h.depreciationService.CreateAsset(c.Request.Context(), tenant, req, actor)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAsset) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to register fixed asset", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register fixed asset"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

func (h *assetHandler) listAssets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}

	assets, err := h.depreciationService.ListAssets(c.Request.Context(), tenant)
	if err != nil {
		logger.Error("Failed to list fixed assets", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fixed assets"})
		return
	}

	out := make([]dto.AssetResponse, len(assets))
	for i := range assets {
		out[i] = dto.ToAssetResponse(&assets[i])
	}
	c.JSON(http.StatusOK, gin.H{"assets": out})
}

func (h *assetHandler) runDepreciation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}

	var req dto.DepreciationRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	result, err := h.depreciationService.RunDepreciation(c.Request.Context(), tenant, req.Period, actor)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrTenantNotProvisioned):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Depreciation run failed", slog.String("period", req.Period), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Depreciation run failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
