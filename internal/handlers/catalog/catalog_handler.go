// internal/handlers/catalog/catalog_handler.go
package catalog

import (
	"net/http"
	"strconv"

	"aquafarm-service/internal/domain/billing"
	"aquafarm-service/internal/pkg/response"
	catalogService "aquafarm-service/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService *catalogService.Service
}

func NewCatalogHandler(svc *catalogService.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: svc}
}

// GetCatalog is public: prospective subscribers browse plans before login.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	catalog, err := h.catalogService.GetCatalog(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to load plan catalog", err)
		return
	}

	response.Success(c, http.StatusOK, "catalog retrieved", catalog)
}

// ========== Admin Endpoints ==========

func (h *CatalogHandler) AddPlan(c *gin.Context) {
	var req billing.AddPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid plan payload", err)
		return
	}

	plan, err := h.catalogService.AddPlan(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to add plan", err)
		return
	}

	response.Success(c, http.StatusCreated, "plan added", plan)
}

func (h *CatalogHandler) UpdatePlan(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.ValidationError(c, "invalid plan ID", err)
		return
	}

	var req billing.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid plan payload", err)
		return
	}

	plan, err := h.catalogService.UpdatePlan(c.Request.Context(), planID, &req)
	if err != nil {
		response.FromError(c, "failed to update plan", err)
		return
	}

	response.Success(c, http.StatusOK, "plan updated", plan)
}

func (h *CatalogHandler) RemovePlan(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.ValidationError(c, "invalid plan ID", err)
		return
	}

	if err := h.catalogService.RemovePlan(c.Request.Context(), planID); err != nil {
		response.FromError(c, "failed to remove plan", err)
		return
	}

	response.Success(c, http.StatusOK, "plan removed", nil)
}

func (h *CatalogHandler) ListCoupons(c *gin.Context) {
	coupons, err := h.catalogService.ListCoupons(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list coupons", err)
		return
	}

	response.Success(c, http.StatusOK, "coupons retrieved", coupons)
}

func (h *CatalogHandler) AddCoupon(c *gin.Context) {
	var req billing.AddCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid coupon payload", err)
		return
	}

	coupon, err := h.catalogService.AddCoupon(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to add coupon", err)
		return
	}

	response.Success(c, http.StatusCreated, "coupon added", coupon)
}

func (h *CatalogHandler) DeleteCoupon(c *gin.Context) {
	couponID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid coupon ID", err)
		return
	}

	if err := h.catalogService.DeleteCoupon(c.Request.Context(), couponID); err != nil {
		response.FromError(c, "failed to delete coupon", err)
		return
	}

	response.Success(c, http.StatusOK, "coupon deleted", nil)
}
