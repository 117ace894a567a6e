// internal/handlers/stock/stock_handler.go
package stock

import (
	"net/http"
	"strconv"

	"aquafarm-service/internal/domain/inventory"
	"aquafarm-service/internal/middleware"
	"aquafarm-service/internal/pkg/response"
	stockService "aquafarm-service/internal/service/stock"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	stockService *stockService.Service
}

func NewStockHandler(svc *stockService.Service) *StockHandler {
	return &StockHandler{stockService: svc}
}

// PurchaseFeed records a purchase and its inventory and expense side
// effects. A partial failure still returns the created purchase so the
// client can show what committed.
func (h *StockHandler) PurchaseFeed(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	var req inventory.PurchaseFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid purchase payload", err)
		return
	}

	purchase, err := h.stockService.PurchaseFeed(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, "feed purchase incomplete", err)
		return
	}

	response.Success(c, http.StatusCreated, "feed purchased", purchase)
}

func (h *StockHandler) ApplyFeed(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	var req inventory.ApplyFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid application payload", err)
		return
	}

	app, err := h.stockService.ApplyFeed(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, "feed application failed", err)
		return
	}

	response.Success(c, http.StatusCreated, "feed applied", app)
}

func (h *StockHandler) ListInventory(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	items, err := h.stockService.ListInventory(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "failed to list inventory", err)
		return
	}

	response.Success(c, http.StatusOK, "inventory retrieved", items)
}

func (h *StockHandler) ListLowStock(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	items, err := h.stockService.ListLowStock(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "failed to list low stock", err)
		return
	}

	response.Success(c, http.StatusOK, "low stock retrieved", items)
}

func (h *StockHandler) UpdateItem(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid item ID", err)
		return
	}

	var req inventory.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid item payload", err)
		return
	}

	if err := h.stockService.UpdateItem(c.Request.Context(), userID, itemID, &req); err != nil {
		response.FromError(c, "failed to update item", err)
		return
	}

	response.Success(c, http.StatusOK, "item updated", nil)
}

func (h *StockHandler) DeleteItem(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid item ID", err)
		return
	}

	if err := h.stockService.DeleteItem(c.Request.Context(), userID, itemID); err != nil {
		response.FromError(c, "failed to delete item", err)
		return
	}

	response.Success(c, http.StatusOK, "item deleted", nil)
}

func (h *StockHandler) ListPurchases(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	purchases, err := h.stockService.ListPurchases(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "failed to list purchases", err)
		return
	}

	response.Success(c, http.StatusOK, "purchases retrieved", purchases)
}

// DeletePurchase removes the history record only; the inventory increment
// and expense entry it produced stay.
func (h *StockHandler) DeletePurchase(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	purchaseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid purchase ID", err)
		return
	}

	if err := h.stockService.DeletePurchase(c.Request.Context(), userID, purchaseID); err != nil {
		response.FromError(c, "failed to delete purchase", err)
		return
	}

	response.Success(c, http.StatusOK, "purchase deleted", nil)
}

func (h *StockHandler) ListApplications(c *gin.Context) {
	pondID, err := strconv.ParseInt(c.Param("pond_id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid pond ID", err)
		return
	}

	apps, err := h.stockService.ListApplications(c.Request.Context(), pondID)
	if err != nil {
		response.FromError(c, "failed to list applications", err)
		return
	}

	response.Success(c, http.StatusOK, "applications retrieved", apps)
}
