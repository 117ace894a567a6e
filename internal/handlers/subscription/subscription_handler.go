// internal/handlers/subscription/subscription_handler.go
package subscription

import (
	"net/http"
	"strconv"

	"aquafarm-service/internal/domain/billing"
	"aquafarm-service/internal/middleware"
	"aquafarm-service/internal/pkg/response"
	subService "aquafarm-service/internal/service/subscription"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subService *subService.Service
}

func NewSubscriptionHandler(svc *subService.Service) *SubscriptionHandler {
	return &SubscriptionHandler{subService: svc}
}

// ========== Farmer Endpoints ==========

// GetQuote prices a plan selection without any side effects. The months
// range check lives here; the engine uses the value as given.
func (h *SubscriptionHandler) GetQuote(c *gin.Context) {
	var req billing.SelectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid quote payload", err)
		return
	}

	quote, err := h.subService.SelectPlan(c.Request.Context(), req.PlanID, req.Months, req.CouponCode)
	if err != nil {
		response.FromError(c, "failed to compute quote", err)
		return
	}

	response.Success(c, http.StatusOK, "quote computed", quote)
}

// SubmitPayment re-prices the selection server-side and appends the payment
// to the ledger.
func (h *SubscriptionHandler) SubmitPayment(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	var req billing.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid payment payload", err)
		return
	}

	quote, err := h.subService.SelectPlan(c.Request.Context(), req.PlanID, req.Months, req.CouponCode)
	if err != nil {
		response.FromError(c, "failed to price plan", err)
		return
	}

	payment, err := h.subService.SubmitPayment(c.Request.Context(), userID, quote, req.TransactionReference)
	if err != nil {
		response.FromError(c, "payment submission failed", err)
		return
	}

	response.Success(c, http.StatusCreated, "payment submitted for review", payment)
}

func (h *SubscriptionHandler) ListMyPayments(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	payments, err := h.subService.ListUserPayments(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "failed to list payments", err)
		return
	}

	response.Success(c, http.StatusOK, "payments retrieved", payments)
}

// ========== Admin Endpoints ==========

func (h *SubscriptionHandler) ListPendingPayments(c *gin.Context) {
	payments, err := h.subService.ListPendingPayments(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list pending payments", err)
		return
	}

	response.Success(c, http.StatusOK, "pending payments retrieved", payments)
}

func (h *SubscriptionHandler) ApprovePayment(c *gin.Context) {
	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid payment ID", err)
		return
	}

	var req billing.ApprovePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid approval payload", err)
		return
	}

	if err := h.subService.ApprovePayment(c.Request.Context(), paymentID, req.Months); err != nil {
		response.FromError(c, "approval failed", err)
		return
	}

	response.Success(c, http.StatusOK, "payment approved", nil)
}

func (h *SubscriptionHandler) RejectPayment(c *gin.Context) {
	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid payment ID", err)
		return
	}

	if err := h.subService.RejectPayment(c.Request.Context(), paymentID); err != nil {
		response.FromError(c, "rejection failed", err)
		return
	}

	response.Success(c, http.StatusOK, "payment rejected", nil)
}

func (h *SubscriptionHandler) DeletePayment(c *gin.Context) {
	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid payment ID", err)
		return
	}

	if err := h.subService.DeletePayment(c.Request.Context(), paymentID); err != nil {
		response.FromError(c, "failed to delete payment", err)
		return
	}

	response.Success(c, http.StatusOK, "payment deleted", nil)
}

func (h *SubscriptionHandler) ListUsers(c *gin.Context) {
	users, err := h.subService.ListUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list users", err)
		return
	}

	response.Success(c, http.StatusOK, "users retrieved", users)
}

func (h *SubscriptionHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid user ID", err)
		return
	}

	if err := h.subService.DeleteUser(c.Request.Context(), userID); err != nil {
		response.FromError(c, "failed to delete user", err)
		return
	}

	response.Success(c, http.StatusOK, "user deleted", nil)
}
