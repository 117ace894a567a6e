// internal/handlers/records/records_handler.go
package records

import (
	"net/http"
	"strconv"
	"strings"

	"aquafarm-service/internal/domain/expense"
	"aquafarm-service/internal/domain/sale"
	"aquafarm-service/internal/domain/water"
	"aquafarm-service/internal/middleware"
	"aquafarm-service/internal/pkg/response"
	expenseService "aquafarm-service/internal/service/expense"
	saleService "aquafarm-service/internal/service/sale"
	waterService "aquafarm-service/internal/service/water"

	"github.com/gin-gonic/gin"
)

// RecordsHandler groups the farm bookkeeping endpoints: expenses, sales
// and water-quality readings.
type RecordsHandler struct {
	expenseService *expenseService.Service
	saleService    *saleService.Service
	waterService   *waterService.Service
}

func NewRecordsHandler(exp *expenseService.Service, sl *saleService.Service, wt *waterService.Service) *RecordsHandler {
	return &RecordsHandler{
		expenseService: exp,
		saleService:    sl,
		waterService:   wt,
	}
}

func (h *RecordsHandler) CreateExpense(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	var req expense.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid expense payload", err)
		return
	}

	e, err := h.expenseService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, "failed to record expense", err)
		return
	}

	response.Success(c, http.StatusCreated, "expense recorded", e)
}

func (h *RecordsHandler) ListExpenses(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	expenses, err := h.expenseService.List(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "failed to list expenses", err)
		return
	}

	response.Success(c, http.StatusOK, "expenses retrieved", expenses)
}

func (h *RecordsHandler) ExpenseTotals(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	totals, err := h.expenseService.TotalsByCategory(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "failed to total expenses", err)
		return
	}

	response.Success(c, http.StatusOK, "expense totals retrieved", totals)
}

func (h *RecordsHandler) CreateSale(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	var req sale.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid sale payload", err)
		return
	}

	s, err := h.saleService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, "failed to record sale", err)
		return
	}

	response.Success(c, http.StatusCreated, "sale recorded", s)
}

func (h *RecordsHandler) ListSales(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	sales, err := h.saleService.List(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "failed to list sales", err)
		return
	}

	response.Success(c, http.StatusOK, "sales retrieved", sales)
}

func (h *RecordsHandler) SalesRevenue(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	total, err := h.saleService.TotalRevenue(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "failed to total sales", err)
		return
	}

	response.Success(c, http.StatusOK, "sales revenue retrieved", gin.H{"total_revenue": total})
}

func (h *RecordsHandler) RecordWaterReading(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	var req water.CreateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid reading payload", err)
		return
	}

	reading, err := h.waterService.Record(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, "failed to record reading", err)
		return
	}

	response.Success(c, http.StatusCreated, "reading recorded", reading)
}

func (h *RecordsHandler) ListWaterReadings(c *gin.Context) {
	pondID, err := strconv.ParseInt(c.Param("pond_id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid pond ID", err)
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	readings, err := h.waterService.ListByPond(c.Request.Context(), pondID, limit)
	if err != nil {
		response.FromError(c, "failed to list readings", err)
		return
	}

	response.Success(c, http.StatusOK, "readings retrieved", readings)
}

// ListFlaggedReadings returns readings flagged for any of the
// comma-separated parameters in ?params= (all parameters when omitted).
func (h *RecordsHandler) ListFlaggedReadings(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	params := []string{"ph", "temp_c", "dissolved_oxygen", "ammonia"}
	if raw := c.Query("params"); raw != "" {
		params = strings.Split(raw, ",")
	}

	readings, err := h.waterService.ListFlagged(c.Request.Context(), userID, params)
	if err != nil {
		response.FromError(c, "failed to list flagged readings", err)
		return
	}

	response.Success(c, http.StatusOK, "flagged readings retrieved", readings)
}
