// internal/handlers/pond/pond_handler.go
package pond

import (
	"net/http"
	"strconv"

	"aquafarm-service/internal/domain/pond"
	"aquafarm-service/internal/middleware"
	"aquafarm-service/internal/pkg/response"
	pondService "aquafarm-service/internal/service/pond"

	"github.com/gin-gonic/gin"
)

type PondHandler struct {
	pondService *pondService.Service
}

func NewPondHandler(svc *pondService.Service) *PondHandler {
	return &PondHandler{pondService: svc}
}

func (h *PondHandler) CreatePond(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	var req pond.CreatePondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid pond payload", err)
		return
	}

	p, err := h.pondService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, "failed to create pond", err)
		return
	}

	response.Success(c, http.StatusCreated, "pond created", p)
}

func (h *PondHandler) ListPonds(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	ponds, err := h.pondService.List(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "failed to list ponds", err)
		return
	}

	response.Success(c, http.StatusOK, "ponds retrieved", ponds)
}

func (h *PondHandler) GetPond(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	pondID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid pond ID", err)
		return
	}

	p, err := h.pondService.Get(c.Request.Context(), userID, pondID)
	if err != nil {
		response.FromError(c, "failed to load pond", err)
		return
	}

	response.Success(c, http.StatusOK, "pond retrieved", p)
}

func (h *PondHandler) UpdatePond(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	pondID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid pond ID", err)
		return
	}

	var req pond.UpdatePondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid pond payload", err)
		return
	}

	if err := h.pondService.Update(c.Request.Context(), userID, pondID, &req); err != nil {
		response.FromError(c, "failed to update pond", err)
		return
	}

	response.Success(c, http.StatusOK, "pond updated", nil)
}

func (h *PondHandler) DeletePond(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	pondID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid pond ID", err)
		return
	}

	if err := h.pondService.Delete(c.Request.Context(), userID, pondID); err != nil {
		response.FromError(c, "failed to delete pond", err)
		return
	}

	response.Success(c, http.StatusOK, "pond deleted", nil)
}
