package handler

import (
	"net/http"

	"github.com/guustavovelos0/artisan/internal/apierror"
	"github.com/guustavovelos0/artisan/internal/dto"
	"github.com/guustavovelos0/artisan/internal/service"

	"github.com/gin-gonic/gin"
)

// InventoryHandler exposes the stock movement audit trail.
type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) Movements(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Movements(c.Request.Context(), userID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
