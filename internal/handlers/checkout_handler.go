package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"powersite-catalog/internal/models"
)

// POST /api/checkout
func (h *CatalogHandler) Checkout(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		h.writeError(c, models.DecodeError(err))
		return
	}

	res, err := h.svc.Checkout(c.Request.Context(), &order)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
