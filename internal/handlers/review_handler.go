package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"powersite-catalog/internal/catalog"
	"powersite-catalog/internal/models"
)

// GET /api/products/:sku/reviews
func (h *CatalogHandler) GetReviews(c *gin.Context) {
	page, pageSize, err := getPaginationParams(c, catalog.DefaultReviewPageSize)
	if err != nil {
		h.writeError(c, err)
		return
	}

	res, err := h.svc.GetReviews(c.Request.Context(), c.Param("sku"), page, pageSize)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// POST /api/products/:sku/reviews
func (h *CatalogHandler) PostReview(c *gin.Context) {
	var in models.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.writeError(c, models.DecodeError(err))
		return
	}

	if err := h.svc.PostReview(c.Request.Context(), c.Param("sku"), in); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}
