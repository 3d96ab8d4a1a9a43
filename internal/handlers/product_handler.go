package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"powersite-catalog/internal/catalog"
	"powersite-catalog/internal/models"
)

// GET /api/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter, err := buildProductFilter(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	page, pageSize, err := getPaginationParams(c, catalog.DefaultProductPageSize)
	if err != nil {
		h.writeError(c, err)
		return
	}

	res, err := h.svc.ListProducts(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GET /api/products/:sku
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.svc.GetProduct(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GET /api/search
func (h *CatalogHandler) Search(c *gin.Context) {
	limit, err := queryInt(c, "limit", catalog.DefaultSearchLimit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	suggestions, err := h.svc.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// GET /api/brands
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.svc.ListBrands(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, brands)
}

// GET /api/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GET /api/spares
func (h *CatalogHandler) FindSpares(c *gin.Context) {
	filter := models.SpareFilter{
		SKU:   c.Query("sku"),
		Query: c.Query("q"),
	}

	parts, err := h.svc.FindSpares(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, parts)
}
