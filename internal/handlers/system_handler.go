package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /
func (h *CatalogHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Status())
}

// GET /schema
func (h *CatalogHandler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": h.svc.Schemas()})
}

// GET /test
func (h *CatalogHandler) Diagnostics(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Diagnostics(c.Request.Context()))
}
