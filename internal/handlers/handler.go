package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"powersite-catalog/internal/catalog"
	"powersite-catalog/internal/models"
)

// Catalog son las operaciones del servicio que exponen los handlers
type Catalog interface {
	Status() catalog.Status
	Schemas() []string
	Diagnostics(ctx context.Context) catalog.Diagnostics
	Search(ctx context.Context, query string, limit int) ([]models.SearchSuggestion, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListProducts(ctx context.Context, f models.ProductFilter, page, pageSize int) (*models.ProductPage, error)
	GetProduct(ctx context.Context, sku string) (*models.ProductDetail, error)
	GetReviews(ctx context.Context, sku string, page, pageSize int) (*models.ReviewPage, error)
	PostReview(ctx context.Context, sku string, in models.ReviewInput) error
	FindSpares(ctx context.Context, f models.SpareFilter) ([]models.SparePart, error)
	Checkout(ctx context.Context, order *models.Order) (*models.CheckoutResult, error)
}

type CatalogHandler struct {
	svc Catalog
	log *slog.Logger
}

func NewCatalogHandler(svc Catalog, log *slog.Logger) *CatalogHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CatalogHandler{svc: svc, log: log}
}

// Estructuras para respuestas
type ErrorResponse struct {
	Error      string `json:"error"`
	Field      string `json:"field,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

// writeError traduce los errores del dominio a respuestas HTTP
func (h *CatalogHandler) writeError(c *gin.Context, err error) {
	if ve, ok := models.IsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:      ve.Error(),
			Field:      ve.Field,
			Constraint: ve.Constraint,
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
	case errors.Is(err, models.ErrStoreUnavailable):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Database unavailable"})
	default:
		_ = c.Error(err)
		h.log.Error("request failed",
			"err", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"rid", c.GetString("rid"),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
