package catalog

import (
	"context"

	"powersite-catalog/internal/models"
)

// ProductStore es el acceso de lectura a la colección de productos
type ProductStore interface {
	// Find aplica los filtros presentes (AND) y pagina; el total ignora la paginación.
	// No hay orden garantizado.
	Find(ctx context.Context, f models.ProductFilter, page, pageSize int) ([]models.Product, int64, error)
	// FindBySKU devuelve models.ErrNotFound si el SKU no existe.
	FindBySKU(ctx context.Context, sku string) (*models.Product, error)
	Exists(ctx context.Context, sku string) (bool, error)
	// Summaries omite los SKUs que no existen.
	Summaries(ctx context.Context, skus []string) ([]models.ProductSummary, error)
}

// Suggester es el motor de autocompletado. El orden de los resultados no está definido.
type Suggester interface {
	Suggest(ctx context.Context, query string, limit int) ([]models.SearchSuggestion, error)
}

type BrandStore interface {
	All(ctx context.Context) ([]models.Brand, error)
}

type CategoryStore interface {
	All(ctx context.Context) ([]models.Category, error)
}

// ReviewStore devuelve las opiniones ordenadas por created_at descendente
type ReviewStore interface {
	FindBySKU(ctx context.Context, sku string, page, pageSize int) ([]models.Review, int64, error)
	Create(ctx context.Context, review *models.Review) error
}

type SpareStore interface {
	Find(ctx context.Context, f models.SpareFilter) ([]models.SparePart, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (string, error)
}

type CollectionLister interface {
	CollectionNames(ctx context.Context) ([]string, error)
}

// Stores agrupa las dependencias del servicio. Products a nil significa que
// no hay base de datos: el servicio responde en modo degradado.
type Stores struct {
	Products   ProductStore
	Search     Suggester
	Brands     BrandStore
	Categories CategoryStore
	Reviews    ReviewStore
	Spares     SpareStore
	Orders     OrderStore
	DB         CollectionLister
}
