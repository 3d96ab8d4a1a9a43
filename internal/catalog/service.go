package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"powersite-catalog/internal/models"
)

const (
	DefaultPage            = 1
	DefaultProductPageSize = 12
	DefaultReviewPageSize  = 10
	MaxPageSize            = 100

	DefaultSearchLimit = 8
	MaxSearchLimit     = 50
	MaxQueryLength     = 60

	ServiceName = "ThePowerSite API"
)

type Service struct {
	stores Stores
	log    *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

// WithClock sustituye el reloj usado para sellar opiniones y pedidos
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(stores Stores, log *slog.Logger, opts ...Option) *Service {
	if log == nil {
		log = slog.Default()
	}
	if stores.Search == nil {
		if sg, ok := stores.Products.(Suggester); ok {
			stores.Search = sg
		}
	}

	s := &Service{stores: stores, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) available() bool {
	return s.stores.Products != nil
}

// Status es la identidad del servicio
type Status struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Name    string `json:"name"`
}

func (s *Service) Status() Status {
	return Status{Status: "ok", Service: "backend", Name: ServiceName}
}

// Schemas lista los esquemas conocidos
func (s *Service) Schemas() []string {
	return models.SchemaNames()
}

// Search devuelve sugerencias cuyo título contiene la consulta
func (s *Service) Search(ctx context.Context, query string, limit int) ([]models.SearchSuggestion, error) {
	n := utf8.RuneCountInString(query)
	if n < 1 {
		return nil, models.Invalid("q", "min_length=1", "must have at least 1 character")
	}
	if n > MaxQueryLength {
		return nil, models.Invalid("q", fmt.Sprintf("max_length=%d", MaxQueryLength), fmt.Sprintf("must have at most %d characters", MaxQueryLength))
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	if !s.available() || s.stores.Search == nil {
		return []models.SearchSuggestion{}, nil
	}

	return s.stores.Search.Suggest(ctx, query, limit)
}

func (s *Service) ListBrands(ctx context.Context) ([]models.Brand, error) {
	if !s.available() || s.stores.Brands == nil {
		return []models.Brand{}, nil
	}
	return s.stores.Brands.All(ctx)
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	if !s.available() || s.stores.Categories == nil {
		return []models.Category{}, nil
	}
	return s.stores.Categories.All(ctx)
}

// ListProducts devuelve una página de productos filtrados
func (s *Service) ListProducts(ctx context.Context, f models.ProductFilter, page, pageSize int) (*models.ProductPage, error) {
	if err := checkPage(page, pageSize); err != nil {
		return nil, err
	}

	res := &models.ProductPage{Items: []models.Product{}, Page: page, PageSize: pageSize}
	if !s.available() {
		return res, nil
	}

	items, total, err := s.stores.Products.Find(ctx, f, page, pageSize)
	if err != nil {
		return nil, err
	}
	if items != nil {
		res.Items = items
	}
	res.Total = total

	return res, nil
}

// GetProduct devuelve el producto con accesorios y relacionados adjuntos
func (s *Service) GetProduct(ctx context.Context, sku string) (*models.ProductDetail, error) {
	if !s.available() {
		return nil, models.ErrStoreUnavailable
	}

	p, err := s.stores.Products.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	detail := &models.ProductDetail{Product: *p}

	g, gctx := errgroup.WithContext(ctx)
	if len(p.Accessories) > 0 {
		g.Go(func() error {
			items, err := s.stores.Products.Summaries(gctx, p.Accessories)
			if err != nil {
				return fmt.Errorf("accessories of %s: %w", sku, err)
			}
			detail.AccessoryItems = items
			return nil
		})
	}
	if len(p.RelatedSKUs) > 0 {
		g.Go(func() error {
			items, err := s.stores.Products.Summaries(gctx, p.RelatedSKUs)
			if err != nil {
				return fmt.Errorf("related items of %s: %w", sku, err)
			}
			detail.RelatedItems = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return detail, nil
}

// GetReviews devuelve las opiniones de un SKU, más recientes primero
func (s *Service) GetReviews(ctx context.Context, sku string, page, pageSize int) (*models.ReviewPage, error) {
	if err := checkPage(page, pageSize); err != nil {
		return nil, err
	}

	res := &models.ReviewPage{Items: []models.Review{}}
	if !s.available() || s.stores.Reviews == nil {
		return res, nil
	}

	items, total, err := s.stores.Reviews.FindBySKU(ctx, sku, page, pageSize)
	if err != nil {
		return nil, err
	}
	if items != nil {
		res.Items = items
	}
	res.Total = total

	return res, nil
}

// PostReview guarda una opinión si el producto existe
func (s *Service) PostReview(ctx context.Context, sku string, in models.ReviewInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if !s.available() || s.stores.Reviews == nil {
		return models.ErrStoreUnavailable
	}

	ok, err := s.stores.Products.Exists(ctx, sku)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrNotFound
	}

	review := models.NewReview(sku, in, s.now())
	if err := s.stores.Reviews.Create(ctx, review); err != nil {
		return err
	}

	s.log.Info("review created", "sku", sku, "rating", review.Rating)
	return nil
}

// FindSpares busca recambios; sin filtros devuelve todos
func (s *Service) FindSpares(ctx context.Context, f models.SpareFilter) ([]models.SparePart, error) {
	if !s.available() || s.stores.Spares == nil {
		return []models.SparePart{}, nil
	}
	return s.stores.Spares.Find(ctx, f)
}

// Checkout persiste el pedido. No hay idempotencia: dos envíos crean dos pedidos.
func (s *Service) Checkout(ctx context.Context, order *models.Order) (*models.CheckoutResult, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if !s.available() || s.stores.Orders == nil {
		return nil, models.ErrStoreUnavailable
	}

	order.CreatedAt = s.now().UTC()

	id, err := s.stores.Orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		"order_id", id,
		"items", len(order.Items),
		"total_inc_vat", order.Total(),
		"payment_method", order.PaymentMethod,
		"billing_postcode", order.Billing().Postcode,
	)

	return &models.CheckoutResult{Status: "ok", OrderID: id}, nil
}

// Diagnostics describe el estado del backend y de la base de datos
type Diagnostics struct {
	Backend     string   `json:"backend"`
	Database    string   `json:"database"`
	Collections []string `json:"collections,omitempty"`
}

func (s *Service) Diagnostics(ctx context.Context) Diagnostics {
	d := Diagnostics{Backend: "running", Database: "not available"}
	if !s.available() || s.stores.DB == nil {
		return d
	}

	d.Database = "connected"
	names, err := s.stores.DB.CollectionNames(ctx)
	if err != nil {
		d.Database = "error: " + truncate(err.Error(), 60)
		return d
	}
	d.Collections = names
	return d
}

func checkPage(page, pageSize int) error {
	if page < 1 {
		return models.Invalid("page", "gte=1", "must be greater than or equal to 1")
	}
	if pageSize < 1 {
		return models.Invalid("page_size", "gte=1", "must be greater than or equal to 1")
	}
	if pageSize > MaxPageSize {
		return models.Invalid("page_size", fmt.Sprintf("lte=%d", MaxPageSize), fmt.Sprintf("must be less than or equal to %d", MaxPageSize))
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
