// Package catalogtest implementa en memoria todos los stores del catálogo,
// con las mismas reglas de filtrado, orden y proyección que los repositorios
// de MongoDB.
package catalogtest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"powersite-catalog/internal/catalog"
	"powersite-catalog/internal/models"
)

type Store struct {
	mu         sync.RWMutex
	products   []models.Product
	brands     []models.Brand
	categories []models.Category
	reviews    []models.Review
	spares     []models.SparePart
	orders     map[string]models.Order
	seq        int

	// Err, si no es nil, lo devuelven todas las operaciones
	Err error
}

func New() *Store {
	return &Store{orders: make(map[string]models.Order)}
}

// Stores expone el almacén con las interfaces del servicio
func (s *Store) Stores() catalog.Stores {
	p := products{s}
	return catalog.Stores{
		Products:   p,
		Search:     p,
		Brands:     brands{s},
		Categories: categories{s},
		Reviews:    reviews{s},
		Spares:     spares{s},
		Orders:     orders{s},
		DB:         s,
	}
}

func (s *Store) AddProducts(ps ...models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, ps...)
}

func (s *Store) AddBrands(bs ...models.Brand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands = append(s.brands, bs...)
}

func (s *Store) AddCategories(cs ...models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, cs...)
}

func (s *Store) AddReviews(rs ...models.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append(s.reviews, rs...)
}

func (s *Store) AddSpares(sp ...models.SparePart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spares = append(s.spares, sp...)
}

// Reviews devuelve todas las opiniones guardadas, en orden de inserción
func (s *Store) Reviews() []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Review(nil), s.reviews...)
}

// Order devuelve un pedido guardado
func (s *Store) Order(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

func (s *Store) CollectionNames(context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return []string{
		models.BrandCollection,
		models.CategoryCollection,
		models.ProductCollection,
		models.ReviewCollection,
		models.SparePartCollection,
		models.OrderCollection,
	}, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func paginate[T any](items []T, page, pageSize int) []T {
	if page-1 > len(items)/pageSize {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type products struct{ s *Store }

func (p products) Find(_ context.Context, f models.ProductFilter, page, pageSize int) ([]models.Product, int64, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	if p.s.Err != nil {
		return nil, 0, p.s.Err
	}

	matched := make([]models.Product, 0)
	for i := range p.s.products {
		if f.Matches(&p.s.products[i]) {
			matched = append(matched, p.s.products[i])
		}
	}
	return paginate(matched, page, pageSize), int64(len(matched)), nil
}

func (p products) FindBySKU(_ context.Context, sku string) (*models.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	if p.s.Err != nil {
		return nil, p.s.Err
	}

	for _, prod := range p.s.products {
		if prod.SKU == sku {
			return &prod, nil
		}
	}
	return nil, models.ErrNotFound
}

func (p products) Exists(ctx context.Context, sku string) (bool, error) {
	_, err := p.FindBySKU(ctx, sku)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (p products) Summaries(_ context.Context, skus []string) ([]models.ProductSummary, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	if p.s.Err != nil {
		return nil, p.s.Err
	}

	want := make(map[string]struct{}, len(skus))
	for _, sku := range skus {
		want[sku] = struct{}{}
	}

	out := make([]models.ProductSummary, 0, len(skus))
	for _, prod := range p.s.products {
		if _, ok := want[prod.SKU]; ok {
			out = append(out, models.ProductSummary{SKU: prod.SKU, Title: prod.Title, Price: prod.Price, Media: prod.Media})
		}
	}
	return out, nil
}

func (p products) Suggest(_ context.Context, query string, limit int) ([]models.SearchSuggestion, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	if p.s.Err != nil {
		return nil, p.s.Err
	}

	out := make([]models.SearchSuggestion, 0, limit)
	for i := range p.s.products {
		if len(out) == limit {
			break
		}
		if containsFold(p.s.products[i].Title, query) {
			out = append(out, p.s.products[i].Suggestion())
		}
	}
	return out, nil
}

// All devuelve el catálogo completo; lo usa el indexador de búsqueda
func (p products) All(context.Context) ([]models.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	if p.s.Err != nil {
		return nil, p.s.Err
	}
	return append([]models.Product{}, p.s.products...), nil
}

type brands struct{ s *Store }

func (b brands) All(context.Context) ([]models.Brand, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	if b.s.Err != nil {
		return nil, b.s.Err
	}
	return append([]models.Brand{}, b.s.brands...), nil
}

type categories struct{ s *Store }

func (c categories) All(context.Context) ([]models.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	if c.s.Err != nil {
		return nil, c.s.Err
	}
	return append([]models.Category{}, c.s.categories...), nil
}

type reviews struct{ s *Store }

func (r reviews) FindBySKU(_ context.Context, sku string, page, pageSize int) ([]models.Review, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, 0, r.s.Err
	}

	matched := make([]models.Review, 0)
	for _, rv := range r.s.reviews {
		if rv.SKU == sku {
			matched = append(matched, rv)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, page, pageSize), int64(len(matched)), nil
}

func (r reviews) Create(_ context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.reviews = append(r.s.reviews, *review)
	return nil
}

type spares struct{ s *Store }

func (sp spares) Find(_ context.Context, f models.SpareFilter) ([]models.SparePart, error) {
	sp.s.mu.RLock()
	defer sp.s.mu.RUnlock()
	if sp.s.Err != nil {
		return nil, sp.s.Err
	}

	out := make([]models.SparePart, 0)
	for _, part := range sp.s.spares {
		if f.SKU != "" && !slices.Contains(part.CompatibleSKUs, f.SKU) {
			continue
		}
		if f.Query != "" && !containsFold(part.Title, f.Query) {
			continue
		}
		out = append(out, part)
	}
	return out, nil
}

type orders struct{ s *Store }

func (o orders) Create(_ context.Context, order *models.Order) (string, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	if o.s.Err != nil {
		return "", o.s.Err
	}

	o.s.seq++
	id := fmt.Sprintf("order-%06d", o.s.seq)
	o.s.orders[id] = *order
	return id, nil
}
