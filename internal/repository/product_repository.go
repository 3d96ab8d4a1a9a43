package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"powersite-catalog/internal/models"
)

const (
	defaultTimeout = 5 * time.Second
	queryTimeout   = 10 * time.Second
)

type ProductRepository struct {
	collection *mongo.Collection
	matcher    TextMatcher
}

func NewProductRepository(collection *mongo.Collection, matcher TextMatcher) *ProductRepository {
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	return &ProductRepository{
		collection: collection,
		matcher:    matcher,
	}
}

// Find lista productos con filtros y paginación; el total ignora la paginación
func (r *ProductRepository) Find(ctx context.Context, f models.ProductFilter, page, pageSize int) ([]models.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := productFilter(f)
	skip, limit := skipLimit(page, pageSize)

	var (
		total    int64
		products = make([]models.Product, 0)
	)

	// Contar total en paralelo
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := r.collection.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		findOptions := options.Find().
			SetProjection(withoutID).
			SetSkip(skip).
			SetLimit(limit)

		cursor, err := r.collection.Find(gctx, filter, findOptions)
		if err != nil {
			return fmt.Errorf("find products: %w", err)
		}
		defer cursor.Close(gctx)

		return cursor.All(gctx, &products)
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// FindBySKU obtiene un producto por SKU
func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var product models.Product
	opts := options.FindOne().SetProjection(withoutID)

	err := r.collection.FindOne(ctx, bson.M{"sku": sku}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find product %q: %w", sku, err)
	}

	return &product, nil
}

// Exists indica si hay algún producto con ese SKU
func (r *ProductRepository) Exists(ctx context.Context, sku string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.collection.CountDocuments(ctx, bson.M{"sku": sku}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count product %q: %w", sku, err)
	}
	return n > 0, nil
}

// Summaries devuelve la proyección reducida de los SKUs dados; los que no existen se omiten
func (r *ProductRepository) Summaries(ctx context.Context, skus []string) ([]models.ProductSummary, error) {
	items := make([]models.ProductSummary, 0, len(skus))
	if len(skus) == 0 {
		return items, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetProjection(summaryProjection)
	cursor, err := r.collection.Find(ctx, bson.M{"sku": bson.M{"$in": skus}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find product summaries: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode product summaries: %w", err)
	}
	return items, nil
}

// Suggest busca productos por título para el autocompletado
func (r *ProductRepository) Suggest(ctx context.Context, query string, limit int) ([]models.SearchSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(suggestionProjection).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, r.matcher.Match("title", query), opts)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}

	out := make([]models.SearchSuggestion, 0, len(products))
	for i := range products {
		out = append(out, products[i].Suggestion())
	}
	return out, nil
}

// All recorre el catálogo completo; lo usa el indexador de búsqueda
func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetProjection(withoutID))
	if err != nil {
		return nil, fmt.Errorf("find all products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// Upsert crea o reemplaza un producto por SKU
func (r *ProductRepository) Upsert(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"sku": product.SKU},
		bson.M{"$set": product},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert product %q: %w", product.SKU, err)
	}
	return nil
}
