package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"powersite-catalog/internal/models"
)

type BrandRepository struct {
	collection *mongo.Collection
}

func NewBrandRepository(collection *mongo.Collection) *BrandRepository {
	return &BrandRepository{collection: collection}
}

// All lista todas las marcas
func (r *BrandRepository) All(ctx context.Context) ([]models.Brand, error) {
	brands := make([]models.Brand, 0)
	if err := findAll(ctx, r.collection, &brands); err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

// Upsert crea o actualiza una marca por slug
func (r *BrandRepository) Upsert(ctx context.Context, brand *models.Brand) error {
	if err := upsert(ctx, r.collection, bson.M{"slug": brand.Slug}, brand); err != nil {
		return fmt.Errorf("upsert brand %q: %w", brand.Slug, err)
	}
	return nil
}

type CategoryRepository struct {
	collection *mongo.Collection
}

func NewCategoryRepository(collection *mongo.Collection) *CategoryRepository {
	return &CategoryRepository{collection: collection}
}

// All lista todas las categorías
func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := findAll(ctx, r.collection, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Upsert crea o actualiza una categoría por slug
func (r *CategoryRepository) Upsert(ctx context.Context, category *models.Category) error {
	if err := upsert(ctx, r.collection, bson.M{"slug": category.Slug}, category); err != nil {
		return fmt.Errorf("upsert category %q: %w", category.Slug, err)
	}
	return nil
}

type SpareRepository struct {
	collection *mongo.Collection
	matcher    TextMatcher
}

func NewSpareRepository(collection *mongo.Collection, matcher TextMatcher) *SpareRepository {
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	return &SpareRepository{collection: collection, matcher: matcher}
}

// Find busca recambios por SKU compatible y/o texto del título
func (r *SpareRepository) Find(ctx context.Context, f models.SpareFilter) ([]models.SparePart, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, spareFilter(f, r.matcher), options.Find().SetProjection(withoutID))
	if err != nil {
		return nil, fmt.Errorf("find spare parts: %w", err)
	}
	defer cursor.Close(ctx)

	parts := make([]models.SparePart, 0)
	if err = cursor.All(ctx, &parts); err != nil {
		return nil, fmt.Errorf("decode spare parts: %w", err)
	}
	return parts, nil
}

// Upsert crea o actualiza un recambio por SKU
func (r *SpareRepository) Upsert(ctx context.Context, part *models.SparePart) error {
	if err := upsert(ctx, r.collection, bson.M{"sku": part.SKU}, part); err != nil {
		return fmt.Errorf("upsert spare part %q: %w", part.SKU, err)
	}
	return nil
}

func findAll(ctx context.Context, collection *mongo.Collection, out any) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := collection.Find(ctx, bson.M{}, options.Find().SetProjection(withoutID))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}

func upsert(ctx context.Context, collection *mongo.Collection, key bson.M, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := collection.UpdateOne(ctx, key, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	return err
}
