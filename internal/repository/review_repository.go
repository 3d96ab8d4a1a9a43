package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"powersite-catalog/internal/models"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(collection *mongo.Collection) *ReviewRepository {
	return &ReviewRepository{collection: collection}
}

// FindBySKU lista las opiniones de un producto, más recientes primero
func (r *ReviewRepository) FindBySKU(ctx context.Context, sku string, page, pageSize int) ([]models.Review, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"sku": sku}
	skip, limit := skipLimit(page, pageSize)

	var (
		total   int64
		reviews = make([]models.Review, 0)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := r.collection.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("count reviews: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		findOptions := options.Find().
			SetProjection(withoutID).
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(skip).
			SetLimit(limit)

		cursor, err := r.collection.Find(gctx, filter, findOptions)
		if err != nil {
			return fmt.Errorf("find reviews: %w", err)
		}
		defer cursor.Close(gctx)

		return cursor.All(gctx, &reviews)
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// Create inserta una opinión ya sellada
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}
