package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"powersite-catalog/internal/models"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(collection *mongo.Collection) *OrderRepository {
	return &OrderRepository{collection: collection}
}

// Create inserta el pedido y devuelve su identificador
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprint(res.InsertedID), nil
	}
	return id.Hex(), nil
}

// FindByID obtiene un pedido por su identificador
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.Invalid("order_id", "objectid", "invalid order ID")
	}

	var order models.Order
	opts := options.FindOne().SetProjection(withoutID)
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}, opts).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}

	return &order, nil
}
