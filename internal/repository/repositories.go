package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"powersite-catalog/internal/models"
)

// Repositories agrupa los repositorios de todas las colecciones
type Repositories struct {
	Products   *ProductRepository
	Brands     *BrandRepository
	Categories *CategoryRepository
	Reviews    *ReviewRepository
	Spares     *SpareRepository
	Orders     *OrderRepository
}

// New crea los repositorios resolviendo cada colección desde el registro de esquemas
func New(db *mongo.Database, matcher TextMatcher) *Repositories {
	return &Repositories{
		Products:   NewProductRepository(collection(db, "Product"), matcher),
		Brands:     NewBrandRepository(collection(db, "Brand")),
		Categories: NewCategoryRepository(collection(db, "Category")),
		Reviews:    NewReviewRepository(collection(db, "Review")),
		Spares:     NewSpareRepository(collection(db, "SparePart"), matcher),
		Orders:     NewOrderRepository(collection(db, "Order")),
	}
}

func collection(db *mongo.Database, schema string) *mongo.Collection {
	name, ok := models.CollectionFor(schema)
	if !ok {
		panic(fmt.Sprintf("repository: schema %q has no collection", schema))
	}
	return db.Collection(name)
}
