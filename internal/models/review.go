package models

import "time"

// ReviewInput es el cuerpo de POST /api/products/{sku}/reviews
type ReviewInput struct {
	Title  string `json:"title" bson:"title" validate:"required"`
	Body   string `json:"body" bson:"body" validate:"required"`
	Rating int    `json:"rating" bson:"rating" validate:"min=1,max=5"`
	Author string `json:"author" bson:"author" validate:"required"`
}

func (r *ReviewInput) Validate() error {
	return check(r)
}

// Review es una opinión persistida de un producto
type Review struct {
	SKU       string    `json:"sku" bson:"sku" validate:"required"`
	Title     string    `json:"title" bson:"title" validate:"required"`
	Body      string    `json:"body" bson:"body" validate:"required"`
	Rating    int       `json:"rating" bson:"rating" validate:"min=1,max=5"`
	Author    string    `json:"author" bson:"author" validate:"required"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (r *Review) Validate() error {
	return check(r)
}

// NewReview sella la opinión con el SKU destino y la fecha de creación
func NewReview(sku string, in ReviewInput, now time.Time) *Review {
	now = now.UTC()
	return &Review{
		SKU:       sku,
		Title:     in.Title,
		Body:      in.Body,
		Rating:    in.Rating,
		Author:    in.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ReviewPage es una página de opiniones, más recientes primero
type ReviewPage struct {
	Items []Review `json:"items"`
	Total int64    `json:"total"`
}
