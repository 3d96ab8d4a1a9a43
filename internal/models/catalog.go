package models

// Brand es una marca del catálogo, identificada por slug
type Brand struct {
	Name    string `json:"name" bson:"name" validate:"required"`
	Slug    string `json:"slug" bson:"slug" validate:"required"`
	Color   string `json:"color,omitempty" bson:"color,omitempty"`
	LogoURL string `json:"logo_url,omitempty" bson:"logo_url,omitempty" validate:"omitempty,http_url"`
}

func (b *Brand) Validate() error {
	return check(b)
}

// Category es una categoría; ParentSlug forma el árbol y no se comprueba
type Category struct {
	Name       string `json:"name" bson:"name" validate:"required"`
	Slug       string `json:"slug" bson:"slug" validate:"required"`
	ParentSlug string `json:"parent_slug,omitempty" bson:"parent_slug,omitempty"`
	ImageURL   string `json:"image_url,omitempty" bson:"image_url,omitempty" validate:"omitempty,http_url"`
}

func (c *Category) Validate() error {
	return check(c)
}

// SparePart es un recambio compatible con uno o varios productos
type SparePart struct {
	SKU            string    `json:"sku" bson:"sku" validate:"required"`
	Title          string    `json:"title" bson:"title" validate:"required"`
	CompatibleSKUs []string  `json:"compatible_skus" bson:"compatible_skus"`
	Price          PriceInfo `json:"price" bson:"price" validate:"required"`
}

func (s *SparePart) Validate() error {
	if s.CompatibleSKUs == nil {
		s.CompatibleSKUs = []string{}
	}
	if err := check(s); err != nil {
		return err
	}
	s.Price.applyDefaults()
	return nil
}

// SpareFilter filtra recambios por SKU compatible y texto del título
type SpareFilter struct {
	SKU   string
	Query string
}

// Bundle es un pack de productos. No lo expone ningún endpoint.
type Bundle struct {
	SKU   string    `json:"sku" bson:"sku" validate:"required"`
	Title string    `json:"title" bson:"title" validate:"required"`
	Items []string  `json:"items" bson:"items"`
	Price PriceInfo `json:"price" bson:"price" validate:"required"`
}

func (b *Bundle) Validate() error {
	if b.Items == nil {
		b.Items = []string{}
	}
	if err := check(b); err != nil {
		return err
	}
	b.Price.applyDefaults()
	return nil
}
