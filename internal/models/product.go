package models

import "encoding/json"

// PowerSource es el tipo de alimentación de una herramienta
type PowerSource string

const (
	PowerPetrol   PowerSource = "petrol"
	PowerDiesel   PowerSource = "diesel"
	PowerElectric PowerSource = "electric"
	PowerBattery  PowerSource = "battery"
	PowerCorded   PowerSource = "corded"
	PowerAir      PowerSource = "air"
	PowerManual   PowerSource = "manual"
)

// DefaultStock se aplica cuando el producto llega sin stock
const DefaultStock = 10

// Product representa un producto en el catálogo
type Product struct {
	SKU          string      `json:"sku" bson:"sku" validate:"required"`
	Title        string      `json:"title" bson:"title" validate:"required"`
	ShortBullets []string    `json:"short_bullets" bson:"short_bullets"`
	Description  string      `json:"description,omitempty" bson:"description,omitempty"`
	Brand        string      `json:"brand" bson:"brand" validate:"required"`
	Category     string      `json:"category" bson:"category" validate:"required"`
	PowerSource  PowerSource `json:"power_source,omitempty" bson:"power_source,omitempty" validate:"omitempty,oneof=petrol diesel electric battery corded air manual"`
	Capacity     string      `json:"capacity,omitempty" bson:"capacity,omitempty"`
	Size         string      `json:"size,omitempty" bson:"size,omitempty"`
	WeightKG     *float64    `json:"weight_kg,omitempty" bson:"weight_kg,omitempty" validate:"omitempty,gte=0"`
	Application  []string    `json:"application,omitempty" bson:"application,omitempty"`
	Price        PriceInfo   `json:"price" bson:"price" validate:"required"`
	Media        Media       `json:"media" bson:"media"`
	Specs        []SpecItem  `json:"specs" bson:"specs" validate:"dive"`
	RatingAvg    float64     `json:"rating_avg" bson:"rating_avg"`
	RatingCount  int         `json:"rating_count" bson:"rating_count"`
	Accessories  []string    `json:"accessories" bson:"accessories"`
	RelatedSKUs  []string    `json:"related_skus" bson:"related_skus"`
	Stock        int         `json:"stock" bson:"stock"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	a := alias{Stock: DefaultStock}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Product(a)
	return nil
}

// Validate aplica valores por defecto y valida el producto
func (p *Product) Validate() error {
	if p.ShortBullets == nil {
		p.ShortBullets = []string{}
	}
	if p.Specs == nil {
		p.Specs = []SpecItem{}
	}
	if p.Accessories == nil {
		p.Accessories = []string{}
	}
	if p.RelatedSKUs == nil {
		p.RelatedSKUs = []string{}
	}
	p.Media.applyDefaults()

	if err := check(p); err != nil {
		return err
	}

	p.Price.applyDefaults()
	return nil
}

// Suggestion construye la sugerencia de búsqueda del producto
func (p *Product) Suggestion() SearchSuggestion {
	return SearchSuggestion{
		SKU:         p.SKU,
		Title:       p.Title,
		Brand:       p.Brand,
		Category:    p.Category,
		PriceIncVAT: p.Price.Gross(),
		Image:       p.Media.FirstImage(),
	}
}

// ProductSummary es la proyección reducida usada en accesorios y relacionados
type ProductSummary struct {
	SKU   string    `json:"sku" bson:"sku"`
	Title string    `json:"title" bson:"title"`
	Price PriceInfo `json:"price" bson:"price"`
	Media Media     `json:"media" bson:"media"`
}

// ProductDetail es el producto con sus accesorios y relacionados adjuntos
type ProductDetail struct {
	Product
	AccessoryItems []ProductSummary `json:"accessory_items,omitempty"`
	RelatedItems   []ProductSummary `json:"related_items,omitempty"`
}

// UnmarshalJSON evita que el decodificador de Product descarte los adjuntos
func (d *ProductDetail) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &d.Product); err != nil {
		return err
	}

	var attached struct {
		AccessoryItems []ProductSummary `json:"accessory_items"`
		RelatedItems   []ProductSummary `json:"related_items"`
	}
	if err := json.Unmarshal(data, &attached); err != nil {
		return err
	}
	d.AccessoryItems = attached.AccessoryItems
	d.RelatedItems = attached.RelatedItems
	return nil
}

// ProductFilter son los filtros opcionales del listado; los vacíos no restringen
type ProductFilter struct {
	Brand       string
	Category    string
	PowerSource string
	MinPrice    *float64
	MaxPrice    *float64
}

// Matches evalúa el filtro en memoria sobre un producto
func (f ProductFilter) Matches(p *Product) bool {
	if f.Brand != "" && p.Brand != f.Brand {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.PowerSource != "" && string(p.PowerSource) != f.PowerSource {
		return false
	}
	if f.MinPrice != nil && p.Price.Gross() < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price.Gross() > *f.MaxPrice {
		return false
	}
	return true
}

// ProductPage es una página del listado de productos
type ProductPage struct {
	Items    []Product `json:"items"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// SearchSuggestion es el resultado ligero del autocompletado
type SearchSuggestion struct {
	SKU         string  `json:"sku" bson:"sku"`
	Title       string  `json:"title" bson:"title"`
	Brand       string  `json:"brand" bson:"brand"`
	Category    string  `json:"category" bson:"category"`
	PriceIncVAT float64 `json:"price_inc_vat" bson:"price_inc_vat"`
	Image       string  `json:"image,omitempty" bson:"image,omitempty"`
}
