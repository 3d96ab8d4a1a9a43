package repository

import (
	"math"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"powersite-catalog/internal/models"
)

// TextMatcher traduce una búsqueda de texto libre a un filtro sobre un campo
type TextMatcher interface {
	Match(field, query string) bson.M
}

// SubstringMatcher busca el texto literal, sin distinguir mayúsculas
type SubstringMatcher struct{}

func (SubstringMatcher) Match(field, query string) bson.M {
	return bson.M{field: bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}}
}

// productFilter construye el filtro de MongoDB del listado de productos
func productFilter(f models.ProductFilter) bson.M {
	filter := bson.M{}

	if f.Brand != "" {
		filter["brand"] = f.Brand
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.PowerSource != "" {
		filter["power_source"] = f.PowerSource
	}

	addPriceFilter(filter, f)

	return filter
}

// addPriceFilter agrega el rango de precio (inclusivo) sobre price.inc_vat
func addPriceFilter(filter bson.M, f models.ProductFilter) {
	priceFilter := bson.M{}

	if f.MinPrice != nil {
		priceFilter["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		priceFilter["$lte"] = *f.MaxPrice
	}

	if len(priceFilter) > 0 {
		filter["price.inc_vat"] = priceFilter
	}
}

// spareFilter construye el filtro de recambios
func spareFilter(f models.SpareFilter, matcher TextMatcher) bson.M {
	filter := bson.M{}

	if f.SKU != "" {
		filter["compatible_skus"] = f.SKU
	}
	if f.Query != "" {
		for k, v := range matcher.Match("title", f.Query) {
			filter[k] = v
		}
	}

	return filter
}

// withoutID es la proyección que oculta el identificador interno
var withoutID = bson.M{"_id": 0}

// summaryProjection es la proyección reducida de accesorios y relacionados
var summaryProjection = bson.M{
	"_id":   0,
	"sku":   1,
	"title": 1,
	"price": 1,
	"media": 1,
}

// suggestionProjection sólo trae lo necesario para el autocompletado
var suggestionProjection = bson.M{
	"_id":           0,
	"sku":           1,
	"title":         1,
	"brand":         1,
	"category":      1,
	"price.inc_vat": 1,
	"media.images":  bson.M{"$slice": 1},
}

// skipLimit calcula el desplazamiento de la página. Si no cabe en int64 se
// satura, y la consulta devuelve una página vacía.
func skipLimit(page, pageSize int) (int64, int64) {
	if int64(page-1) > math.MaxInt64/int64(pageSize) {
		return math.MaxInt64, int64(pageSize)
	}
	return int64(page-1) * int64(pageSize), int64(pageSize)
}
