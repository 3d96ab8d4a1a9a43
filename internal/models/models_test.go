package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generatorJSON = `{
	"sku": "HY2000i",
	"title": "Hyundai 2000W Inverter Generator",
	"short_bullets": ["2000W peak power", "Super-quiet 58dB"],
	"brand": "hyundai",
	"category": "generators",
	"power_source": "petrol",
	"capacity": "2kW",
	"weight_kg": 21.0,
	"price": {"inc_vat": 599.99, "ex_vat": 499.99},
	"media": {"images": ["https://images.example.com/hy2000i.jpg"]},
	"specs": [{"label": "Output", "value": "2000W peak / 1600W rated"}],
	"rating_avg": 4.6,
	"rating_count": 124,
	"accessories": ["HYCABLE1"],
	"related_skus": ["HY3000i"]
}`

func decodeProduct(t *testing.T, raw string) Product {
	t.Helper()
	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestProductDefaults(t *testing.T) {
	p := decodeProduct(t, `{"sku":"X1","title":"Thing","brand":"b","category":"c","price":{"inc_vat":1,"ex_vat":1}}`)
	require.NoError(t, p.Validate())

	assert.Equal(t, DefaultStock, p.Stock)
	assert.Equal(t, CurrencyGBP, p.Price.Currency)
	assert.True(t, p.Price.FinanceAvailable)
	assert.NotNil(t, p.ShortBullets)
	assert.Empty(t, p.ShortBullets)
	assert.NotNil(t, p.Accessories)
	assert.NotNil(t, p.RelatedSKUs)
	assert.NotNil(t, p.Specs)
	assert.NotNil(t, p.Media.Images)
	assert.Nil(t, p.WeightKG)
	assert.Empty(t, p.PowerSource)
}

func TestProductValidation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(p *Product)
		field      string
		constraint string
	}{
		{
			name:       "missing sku",
			mutate:     func(p *Product) { p.SKU = "" },
			field:      "sku",
			constraint: "required",
		},
		{
			name:       "unknown power source",
			mutate:     func(p *Product) { p.PowerSource = "nuclear" },
			field:      "power_source",
			constraint: "oneof=petrol diesel electric battery corded air manual",
		},
		{
			name:       "negative weight",
			mutate:     func(p *Product) { w := -1.0; p.WeightKG = &w },
			field:      "weight_kg",
			constraint: "gte=0",
		},
		{
			name:       "negative price",
			mutate:     func(p *Product) { p.Price.ExVAT = Amount(-0.01) },
			field:      "price.ex_vat",
			constraint: "gte=0",
		},
		{
			name:       "wrong currency",
			mutate:     func(p *Product) { p.Price.Currency = "EUR" },
			field:      "price.currency",
			constraint: "oneof=GBP",
		},
		{
			name:       "malformed image url",
			mutate:     func(p *Product) { p.Media.Images = []string{"not a url"} },
			field:      "media.images[0]",
			constraint: "http_url",
		},
		{
			name:       "malformed video url",
			mutate:     func(p *Product) { p.Media.VideoURL = "ftp//broken" },
			field:      "media.video_url",
			constraint: "http_url",
		},
		{
			name:       "empty spec label",
			mutate:     func(p *Product) { p.Specs = []SpecItem{{Value: "x"}} },
			field:      "specs[0].label",
			constraint: "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := decodeProduct(t, generatorJSON)
			tt.mutate(&p)

			err := p.Validate()
			ve, ok := IsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.constraint, ve.Constraint)
		})
	}
}

func TestProductMissingPrice(t *testing.T) {
	p := decodeProduct(t, `{"sku":"X1","title":"Thing","brand":"b","category":"c"}`)

	ve, ok := IsValidation(p.Validate())
	require.True(t, ok)
	assert.Equal(t, "price", ve.Field)
	assert.Equal(t, "required", ve.Constraint)
}

func TestMissingAmountsRejected(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{name: "empty price", raw: `{"sku":"X1","title":"Thing","brand":"b","category":"c","price":{}}`, field: "price.inc_vat"},
		{name: "no ex vat", raw: `{"sku":"X1","title":"Thing","brand":"b","category":"c","price":{"inc_vat":1}}`, field: "price.ex_vat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := decodeProduct(t, tt.raw)

			ve, ok := IsValidation(p.Validate())
			require.True(t, ok)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, "required", ve.Constraint)
		})
	}

	p := decodeProduct(t, `{"sku":"X1","title":"Thing","brand":"b","category":"c","price":{"inc_vat":0,"ex_vat":0}}`)
	require.NoError(t, p.Validate())
	assert.Zero(t, p.Price.Gross())
}

func TestProductSuggestion(t *testing.T) {
	p := decodeProduct(t, generatorJSON)
	s := p.Suggestion()

	assert.Equal(t, "HY2000i", s.SKU)
	assert.Equal(t, 599.99, s.PriceIncVAT)
	assert.Equal(t, "https://images.example.com/hy2000i.jpg", s.Image)

	p.Media.Images = nil
	assert.Empty(t, p.Suggestion().Image)
}

func TestProductDetailDecodesAttachedItems(t *testing.T) {
	p := decodeProduct(t, generatorJSON)
	require.NoError(t, p.Validate())
	detail := ProductDetail{
		Product:        p,
		AccessoryItems: []ProductSummary{{SKU: "HYCABLE1", Title: "Parallel Cable", Price: Price(49.99, 41.66)}},
	}

	raw, err := json.Marshal(detail)
	require.NoError(t, err)

	var back ProductDetail
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, detail.Product, back.Product)
	assert.Equal(t, detail.AccessoryItems, back.AccessoryItems)
	assert.Nil(t, back.RelatedItems)
}

func TestProductFilterMatches(t *testing.T) {
	p := decodeProduct(t, generatorJSON)
	price := func(v float64) *float64 { return &v }

	assert.True(t, ProductFilter{}.Matches(&p))
	assert.True(t, ProductFilter{Brand: "hyundai", PowerSource: "petrol"}.Matches(&p))
	assert.True(t, ProductFilter{MinPrice: price(500), MaxPrice: price(600)}.Matches(&p))
	assert.True(t, ProductFilter{MinPrice: price(599.99), MaxPrice: price(599.99)}.Matches(&p))
	assert.False(t, ProductFilter{MaxPrice: price(599.98)}.Matches(&p))
	assert.False(t, ProductFilter{Category: "chainsaws"}.Matches(&p))
	assert.False(t, ProductFilter{PowerSource: "battery"}.Matches(&p))
}

func TestReviewInputValidation(t *testing.T) {
	in := ReviewInput{Title: "Great", Body: "Runs all day", Rating: 5, Author: "Sam"}
	require.NoError(t, in.Validate())

	for _, rating := range []int{0, 6, -1} {
		in.Rating = rating
		ve, ok := IsValidation(in.Validate())
		require.True(t, ok, "rating %d", rating)
		assert.Equal(t, "rating", ve.Field)
	}
}

func TestNewReviewStampsSKUAndTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := NewReview("HY2000i", ReviewInput{Title: "t", Body: "b", Rating: 4, Author: "a"}, now)

	assert.Equal(t, "HY2000i", r.SKU)
	assert.Equal(t, now, r.CreatedAt)
	assert.Equal(t, now, r.UpdatedAt)
	require.NoError(t, r.Validate())
}

const orderJSON = `{
	"email": "buyer@example.com",
	"shipping_address": {"full_name": "Alex Doe", "line1": "1 High St", "city": "Leeds", "postcode": "LS1 1AA"},
	"items": [{"sku": "HY2000i", "title": "Hyundai 2000W Inverter Generator", "qty": 1, "unit_price_inc_vat": 599.99}],
	"total_inc_vat": 599.99
}`

func TestOrderDefaults(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(orderJSON), &o))
	require.NoError(t, o.Validate())

	assert.Equal(t, PaymentCard, o.PaymentMethod)
	assert.Equal(t, DefaultCountry, o.ShippingAddress.Country)
	assert.Nil(t, o.BillingAddress)
	assert.Equal(t, o.ShippingAddress, o.Billing())
}

func TestOrderValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *Order)
		field  string
	}{
		{name: "zero quantity", mutate: func(o *Order) { o.Items[0].Qty = 0 }, field: "items[0].qty"},
		{name: "no items", mutate: func(o *Order) { o.Items = []OrderItem{} }, field: "items"},
		{name: "bad payment method", mutate: func(o *Order) { o.PaymentMethod = "bitcoin" }, field: "payment_method"},
		{name: "bad email", mutate: func(o *Order) { o.Email = "nope" }, field: "email"},
		{name: "missing shipping", mutate: func(o *Order) { o.ShippingAddress = Address{} }, field: "shipping_address"},
		{name: "billing without postcode", mutate: func(o *Order) { o.BillingAddress = &Address{FullName: "A", Line1: "B", City: "C"} }, field: "billing_address.postcode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Order
			require.NoError(t, json.Unmarshal([]byte(orderJSON), &o))
			tt.mutate(&o)

			ve, ok := IsValidation(o.Validate())
			require.True(t, ok)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestOrderMissingAmounts(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{
			name:  "no total",
			raw:   `{"email":"buyer@example.com","shipping_address":{"full_name":"A","line1":"B","city":"C","postcode":"D"},"items":[{"sku":"HY2000i","title":"Generator","qty":1,"unit_price_inc_vat":599.99}]}`,
			field: "total_inc_vat",
		},
		{
			name:  "no unit price",
			raw:   `{"email":"buyer@example.com","shipping_address":{"full_name":"A","line1":"B","city":"C","postcode":"D"},"items":[{"sku":"HY2000i","title":"Generator","qty":1}],"total_inc_vat":599.99}`,
			field: "items[0].unit_price_inc_vat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Order
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &o))

			ve, ok := IsValidation(o.Validate())
			require.True(t, ok)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, "required", ve.Constraint)
		})
	}
}

func TestDecodeError(t *testing.T) {
	var in ReviewInput
	err := DecodeError(json.Unmarshal([]byte(`{"rating":"five"}`), &in))

	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "rating", ve.Field)
	assert.Equal(t, "type", ve.Constraint)

	ve, ok = IsValidation(DecodeError(json.Unmarshal([]byte(`{`), &in)))
	require.True(t, ok)
	assert.Equal(t, "json", ve.Constraint)
}

// validate -> marshal -> unmarshal -> validate devuelve el mismo registro
func TestValidationRoundTrip(t *testing.T) {
	t.Run("product", func(t *testing.T) {
		p := decodeProduct(t, generatorJSON)
		require.NoError(t, p.Validate())

		raw, err := json.Marshal(p)
		require.NoError(t, err)

		var back Product
		require.NoError(t, json.Unmarshal(raw, &back))
		require.NoError(t, back.Validate())
		assert.Equal(t, p, back)
	})

	t.Run("order", func(t *testing.T) {
		var o Order
		require.NoError(t, json.Unmarshal([]byte(orderJSON), &o))
		require.NoError(t, o.Validate())

		raw, err := json.Marshal(o)
		require.NoError(t, err)

		var back Order
		require.NoError(t, json.Unmarshal(raw, &back))
		require.NoError(t, back.Validate())
		assert.Equal(t, o, back)
	})

	t.Run("review", func(t *testing.T) {
		r := NewReview("HY2000i", ReviewInput{Title: "t", Body: "b", Rating: 3, Author: "a"}, time.Unix(1700000000, 0))
		require.NoError(t, r.Validate())

		raw, err := json.Marshal(r)
		require.NoError(t, err)

		var back Review
		require.NoError(t, json.Unmarshal(raw, &back))
		require.NoError(t, back.Validate())
		assert.True(t, r.CreatedAt.Equal(back.CreatedAt))
		assert.Equal(t, r.SKU, back.SKU)
		assert.Equal(t, r.Rating, back.Rating)
	})

	t.Run("spare part and bundle", func(t *testing.T) {
		s := SparePart{SKU: "SP1", Title: "Spark plug", Price: Price(6, 5)}
		require.NoError(t, s.Validate())
		raw, err := json.Marshal(s)
		require.NoError(t, err)
		var sBack SparePart
		require.NoError(t, json.Unmarshal(raw, &sBack))
		require.NoError(t, sBack.Validate())
		assert.Equal(t, s, sBack)

		b := Bundle{SKU: "BN1", Title: "Starter kit", Items: []string{"HY2000i"}, Price: Price(650, 541.67)}
		require.NoError(t, b.Validate())
		raw, err = json.Marshal(b)
		require.NoError(t, err)
		var bBack Bundle
		require.NoError(t, json.Unmarshal(raw, &bBack))
		require.NoError(t, bBack.Validate())
		assert.Equal(t, b, bBack)
	})
}

func TestBrandAndCategoryURLs(t *testing.T) {
	b := Brand{Name: "JCB Tools", Slug: "jcb", LogoURL: "https://example.com/jcb.svg"}
	require.NoError(t, b.Validate())

	b.LogoURL = "jcb.svg"
	ve, ok := IsValidation(b.Validate())
	require.True(t, ok)
	assert.Equal(t, "logo_url", ve.Field)

	c := Category{Name: "Generators", Slug: "generators", ParentSlug: "does-not-exist"}
	require.NoError(t, c.Validate())
}

func TestRegistry(t *testing.T) {
	names := SchemaNames()
	assert.Contains(t, names, "Product")
	assert.Contains(t, names, "Bundle")
	assert.Contains(t, names, "Address")

	col, ok := CollectionFor("SparePart")
	require.True(t, ok)
	assert.Equal(t, SparePartCollection, col)

	_, ok = CollectionFor("Address")
	assert.False(t, ok)
}
