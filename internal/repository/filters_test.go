package repository

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"powersite-catalog/internal/models"
)

func ptr(v float64) *float64 { return &v }

func TestProductFilter(t *testing.T) {
	tests := []struct {
		name string
		in   models.ProductFilter
		want bson.M
	}{
		{
			name: "no filters matches everything",
			in:   models.ProductFilter{},
			want: bson.M{},
		},
		{
			name: "exact matches",
			in:   models.ProductFilter{Brand: "hyundai", Category: "generators", PowerSource: "petrol"},
			want: bson.M{"brand": "hyundai", "category": "generators", "power_source": "petrol"},
		},
		{
			name: "price range",
			in:   models.ProductFilter{MinPrice: ptr(500), MaxPrice: ptr(600)},
			want: bson.M{"price.inc_vat": bson.M{"$gte": 500.0, "$lte": 600.0}},
		},
		{
			name: "only max price",
			in:   models.ProductFilter{MaxPrice: ptr(0)},
			want: bson.M{"price.inc_vat": bson.M{"$lte": 0.0}},
		},
		{
			name: "only min price with brand",
			in:   models.ProductFilter{Brand: "jcb", MinPrice: ptr(100)},
			want: bson.M{"brand": "jcb", "price.inc_vat": bson.M{"$gte": 100.0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, productFilter(tt.in))
		})
	}
}

func TestSubstringMatcherEscapesQuery(t *testing.T) {
	got := SubstringMatcher{}.Match("title", "2000W (petrol)+")

	cond := got["title"].(bson.M)
	assert.Equal(t, "i", cond["$options"])

	re := regexp.MustCompile("(?i)" + cond["$regex"].(string))
	assert.True(t, re.MatchString("Hyundai 2000w (PETROL)+ Generator"))
	assert.False(t, re.MatchString("Hyundai 2000W petrol Generator"))
}

func TestSpareFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, spareFilter(models.SpareFilter{}, SubstringMatcher{}))

	got := spareFilter(models.SpareFilter{SKU: "HY2000i", Query: "plug"}, SubstringMatcher{})
	assert.Equal(t, "HY2000i", got["compatible_skus"])
	assert.Equal(t, bson.M{"$regex": "plug", "$options": "i"}, got["title"])
}

func TestSkipLimit(t *testing.T) {
	skip, limit := skipLimit(1, 12)
	assert.EqualValues(t, 0, skip)
	assert.EqualValues(t, 12, limit)

	skip, limit = skipLimit(3, 1)
	assert.EqualValues(t, 2, skip)
	assert.EqualValues(t, 1, limit)

	// desplazamientos que no caben en int64 se saturan
	skip, limit = skipLimit(100000000000000000, 100)
	assert.EqualValues(t, int64(math.MaxInt64), skip)
	assert.EqualValues(t, 100, limit)

	skip, _ = skipLimit(math.MaxInt64, 1)
	assert.EqualValues(t, int64(math.MaxInt64-1), skip)
}
