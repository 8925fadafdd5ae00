package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityWeight(t *testing.T) {
	tests := []struct {
		name     string
		brand1   string
		brand2   string
		expected float64
	}{
		// same origin 0.3 + two shared traits 0.2 + same tier 0.2 + reliability 0.1
		{"toyota and honda", "Toyota", "Honda", 0.8},
		// same origin 0.3 + one shared trait 0.1 + same tier 0.2 + reliability 0.1
		{"bmw and mercedes", "BMW", "Mercedes-Benz", 0.7},
		// same origin 0.3 + three shared traits 0.3 + reliability 0.1, tiers differ
		{"porsche and bmw", "Porsche", "BMW", 0.7},
		// different origin, no shared traits, same tier 0.2 + reliability 0.1
		{"tesla and genesis", "Tesla", "Genesis", 0.3},
		{"unknown left brand", "Ferrari", "Toyota", 0.5},
		{"unknown right brand", "Toyota", "Ferrari", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SimilarityWeight(tt.brand1, tt.brand2), 0.0001)
		})
	}
}

func TestSimilarityWeight_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Toyota", "Honda"},
		{"BMW", "Audi"},
		{"Hyundai", "Kia"},
		{"Tesla", "Volvo"},
	}

	for _, p := range pairs {
		assert.Equal(t, SimilarityWeight(p[0], p[1]), SimilarityWeight(p[1], p[0]),
			"weight between %s and %s is not symmetric", p[0], p[1])
	}
}

func TestSimilarityWeight_EveryEdgeResolvable(t *testing.T) {
	for brand, similars := range SimilarBrands {
		_, ok := brandIndex[brand]
		assert.True(t, ok, "brand %s missing from brand table", brand)

		for _, similar := range similars {
			_, ok := brandIndex[similar]
			assert.True(t, ok, "similar brand %s of %s missing from brand table", similar, brand)

			w := SimilarityWeight(brand, similar)
			assert.Greater(t, w, 0.0, "%s -> %s", brand, similar)
			assert.LessOrEqual(t, w, 1.0, "%s -> %s", brand, similar)
		}
	}
}
