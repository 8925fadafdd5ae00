package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/Pjezz/carmatch/internal/common/logger"
	"github.com/Pjezz/carmatch/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestNormalizer(t *testing.T) *Normalizer {
	return NewNormalizer(logger.NewZapAdapter(zaptest.NewLogger(t)))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestNormalizer_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		validate func(t *testing.T, prefs *models.UserPreferences)
	}{
		{
			name: "canonicalizes aliases case-insensitively",
			input: &Input{
				Brands:        []interface{}{"Toyota", "BMW"},
				Fuels:         "gasolina",
				Types:         []interface{}{"sedan", "SUV"},
				Transmissions: "AUTOMATIC",
				Gender:        " Masculino ",
				AgeRange:      "26-35",
			},
			validate: func(t *testing.T, prefs *models.UserPreferences) {
				assert.Equal(t, []string{"Toyota", "BMW"}, prefs.Brands)
				assert.Equal(t, []string{"Gasolina"}, prefs.Fuels)
				assert.Equal(t, []string{"Sedán", "SUV"}, prefs.Types)
				assert.Equal(t, []string{"Automática"}, prefs.Transmissions)
				assert.Equal(t, "masculino", prefs.Gender)
				assert.Equal(t, "26-35", prefs.AgeRange)
			},
		},
		{
			name: "unknown values pass through unchanged",
			input: &Input{
				Fuels: []interface{}{"hidrogeno"},
				Types: "camioneta",
			},
			validate: func(t *testing.T, prefs *models.UserPreferences) {
				assert.Equal(t, []string{"hidrogeno"}, prefs.Fuels)
				assert.Equal(t, []string{"camioneta"}, prefs.Types)
			},
		},
		{
			name: "comma-separated string is split and deduplicated",
			input: &Input{
				Brands: "Toyota, Honda, Toyota,  ,Mazda",
			},
			validate: func(t *testing.T, prefs *models.UserPreferences) {
				assert.Equal(t, []string{"Toyota", "Honda", "Mazda"}, prefs.Brands)
			},
		},
		{
			name: "alias collisions collapse to one canonical value",
			input: &Input{
				Fuels: []interface{}{"hibrido", "hybrid", "Híbrido"},
			},
			validate: func(t *testing.T, prefs *models.UserPreferences) {
				assert.Equal(t, []string{"Híbrido"}, prefs.Fuels)
			},
		},
		{
			name:  "nil input yields empty preferences",
			input: nil,
			validate: func(t *testing.T, prefs *models.UserPreferences) {
				assert.Empty(t, prefs.Brands)
				assert.Nil(t, prefs.Budget)
				assert.True(t, prefs.IsEmpty())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := createTestNormalizer(t)

			prefs := n.Normalize(tt.input)

			assert.NotNil(t, prefs)
			tt.validate(t, prefs)
		})
	}
}

func TestNormalizer_ParseBudget(t *testing.T) {
	tests := []struct {
		name     string
		budget   interface{}
		expected *models.BudgetRange
	}{
		{
			name:     "range string",
			budget:   "20000-50000",
			expected: &models.BudgetRange{Min: 20000, Max: 50000},
		},
		{
			name:     "open-ended string",
			budget:   "100000+",
			expected: &models.BudgetRange{Min: 100000, Max: 999999},
		},
		{
			name:     "bare number string is a ceiling",
			budget:   "30000",
			expected: &models.BudgetRange{Min: 0, Max: 30000},
		},
		{
			name:     "numeric value is a ceiling",
			budget:   float64(45000),
			expected: &models.BudgetRange{Min: 0, Max: 45000},
		},
		{
			name:     "object with min and max",
			budget:   map[string]interface{}{"min": float64(15000), "max": float64(35000)},
			expected: &models.BudgetRange{Min: 15000, Max: 35000},
		},
		{
			name:     "object with only min gets open ceiling",
			budget:   map[string]interface{}{"min": float64(60000)},
			expected: &models.BudgetRange{Min: 60000, Max: 999999},
		},
		{
			name:     "garbage string degrades to unconstrained",
			budget:   "cheap",
			expected: nil,
		},
		{
			name:     "inverted range degrades to unconstrained",
			budget:   "50000-20000",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := createTestNormalizer(t)

			prefs := n.Normalize(&Input{Budget: tt.budget})

			assert.Equal(t, tt.expected, prefs.Budget)
		})
	}
}
