package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Deterministic(t *testing.T) {
	first := Catalog()
	second := Catalog()

	require.Equal(t, len(first), len(second))
	assert.Equal(t, first, second)
}

func TestCatalog_Size(t *testing.T) {
	modelCount := 0
	for _, bm := range catalogModels {
		modelCount += len(bm.models)
	}

	// every model expands into 3 years x 3 trims
	assert.Len(t, Catalog(), modelCount*len(catalogYears)*len(trimLevels))
}

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for _, v := range Catalog() {
		_, dup := seen[v.ID]
		assert.False(t, dup, "duplicate id %s", v.ID)
		seen[v.ID] = struct{}{}
	}
}

func TestCatalog_FuelRules(t *testing.T) {
	validFuels := make(map[string]struct{})
	for _, f := range Fuels {
		validFuels[f] = struct{}{}
	}

	for _, v := range Catalog() {
		_, ok := validFuels[v.Fuel]
		require.True(t, ok, "vehicle %s has unknown fuel %q", v.ID, v.Fuel)

		if v.Brand == "Tesla" {
			assert.Equal(t, "Eléctrico", v.Fuel, "vehicle %s", v.ID)
		}
		if strings.Contains(v.Model, "Prius") || strings.Contains(v.Model, "Ioniq") {
			assert.Equal(t, "Híbrido", v.Fuel, "vehicle %s", v.ID)
		}
		if v.Fuel == "Eléctrico" {
			assert.Equal(t, "Automática", v.Transmission, "vehicle %s", v.ID)
		}
	}
}

func TestCatalog_TrimPricing(t *testing.T) {
	catalog := Catalog()

	// the catalog opens with the 2022 Corolla in its three trims
	require.GreaterOrEqual(t, len(catalog), 3)

	base, premium, sport := catalog[0], catalog[1], catalog[2]

	assert.Equal(t, "Corolla Base", base.Model)
	assert.Equal(t, "Corolla Premium", premium.Model)
	assert.Equal(t, "Corolla Sport", sport.Model)

	assert.Equal(t, 25000.0, base.Price)
	assert.Equal(t, 30000.0, premium.Price)
	assert.Equal(t, 33000.0, sport.Price)

	for _, v := range []struct{ year int }{{base.Year}, {premium.Year}, {sport.Year}} {
		assert.Equal(t, 2022, v.year)
	}
}

func TestCatalog_Features(t *testing.T) {
	for _, v := range Catalog() {
		require.NotEmpty(t, v.Features, "vehicle %s has no features", v.ID)
		assert.LessOrEqual(t, len(v.Features), maxFeatures, "vehicle %s", v.ID)

		// base equipment is always present
		for _, f := range baseFeatures {
			assert.Contains(t, v.Features, f, "vehicle %s", v.ID)
		}
	}
}

func TestCatalog_SportTrimFeatures(t *testing.T) {
	for _, v := range Catalog() {
		if v.TrimLevel != "Sport" {
			continue
		}
		assert.Contains(t, v.Features, "Asientos deportivos", "vehicle %s", v.ID)
	}
}
