// internal/recommender/demographic/profiles.go
package demographic

import (
	"github.com/Pjezz/carmatch/internal/models"
)

// DefaultProfileID is used when gender or age range is missing or unknown.
const DefaultProfileID = "hombre_26_35"

// profileKey maps (gender, ageRange) pairs onto profile identifiers. The
// 36-45 and 46-55 brackets share a profile.
var profileKeys = map[string]string{
	"masculino|18-25": "hombre_18_25",
	"masculino|26-35": "hombre_26_35",
	"masculino|36-45": "hombre_36_50",
	"masculino|46-55": "hombre_36_50",
	"masculino|56+":   "hombre_51_plus",
	"femenino|18-25":  "mujer_18_25",
	"femenino|26-35":  "mujer_26_35",
	"femenino|36-45":  "mujer_36_50",
	"femenino|46-55":  "mujer_36_50",
	"femenino|56+":    "mujer_51_plus",
}

var profiles = map[string]models.DemographicProfile{
	"hombre_18_25": {
		ID:              "hombre_18_25",
		Brands:          []string{"Honda", "Mazda", "Hyundai", "Kia", "Chevrolet"},
		Types:           []string{"Coupé", "Hatchback", "Sedán"},
		FeatureKeywords: []string{"deportivo", "sport", "turbo", "performance"},
	},
	"hombre_26_35": {
		ID:              "hombre_26_35",
		Brands:          []string{"Toyota", "Honda", "BMW", "Audi", "Tesla"},
		Types:           []string{"Sedán", "SUV", "Crossover"},
		FeatureKeywords: []string{"tecnológico", "navegación", "bluetooth", "pantalla"},
	},
	"hombre_36_50": {
		ID:              "hombre_36_50",
		Brands:          []string{"Toyota", "Honda", "BMW", "Mercedes-Benz", "Volvo"},
		Types:           []string{"SUV", "Sedán", "Pickup"},
		FeatureKeywords: []string{"lujo", "cuero", "premium", "sonido"},
	},
	"hombre_51_plus": {
		ID:              "hombre_51_plus",
		Brands:          []string{"Mercedes-Benz", "BMW", "Lexus", "Volvo", "Genesis"},
		Types:           []string{"Sedán", "SUV"},
		FeatureKeywords: []string{"lujo", "confort", "premium", "automatico"},
	},
	"mujer_18_25": {
		ID:              "mujer_18_25",
		Brands:          []string{"Honda", "Toyota", "Mazda", "Hyundai", "Kia"},
		Types:           []string{"Hatchback", "Sedán", "Crossover"},
		FeatureKeywords: []string{"bluetooth", "pantalla", "diseño", "compacto"},
	},
	"mujer_26_35": {
		ID:              "mujer_26_35",
		Brands:          []string{"Toyota", "Honda", "Subaru", "Volvo", "Mazda"},
		Types:           []string{"SUV", "Crossover", "Sedán"},
		FeatureKeywords: []string{"seguridad", "familia", "espacio", "camara"},
	},
	"mujer_36_50": {
		ID:              "mujer_36_50",
		Brands:          []string{"Toyota", "Honda", "Subaru", "Volvo", "Lexus"},
		Types:           []string{"SUV", "Minivan", "Crossover"},
		FeatureKeywords: []string{"seguridad", "familia", "espacio", "automatico"},
	},
	"mujer_51_plus": {
		ID:              "mujer_51_plus",
		Brands:          []string{"Lexus", "Mercedes-Benz", "Volvo", "BMW", "Genesis"},
		Types:           []string{"Sedán", "SUV"},
		FeatureKeywords: []string{"confort", "automatico", "lujo", "facil"},
	},
}

// ProfileID resolves the demographic profile identifier for a gender and
// age range pair, falling back to the default profile.
func ProfileID(gender, ageRange string) string {
	if id, ok := profileKeys[gender+"|"+ageRange]; ok {
		return id
	}
	return DefaultProfileID
}

// Resolve returns the demographic profile for a gender and age range pair.
func Resolve(gender, ageRange string) models.DemographicProfile {
	return profiles[ProfileID(gender, ageRange)]
}

// ByID returns the profile with the given identifier; unknown identifiers
// resolve to the default profile.
func ByID(id string) models.DemographicProfile {
	if p, ok := profiles[id]; ok {
		return p
	}
	return profiles[DefaultProfileID]
}

// All returns every known profile, used by the catalog seeder to mirror the
// table into graph edges.
func All() []models.DemographicProfile {
	out := make([]models.DemographicProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p)
	}
	return out
}
