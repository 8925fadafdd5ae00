// internal/recommender/fallback/provider.go
package fallback

import (
	"github.com/Pjezz/carmatch/internal/common/logger"
	"github.com/Pjezz/carmatch/internal/models"
	"github.com/Pjezz/carmatch/internal/recommender/ranking"
)

// Demographic bonus points layered on top of the static base scores.
const (
	bonusFemaleSUV      = 15.0
	bonusFemaleSedan    = 10.0
	bonusYoungMaleSport = 8.0
	bonusMaturePremium  = 12.0
)

var maturePremiumBrands = map[string]bool{
	"Mercedes-Benz": true,
	"BMW":           true,
	"Audi":          true,
	"Lexus":         true,
}

// Provider serves a static, curated vehicle set when the catalog store is
// unreachable or returns nothing. Base scores encode the curated ordering;
// demographic bonuses personalize it.
type Provider struct {
	logger logger.Logger
}

func NewProvider(log logger.Logger) *Provider {
	return &Provider{
		logger: log.WithFields(map[string]interface{}{"component": "fallback"}),
	}
}

// Recommendations filters the static set by the user's literal preferences,
// applies demographic bonuses, and returns at most limit vehicles in score
// order. When every vehicle is filtered out the filters are ignored so the
// response is never empty.
func (p *Provider) Recommendations(prefs *models.UserPreferences, limit int) []models.ScoredVehicle {
	catalog := staticVehicles()

	filtered := make([]models.ScoredVehicle, 0, len(catalog))
	for _, car := range catalog {
		if prefs.MatchesFilters(car.Vehicle) {
			filtered = append(filtered, car)
		}
	}

	if len(filtered) == 0 {
		p.logger.Info("all fallback vehicles filtered out, ignoring filters", map[string]interface{}{
			"filters": prefs.FilterConditionCount(),
		})
		filtered = catalog
	}

	for i := range filtered {
		filtered[i].Score += demographicBonus(filtered[i].Vehicle, prefs.Gender, prefs.AgeRange)
		if filtered[i].Score > 100 {
			filtered[i].Score = 100
		}
	}

	ranking.Sort(filtered)

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	p.logger.Info("serving fallback recommendations", map[string]interface{}{
		"count": len(filtered),
	})

	return filtered
}

func demographicBonus(v models.Vehicle, gender, ageRange string) float64 {
	bonus := 0.0

	switch gender {
	case models.GenderFemale:
		if ageRange == "26-35" || ageRange == "36-45" {
			switch v.Type {
			case "SUV":
				bonus += bonusFemaleSUV
			case "Sedán":
				bonus += bonusFemaleSedan
			}
		}
	case models.GenderMale:
		if ageRange == "18-25" && (v.Type == "Coupé" || v.Type == "Convertible") {
			bonus += bonusYoungMaleSport
		}
	}

	if (ageRange == "46-55" || ageRange == "56+") && maturePremiumBrands[v.Brand] {
		bonus += bonusMaturePremium
	}

	return bonus
}

// staticVehicles returns a fresh copy so score mutations never leak between
// requests.
func staticVehicles() []models.ScoredVehicle {
	return []models.ScoredVehicle{
		{
			Vehicle: models.Vehicle{
				ID: "fallback_1", Brand: "Toyota", Model: "Corolla", Year: 2024,
				Price: 25000, Type: "Sedán", Fuel: "Gasolina", Transmission: "Automática",
				Features: []string{"Aire acondicionado", "Bluetooth", "Cámara trasera", "Toyota Safety Sense"},
				Segment:  "compacto",
			},
			Score:     85,
			MatchType: models.MatchRecommended,
		},
		{
			Vehicle: models.Vehicle{
				ID: "fallback_2", Brand: "Honda", Model: "CR-V", Year: 2024,
				Price: 35000, Type: "SUV", Fuel: "Gasolina", Transmission: "Automática",
				Features: []string{"Honda Sensing", "Pantalla táctil", "Asientos cómodos", "Amplio maletero"},
				Segment:  "compacto",
			},
			Score:     80,
			MatchType: models.MatchRecommended,
		},
		{
			Vehicle: models.Vehicle{
				ID: "fallback_3", Brand: "BMW", Model: "3 Series", Year: 2024,
				Price: 45000, Type: "Sedán", Fuel: "Gasolina", Transmission: "Automática",
				Features: []string{"iDrive", "Asientos de cuero", "Faros LED", "Performance premium"},
				Segment:  "lujo",
			},
			Score:     75,
			MatchType: models.MatchRecommended,
		},
		{
			Vehicle: models.Vehicle{
				ID: "fallback_4", Brand: "Tesla", Model: "Model Y", Year: 2024,
				Price: 48000, Type: "SUV", Fuel: "Eléctrico", Transmission: "Automática",
				Features: []string{"Piloto automático", "Pantalla táctil 15\"", "Supercargador", "Tecnología avanzada"},
				Segment:  "eléctrico",
			},
			Score:     78,
			MatchType: models.MatchRecommended,
		},
		{
			Vehicle: models.Vehicle{
				ID: "fallback_5", Brand: "Mercedes-Benz", Model: "C-Class", Year: 2024,
				Price: 48000, Type: "Sedán", Fuel: "Gasolina", Transmission: "Automática",
				Features: []string{"MBUX", "Asientos de cuero", "Sonido Burmester", "Lujo alemán"},
				Segment:  "lujo",
			},
			Score:     72,
			MatchType: models.MatchRecommended,
		},
		{
			Vehicle: models.Vehicle{
				ID: "fallback_6", Brand: "Mazda", Model: "CX-5", Year: 2024,
				Price: 32000, Type: "SUV", Fuel: "Gasolina", Transmission: "Automática",
				Features: []string{"i-ACTIVSENSE", "Diseño KODO", "Interior premium", "Manejo deportivo"},
				Segment:  "compacto",
			},
			Score:     70,
			MatchType: models.MatchRecommended,
		},
		{
			Vehicle: models.Vehicle{
				ID: "fallback_7", Brand: "Ford", Model: "Mustang", Year: 2024,
				Price: 38000, Type: "Coupé", Fuel: "Gasolina", Transmission: "Manual",
				Features: []string{"Motor V8", "Diseño icónico", "Performance sport", "Sistema de escape"},
				Segment:  "deportivo",
			},
			Score:     68,
			MatchType: models.MatchRecommended,
		},
		{
			Vehicle: models.Vehicle{
				ID: "fallback_8", Brand: "Hyundai", Model: "Tucson", Year: 2024,
				Price: 28000, Type: "SUV", Fuel: "Gasolina", Transmission: "Automática",
				Features: []string{"SmartSense", "Garantía 10 años", "Diseño moderno", "Valor excepcional"},
				Segment:  "compacto",
			},
			Score:     65,
			MatchType: models.MatchRecommended,
		},
	}
}
