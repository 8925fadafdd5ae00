// internal/recommender/scoring/engine.go
package scoring

import (
	"strings"

	"github.com/Pjezz/carmatch/internal/models"
)

// Component weights of the raw additive score. Their sum is the
// normalization denominator.
const (
	weightExactBrand        = 30.0
	weightSimilarBrand      = 20.0
	weightDemographicBrand  = 25.0
	weightExactType         = 20.0
	weightDemographicType   = 15.0
	weightExactFuel         = 15.0
	weightCompatibleFuel    = 10.0
	weightExactTransmission = 10.0

	maxRawScore = weightExactBrand + weightSimilarBrand + weightDemographicBrand +
		weightExactType + weightExactFuel + weightExactTransmission

	// Each position down the similar-brand ranking costs two points.
	similarBrandRankStep = 2.0

	belowBudgetBonus     = 1.05
	overBudgetFloor      = 0.3
	overBudgetSlope      = 0.5
	premiumFeatureFactor = 1.1
)

// fuelCompatibility lists, per preferred fuel, which other fuels still earn
// partial credit. Hybrids bridge gasoline and electric; diesel stands alone.
var fuelCompatibility = map[string][]string{
	"Gasolina":  {"Híbrido"},
	"Híbrido":   {"Gasolina", "Eléctrico"},
	"Eléctrico": {"Híbrido"},
	"Diésel":    {},
}

// Inputs carries everything a single scoring pass needs besides the vehicle.
type Inputs struct {
	Prefs   *models.UserPreferences
	Profile models.DemographicProfile
	// SimilarBrands is the ranked affinity expansion, most similar first.
	SimilarBrands []string
}

// Engine computes preference match scores on a 0-100 scale.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Score rates how well a vehicle matches the user. The additive component
// sum is normalized to 0-100, then the budget and premium-feature
// multipliers are applied and the result clamped back into range.
func (e *Engine) Score(v models.Vehicle, in Inputs) float64 {
	raw := 0.0

	if in.Prefs.HasBrand(v.Brand) {
		raw += weightExactBrand
	}

	if rank := brandRank(in.SimilarBrands, v.Brand); rank >= 0 {
		bonus := weightSimilarBrand - float64(rank)*similarBrandRankStep
		if bonus > 0 {
			raw += bonus
		}
	}

	if in.Profile.RecommendsBrand(v.Brand) {
		raw += weightDemographicBrand
	}

	if in.Prefs.HasType(v.Type) {
		raw += weightExactType
	} else if in.Profile.RecommendsType(v.Type) {
		raw += weightDemographicType
	}

	if in.Prefs.HasFuel(v.Fuel) {
		raw += weightExactFuel
	} else if compatibleFuel(v.Fuel, in.Prefs.Fuels) {
		raw += weightCompatibleFuel
	}

	if in.Prefs.HasTransmission(v.Transmission) {
		raw += weightExactTransmission
	}

	score := raw / maxRawScore * 100

	score *= budgetModifier(v.Price, in.Prefs.Budget)

	if HasPremiumFeatures(v, in.Profile) {
		score *= premiumFeatureFactor
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score
}

// budgetModifier keeps in-range prices untouched, slightly rewards cheaper
// options and degrades gradually above the ceiling, never below the floor.
func budgetModifier(price float64, budget *models.BudgetRange) float64 {
	if budget == nil {
		return 1.0
	}

	switch {
	case budget.Contains(price):
		return 1.0
	case price < budget.Min:
		return belowBudgetBonus
	default:
		overRatio := (price - budget.Max) / budget.Max
		modifier := 1.0 - overRatio*overBudgetSlope
		if modifier < overBudgetFloor {
			return overBudgetFloor
		}
		return modifier
	}
}

// HasPremiumFeatures reports whether any profile keyword appears as a
// substring of the vehicle's feature list, case-insensitively.
func HasPremiumFeatures(v models.Vehicle, profile models.DemographicProfile) bool {
	if len(v.Features) == 0 || len(profile.FeatureKeywords) == 0 {
		return false
	}

	featuresText := strings.ToLower(strings.Join(v.Features, " "))
	for _, keyword := range profile.FeatureKeywords {
		if strings.Contains(featuresText, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// IsSimilarBrand reports whether the brand came from the affinity expansion.
func IsSimilarBrand(similar []string, brand string) bool {
	return brandRank(similar, brand) >= 0
}

func brandRank(similar []string, brand string) int {
	for i, b := range similar {
		if b == brand {
			return i
		}
	}
	return -1
}

func compatibleFuel(carFuel string, preferred []string) bool {
	for _, pref := range preferred {
		for _, compatible := range fuelCompatibility[pref] {
			if carFuel == compatible {
				return true
			}
		}
	}
	return false
}
