// internal/recommender/ranking/diversifier.go
package ranking

import (
	"sort"

	"github.com/Pjezz/carmatch/internal/models"
)

const (
	sameBrandPenalty = 10.0
	sameTypePenalty  = 5.0

	// Candidates scoring at least this after diversity penalties are always
	// accepted.
	acceptThreshold = 40.0

	// A new brand is accepted while the result is below this share of the
	// limit.
	newBrandShare = 0.7

	// The top candidates are always included regardless of diversity.
	guaranteedTop = 3
)

// Sort orders candidates by score descending, breaking ties by price
// ascending and then by id so equal inputs always produce equal output.
func Sort(candidates []models.ScoredVehicle) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].Price != candidates[j].Price {
			return candidates[i].Price < candidates[j].Price
		}
		return candidates[i].ID < candidates[j].ID
	})
}

// Diversify selects up to limit candidates from a score-sorted list,
// penalizing repeated brands and types so the result is not dominated by
// one manufacturer. Remaining slots are backfilled with the best
// candidates left over.
func Diversify(candidates []models.ScoredVehicle, limit int) []models.ScoredVehicle {
	if len(candidates) == 0 || limit <= 0 {
		return []models.ScoredVehicle{}
	}

	selected := make([]models.ScoredVehicle, 0, limit)
	picked := make(map[string]bool, limit)
	usedBrands := make(map[string]bool)
	brandCounts := make(map[string]int)
	typeCounts := make(map[string]int)

	for _, car := range candidates {
		if len(selected) >= limit {
			break
		}

		diversityScore := car.Score -
			float64(brandCounts[car.Brand])*sameBrandPenalty -
			float64(typeCounts[car.Type])*sameTypePenalty

		accept := diversityScore >= acceptThreshold ||
			(!usedBrands[car.Brand] && float64(len(selected)) < float64(limit)*newBrandShare) ||
			len(selected) < guaranteedTop

		if accept {
			selected = append(selected, car)
			picked[car.ID] = true
			usedBrands[car.Brand] = true
			brandCounts[car.Brand]++
			typeCounts[car.Type]++
		}
	}

	// Backfill with the best remaining candidates in score order
	for _, car := range candidates {
		if len(selected) >= limit {
			break
		}
		if !picked[car.ID] {
			selected = append(selected, car)
			picked[car.ID] = true
		}
	}

	return selected
}
