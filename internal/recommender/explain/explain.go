// internal/recommender/explain/explain.go
package explain

import (
	"fmt"
	"strings"

	"github.com/Pjezz/carmatch/internal/models"
	"github.com/Pjezz/carmatch/internal/recommender/scoring"
)

const fallbackReason = "Opción interesante a considerar"

// Reason builds the human-readable explanation for a scored vehicle. It
// re-derives the same match conditions the scorer used and joins the
// applicable fragments; the result is never empty.
func Reason(car models.ScoredVehicle, in scoring.Inputs) string {
	var reasons []string

	if in.Prefs.HasBrand(car.Brand) {
		reasons = append(reasons, fmt.Sprintf("Es de %s, una de tus marcas seleccionadas", car.Brand))
	}

	if scoring.IsSimilarBrand(in.SimilarBrands, car.Brand) {
		reasons = append(reasons, fmt.Sprintf("%s es similar a tus marcas preferidas", car.Brand))
	}

	if in.Profile.RecommendsBrand(car.Brand) {
		reasons = append(reasons, "Recomendado para tu perfil demográfico")
	}

	if in.Prefs.HasType(car.Type) {
		reasons = append(reasons, fmt.Sprintf("Coincide con tu preferencia de %s", car.Type))
	} else if in.Profile.RecommendsType(car.Type) {
		reasons = append(reasons, fmt.Sprintf("%s es ideal para tu perfil", car.Type))
	}

	if in.Prefs.Budget != nil && in.Prefs.Budget.Contains(car.Price) {
		reasons = append(reasons, "Dentro de tu presupuesto")
	}

	if car.Score >= 80 {
		reasons = append(reasons, "Excelente compatibilidad con tus preferencias")
	} else if car.Score >= 60 {
		reasons = append(reasons, "Buena opción considerando tus criterios")
	}

	if len(reasons) == 0 {
		return fallbackReason
	}

	return strings.Join(reasons, ". ")
}
