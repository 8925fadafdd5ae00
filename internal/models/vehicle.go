// internal/models/vehicle.go
package models

import "fmt"

// Defaults for categorical fields the catalog did not specify. Response
// payloads must always carry every key, so unknown values are filled with
// these instead of being omitted.
const (
	UnspecifiedCategory     = "No especificado"
	UnspecifiedTransmission = "No especificada"
)

// MatchType labels how a vehicle entered the result list.
type MatchType string

const (
	// MatchFiltered means the vehicle satisfies every literal filter the
	// user supplied.
	MatchFiltered MatchType = "filtered"
	// MatchRecommended means the vehicle was surfaced through brand
	// affinity or demographic inference.
	MatchRecommended MatchType = "recommended"
)

// Vehicle is one catalog entry. Immutable for the duration of a request
// once fetched from the store.
type Vehicle struct {
	ID           string   `json:"id"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Price        float64  `json:"price"`
	Type         string   `json:"type"`
	Fuel         string   `json:"fuel"`
	Transmission string   `json:"transmission"`
	Features     []string `json:"features"`
	Segment      string   `json:"segment"`
	TrimLevel    string   `json:"trimLevel"`
}

// DisplayName renders the customer-facing name, e.g. "Toyota Corolla 2024".
func (v Vehicle) DisplayName() string {
	return fmt.Sprintf("%s %s %d", v.Brand, v.Model, v.Year)
}

// Normalize fills empty categorical fields with the documented defaults and
// guarantees a non-nil feature slice.
func (v *Vehicle) Normalize() {
	if v.Brand == "" {
		v.Brand = UnspecifiedCategory
	}
	if v.Type == "" {
		v.Type = UnspecifiedCategory
	}
	if v.Fuel == "" {
		v.Fuel = UnspecifiedCategory
	}
	if v.Transmission == "" {
		v.Transmission = UnspecifiedTransmission
	}
	if v.Features == nil {
		v.Features = []string{}
	}
	if v.Price < 0 {
		v.Price = 0
	}
}

// ScoredVehicle pairs a vehicle with its compatibility score while it moves
// through ranking and diversification.
type ScoredVehicle struct {
	Vehicle
	Score     float64
	MatchType MatchType
}

// Recommendation is one entry of the outbound response. Every field is
// always present; downstream consumers never have to null-check.
type Recommendation struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	Model           string   `json:"model"`
	Year            int      `json:"year"`
	Price           float64  `json:"price"`
	Type            string   `json:"type"`
	Fuel            string   `json:"fuel"`
	Transmission    string   `json:"transmission"`
	Features        []string `json:"features"`
	SimilarityScore float64  `json:"similarityScore"`
	MatchType       MatchType `json:"matchType"`
	Explanation     string   `json:"explanation"`
}

// NewRecommendation builds the outbound representation of a scored vehicle.
func NewRecommendation(sv ScoredVehicle, explanation string) Recommendation {
	sv.Vehicle.Normalize()
	return Recommendation{
		ID:              sv.ID,
		Name:            sv.DisplayName(),
		Brand:           sv.Brand,
		Model:           sv.Model,
		Year:            sv.Year,
		Price:           sv.Price,
		Type:            sv.Type,
		Fuel:            sv.Fuel,
		Transmission:    sv.Transmission,
		Features:        sv.Features,
		SimilarityScore: sv.Score,
		MatchType:       sv.MatchType,
		Explanation:     explanation,
	}
}
