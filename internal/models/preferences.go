// internal/models/preferences.go
package models

// Gender values recognized by the demographic profile table. Lookups are
// case-sensitive; anything else resolves to the default profile.
const (
	GenderMale   = "masculino"
	GenderFemale = "femenino"
)

// Age brackets recognized by the demographic profile table.
var AgeBrackets = []string{"18-25", "26-35", "36-45", "46-55", "56+"}

// BudgetRange is an inclusive price range, Min <= Max, both non-negative.
// A nil *BudgetRange means unconstrained.
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price falls within the range.
func (r BudgetRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// UserPreferences is the canonical, strictly-typed preference record every
// pipeline stage consumes. Constructed once per request by the normalizer
// and never mutated afterwards.
type UserPreferences struct {
	Brands        []string
	Budget        *BudgetRange
	Fuels         []string
	Types         []string
	Transmissions []string
	Gender        string
	AgeRange      string
	Limit         int
}

// HasBrand reports whether brand is one of the selected brands.
func (p UserPreferences) HasBrand(brand string) bool {
	return contains(p.Brands, brand)
}

// HasFuel reports whether fuel is one of the preferred fuels.
func (p UserPreferences) HasFuel(fuel string) bool {
	return contains(p.Fuels, fuel)
}

// HasType reports whether t is one of the preferred vehicle types.
func (p UserPreferences) HasType(t string) bool {
	return contains(p.Types, t)
}

// HasTransmission reports whether t is one of the preferred transmissions.
func (p UserPreferences) HasTransmission(t string) bool {
	return contains(p.Transmissions, t)
}

// IsEmpty reports whether the user supplied no signal at all. An empty
// preference record is not an error; scoring still returns a number.
func (p UserPreferences) IsEmpty() bool {
	return len(p.Brands) == 0 && len(p.Fuels) == 0 && len(p.Types) == 0 &&
		len(p.Transmissions) == 0 && p.Budget == nil &&
		p.Gender == "" && p.AgeRange == ""
}

// FilterConditionCount counts the literal filter conditions present, used to
// decide whether an exact-filter store query is worth issuing.
func (p UserPreferences) FilterConditionCount() int {
	n := 0
	if len(p.Brands) > 0 {
		n++
	}
	if len(p.Fuels) > 0 {
		n++
	}
	if len(p.Types) > 0 {
		n++
	}
	if len(p.Transmissions) > 0 {
		n++
	}
	if p.Budget != nil {
		n++
	}
	return n
}

// MatchesFilters reports whether v satisfies every literal filter the user
// supplied. Used to assign the "filtered" match-type label.
func (p UserPreferences) MatchesFilters(v Vehicle) bool {
	if len(p.Brands) > 0 && !p.HasBrand(v.Brand) {
		return false
	}
	if len(p.Fuels) > 0 && !p.HasFuel(v.Fuel) {
		return false
	}
	if len(p.Types) > 0 && !p.HasType(v.Type) {
		return false
	}
	if len(p.Transmissions) > 0 && !p.HasTransmission(v.Transmission) {
		return false
	}
	if p.Budget != nil && !p.Budget.Contains(v.Price) {
		return false
	}
	return true
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
