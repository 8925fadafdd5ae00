// internal/recommender/prefs/normalizer.go
package prefs

import (
	"strconv"
	"strings"

	"github.com/Pjezz/carmatch/internal/common/logger"
	"github.com/Pjezz/carmatch/internal/models"
)

// openEndedBudgetCeiling replaces the missing upper bound of "100000+" style
// budgets so downstream range checks stay simple.
const openEndedBudgetCeiling = 999999

var fuelAliases = map[string]string{
	"gasolina":  "Gasolina",
	"gas":       "Gasolina",
	"diesel":    "Diésel",
	"diésel":    "Diésel",
	"electrico": "Eléctrico",
	"eléctrico": "Eléctrico",
	"electric":  "Eléctrico",
	"hibrido":   "Híbrido",
	"híbrido":   "Híbrido",
	"hybrid":    "Híbrido",
}

var transmissionAliases = map[string]string{
	"automatic":      "Automática",
	"automatica":     "Automática",
	"automática":     "Automática",
	"manual":         "Manual",
	"semiautomatic":  "Semiautomática",
	"semiautomatica": "Semiautomática",
	"semiautomática": "Semiautomática",
}

var typeAliases = map[string]string{
	"sedan":       "Sedán",
	"sedán":       "Sedán",
	"suv":         "SUV",
	"hatchback":   "Hatchback",
	"pickup":      "Pickup",
	"coupe":       "Coupé",
	"coupé":       "Coupé",
	"convertible": "Convertible",
}

// Normalizer turns raw client payloads into canonical user preferences.
type Normalizer struct {
	logger logger.Logger
}

func NewNormalizer(log logger.Logger) *Normalizer {
	return &Normalizer{
		logger: log.WithFields(map[string]interface{}{"component": "prefs"}),
	}
}

// Normalize canonicalizes every preference field. Unknown values pass
// through unchanged so the catalog decides whether they match anything,
// and a malformed budget degrades to unconstrained instead of failing
// the request.
func (n *Normalizer) Normalize(input *Input) *models.UserPreferences {
	if input == nil {
		input = &Input{}
	}

	prefs := &models.UserPreferences{
		Brands:        parseStringArray(input.Brands),
		Fuels:         canonicalize(parseStringArray(input.Fuels), fuelAliases),
		Types:         canonicalize(parseStringArray(input.Types), typeAliases),
		Transmissions: canonicalize(parseStringArray(input.Transmissions), transmissionAliases),
		Gender:        strings.ToLower(strings.TrimSpace(input.Gender)),
		AgeRange:      strings.TrimSpace(input.AgeRange),
		Limit:         input.Limit,
	}

	if input.Budget != nil {
		budget, ok := n.parseBudget(input.Budget)
		if !ok {
			n.logger.Warn("unparseable budget, treating as unconstrained", map[string]interface{}{
				"budget": input.Budget,
			})
		}
		prefs.Budget = budget
	}

	return prefs
}

// parseBudget handles "20000-50000", "100000+", bare numbers and
// {min, max} objects. The second return reports whether the raw value
// was understood.
func (n *Normalizer) parseBudget(raw interface{}) (*models.BudgetRange, bool) {
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, true
		}

		if strings.HasSuffix(s, "+") {
			min, err := strconv.ParseFloat(strings.TrimSuffix(s, "+"), 64)
			if err != nil {
				return nil, false
			}
			return &models.BudgetRange{Min: min, Max: openEndedBudgetCeiling}, true
		}

		if strings.Contains(s, "-") {
			parts := strings.SplitN(s, "-", 2)
			min, errMin := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			max, errMax := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if errMin != nil || errMax != nil || min > max {
				return nil, false
			}
			return &models.BudgetRange{Min: min, Max: max}, true
		}

		max, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		return &models.BudgetRange{Min: 0, Max: max}, true

	case float64:
		if v <= 0 {
			return nil, false
		}
		return &models.BudgetRange{Min: 0, Max: v}, true

	case int:
		if v <= 0 {
			return nil, false
		}
		return &models.BudgetRange{Min: 0, Max: float64(v)}, true

	case map[string]interface{}:
		budget := &models.BudgetRange{}
		if minRaw, ok := v["min"]; ok {
			if min, ok := numericValue(minRaw); ok {
				budget.Min = min
			}
		}
		if maxRaw, ok := v["max"]; ok {
			if max, ok := numericValue(maxRaw); ok {
				budget.Max = max
			}
		}
		if budget.Max == 0 {
			budget.Max = openEndedBudgetCeiling
		}
		if budget.Min > budget.Max {
			return nil, false
		}
		return budget, true
	}

	return nil, false
}

func numericValue(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// parseStringArray accepts a single string, a comma-separated string,
// a JSON array or a string slice, deduplicating while preserving order.
func parseStringArray(raw interface{}) []string {
	result := []string{}

	if raw == nil {
		return result
	}

	seen := make(map[string]bool)
	add := func(s string) {
		trimmed := strings.TrimSpace(s)
		if trimmed != "" && !seen[trimmed] {
			result = append(result, trimmed)
			seen[trimmed] = true
		}
	}

	switch v := raw.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			add(part)
		}
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				add(s)
			}
		}
	case []string:
		for _, s := range v {
			add(s)
		}
	}

	return result
}

func canonicalize(values []string, aliases map[string]string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool)
	for _, v := range values {
		canonical, ok := aliases[strings.ToLower(v)]
		if !ok {
			canonical = v
		}
		if !seen[canonical] {
			out = append(out, canonical)
			seen[canonical] = true
		}
	}
	return out
}
