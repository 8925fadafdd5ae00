// internal/models/profile.go
package models

// DemographicProfile identifies the preferred brands, vehicle types and
// premium feature keywords for one (gender, age-bracket) segment. Profiles
// are read-only; the resolver hands out copies of fixed table entries.
type DemographicProfile struct {
	ID              string   `json:"id"`
	Brands          []string `json:"brands"`
	Types           []string `json:"types"`
	FeatureKeywords []string `json:"featureKeywords"`
}

// RecommendsBrand reports whether brand appears in the profile's
// recommended-brand list.
func (p DemographicProfile) RecommendsBrand(brand string) bool {
	return contains(p.Brands, brand)
}

// RecommendsType reports whether t appears in the profile's
// recommended-type list.
func (p DemographicProfile) RecommendsType(t string) bool {
	return contains(p.Types, t)
}
