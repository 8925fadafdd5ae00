// internal/recommender/prefs/models.go
package prefs

// Input carries the raw preference payload as it arrives from the client.
// Collection fields accept a single string, a comma-separated string or a
// JSON array; Budget accepts "min-max", "100000+", a bare number or a
// {min, max} object.
type Input struct {
	Brands        interface{} `json:"brands"`
	Budget        interface{} `json:"budget"`
	Fuels         interface{} `json:"fuel"`
	Types         interface{} `json:"types"`
	Transmissions interface{} `json:"transmission"`
	Gender        string      `json:"gender"`
	AgeRange      string      `json:"ageRange"`
	Limit         int         `json:"limit"`
}
