// internal/seed/similarity.go
package seed

// unknownBrandWeight is used when either side of a pair is not in the brand
// table.
const unknownBrandWeight = 0.5

var brandIndex = buildBrandIndex()

func buildBrandIndex() map[string]Brand {
	idx := make(map[string]Brand, len(Brands))
	for _, b := range Brands {
		idx[b.Name] = b
	}
	return idx
}

// SimilarityWeight scores how close two brands are: same origin adds 0.3,
// each shared trait adds 0.1, a matching price tier adds 0.2 and a
// reliability gap of at most one point adds 0.1. The result is capped at 1.
func SimilarityWeight(brand1, brand2 string) float64 {
	b1, ok1 := brandIndex[brand1]
	b2, ok2 := brandIndex[brand2]
	if !ok1 || !ok2 {
		return unknownBrandWeight
	}

	weight := 0.0

	if b1.Origin == b2.Origin {
		weight += 0.3
	}

	for _, t := range b1.Traits {
		for _, u := range b2.Traits {
			if t == u {
				weight += 0.1
				break
			}
		}
	}

	if b1.PriceTier == b2.PriceTier {
		weight += 0.2
	}

	diff := b1.Reliability - b2.Reliability
	if diff < 0 {
		diff = -diff
	}
	if diff <= 1 {
		weight += 0.1
	}

	if weight > 1.0 {
		weight = 1.0
	}
	return weight
}
