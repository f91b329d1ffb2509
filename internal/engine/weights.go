// Package engine implements the business-type-aware zone scoring and
// ranking core: weight profiles, the v2 composite formula, the budget
// filter, and the deterministic reasoning generator.
package engine

import "strings"

// WeightTriple holds three sub-weights that sum to 1.0.
type WeightTriple [3]float64

// Profile defines what demand, friction, and growth mean for one business
// category.
//
//	Demand:   (income, foot_traffic, population_density)
//	Friction: (competition, rent, accessibility)
//	Growth:   (area_trend, vacancy, infrastructure)
type Profile struct {
	Demand   WeightTriple
	Friction WeightTriple
	Growth   WeightTriple
}

// DefaultClusteringBenefit applies to business types absent from the table.
const DefaultClusteringBenefit = 0.15

// clusteringBenefit discounts competitive pressure for categories that
// gain from co-locating with competitors (restaurant rows, tourist strips).
var clusteringBenefit = map[string]float64{
	"restaurant":            0.50,
	"cafe":                  0.50,
	"retail store":          0.30,
	"supermarket":           0.30,
	"salon & beauty":        0.30,
	"hotel / hospitality":   0.20, // hotels cluster in tourist corridors
	"souvenir / gift shop":  0.35, // very high clustering in tourist zones
	"gym / fitness centre":  0.15,
	"pharmacy":              0.15,
	"tech office":           0.00,
	"medical clinic":        0.00,
	"educational institute": 0.00,
}

// profiles maps business categories to their weight profiles. A tech office
// cares about income and infrastructure far more than foot traffic; a
// restaurant is the opposite. Each triple sums to 1.0 at definition time.
var profiles = map[string]Profile{
	// Professional / office
	"tech office":           {Demand: WeightTriple{0.55, 0.15, 0.30}, Friction: WeightTriple{0.20, 0.20, 0.60}, Growth: WeightTriple{0.30, 0.20, 0.50}},
	"medical clinic":        {Demand: WeightTriple{0.40, 0.25, 0.35}, Friction: WeightTriple{0.25, 0.30, 0.45}, Growth: WeightTriple{0.35, 0.25, 0.40}},
	"educational institute": {Demand: WeightTriple{0.45, 0.20, 0.35}, Friction: WeightTriple{0.20, 0.25, 0.55}, Growth: WeightTriple{0.35, 0.20, 0.45}},

	// Food & beverage. Restaurants live on transit-burst foot traffic;
	// cafes depend more on ambient resident/student density.
	"restaurant": {Demand: WeightTriple{0.20, 0.50, 0.30}, Friction: WeightTriple{0.50, 0.30, 0.20}, Growth: WeightTriple{0.50, 0.30, 0.20}},
	"cafe":       {Demand: WeightTriple{0.20, 0.35, 0.45}, Friction: WeightTriple{0.50, 0.30, 0.20}, Growth: WeightTriple{0.50, 0.30, 0.20}},

	// Retail
	"retail store":   {Demand: WeightTriple{0.25, 0.45, 0.30}, Friction: WeightTriple{0.45, 0.35, 0.20}, Growth: WeightTriple{0.50, 0.30, 0.20}},
	"supermarket":    {Demand: WeightTriple{0.20, 0.40, 0.40}, Friction: WeightTriple{0.40, 0.35, 0.25}, Growth: WeightTriple{0.50, 0.30, 0.20}},
	"salon & beauty": {Demand: WeightTriple{0.25, 0.45, 0.30}, Friction: WeightTriple{0.45, 0.35, 0.20}, Growth: WeightTriple{0.50, 0.30, 0.20}},

	// Tourism & hospitality. Income is the discriminator between tourist
	// corridors and transit hubs; accessibility carries most of friction.
	"hotel / hospitality":  {Demand: WeightTriple{0.65, 0.25, 0.10}, Friction: WeightTriple{0.15, 0.25, 0.60}, Growth: WeightTriple{0.35, 0.25, 0.40}},
	"souvenir / gift shop": {Demand: WeightTriple{0.50, 0.40, 0.10}, Friction: WeightTriple{0.30, 0.30, 0.40}, Growth: WeightTriple{0.45, 0.30, 0.25}},

	// Health & wellness
	"pharmacy":             {Demand: WeightTriple{0.25, 0.30, 0.45}, Friction: WeightTriple{0.35, 0.35, 0.30}, Growth: WeightTriple{0.45, 0.30, 0.25}},
	"gym / fitness centre": {Demand: WeightTriple{0.45, 0.20, 0.35}, Friction: WeightTriple{0.35, 0.35, 0.30}, Growth: WeightTriple{0.45, 0.30, 0.25}},
}

// defaultProfile is the fallback for unrecognized business types.
var defaultProfile = Profile{
	Demand:   WeightTriple{0.30, 0.35, 0.35},
	Friction: WeightTriple{0.40, 0.35, 0.25},
	Growth:   WeightTriple{0.50, 0.30, 0.20},
}

// Resolve returns the clustering benefit factor and weight profile for a
// business type. Lookup is case-insensitive and whitespace-trimmed; unknown
// types silently fall back to the defaults. This is a deliberate open
// policy, not a validation gate.
func Resolve(businessType string) (float64, Profile) {
	key := strings.ToLower(strings.TrimSpace(businessType))

	cbf, ok := clusteringBenefit[key]
	if !ok {
		cbf = DefaultClusteringBenefit
	}

	profile, ok := profiles[key]
	if !ok {
		profile = defaultProfile
	}

	return cbf, profile
}

// KnownBusinessTypes returns the business categories present in the weight
// tables, for CLI help output.
func KnownBusinessTypes() []string {
	types := make([]string, 0, len(profiles))
	for k := range profiles {
		types = append(types, k)
	}
	return types
}
