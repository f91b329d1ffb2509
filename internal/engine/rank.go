package engine

import (
	"sort"

	"github.com/sitescapr/sitescapr-cli/internal/model"
)

// TopN caps the number of ranked zones returned per request.
const TopN = 5

// RankResult holds the ordered recommendations plus the size of the zone
// universe the ranking considered.
type RankResult struct {
	Results       []model.ScoredZone `json:"results"`
	TotalAnalyzed int                `json:"total_analyzed"`
}

// Rank scores every affordable zone for the business type, orders the
// survivors by descending display score, and returns the top 5 with
// reasoning attached. Equal-score zones keep their input order (stable
// sort). An empty result is data, not an error: the caller decides how to
// surface "no affordable zones".
//
// demographics is accepted for interface compatibility with the analyze
// request; it is reserved for future demographic weighting and does not
// affect scoring yet.
func Rank(businessType string, demographics []string, budget int, zones []model.ZoneRecord) RankResult {
	_ = demographics

	cbf, profile := Resolve(businessType)

	scored := make([]model.ScoredZone, 0, len(zones))
	for i := range zones {
		zone := &zones[i]
		if !PassesBudget(zone, budget) {
			continue
		}

		display, sub := Score(zone, cbf, profile)
		reasoning := Explain(zone, businessType, sub)

		scored = append(scored, model.ScoredZone{
			Name:                          zone.Name,
			Latitude:                      zone.Latitude,
			Longitude:                     zone.Longitude,
			Score:                         display,
			DemandScore:                   sub.Demand,
			FrictionScore:                 sub.Friction,
			GrowthScore:                   sub.Growth,
			ClusteringBenefitFactor:       cbf,
			IncomeIndex:                   zone.IncomeIndex,
			FootTrafficProxy:              zone.FootTrafficProxy,
			PopulationDensityIndex:        zone.PopulationDensityIndex,
			CompetitionIndex:              zone.CompetitionIndex,
			CommercialRentIndex:           zone.CommercialRentIndex,
			AccessibilityPenalty:          zone.AccessibilityPenalty,
			AreaGrowthTrend:               zone.AreaGrowthTrend,
			VacancyRateImprovement:        zone.VacancyRateImprovement,
			InfrastructureInvestmentIndex: zone.InfrastructureInvestmentIndex,
			Reasoning:                     reasoning,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if len(scored) > TopN {
		scored = scored[:TopN]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}

	return RankResult{Results: scored, TotalAnalyzed: len(zones)}
}
