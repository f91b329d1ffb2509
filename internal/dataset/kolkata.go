// Package dataset bundles the static Kolkata reference zones used to seed
// the store and as a read-only fallback when the store is empty.
package dataset

import "github.com/sitescapr/sitescapr-cli/internal/model"

// zones is the reference dataset. All indices are on a 0-100 scale. The
// v2 fields (accessibility_penalty, area_growth_trend,
// vacancy_rate_improvement, infrastructure_investment_index) are proxied
// from secondary sources.
var zones = []model.ZoneRecord{
	{
		Name: "Park Street", Latitude: 22.5517, Longitude: 88.3509,
		IncomeIndex: 85, FootTrafficProxy: 88, PopulationDensityIndex: 65,
		CompetitionIndex: 90, CommercialRentIndex: 82, AccessibilityPenalty: 15,
		AreaGrowthTrend: 45, VacancyRateImprovement: 35, InfrastructureInvestmentIndex: 65,
	},
	{
		// 500K floating population plus a large IT workforce; Orange Line
		// metro under construction keeps the accessibility penalty low.
		Name: "New Town", Latitude: 22.5747, Longitude: 88.4647,
		IncomeIndex: 72, FootTrafficProxy: 70, PopulationDensityIndex: 55,
		CompetitionIndex: 40, CommercialRentIndex: 55, AccessibilityPenalty: 17,
		AreaGrowthTrend: 78, VacancyRateImprovement: 62, InfrastructureInvestmentIndex: 87,
	},
	{
		Name: "Salt Lake Sector V", Latitude: 22.5697, Longitude: 88.4290,
		IncomeIndex: 78, FootTrafficProxy: 85, PopulationDensityIndex: 60,
		CompetitionIndex: 60, CommercialRentIndex: 72, AccessibilityPenalty: 20,
		AreaGrowthTrend: 65, VacancyRateImprovement: 50, InfrastructureInvestmentIndex: 82,
	},
	{
		Name: "Behala", Latitude: 22.5016, Longitude: 88.3107,
		IncomeIndex: 52, FootTrafficProxy: 62, PopulationDensityIndex: 88,
		CompetitionIndex: 36, CommercialRentIndex: 28, AccessibilityPenalty: 55,
		AreaGrowthTrend: 40, VacancyRateImprovement: 45, InfrastructureInvestmentIndex: 35,
	},
	{
		Name: "Ballygunge", Latitude: 22.5311, Longitude: 88.3590,
		IncomeIndex: 82, FootTrafficProxy: 70, PopulationDensityIndex: 55,
		CompetitionIndex: 62, CommercialRentIndex: 78, AccessibilityPenalty: 20,
		AreaGrowthTrend: 50, VacancyRateImprovement: 40, InfrastructureInvestmentIndex: 60,
	},
	{
		Name: "Shyambazar", Latitude: 22.6041, Longitude: 88.3765,
		IncomeIndex: 60, FootTrafficProxy: 80, PopulationDensityIndex: 80,
		CompetitionIndex: 68, CommercialRentIndex: 45, AccessibilityPenalty: 30,
		AreaGrowthTrend: 55, VacancyRateImprovement: 50, InfrastructureInvestmentIndex: 55,
	},
	{
		// Tourist and CBD white-collar spending pushes effective income
		// above the resident average.
		Name: "Esplanade", Latitude: 22.5647, Longitude: 88.3511,
		IncomeIndex: 75, FootTrafficProxy: 92, PopulationDensityIndex: 75,
		CompetitionIndex: 88, CommercialRentIndex: 72, AccessibilityPenalty: 10,
		AreaGrowthTrend: 55, VacancyRateImprovement: 35, InfrastructureInvestmentIndex: 72,
	},
	{
		Name: "Gariahat", Latitude: 22.5218, Longitude: 88.3633,
		IncomeIndex: 70, FootTrafficProxy: 82, PopulationDensityIndex: 68,
		CompetitionIndex: 78, CommercialRentIndex: 62, AccessibilityPenalty: 22,
		AreaGrowthTrend: 50, VacancyRateImprovement: 40, InfrastructureInvestmentIndex: 58,
	},
	{
		Name: "Rajarhat", Latitude: 22.6078, Longitude: 88.4785,
		IncomeIndex: 65, FootTrafficProxy: 50, PopulationDensityIndex: 40,
		CompetitionIndex: 33, CommercialRentIndex: 38, AccessibilityPenalty: 35,
		AreaGrowthTrend: 85, VacancyRateImprovement: 70, InfrastructureInvestmentIndex: 88,
	},
	{
		// Jadavpur University and the Dhakuria corridor lift commercial
		// foot traffic beyond the residential baseline.
		Name: "Jadavpur", Latitude: 22.4999, Longitude: 88.3697,
		IncomeIndex: 62, FootTrafficProxy: 76, PopulationDensityIndex: 75,
		CompetitionIndex: 55, CommercialRentIndex: 50, AccessibilityPenalty: 28,
		AreaGrowthTrend: 58, VacancyRateImprovement: 52, InfrastructureInvestmentIndex: 55,
	},
	{
		Name: "Alipore", Latitude: 22.5266, Longitude: 88.3363,
		IncomeIndex: 92, FootTrafficProxy: 42, PopulationDensityIndex: 35,
		CompetitionIndex: 28, CommercialRentIndex: 88, AccessibilityPenalty: 25,
		AreaGrowthTrend: 35, VacancyRateImprovement: 30, InfrastructureInvestmentIndex: 55,
	},
	{
		Name: "Tollygunge", Latitude: 22.4981, Longitude: 88.3424,
		IncomeIndex: 60, FootTrafficProxy: 65, PopulationDensityIndex: 78,
		CompetitionIndex: 52, CommercialRentIndex: 46, AccessibilityPenalty: 28,
		AreaGrowthTrend: 50, VacancyRateImprovement: 48, InfrastructureInvestmentIndex: 52,
	},
	{
		// Airport workers are not general consumer foot traffic; treated
		// as a residential transit suburb.
		Name: "Dum Dum", Latitude: 22.6452, Longitude: 88.3978,
		IncomeIndex: 52, FootTrafficProxy: 62, PopulationDensityIndex: 85,
		CompetitionIndex: 38, CommercialRentIndex: 30, AccessibilityPenalty: 20,
		AreaGrowthTrend: 60, VacancyRateImprovement: 55, InfrastructureInvestmentIndex: 68,
	},
	{
		Name: "Kasba", Latitude: 22.5135, Longitude: 88.3837,
		IncomeIndex: 65, FootTrafficProxy: 70, PopulationDensityIndex: 70,
		CompetitionIndex: 48, CommercialRentIndex: 55, AccessibilityPenalty: 28,
		AreaGrowthTrend: 52, VacancyRateImprovement: 45, InfrastructureInvestmentIndex: 50,
	},
	{
		// Howrah Station moves over a million passengers daily, but transit
		// throughput converts to commercial dwell traffic at a steep
		// discount; the foot traffic proxy reflects usable dwell traffic.
		Name: "Howrah", Latitude: 22.5958, Longitude: 88.2636,
		IncomeIndex: 48, FootTrafficProxy: 74, PopulationDensityIndex: 90,
		CompetitionIndex: 78, CommercialRentIndex: 26, AccessibilityPenalty: 10,
		AreaGrowthTrend: 60, VacancyRateImprovement: 50, InfrastructureInvestmentIndex: 68,
	},
}

// Zones returns a fresh copy of the reference dataset so callers can never
// mutate the bundled values.
func Zones() []model.ZoneRecord {
	out := make([]model.ZoneRecord, len(zones))
	copy(out, zones)
	return out
}

// Active selects the zone universe for ranking: the live store rows when
// any exist, otherwise the bundled reference dataset.
func Active(stored []model.ZoneRecord) []model.ZoneRecord {
	if len(stored) > 0 {
		return stored
	}
	return Zones()
}
