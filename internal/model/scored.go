package model

// ScoredZone is a ranked scoring result for one zone. It is derived per
// request and never persisted.
type ScoredZone struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Composite and component scores.
	Score                   float64 `json:"score"`          // location score x 100, one decimal
	DemandScore             float64 `json:"demand_score"`   // 0-1
	FrictionScore           float64 `json:"friction_score"` // 0-1
	GrowthScore             float64 `json:"growth_score"`   // 0-1
	ClusteringBenefitFactor float64 `json:"clustering_benefit_factor"`

	// Raw indices as stored (0-100).
	IncomeIndex                   float64 `json:"income_index"`
	FootTrafficProxy              float64 `json:"foot_traffic_proxy"`
	PopulationDensityIndex        float64 `json:"population_density_index"`
	CompetitionIndex              float64 `json:"competition_index"`
	CommercialRentIndex           float64 `json:"commercial_rent_index"`
	AccessibilityPenalty          float64 `json:"accessibility_penalty"`
	AreaGrowthTrend               float64 `json:"area_growth_trend"`
	VacancyRateImprovement        float64 `json:"vacancy_rate_improvement"`
	InfrastructureInvestmentIndex float64 `json:"infrastructure_investment_index"`

	Reasoning []string `json:"reasoning"` // exactly 3 explanation sentences
	Rank      int      `json:"rank"`      // 1-based
}
