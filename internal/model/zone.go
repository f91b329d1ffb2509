// Package model defines the zone metric types shared across the store,
// engine, and HTTP surface.
package model

import "time"

// ZoneRecord holds the current metric indices for a single named zone.
// Every index is on a 0-100 scale; values are clamped on mutation, never
// rejected.
type ZoneRecord struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Demand indices.
	IncomeIndex            float64 `json:"income_index"`
	FootTrafficProxy       float64 `json:"foot_traffic_proxy"`
	PopulationDensityIndex float64 `json:"population_density_index"`

	// Friction indices.
	CompetitionIndex     float64 `json:"competition_index"`
	CommercialRentIndex  float64 `json:"commercial_rent_index"`
	AccessibilityPenalty float64 `json:"accessibility_penalty"`

	// Growth indices.
	AreaGrowthTrend               float64 `json:"area_growth_trend"`
	VacancyRateImprovement        float64 `json:"vacancy_rate_improvement"`
	InfrastructureInvestmentIndex float64 `json:"infrastructure_investment_index"`

	// Pipeline provenance.
	LastUpdated     time.Time `json:"last_updated,omitzero"`
	LastNewsSummary string    `json:"last_news_summary,omitempty"`
}

// IndexColumns lists the nine index column names in canonical order. The
// store relies on this ordering when reading and writing index values.
var IndexColumns = []string{
	"income_index",
	"foot_traffic_proxy",
	"population_density_index",
	"competition_index",
	"commercial_rent_index",
	"accessibility_penalty",
	"area_growth_trend",
	"vacancy_rate_improvement",
	"infrastructure_investment_index",
}

// IndexValues returns the nine index values in canonical column order.
func (z *ZoneRecord) IndexValues() []float64 {
	return []float64{
		z.IncomeIndex,
		z.FootTrafficProxy,
		z.PopulationDensityIndex,
		z.CompetitionIndex,
		z.CommercialRentIndex,
		z.AccessibilityPenalty,
		z.AreaGrowthTrend,
		z.VacancyRateImprovement,
		z.InfrastructureInvestmentIndex,
	}
}

// SetIndexValues assigns the nine index values from canonical column order.
func (z *ZoneRecord) SetIndexValues(vals []float64) {
	z.IncomeIndex = vals[0]
	z.FootTrafficProxy = vals[1]
	z.PopulationDensityIndex = vals[2]
	z.CompetitionIndex = vals[3]
	z.CommercialRentIndex = vals[4]
	z.AccessibilityPenalty = vals[5]
	z.AreaGrowthTrend = vals[6]
	z.VacancyRateImprovement = vals[7]
	z.InfrastructureInvestmentIndex = vals[8]
}

// IndexDelta carries signed adjustments for a zone's indices, produced by
// the external news ingestion pipeline. Zero-valued fields are no-ops.
// Unknown JSON keys in the payload are dropped by decoding into this struct.
type IndexDelta struct {
	AreaName                           string  `json:"area_name" yaml:"area_name"`
	IncomeIndexDelta                   float64 `json:"income_index_delta" yaml:"income_index_delta"`
	FootTrafficProxyDelta              float64 `json:"foot_traffic_proxy_delta" yaml:"foot_traffic_proxy_delta"`
	PopulationDensityIndexDelta        float64 `json:"population_density_index_delta" yaml:"population_density_index_delta"`
	CompetitionIndexDelta              float64 `json:"competition_index_delta" yaml:"competition_index_delta"`
	CommercialRentIndexDelta           float64 `json:"commercial_rent_index_delta" yaml:"commercial_rent_index_delta"`
	AccessibilityPenaltyDelta          float64 `json:"accessibility_penalty_delta" yaml:"accessibility_penalty_delta"`
	AreaGrowthTrendDelta               float64 `json:"area_growth_trend_delta" yaml:"area_growth_trend_delta"`
	VacancyRateImprovementDelta        float64 `json:"vacancy_rate_improvement_delta" yaml:"vacancy_rate_improvement_delta"`
	InfrastructureInvestmentIndexDelta float64 `json:"infrastructure_investment_index_delta" yaml:"infrastructure_investment_index_delta"`
	SourceSummary                      string  `json:"source_summary" yaml:"source_summary"`
}

// Values returns the nine deltas in canonical column order.
func (d *IndexDelta) Values() []float64 {
	return []float64{
		d.IncomeIndexDelta,
		d.FootTrafficProxyDelta,
		d.PopulationDensityIndexDelta,
		d.CompetitionIndexDelta,
		d.CommercialRentIndexDelta,
		d.AccessibilityPenaltyDelta,
		d.AreaGrowthTrendDelta,
		d.VacancyRateImprovementDelta,
		d.InfrastructureInvestmentIndexDelta,
	}
}

// IsZero reports whether every delta field is zero.
func (d *IndexDelta) IsZero() bool {
	for _, v := range d.Values() {
		if v != 0 {
			return false
		}
	}
	return true
}

// PipelineRun describes the most recent pipeline update for observability.
type PipelineRun struct {
	LastUpdated time.Time `json:"last_updated"`
	Area        string    `json:"area"`
	Summary     string    `json:"summary"`
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
