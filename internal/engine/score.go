package engine

import (
	"math"

	"github.com/sitescapr/sitescapr-cli/internal/model"
)

// Subscores holds the three 0-1 component scores behind a display score.
type Subscores struct {
	Demand   float64
	Friction float64
	Growth   float64
}

// Score applies the v2 weighted formula to one zone:
//
//	location = 0.40*demand - 0.35*friction + 0.25*growth
//	demand   = w_inc*income + w_traf*traffic + w_dens*density
//	friction = w_comp*(competition*(1-cbf)) + w_rent*rent + w_acc*accessibility
//	growth   = w_trend*trend + w_vac*vacancy + w_infra*infrastructure
//
// Raw 0-100 indices are normalized to 0-1 before weighting. The returned
// display score is location x 100 rounded to one decimal; sub-scores are
// rounded to four decimals for stable downstream comparison.
func Score(zone *model.ZoneRecord, clusteringBenefit float64, profile Profile) (float64, Subscores) {
	inc := zone.IncomeIndex / 100
	traf := zone.FootTrafficProxy / 100
	dens := zone.PopulationDensityIndex / 100
	comp := zone.CompetitionIndex / 100
	rent := zone.CommercialRentIndex / 100
	acc := zone.AccessibilityPenalty / 100
	grow := zone.AreaGrowthTrend / 100
	vac := zone.VacancyRateImprovement / 100
	infra := zone.InfrastructureInvestmentIndex / 100

	demand := profile.Demand[0]*inc + profile.Demand[1]*traf + profile.Demand[2]*dens

	adjComp := comp * (1.0 - clusteringBenefit)
	friction := profile.Friction[0]*adjComp + profile.Friction[1]*rent + profile.Friction[2]*acc

	growth := profile.Growth[0]*grow + profile.Growth[1]*vac + profile.Growth[2]*infra

	location := 0.40*demand - 0.35*friction + 0.25*growth

	return roundTo(location*100, 1), Subscores{
		Demand:   roundTo(demand, 4),
		Friction: roundTo(friction, 4),
		Growth:   roundTo(growth, 4),
	}
}

// roundTo rounds v to the given number of decimal places, half away from
// zero.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
