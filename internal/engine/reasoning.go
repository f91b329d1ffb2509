package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sitescapr/sitescapr-cli/internal/model"
)

// Fixed per-index classification thresholds: value >= high is "High",
// value >= low is "Moderate", anything below is "Low".
const (
	incomeLow, incomeHigh           = 55, 75
	trafficLow, trafficHigh         = 55, 75
	competitionLow, competitionHigh = 45, 70
	rentLow, rentHigh               = 40, 65
	accessLow, accessHigh           = 30, 55
	growthLow, growthHigh           = 45, 65
)

// Explain generates exactly three explanation sentences for a scored zone.
// It is a pure function: identical inputs always produce identical strings.
func Explain(zone *model.ZoneRecord, businessType string, sub Subscores) []string {
	incomeLbl := thresholdLabel(zone.IncomeIndex, incomeLow, incomeHigh)
	trafficLbl := thresholdLabel(zone.FootTrafficProxy, trafficLow, trafficHigh)
	rentLbl := thresholdLabel(zone.CommercialRentIndex, rentLow, rentHigh)
	accLbl := thresholdLabel(zone.AccessibilityPenalty, accessLow, accessHigh)
	growthLbl := thresholdLabel(zone.AreaGrowthTrend, growthLow, growthHigh)

	bullets := make([]string, 0, 3)

	bullets = append(bullets, fmt.Sprintf(
		"%s consumer income (%s/100) with %s foot traffic (%s/100) -- Demand Score %s/100 signals %s demand potential for a %s.",
		incomeLbl,
		formatIndex(zone.IncomeIndex),
		strings.ToLower(trafficLbl),
		formatIndex(zone.FootTrafficProxy),
		formatScore(sub.Demand),
		demandQualifier(sub.Demand),
		businessType,
	))

	switch {
	case zone.CompetitionIndex >= competitionHigh:
		bullets = append(bullets, fmt.Sprintf(
			"High market saturation (%s/100) drives Friction Score %s/100 -- differentiation strategy essential. Accessibility is %s and rent is %s.",
			formatIndex(zone.CompetitionIndex),
			formatScore(sub.Friction),
			strings.ToLower(accLbl),
			strings.ToLower(rentLbl),
		))
	case zone.CompetitionIndex >= competitionLow:
		bullets = append(bullets, fmt.Sprintf(
			"Moderate competition (%s/100) with %s rent -- Friction Score %s/100 leaves room for a well-marketed %s to establish a loyal base.",
			formatIndex(zone.CompetitionIndex),
			strings.ToLower(rentLbl),
			formatScore(sub.Friction),
			businessType,
		))
	default:
		bullets = append(bullets, fmt.Sprintf(
			"Low competition (%s/100) and %s rent yield Friction Score %s/100 -- first-mover advantage available.",
			formatIndex(zone.CompetitionIndex),
			strings.ToLower(rentLbl),
			formatScore(sub.Friction),
		))
	}

	bullets = append(bullets, fmt.Sprintf(
		"%s growth trend (%s/100) with infrastructure index %s/100 -- Growth Score %s/100 indicates this area is %s.",
		growthLbl,
		formatIndex(zone.AreaGrowthTrend),
		formatIndex(zone.InfrastructureInvestmentIndex),
		formatScore(sub.Growth),
		growthQualifier(sub.Growth),
	))

	return bullets
}

func thresholdLabel(value, low, high float64) string {
	switch {
	case value >= high:
		return "High"
	case value >= low:
		return "Moderate"
	default:
		return "Low"
	}
}

func demandQualifier(demand float64) string {
	switch {
	case demand > 0.65:
		return "strong"
	case demand > 0.45:
		return "moderate"
	default:
		return "limited"
	}
}

func growthQualifier(growth float64) string {
	switch {
	case growth > 0.60:
		return "rapidly evolving"
	case growth > 0.40:
		return "steadily developing"
	default:
		return "relatively mature"
	}
}

// formatIndex renders a raw 0-100 index without trailing zeros (85, 85.25).
func formatIndex(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatScore renders a 0-1 sub-score on the display scale (x100, one
// decimal).
func formatScore(v float64) string {
	return strconv.FormatFloat(roundTo(v*100, 1), 'f', 1, 64)
}
