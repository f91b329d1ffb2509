package engine

import "github.com/sitescapr/sitescapr-cli/internal/model"

const (
	// RentIndexCeiling is the monthly rent (INR) a commercial rent index of
	// 100 corresponds to, calibrated to a realistic Kolkata upper bound.
	RentIndexCeiling = 300_000

	// BudgetTolerance gives the user headroom for negotiation above their
	// stated budget.
	BudgetTolerance = 1.5
)

// EstimatedRent converts a zone's commercial rent index into an estimated
// monthly rent in INR.
func EstimatedRent(zone *model.ZoneRecord) float64 {
	return zone.CommercialRentIndex / 100 * RentIndexCeiling
}

// PassesBudget reports whether a zone is affordable for the given monthly
// budget. The boundary is inclusive: an estimated rent of exactly
// budget x 1.5 passes.
func PassesBudget(zone *model.ZoneRecord, budget int) bool {
	return EstimatedRent(zone) <= float64(budget)*BudgetTolerance
}
