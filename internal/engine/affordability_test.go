package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sitescapr/sitescapr-cli/internal/model"
)

func TestEstimatedRent(t *testing.T) {
	tests := []struct {
		name      string
		rentIndex float64
		want      float64
	}{
		{"full index", 100, 300_000},
		{"half index", 50, 150_000},
		{"zero index", 0, 0},
		{"typical zone", 82, 246_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone := &model.ZoneRecord{CommercialRentIndex: tt.rentIndex}
			assert.Equal(t, tt.want, EstimatedRent(zone))
		})
	}
}

func TestPassesBudget(t *testing.T) {
	// Rent index 50 means an estimated rent of 150,000.
	zone := &model.ZoneRecord{CommercialRentIndex: 50}

	tests := []struct {
		name   string
		budget int
		want   bool
	}{
		{"well above", 200_000, true},
		{"exact boundary", 100_000, true}, // 100,000 * 1.5 == 150,000 passes
		{"just below boundary", 99_999, false},
		{"well below", 50_000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PassesBudget(zone, tt.budget))
		})
	}
}

func TestPassesBudgetZeroRent(t *testing.T) {
	zone := &model.ZoneRecord{CommercialRentIndex: 0}
	assert.True(t, PassesBudget(zone, 1))
}
