// Package store persists zone metric rows. Two implementations share one
// interface: SQLite for local use and Postgres for deployments.
package store

import (
	"context"

	"github.com/sitescapr/sitescapr-cli/internal/model"
)

// Store is the persistence interface for zone metrics. The scoring core
// never mutates rows itself; all writes go through SeedZones and
// ApplyDelta.
type Store interface {
	// ListZones returns every zone row in stable name order.
	ListZones(ctx context.Context) ([]model.ZoneRecord, error)

	// GetZone returns one zone by name, or nil when absent.
	GetZone(ctx context.Context, name string) (*model.ZoneRecord, error)

	// SeedZones inserts zones that do not yet exist; existing names are
	// left untouched.
	SeedZones(ctx context.Context, zones []model.ZoneRecord) (inserted, skipped int, err error)

	// ApplyDelta applies news-derived index deltas to a single zone row,
	// clamping each result to [0, 100]. Provenance (last_updated and
	// last_news_summary) is refreshed on every call that matches an
	// existing zone, even when all deltas are zero. Returns false when the
	// zone does not exist; in that case nothing is written.
	ApplyDelta(ctx context.Context, name string, delta model.IndexDelta, summary string) (bool, error)

	// LastPipelineRun returns provenance for the most recently updated
	// zone carrying a non-empty summary, or nil when none exists.
	LastPipelineRun(ctx context.Context) (*model.PipelineRun, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// applyDeltas folds delta values into current index values, clamping to
// [0, 100] and rounding to 2 decimals. Zero deltas leave the field
// untouched. Shared by both implementations so clamp semantics cannot
// drift between drivers.
func applyDeltas(current, deltas []float64) []float64 {
	out := make([]float64, len(current))
	for i, v := range current {
		d := deltas[i]
		if d == 0 {
			out[i] = v
			continue
		}
		out[i] = round2(model.Clamp(v+d, 0, 100))
	}
	return out
}

// round2 rounds half away from zero to 2 decimals; index values are
// non-negative here but the sign branch keeps the helper total.
func round2(v float64) float64 {
	if v < 0 {
		return float64(int64(v*100-0.5)) / 100
	}
	return float64(int64(v*100+0.5)) / 100
}
