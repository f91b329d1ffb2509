package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitescapr/sitescapr-cli/internal/dataset"
	"github.com/sitescapr/sitescapr-cli/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	st, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func seedTestStore(t *testing.T, st *SQLiteStore) {
	t.Helper()
	_, _, err := st.SeedZones(context.Background(), dataset.Zones())
	require.NoError(t, err)
}

func TestSQLiteSeedAndList(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	inserted, skipped, err := st.SeedZones(ctx, dataset.Zones())
	require.NoError(t, err)
	assert.Equal(t, 15, inserted)
	assert.Zero(t, skipped)

	zones, err := st.ListZones(ctx)
	require.NoError(t, err)
	require.Len(t, zones, 15)

	// Stable name order.
	for i := 1; i < len(zones); i++ {
		assert.Less(t, zones[i-1].Name, zones[i].Name)
	}
}

func TestSQLiteSeedIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedTestStore(t, st)

	// Mutate a zone, then reseed; the mutation must survive.
	matched, err := st.ApplyDelta(ctx, "New Town", model.IndexDelta{AreaGrowthTrendDelta: 5}, "metro news")
	require.NoError(t, err)
	require.True(t, matched)

	inserted, skipped, err := st.SeedZones(ctx, dataset.Zones())
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Equal(t, 15, skipped)

	z, err := st.GetZone(ctx, "New Town")
	require.NoError(t, err)
	require.NotNil(t, z)
	assert.Equal(t, 83.0, z.AreaGrowthTrend) // 78 + 5, not reset to 78
}

func TestSQLiteGetZone(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedTestStore(t, st)

	z, err := st.GetZone(ctx, "Park Street")
	require.NoError(t, err)
	require.NotNil(t, z)
	assert.Equal(t, 85.0, z.IncomeIndex)
	assert.Equal(t, 88.0, z.FootTrafficProxy)

	missing, err := st.GetZone(ctx, "Atlantis")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSQLiteApplyDelta(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedTestStore(t, st)

	matched, err := st.ApplyDelta(ctx, "New Town", model.IndexDelta{
		AreaGrowthTrendDelta:     4,
		CommercialRentIndexDelta: -2.5,
	}, "Metro extension approved")
	require.NoError(t, err)
	assert.True(t, matched)

	z, err := st.GetZone(ctx, "New Town")
	require.NoError(t, err)
	require.NotNil(t, z)
	assert.Equal(t, 82.0, z.AreaGrowthTrend)      // 78 + 4
	assert.Equal(t, 52.5, z.CommercialRentIndex)  // 55 - 2.5
	assert.Equal(t, 72.0, z.IncomeIndex)          // untouched
	assert.Equal(t, "Metro extension approved", z.LastNewsSummary)
	assert.False(t, z.LastUpdated.IsZero())
}

func TestSQLiteApplyDeltaClamps(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedTestStore(t, st)

	matched, err := st.ApplyDelta(ctx, "Park Street", model.IndexDelta{
		CompetitionIndexDelta:     50,  // 90 + 50 clamps to 100
		AccessibilityPenaltyDelta: -40, // 15 - 40 clamps to 0
	}, "extremes")
	require.NoError(t, err)
	require.True(t, matched)

	z, err := st.GetZone(ctx, "Park Street")
	require.NoError(t, err)
	assert.Equal(t, 100.0, z.CompetitionIndex)
	assert.Equal(t, 0.0, z.AccessibilityPenalty)
}

func TestSQLiteApplyDeltaRoundsTwoDecimals(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedTestStore(t, st)

	matched, err := st.ApplyDelta(ctx, "Kasba", model.IndexDelta{
		IncomeIndexDelta: 0.333,
	}, "rounding")
	require.NoError(t, err)
	require.True(t, matched)

	z, err := st.GetZone(ctx, "Kasba")
	require.NoError(t, err)
	assert.Equal(t, 65.33, z.IncomeIndex)
}

func TestSQLiteApplyDeltaUnknownZone(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedTestStore(t, st)

	matched, err := st.ApplyDelta(ctx, "Atlantis", model.IndexDelta{
		IncomeIndexDelta: 10,
	}, "should not land")
	require.NoError(t, err)
	assert.False(t, matched)

	// Nothing was written anywhere.
	run, err := st.LastPipelineRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, run)
}

// Provenance is refreshed even when every delta is zero.
func TestSQLiteApplyDeltaZeroStillUpdatesProvenance(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedTestStore(t, st)

	before, err := st.GetZone(ctx, "Behala")
	require.NoError(t, err)

	matched, err := st.ApplyDelta(ctx, "Behala", model.IndexDelta{}, "no numeric change")
	require.NoError(t, err)
	require.True(t, matched)

	after, err := st.GetZone(ctx, "Behala")
	require.NoError(t, err)
	assert.Equal(t, before.IndexValues(), after.IndexValues())
	assert.Equal(t, "no numeric change", after.LastNewsSummary)
}

func TestSQLiteLastPipelineRun(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedTestStore(t, st)

	// No summaries yet: seeding is not a pipeline run.
	run, err := st.LastPipelineRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, run)

	_, err = st.ApplyDelta(ctx, "Howrah", model.IndexDelta{AreaGrowthTrendDelta: 1}, "bridge repair done")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = st.ApplyDelta(ctx, "Rajarhat", model.IndexDelta{AreaGrowthTrendDelta: 1}, "new IT park")
	require.NoError(t, err)

	run, err = st.LastPipelineRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "Rajarhat", run.Area)
	assert.Equal(t, "new IT park", run.Summary)
	assert.False(t, run.LastUpdated.IsZero())
}

func TestApplyDeltasHelper(t *testing.T) {
	current := []float64{50, 99, 1, 70, 70, 70, 70, 70, 70}
	deltas := []float64{0, 5, -10, 0.333, -0.333, 0, 0, 0, 0}

	out := applyDeltas(current, deltas)

	assert.Equal(t, 50.0, out[0])  // zero delta leaves the value untouched
	assert.Equal(t, 100.0, out[1]) // clamped high
	assert.Equal(t, 0.0, out[2])   // clamped low
	assert.Equal(t, 70.33, out[3]) // rounded to two decimals
	assert.Equal(t, 69.67, out[4])
}
