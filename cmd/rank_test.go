package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitescapr/sitescapr-cli/internal/dataset"
	"github.com/sitescapr/sitescapr-cli/internal/engine"
)

func TestRupees(t *testing.T) {
	assert.Equal(t, "₹90,000", rupees(90000))
	assert.Equal(t, "₹1,500,000", rupees(1500000))
	assert.Equal(t, "₹0", rupees(0))
}

func TestOutputRankResultsCSV(t *testing.T) {
	result := engine.Rank("restaurant", nil, 500_000, dataset.Zones())
	require.NotEmpty(t, result.Results)

	path := filepath.Join(t.TempDir(), "zones.csv")
	require.NoError(t, outputRankResults(result, "csv", path, false))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, len(result.Results)+1)
	assert.Equal(t, []string{"rank", "name", "score", "demand", "friction", "growth", "est_rent"}, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, result.Results[0].Name, rows[1][1])
}

func TestOutputRankResultsTable(t *testing.T) {
	result := engine.Rank("cafe", nil, 500_000, dataset.Zones())
	require.NotEmpty(t, result.Results)

	path := filepath.Join(t.TempDir(), "zones.txt")
	require.NoError(t, outputRankResults(result, "table", path, true))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)

	assert.Contains(t, out, "Rank")
	assert.Contains(t, out, result.Results[0].Name)
	// --explain prints three bullets per zone.
	assert.Equal(t, 3*len(result.Results), strings.Count(out, "     - "))
}
