package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/sitescapr/sitescapr-cli/internal/model"
)

var applyCmd = &cobra.Command{
	Use:   "apply <deltas.json|deltas.yaml>",
	Short: "Apply pipeline index deltas from a file",
	Long: `Apply a batch of news-derived index deltas to stored zones.

The input file holds an array of delta objects (JSON or YAML, by file
extension), each naming an area and carrying signed per-index
adjustments plus a source summary:

  [
    {
      "area_name": "New Town",
      "area_growth_trend_delta": 4.0,
      "commercial_rent_index_delta": -2.5,
      "source_summary": "Metro extension approved for New Town phase 2"
    }
  ]

Each zone's deltas are applied in a single transaction: index values are
clamped to [0, 100] and the zone's provenance is refreshed. Deltas for
unknown areas are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().Int("concurrency", 4, "number of zones to update in parallel")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency < 1 {
		concurrency = 1
	}

	deltas, err := readDeltaFile(args[0])
	if err != nil {
		return err
	}
	if len(deltas) == 0 {
		fmt.Println("No deltas to apply.")
		return nil
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	var applied, missing atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, d := range deltas {
		g.Go(func() error {
			matched, err := st.ApplyDelta(gctx, d.AreaName, d, d.SourceSummary)
			if err != nil {
				return eris.Wrapf(err, "apply: zone %s", d.AreaName)
			}
			if !matched {
				missing.Add(1)
				zap.L().Warn("delta targets unknown zone", zap.String("area", d.AreaName))
				return nil
			}
			applied.Add(1)
			zap.L().Info("delta applied",
				zap.String("area", d.AreaName),
				zap.String("summary", d.SourceSummary),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Applied %d of %d deltas (%d unknown zones).\n",
		applied.Load(), len(deltas), missing.Load())
	return nil
}

// readDeltaFile parses a JSON or YAML delta batch, picking the decoder by
// file extension. Every entry must name an area.
func readDeltaFile(path string) ([]model.IndexDelta, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "apply: read deltas file %s", path)
	}

	var deltas []model.IndexDelta
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &deltas)
	default:
		err = json.Unmarshal(raw, &deltas)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "apply: parse deltas file %s", path)
	}

	for i, d := range deltas {
		if d.AreaName == "" {
			return nil, eris.Errorf("apply: delta %d has no area_name", i)
		}
	}
	return deltas, nil
}
