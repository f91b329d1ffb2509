package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sitescapr/sitescapr-cli/internal/dataset"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled Kolkata zone dataset into the store",
	Long: `Insert the bundled reference dataset of 15 Kolkata zones.

Seeding is idempotent: zones already present in the store are skipped,
so re-running seed never overwrites pipeline-updated index values.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStoreNoSeed(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	inserted, skipped, err := st.SeedZones(ctx, dataset.Zones())
	if err != nil {
		return eris.Wrap(err, "seed: seed zones")
	}

	zap.L().Info("seed complete",
		zap.Int("inserted", inserted),
		zap.Int("skipped", skipped),
	)
	fmt.Printf("Seeded %d zones (%d already present).\n", inserted, skipped)
	return nil
}
