package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the most recent pipeline update",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStoreNoSeed(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	run, err := st.LastPipelineRun(ctx)
	if err != nil {
		return eris.Wrap(err, "status: last pipeline run")
	}
	if run == nil {
		fmt.Println("No pipeline runs recorded.")
		return nil
	}

	fmt.Printf("Last pipeline update: %s\n", run.LastUpdated.Format(time.RFC3339))
	fmt.Printf("Area:    %s\n", run.Area)
	fmt.Printf("Summary: %s\n", run.Summary)
	return nil
}
