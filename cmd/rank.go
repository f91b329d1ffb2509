package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sitescapr/sitescapr-cli/internal/dataset"
	"github.com/sitescapr/sitescapr-cli/internal/engine"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score and rank zones for a business",
	Long: `Rank Kolkata zones for a business type and monthly budget.

Zones outside the budget (estimated rent above budget x 1.5) are dropped
before scoring; the remaining zones are scored with the business-type
weight profile and the top 5 are printed with reasoning.

Examples:
  # Top zones for a restaurant with a 90k monthly budget
  rank --business-type restaurant --budget 90000

  # Export to CSV
  rank --business-type "tech office" --budget 200000 --format csv --output zones.csv

  # Show the generated reasoning bullets
  rank --business-type cafe --budget 120000 --explain`,
	RunE: runRank,
}

func init() {
	f := rankCmd.Flags()
	f.String("business-type", "", "business category (unknown types use the default weight profile)")
	f.Int("budget", 0, "monthly budget in INR")
	f.StringSlice("demographic", nil, "target demographic tags (reserved, not yet weighted)")
	f.String("format", "table", "output format: table or csv")
	f.String("output", "", "output file path (default: stdout)")
	f.Bool("explain", false, "print reasoning bullets under each zone (table format only)")

	_ = rankCmd.MarkFlagRequired("business-type")
	_ = rankCmd.MarkFlagRequired("budget")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	businessType, _ := cmd.Flags().GetString("business-type")
	budget, _ := cmd.Flags().GetInt("budget")
	demographics, _ := cmd.Flags().GetStringSlice("demographic")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	explain, _ := cmd.Flags().GetBool("explain")

	if budget <= 0 {
		return eris.Errorf("rank: --budget must be positive (got %d)", budget)
	}
	if format != "table" && format != "csv" {
		return eris.Errorf("rank: --format must be table or csv (got %q)", format)
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	stored, err := st.ListZones(ctx)
	if err != nil {
		return eris.Wrap(err, "rank: list zones")
	}
	zones := dataset.Active(stored)

	zap.L().Info("ranking zones",
		zap.String("business_type", businessType),
		zap.Int("budget", budget),
		zap.Int("zones", len(zones)),
	)

	result := engine.Rank(businessType, demographics, budget, zones)

	if len(result.Results) == 0 {
		fmt.Printf("No zones affordable within a %s budget (%d analyzed). Try a higher budget.\n",
			rupees(budget), result.TotalAnalyzed)
		return nil
	}

	if err := outputRankResults(result, format, outputPath, explain); err != nil {
		return err
	}

	fmt.Printf("\n%d of %d zones affordable for %q within %s/month.\n",
		len(result.Results), result.TotalAnalyzed, businessType, rupees(budget))
	return nil
}

func outputRankResults(result engine.RankResult, format, outputPath string, explain bool) error {
	var w *os.File
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "rank: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	} else {
		w = os.Stdout
	}

	switch format {
	case "csv":
		return writeRankCSV(w, result)
	default:
		return writeRankTable(w, result, explain)
	}
}

func writeRankCSV(w *os.File, result engine.RankResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"rank", "name", "score", "demand", "friction", "growth", "est_rent"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "rank: write CSV header")
	}

	for _, z := range result.Results {
		row := []string{
			fmt.Sprintf("%d", z.Rank),
			z.Name,
			fmt.Sprintf("%.1f", z.Score),
			fmt.Sprintf("%.4f", z.DemandScore),
			fmt.Sprintf("%.4f", z.FrictionScore),
			fmt.Sprintf("%.4f", z.GrowthScore),
			fmt.Sprintf("%.0f", z.CommercialRentIndex/100*engine.RentIndexCeiling),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "rank: write CSV row")
		}
	}
	return nil
}

func writeRankTable(w *os.File, result engine.RankResult, explain bool) error {
	header := fmt.Sprintf("%-4s %-20s %7s %8s %9s %7s %12s\n",
		"Rank", "Zone", "Score", "Demand", "Friction", "Growth", "Est. Rent")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "rank: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 74)); err != nil {
		return eris.Wrap(err, "rank: write table separator")
	}

	for _, z := range result.Results {
		rent := z.CommercialRentIndex / 100 * engine.RentIndexCeiling
		line := fmt.Sprintf("%-4d %-20s %7.1f %8.4f %9.4f %7.4f %12s\n",
			z.Rank, z.Name, z.Score, z.DemandScore, z.FrictionScore, z.GrowthScore, rupees(int(rent)))
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "rank: write table row")
		}
		if explain {
			for _, bullet := range z.Reasoning {
				if _, err := fmt.Fprintf(w, "     - %s\n", bullet); err != nil {
					return eris.Wrap(err, "rank: write reasoning")
				}
			}
		}
	}
	return nil
}

var rupeePrinter = message.NewPrinter(language.English)

// rupees formats an INR amount with thousands separators.
func rupees(amount int) string {
	return rupeePrinter.Sprintf("₹%d", amount)
}
