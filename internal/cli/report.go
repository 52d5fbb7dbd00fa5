package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/healthsim/healthgen/internal/insurance"
	"github.com/healthsim/healthgen/internal/logging"
)

var reportQueryNames []string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the canned analytical query battery",
	Long: `Run the fixed battery of read-only analytical queries against a
previously generated dataset. With no --connection, the embedded database
under the data directory is started for the duration of the run.

Example:
  healthgen report
  healthgen report --queries claims_by_type,fraud_summary`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringSliceVar(&reportQueryNames, "queries", nil,
		"comma-separated query names to run (default: all)")
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	queries := insurance.ReportQueries()
	if len(reportQueryNames) > 0 {
		queries = filterQueries(queries, reportQueryNames)
		if len(queries) == 0 {
			return fmt.Errorf("no matching queries for %v", reportQueryNames)
		}
	}

	ctx := context.Background()
	pool, cleanup, err := connectTarget(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	logging.Info().Int("queries", len(queries)).Msg("Running report battery")

	results, err := insurance.RunReport(ctx, pool, queries)
	if err != nil {
		return err
	}

	for _, res := range results {
		cmd.Printf("%-24s %8d rows  %v\n", res.Name, res.Rows, res.Duration.Round(time.Millisecond))
	}
	return nil
}

func filterQueries(queries []insurance.ReportQuery, names []string) []insurance.ReportQuery {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	filtered := make([]insurance.ReportQuery, 0, len(queries))
	for _, q := range queries {
		if wanted[q.Name] {
			filtered = append(filtered, q)
		}
	}
	return filtered
}
