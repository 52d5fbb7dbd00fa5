// Package cli implements the command-line interface for healthgen.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/healthsim/healthgen/internal/config"
	"github.com/healthsim/healthgen/internal/insurance"
	"github.com/healthsim/healthgen/internal/logging"
	"github.com/healthsim/healthgen/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	dataDir    string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "healthgen",
		Short: "Synthetic health-insurance dataset generator",
		Long: `healthgen synthesizes a fake relational health-insurance dataset —
families, employers, members, providers, policies, claims, diagnoses and
payments — and bulk-loads it into an analytical PostgreSQL store.

Generation is deterministic: the same seed and row counts always produce
the same dataset. The store is either an embedded PostgreSQL server rooted
in a local data directory, or any external PostgreSQL reachable by
connection string. A battery of canned analytical queries is included for
exploring the generated schema.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./healthgen.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string (omit to use an embedded database)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"data directory for the embedded database (default: ./healthgen-data)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(tablesCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

// tableDescriptions annotates insurance.TableNames; the listing itself
// iterates TableNames so it cannot drift from the schema.
var tableDescriptions = map[string]string{
	"dim_families":         "household groups",
	"dim_employers":        "companies offering group coverage",
	"dim_members":          "insured individuals",
	"dim_providers":        "hospitals, clinics, pharmacies, labs",
	"dim_policies":         "insurance plans, one member each",
	"fact_claims":          "claim transactions",
	"fact_claim_diagnoses": "ICD-10/CPT codes per claim (1-3 each)",
	"fact_payments":        "disbursements against approved claims",
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of the generated schema",
	Long: `List the eight tables of the normalized health-insurance schema
in load (dependency) order.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Generated schema (load order):")
		for _, table := range insurance.TableNames {
			cmd.Printf("  %-20s - %s\n", table, tableDescriptions[table])
		}
	},
}
