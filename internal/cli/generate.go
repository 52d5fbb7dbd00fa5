package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/healthsim/healthgen/internal/db"
	"github.com/healthsim/healthgen/internal/insurance"
	"github.com/healthsim/healthgen/internal/logging"
)

var (
	genSeed         uint64
	genFamilies     int
	genEmployers    int
	genMembers      int
	genProviders    int
	genPolicies     int
	genClaims       int
	genDropExisting bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the dataset and load it into the database",
	Long: `Generate the full synthetic dataset in memory and bulk-load it into
the analytical store in one transaction. With no --connection, an embedded
PostgreSQL server is booted under the data directory and stopped after the
load, leaving a self-contained database on local storage.

Regenerating with the same seed and counts reproduces the dataset exactly.

Example:
  healthgen generate --seed 42 --claims 50000
  healthgen generate --connection "postgres://..." --drop-existing`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0,
		"random seed (default: 42)")
	generateCmd.Flags().IntVar(&genFamilies, "families", 0,
		"number of family rows (default: 2000)")
	generateCmd.Flags().IntVar(&genEmployers, "employers", 0,
		"number of employer rows (default: 50)")
	generateCmd.Flags().IntVar(&genMembers, "members", 0,
		"number of member rows (default: 8000)")
	generateCmd.Flags().IntVar(&genProviders, "providers", 0,
		"number of provider rows (default: 300)")
	generateCmd.Flags().IntVar(&genPolicies, "policies", 0,
		"number of policy rows (default: 3000)")
	generateCmd.Flags().IntVar(&genClaims, "claims", 0,
		"number of claim rows (default: 50000)")
	generateCmd.Flags().BoolVar(&genDropExisting, "drop-existing", false,
		"drop existing schema before generation")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if cmd.Flags().Changed("seed") {
		cfg.Generate.Seed = genSeed
	}
	if genFamilies > 0 {
		cfg.Generate.Families = genFamilies
	}
	if genEmployers > 0 {
		cfg.Generate.Employers = genEmployers
	}
	if genMembers > 0 {
		cfg.Generate.Members = genMembers
	}
	if genProviders > 0 {
		cfg.Generate.Providers = genProviders
	}
	if genPolicies > 0 {
		cfg.Generate.Policies = genPolicies
	}
	if genClaims > 0 {
		cfg.Generate.Claims = genClaims
	}
	if genDropExisting {
		cfg.Generate.DropExisting = true
	}

	// Configuration errors fail before any generation begins
	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	counts := insurance.Counts{
		Families:  cfg.Generate.Families,
		Employers: cfg.Generate.Employers,
		Members:   cfg.Generate.Members,
		Providers: cfg.Generate.Providers,
		Policies:  cfg.Generate.Policies,
		Claims:    cfg.Generate.Claims,
	}

	logging.Info().
		Uint64("seed", cfg.Generate.Seed).
		Int("claims", counts.Claims).
		Msg("Generating dataset")

	gen := insurance.New(cfg.Generate.Seed, counts)
	ds, err := gen.Generate()
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	ctx := context.Background()
	pool, cleanup, err := connectTarget(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.Generate.DropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := insurance.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	logging.Info().Msg("Creating schema")
	if err := insurance.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := insurance.Load(ctx, pool, ds); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	err = db.SaveMetadata(ctx, pool, cfg.Generate.Seed, map[string]int{
		"families":  counts.Families,
		"employers": counts.Employers,
		"members":   counts.Members,
		"providers": counts.Providers,
		"policies":  counts.Policies,
		"claims":    counts.Claims,
	})
	if err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Uint64("seed", cfg.Generate.Seed).
		Msg("Dataset generation complete")

	return nil
}

// connectTarget connects to the configured store: the external database
// when a connection string is set, otherwise an embedded server under the
// data directory. The returned cleanup closes the pool and, for the
// embedded case, stops the server (the data directory stays on disk).
func connectTarget(ctx context.Context) (pool *pgxpool.Pool, cleanup func(), err error) {
	if cfg.Connection != "" {
		p, err := db.Connect(ctx, cfg.Connection)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return p, p.Close, nil
	}

	embedded := db.NewEmbedded(cfg.DataDir, 0)
	if err := embedded.Start(); err != nil {
		return nil, nil, err
	}

	p, err := db.Connect(ctx, embedded.ConnString())
	if err != nil {
		embedded.Stop()
		return nil, nil, fmt.Errorf("failed to connect to embedded database: %w", err)
	}

	cleanup = func() {
		p.Close()
		if err := embedded.Stop(); err != nil {
			logging.Error().Err(err).Msg("Failed to stop embedded database")
		}
	}
	return p, cleanup, nil
}
