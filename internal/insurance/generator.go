package insurance

import (
	"fmt"
	"time"

	"github.com/healthsim/healthgen/internal/datagen"
	"github.com/healthsim/healthgen/internal/logging"
)

// Counts holds the target row counts for each independently sized table.
// Claim diagnoses and payments are derived per claim, not counted directly.
type Counts struct {
	Families  int
	Employers int
	Members   int
	Providers int
	Policies  int
	Claims    int
}

// referenceDate anchors age calculations so a fixed seed yields the same
// member ages regardless of when generation runs.
var referenceDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Generator produces the full dataset from a single seeded random context.
// The context is shared across all stages and never re-seeded, so
// table-to-table correlations are reproducible for a given seed.
type Generator struct {
	faker  *datagen.Faker
	counts Counts
}

// New creates a Generator for the given seed and row counts.
func New(seed uint64, counts Counts) *Generator {
	return &Generator{
		faker:  datagen.NewFakerWithSeed(seed),
		counts: counts,
	}
}

// Generate runs every stage in dependency order and returns the complete
// dataset. Generation is single-threaded and all-or-nothing: the first
// invariant violation aborts with an error naming the stage and row.
func (g *Generator) Generate() (*Dataset, error) {
	start := time.Now()

	families, err := g.generateFamilies(g.counts.Families)
	if err != nil {
		return nil, err
	}
	employers, err := g.generateEmployers(g.counts.Employers)
	if err != nil {
		return nil, err
	}
	providers, err := g.generateProviders(g.counts.Providers)
	if err != nil {
		return nil, err
	}
	members, err := g.generateMembers(g.counts.Members, families, employers)
	if err != nil {
		return nil, err
	}
	policies, err := g.generatePolicies(g.counts.Policies, members)
	if err != nil {
		return nil, err
	}
	claims, err := g.generateClaims(g.counts.Claims, policies, providers)
	if err != nil {
		return nil, err
	}
	diagnoses, err := g.generateClaimDiagnoses(claims)
	if err != nil {
		return nil, err
	}
	payments, err := g.generatePayments(claims)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Families:       families,
		Employers:      employers,
		Members:        members,
		Providers:      providers,
		Policies:       policies,
		Claims:         claims,
		ClaimDiagnoses: diagnoses,
		Payments:       payments,
	}

	logging.Info().
		Int("families", len(ds.Families)).
		Int("employers", len(ds.Employers)).
		Int("members", len(ds.Members)).
		Int("providers", len(ds.Providers)).
		Int("policies", len(ds.Policies)).
		Int("claims", len(ds.Claims)).
		Int("claim_diagnoses", len(ds.ClaimDiagnoses)).
		Int("payments", len(ds.Payments)).
		Dur("elapsed", time.Since(start)).
		Msg("Dataset generated")

	return ds, nil
}

// stageErr reports a fatal generation failure at a specific stage and row.
func stageErr(stage string, row int, format string, args ...any) error {
	return fmt.Errorf("%s: row %d: %s", stage, row, fmt.Sprintf(format, args...))
}
