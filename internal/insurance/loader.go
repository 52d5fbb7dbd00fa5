package insurance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthsim/healthgen/internal/logging"
)

// Load bulk-loads the dataset in a single transaction, one COPY per table
// in dependency order so foreign-key targets exist before referencing rows.
// Any failure rolls the whole transaction back: the store is either fully
// populated or untouched.
func Load(ctx context.Context, pool *pgxpool.Pool, ds *Dataset) error {
	start := time.Now()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin load transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := copyFamilies(ctx, tx, ds.Families); err != nil {
		return err
	}
	if err := copyEmployers(ctx, tx, ds.Employers); err != nil {
		return err
	}
	if err := copyMembers(ctx, tx, ds.Members); err != nil {
		return err
	}
	if err := copyProviders(ctx, tx, ds.Providers); err != nil {
		return err
	}
	if err := copyPolicies(ctx, tx, ds.Policies); err != nil {
		return err
	}
	if err := copyClaims(ctx, tx, ds.Claims); err != nil {
		return err
	}
	if err := copyClaimDiagnoses(ctx, tx, ds.ClaimDiagnoses); err != nil {
		return err
	}
	if err := copyPayments(ctx, tx, ds.Payments); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit load transaction: %w", err)
	}

	logging.Info().
		Dur("elapsed", time.Since(start)).
		Msg("Dataset loaded")
	return nil
}

func copyTable(ctx context.Context, tx pgx.Tx, table string, columns []string, rows [][]any) error {
	copied, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy %s: %w", table, err)
	}
	if copied != int64(len(rows)) {
		return fmt.Errorf("copy %s: wrote %d of %d rows", table, copied, len(rows))
	}
	logging.Info().
		Str("table", table).
		Int64("rows", copied).
		Msg("Table loaded")
	return nil
}

func copyFamilies(ctx context.Context, tx pgx.Tx, families []Family) error {
	rows := make([][]any, 0, len(families))
	for _, f := range families {
		rows = append(rows, []any{f.ID, f.Size, f.State, f.Zip, f.IncomeCategory})
	}
	return copyTable(ctx, tx, "dim_families",
		[]string{"family_id", "family_size", "state", "zip_code", "income_category"}, rows)
}

func copyEmployers(ctx context.Context, tx pgx.Tx, employers []Employer) error {
	rows := make([][]any, 0, len(employers))
	for _, e := range employers {
		rows = append(rows, []any{e.ID, e.Name, e.Industry, e.EmployeeCount, e.State})
	}
	return copyTable(ctx, tx, "dim_employers",
		[]string{"employer_id", "employer_name", "industry", "employee_count", "state"}, rows)
}

func copyMembers(ctx context.Context, tx pgx.Tx, members []Member) error {
	rows := make([][]any, 0, len(members))
	for _, m := range members {
		rows = append(rows, []any{
			m.ID, nullableID(m.FamilyID), nullableID(m.EmployerID),
			m.FirstName, m.LastName, m.Gender, m.DateOfBirth,
			m.InsuranceCategory, m.EmploymentCategory, m.SmokingStatus,
			m.Zip, m.State, m.ChronicCondition, m.HealthRiskScore,
		})
	}
	return copyTable(ctx, tx, "dim_members",
		[]string{
			"member_id", "family_id", "employer_id",
			"first_name", "last_name", "gender", "date_of_birth",
			"insurance_category", "employment_category", "smoking_status",
			"zip_code", "state", "chronic_condition_flag", "health_risk_score",
		}, rows)
}

func copyProviders(ctx context.Context, tx pgx.Tx, providers []Provider) error {
	rows := make([][]any, 0, len(providers))
	for _, p := range providers {
		rows = append(rows, []any{p.ID, p.Name, p.Type, p.InNetwork, p.State})
	}
	return copyTable(ctx, tx, "dim_providers",
		[]string{"provider_id", "provider_name", "provider_type", "network_flag", "state"}, rows)
}

func copyPolicies(ctx context.Context, tx pgx.Tx, policies []Policy) error {
	rows := make([][]any, 0, len(policies))
	for _, p := range policies {
		rows = append(rows, []any{
			p.ID, p.MemberID, p.PlanType, p.InsuranceCategory,
			p.StartDate, p.EndDate, p.Deductible, p.CopayRate,
			p.OutOfPocketMax, p.Premium, p.Status,
		})
	}
	return copyTable(ctx, tx, "dim_policies",
		[]string{
			"policy_id", "member_id", "plan_type", "insurance_category",
			"start_date", "end_date", "deductible", "co_payment_rate",
			"out_of_pocket_max", "premium_amount", "status",
		}, rows)
}

func copyClaims(ctx context.Context, tx pgx.Tx, claims []Claim) error {
	rows := make([][]any, 0, len(claims))
	for _, c := range claims {
		rows = append(rows, []any{
			c.ID, c.PolicyID, c.MemberID, c.ProviderID,
			c.Date, c.Type, c.Status, c.Amount, c.PaidAmount,
			c.CopayAmount, c.LengthOfStay, c.SubmissionChannel,
			c.NetworkProvider, c.FraudFlagged,
		})
	}
	return copyTable(ctx, tx, "fact_claims",
		[]string{
			"claim_id", "policy_id", "member_id", "provider_id",
			"claim_date", "claim_type", "claim_status", "claim_amount", "paid_amount",
			"co_payment_amount", "length_of_stay", "submission_channel",
			"network_provider_flag", "is_fraud_flagged",
		}, rows)
}

func copyClaimDiagnoses(ctx context.Context, tx pgx.Tx, diagnoses []ClaimDiagnosis) error {
	rows := make([][]any, 0, len(diagnoses))
	for _, d := range diagnoses {
		rows = append(rows, []any{d.ID, d.ClaimID, d.Rank, d.DiagnosisCode, d.ProcedureCode})
	}
	return copyTable(ctx, tx, "fact_claim_diagnoses",
		[]string{"diagnosis_id", "claim_id", "diagnosis_rank", "diagnosis_code", "procedure_code"}, rows)
}

func copyPayments(ctx context.Context, tx pgx.Tx, payments []Payment) error {
	rows := make([][]any, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []any{p.ID, p.ClaimID, p.MemberID, p.Date, p.Amount, p.Method})
	}
	return copyTable(ctx, tx, "fact_payments",
		[]string{"payment_id", "claim_id", "member_id", "payment_date", "paid_amount", "payment_method"}, rows)
}

// nullableID maps the in-memory "not linked" sentinel to SQL NULL.
func nullableID(id int) any {
	if id == 0 {
		return nil
	}
	return id
}
