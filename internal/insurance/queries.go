package insurance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthsim/healthgen/internal/logging"
)

// ReportQuery is one canned analytical query against the persisted schema.
type ReportQuery struct {
	Name        string
	Description string
	SQL         string
}

// ReportResult holds the outcome of one executed report query.
type ReportResult struct {
	Name     string
	Rows     int64
	Duration time.Duration
	Err      error
}

// ReportQueries returns the fixed battery of analytical queries, executed
// in this order by the report command. All queries are read-only.
func ReportQueries() []ReportQuery {
	return []ReportQuery{
		{
			Name:        "claims_by_type",
			Description: "Claim volume, mean severity and total paid per claim type",
			SQL: `
        SELECT claim_type,
               COUNT(*) AS claim_count,
               ROUND(AVG(claim_amount), 2) AS avg_claim_amount,
               ROUND(SUM(paid_amount), 2) AS total_paid
        FROM fact_claims
        GROUP BY claim_type
        ORDER BY total_paid DESC`,
		},
		{
			Name:        "approval_rates",
			Description: "Claim status distribution overall and per submission channel",
			SQL: `
        SELECT submission_channel,
               claim_status,
               COUNT(*) AS claim_count,
               ROUND(100.0 * COUNT(*) / SUM(COUNT(*)) OVER (PARTITION BY submission_channel), 1) AS pct
        FROM fact_claims
        GROUP BY submission_channel, claim_status
        ORDER BY submission_channel, claim_status`,
		},
		{
			Name:        "top_providers",
			Description: "Top 20 providers by total paid amount with network status",
			SQL: `
        SELECT p.provider_name,
               p.provider_type,
               p.network_flag,
               COUNT(*) AS claim_count,
               ROUND(SUM(c.paid_amount), 2) AS total_paid
        FROM fact_claims c
        JOIN dim_providers p ON c.provider_id = p.provider_id
        GROUP BY p.provider_id, p.provider_name, p.provider_type, p.network_flag
        ORDER BY total_paid DESC
        LIMIT 20`,
		},
		{
			Name:        "fraud_summary",
			Description: "Fraud-flagged claim counts and amounts per claim type",
			SQL: `
        SELECT claim_type,
               COUNT(*) FILTER (WHERE is_fraud_flagged) AS flagged,
               COUNT(*) AS total,
               ROUND(100.0 * COUNT(*) FILTER (WHERE is_fraud_flagged) / COUNT(*), 2) AS flagged_pct,
               ROUND(SUM(claim_amount) FILTER (WHERE is_fraud_flagged), 2) AS flagged_amount
        FROM fact_claims
        GROUP BY claim_type
        ORDER BY flagged_amount DESC NULLS LAST`,
		},
		{
			Name:        "chronic_cost_comparison",
			Description: "Average claim cost for chronic vs non-chronic members",
			SQL: `
        SELECT m.chronic_condition_flag,
               COUNT(DISTINCT m.member_id) AS members,
               COUNT(c.claim_id) AS claims,
               ROUND(AVG(c.claim_amount), 2) AS avg_claim_amount,
               ROUND(AVG(m.health_risk_score), 2) AS avg_risk_score
        FROM dim_members m
        LEFT JOIN fact_claims c ON c.member_id = m.member_id
        GROUP BY m.chronic_condition_flag`,
		},
		{
			Name:        "monthly_claim_trend",
			Description: "Claim counts and paid totals by calendar month",
			SQL: `
        SELECT DATE_TRUNC('month', claim_date) AS month,
               COUNT(*) AS claim_count,
               ROUND(SUM(paid_amount), 2) AS total_paid
        FROM fact_claims
        GROUP BY month
        ORDER BY month`,
		},
		{
			Name:        "payment_lag",
			Description: "Distribution of days between claim date and payment date",
			SQL: `
        SELECT (p.payment_date - c.claim_date) AS lag_days,
               COUNT(*) AS payments
        FROM fact_payments p
        JOIN fact_claims c ON p.claim_id = c.claim_id
        GROUP BY lag_days
        ORDER BY lag_days`,
		},
		{
			Name:        "plan_type_loss_ratio",
			Description: "Paid claims relative to collected premiums per plan type",
			SQL: `
        SELECT pol.plan_type,
               COUNT(DISTINCT pol.policy_id) AS policies,
               ROUND(SUM(c.paid_amount), 2) AS total_paid,
               ROUND(SUM(c.paid_amount) / NULLIF(SUM(pol.premium_amount), 0), 2) AS paid_per_premium
        FROM dim_policies pol
        LEFT JOIN fact_claims c ON c.policy_id = pol.policy_id
        GROUP BY pol.plan_type
        ORDER BY total_paid DESC NULLS LAST`,
		},
		{
			Name:        "diagnosis_frequency",
			Description: "Most frequent primary diagnoses with average claim cost",
			SQL: `
        SELECT d.diagnosis_code,
               COUNT(*) AS claim_count,
               ROUND(AVG(c.claim_amount), 2) AS avg_claim_amount
        FROM fact_claim_diagnoses d
        JOIN fact_claims c ON d.claim_id = c.claim_id
        WHERE d.diagnosis_rank = 1
        GROUP BY d.diagnosis_code
        ORDER BY claim_count DESC`,
		},
		{
			Name:        "family_size_cost",
			Description: "Average per-member claim cost by family size",
			SQL: `
        SELECT f.family_size,
               COUNT(DISTINCT m.member_id) AS members,
               ROUND(AVG(c.claim_amount), 2) AS avg_claim_amount
        FROM dim_families f
        JOIN dim_members m ON m.family_id = f.family_id
        LEFT JOIN fact_claims c ON c.member_id = m.member_id
        GROUP BY f.family_size
        ORDER BY f.family_size`,
		},
		{
			Name:        "inpatient_stay_cost",
			Description: "Claim cost by length of stay for inpatient claims",
			SQL: `
        SELECT length_of_stay,
               COUNT(*) AS claim_count,
               ROUND(AVG(claim_amount), 2) AS avg_claim_amount
        FROM fact_claims
        WHERE claim_type = 'Inpatient'
        GROUP BY length_of_stay
        ORDER BY length_of_stay`,
		},
	}
}

// RunReport executes the full battery in order, logging each result.
// Query errors are collected per query rather than aborting the battery;
// the first error is returned after all queries have run.
func RunReport(ctx context.Context, pool *pgxpool.Pool, queries []ReportQuery) ([]ReportResult, error) {
	results := make([]ReportResult, 0, len(queries))
	var firstErr error

	for _, q := range queries {
		start := time.Now()
		rows, err := countRows(ctx, pool, q.SQL)
		res := ReportResult{
			Name:     q.Name,
			Rows:     rows,
			Duration: time.Since(start),
			Err:      err,
		}
		results = append(results, res)

		if err != nil {
			logging.Error().
				Str("query", q.Name).
				Err(err).
				Msg("Report query failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("query %s: %w", q.Name, err)
			}
			continue
		}
		logging.Info().
			Str("query", q.Name).
			Int64("rows", res.Rows).
			Dur("elapsed", res.Duration).
			Msg("Report query complete")
	}

	return results, firstErr
}

func countRows(ctx context.Context, pool *pgxpool.Pool, sql string) (int64, error) {
	rows, err := pool.Query(ctx, sql)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		count++
	}
	return count, rows.Err()
}
