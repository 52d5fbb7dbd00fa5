package insurance

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Eight-table normalized schema. Dimensions carry entity attributes exactly
// once; facts reference them by key. Foreign keys are declared and enforced,
// which is why the loader writes tables strictly in dependency order.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS dim_families (
    family_id       INTEGER PRIMARY KEY,
    family_size     SMALLINT NOT NULL,
    state           CHAR(2) NOT NULL,
    zip_code        VARCHAR(10) NOT NULL,
    income_category VARCHAR(10) NOT NULL
);

CREATE TABLE IF NOT EXISTS dim_employers (
    employer_id    INTEGER PRIMARY KEY,
    employer_name  VARCHAR(100) NOT NULL,
    industry       VARCHAR(30) NOT NULL,
    employee_count INTEGER NOT NULL,
    state          CHAR(2) NOT NULL
);

CREATE TABLE IF NOT EXISTS dim_members (
    member_id             INTEGER PRIMARY KEY,
    family_id             INTEGER REFERENCES dim_families(family_id),
    employer_id           INTEGER REFERENCES dim_employers(employer_id),
    first_name            VARCHAR(50) NOT NULL,
    last_name             VARCHAR(50) NOT NULL,
    gender                VARCHAR(15) NOT NULL,
    date_of_birth         DATE NOT NULL,
    insurance_category    VARCHAR(15) NOT NULL,
    employment_category   VARCHAR(20) NOT NULL,
    smoking_status        VARCHAR(10) NOT NULL,
    zip_code              VARCHAR(10) NOT NULL,
    state                 CHAR(2) NOT NULL,
    chronic_condition_flag BOOLEAN NOT NULL,
    health_risk_score     NUMERIC(5,2) NOT NULL
);

CREATE TABLE IF NOT EXISTS dim_providers (
    provider_id   INTEGER PRIMARY KEY,
    provider_name VARCHAR(110) NOT NULL,
    provider_type VARCHAR(15) NOT NULL,
    network_flag  BOOLEAN NOT NULL,
    state         CHAR(2) NOT NULL
);

CREATE TABLE IF NOT EXISTS dim_policies (
    policy_id          INTEGER PRIMARY KEY,
    member_id          INTEGER NOT NULL REFERENCES dim_members(member_id),
    plan_type          VARCHAR(5) NOT NULL,
    insurance_category VARCHAR(15) NOT NULL,
    start_date         DATE NOT NULL,
    end_date           DATE NOT NULL,
    deductible         INTEGER NOT NULL,
    co_payment_rate    NUMERIC(4,2) NOT NULL,
    out_of_pocket_max  INTEGER NOT NULL,
    premium_amount     NUMERIC(8,2) NOT NULL,
    status             VARCHAR(10) NOT NULL,
    CHECK (end_date > start_date)
);

CREATE TABLE IF NOT EXISTS fact_claims (
    claim_id              INTEGER PRIMARY KEY,
    policy_id             INTEGER NOT NULL REFERENCES dim_policies(policy_id),
    member_id             INTEGER NOT NULL REFERENCES dim_members(member_id),
    provider_id           INTEGER NOT NULL REFERENCES dim_providers(provider_id),
    claim_date            DATE NOT NULL,
    claim_type            VARCHAR(15) NOT NULL,
    claim_status          VARCHAR(10) NOT NULL,
    claim_amount          NUMERIC(12,2) NOT NULL,
    paid_amount           NUMERIC(12,2) NOT NULL,
    co_payment_amount     NUMERIC(12,2) NOT NULL,
    length_of_stay        SMALLINT NOT NULL,
    submission_channel    VARCHAR(20) NOT NULL,
    network_provider_flag BOOLEAN NOT NULL,
    is_fraud_flagged      BOOLEAN NOT NULL,
    CHECK (paid_amount >= 0 AND paid_amount <= claim_amount)
);

CREATE TABLE IF NOT EXISTS fact_claim_diagnoses (
    diagnosis_id   INTEGER PRIMARY KEY,
    claim_id       INTEGER NOT NULL REFERENCES fact_claims(claim_id),
    diagnosis_rank SMALLINT NOT NULL,
    diagnosis_code VARCHAR(8) NOT NULL,
    procedure_code VARCHAR(8) NOT NULL
);

CREATE TABLE IF NOT EXISTS fact_payments (
    payment_id     INTEGER PRIMARY KEY,
    claim_id       INTEGER NOT NULL REFERENCES fact_claims(claim_id),
    member_id      INTEGER NOT NULL REFERENCES dim_members(member_id),
    payment_date   DATE NOT NULL,
    paid_amount    NUMERIC(12,2) NOT NULL,
    payment_method VARCHAR(20) NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_members_family ON dim_members(family_id);
CREATE INDEX IF NOT EXISTS idx_members_employer ON dim_members(employer_id);
CREATE INDEX IF NOT EXISTS idx_policies_member ON dim_policies(member_id);
CREATE INDEX IF NOT EXISTS idx_claims_member ON fact_claims(member_id);
CREATE INDEX IF NOT EXISTS idx_claims_policy ON fact_claims(policy_id);
CREATE INDEX IF NOT EXISTS idx_claims_provider ON fact_claims(provider_id);
CREATE INDEX IF NOT EXISTS idx_claims_date ON fact_claims(claim_date);
CREATE INDEX IF NOT EXISTS idx_diagnoses_claim ON fact_claim_diagnoses(claim_id);
CREATE INDEX IF NOT EXISTS idx_payments_claim ON fact_payments(claim_id);
CREATE INDEX IF NOT EXISTS idx_payments_member ON fact_payments(member_id);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS fact_payments CASCADE;
DROP TABLE IF EXISTS fact_claim_diagnoses CASCADE;
DROP TABLE IF EXISTS fact_claims CASCADE;
DROP TABLE IF EXISTS dim_policies CASCADE;
DROP TABLE IF EXISTS dim_providers CASCADE;
DROP TABLE IF EXISTS dim_members CASCADE;
DROP TABLE IF EXISTS dim_employers CASCADE;
DROP TABLE IF EXISTS dim_families CASCADE;
`

// TableNames lists the eight tables in load (dependency) order.
var TableNames = []string{
	"dim_families",
	"dim_employers",
	"dim_members",
	"dim_providers",
	"dim_policies",
	"fact_claims",
	"fact_claim_diagnoses",
	"fact_payments",
}

// CreateSchema creates the eight-table schema.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the eight-table schema.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
