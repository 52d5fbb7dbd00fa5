// Package insurance generates a synthetic relational health-insurance
// dataset: four dimension tables (families, employers, members, providers),
// a policy table, and three fact tables (claims, claim diagnoses, payments).
// Rows are created exactly once, never mutated, and persisted once — the
// dataset is a frozen synthetic snapshot.
package insurance

import "time"

// Family is a household group. Referenced by Member.
type Family struct {
	ID             int
	Size           int
	State          string
	Zip            string
	IncomeCategory string
}

// Employer is a company offering group coverage. Referenced by Member.
type Employer struct {
	ID            int
	Name          string
	Industry      string
	EmployeeCount int
	State         string
}

// Member is an insured individual. FamilyID and EmployerID are 0 when the
// member is not linked: exactly one of the three enrollment paths applies —
// Individual (neither set), Family (FamilyID set), Group (EmployerID set).
type Member struct {
	ID                 int
	FamilyID           int
	EmployerID         int
	FirstName          string
	LastName           string
	Gender             string
	DateOfBirth        time.Time
	InsuranceCategory  string
	EmploymentCategory string
	SmokingStatus      string
	Zip                string
	State              string
	ChronicCondition   bool
	HealthRiskScore    float64
}

// Provider delivers care and originates claims.
type Provider struct {
	ID        int
	Name      string
	Type      string
	InNetwork bool
	State     string
}

// Policy is an insurance plan bound to exactly one member. EndDate is
// always strictly after StartDate.
type Policy struct {
	ID                int
	MemberID          int
	PlanType          string
	InsuranceCategory string
	StartDate         time.Time
	EndDate           time.Time
	Deductible        int
	CopayRate         float64
	OutOfPocketMax    int
	Premium           float64
	Status            string
}

// Claim is a reimbursement request. PaidAmount is always within
// [0, Amount]; LengthOfStay is positive only for Inpatient claims.
type Claim struct {
	ID                int
	PolicyID          int
	MemberID          int
	ProviderID        int
	Date              time.Time
	Type              string
	Status            string
	Amount            float64
	PaidAmount        float64
	CopayAmount       float64
	LengthOfStay      int
	SubmissionChannel string
	NetworkProvider   bool
	FraudFlagged      bool
}

// ClaimDiagnosis attaches one ICD-10 diagnosis and one CPT procedure code
// to a claim. Rank 1 is the primary diagnosis.
type ClaimDiagnosis struct {
	ID            int
	ClaimID       int
	Rank          int
	DiagnosisCode string
	ProcedureCode string
}

// Payment is a disbursement against an approved claim. Date is strictly
// after the claim date; the payments of one claim sum exactly to the
// claim's paid amount.
type Payment struct {
	ID       int
	ClaimID  int
	MemberID int
	Date     time.Time
	Amount   float64
	Method   string
}

// Dataset holds all eight generated tables in dependency order.
type Dataset struct {
	Families       []Family
	Employers      []Employer
	Members        []Member
	Providers      []Provider
	Policies       []Policy
	Claims         []Claim
	ClaimDiagnoses []ClaimDiagnosis
	Payments       []Payment
}
