package insurance

// Reference catalogs. These are fixed enumerations consulted by every row
// generator; codes come from the ICD-10 and CPT coding standards.

// Common ICD-10 diagnosis codes (hypertension, diabetes, asthma, ...).
var diagnosisCodes = []string{
	"I10", "E11", "J45", "M54", "K21", "F32", "I25", "E78",
	"J06", "N39", "G43", "M79", "L30", "F41", "E66", "Z00",
}

// Common CPT procedure codes (office visits, ECG, blood panels, ...).
var procedureCodes = []string{
	"99213", "99214", "93000", "85025", "80053", "71046",
	"99232", "36415", "90834", "97110", "43239", "66984",
}

var planTypes = []string{"HMO", "PPO", "EPO", "HDHP", "POS"}

var providerTypes = []string{"Hospital", "Clinic", "Pharmacy", "Physician", "Specialist", "Lab"}

// Clinics and physician practices outnumber hospitals.
var providerTypeWeights = []int{8, 30, 17, 25, 12, 8}

// Claim lifecycle statuses: Denied and Pending claims carry a zero paid
// amount (Pending claims are not yet settled).
const (
	StatusApproved = "Approved"
	StatusDenied   = "Denied"
	StatusPending  = "Pending"
)

var claimStatuses = []string{StatusApproved, StatusDenied, StatusPending}
var claimStatusWeights = []int{65, 15, 20}

const ClaimTypeInpatient = "Inpatient"

var claimTypes = []string{ClaimTypeInpatient, "Outpatient", "Pharmacy", "Emergency", "Preventive"}

// claimTypeWeightsByProvider conditions the claim-type distribution on the
// originating provider's type: pharmacies bias toward Pharmacy claims,
// hospitals toward Inpatient/Emergency. Indexed parallel to claimTypes.
var claimTypeWeightsByProvider = map[string][]int{
	"Hospital":   {45, 30, 0, 20, 5},
	"Clinic":     {0, 60, 5, 5, 30},
	"Pharmacy":   {0, 10, 90, 0, 0},
	"Physician":  {0, 55, 5, 5, 35},
	"Specialist": {10, 70, 5, 5, 10},
	"Lab":        {0, 80, 0, 0, 20},
}

// severityParams holds the lognormal parameters for claim amounts per
// claim type. Inpatient claims have higher mean and variance than
// pharmacy claims, mimicking real insurance severity distributions.
var severityParams = map[string]struct{ Mu, Sigma float64 }{
	ClaimTypeInpatient: {8.6, 1.0},
	"Outpatient":       {6.8, 0.9},
	"Pharmacy":         {4.8, 1.1},
	"Emergency":        {7.6, 0.9},
	"Preventive":       {5.2, 0.6},
}

// primaryDiagnosesByType biases the rank-1 diagnosis toward codes that
// plausibly cause that kind of claim.
var primaryDiagnosesByType = map[string][]string{
	ClaimTypeInpatient: {"I25", "I10", "E11", "K21", "N39"},
	"Outpatient":       {"M54", "M79", "L30", "K21", "G43"},
	"Pharmacy":         {"E78", "E11", "J45", "F32", "F41"},
	"Emergency":        {"J06", "N39", "G43", "M54", "I10"},
	"Preventive":       {"Z00", "E66", "E78", "I10"},
}

const (
	CategoryIndividual = "Individual"
	CategoryFamily     = "Family"
	CategoryGroup      = "Group"
)

var insuranceCategories = []string{CategoryIndividual, CategoryFamily, CategoryGroup}
var insuranceCategoryWeights = []int{30, 40, 30}

var genders = []string{"Male", "Female", "Non-binary"}

var industries = []string{"Healthcare", "Finance", "Tech", "Education", "Retail", "Manufacturing"}

var employmentCategories = []string{"Employed", "Self-Employed", "Unemployed", "Retired", "Student"}

var smokingStatuses = []string{"Never", "Former", "Current"}

var incomeCategories = []string{"Low", "Middle", "High"}

var policyStatuses = []string{"Active", "Expired", "Cancelled"}
var policyStatusWeights = []int{70, 20, 10}

var submissionChannels = []string{"Online", "Mobile App", "Paper", "Agent", "Hospital Portal"}

var paymentMethods = []string{"Bank Transfer", "Check", "Direct Deposit", "Digital Wallet"}

var deductibles = []int{500, 1000, 2000, 3000, 5000}
var outOfPocketMaxes = []int{3000, 5000, 7000, 10000}

// Population rates. The fraud flag is deliberately uncorrelated with claim
// amount and status: this dataset is meant for "find the hidden fraud"
// exercises, so the flag carries no signal beyond its base rate.
const (
	chronicConditionRate = 0.25
	fraudRate            = 0.03
	networkProviderRate  = 0.75
)
