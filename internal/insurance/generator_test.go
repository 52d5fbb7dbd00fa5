package insurance

import (
	"math"
	"reflect"
	"testing"
)

var smallCounts = Counts{
	Families:  50,
	Employers: 10,
	Members:   200,
	Providers: 30,
	Policies:  100,
	Claims:    2000,
}

var defaultCounts = Counts{
	Families:  2000,
	Employers: 50,
	Members:   8000,
	Providers: 300,
	Policies:  3000,
	Claims:    50000,
}

func generate(t *testing.T, seed uint64, counts Counts) *Dataset {
	t.Helper()
	ds, err := New(seed, counts).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return ds
}

func TestGenerateDeterminism(t *testing.T) {
	ds1 := generate(t, 42, smallCounts)
	ds2 := generate(t, 42, smallCounts)

	if !reflect.DeepEqual(ds1, ds2) {
		t.Error("same seed and counts produced different datasets")
	}
}

func TestGenerateSeedChangesOutput(t *testing.T) {
	ds1 := generate(t, 1, smallCounts)
	ds2 := generate(t, 2, smallCounts)

	if reflect.DeepEqual(ds1.Claims, ds2.Claims) {
		t.Error("different seeds produced identical claims")
	}
}

func TestGenerateRejectsNonPositiveCounts(t *testing.T) {
	counts := smallCounts
	counts.Members = 0
	if _, err := New(42, counts).Generate(); err == nil {
		t.Error("expected error for zero member count")
	}

	counts = smallCounts
	counts.Claims = -5
	if _, err := New(42, counts).Generate(); err == nil {
		t.Error("expected error for negative claim count")
	}
}

func TestSequentialIDs(t *testing.T) {
	ds := generate(t, 42, smallCounts)

	for i, f := range ds.Families {
		if f.ID != i+1 {
			t.Fatalf("family %d has id %d", i, f.ID)
		}
	}
	for i, p := range ds.Policies {
		if p.ID != i+1 {
			t.Fatalf("policy %d has id %d", i, p.ID)
		}
	}
	for i, c := range ds.Claims {
		if c.ID != i+1 {
			t.Fatalf("claim %d has id %d", i, c.ID)
		}
	}
	for i, d := range ds.ClaimDiagnoses {
		if d.ID != i+1 {
			t.Fatalf("diagnosis %d has id %d", i, d.ID)
		}
	}
	for i, p := range ds.Payments {
		if p.ID != i+1 {
			t.Fatalf("payment %d has id %d", i, p.ID)
		}
	}
}

func TestMemberEnrollmentPaths(t *testing.T) {
	ds := generate(t, 42, smallCounts)

	for _, m := range ds.Members {
		switch m.InsuranceCategory {
		case CategoryIndividual:
			if m.FamilyID != 0 || m.EmployerID != 0 {
				t.Fatalf("member %d: individual member has links (family=%d employer=%d)",
					m.ID, m.FamilyID, m.EmployerID)
			}
		case CategoryFamily:
			if m.FamilyID == 0 || m.EmployerID != 0 {
				t.Fatalf("member %d: family member links wrong (family=%d employer=%d)",
					m.ID, m.FamilyID, m.EmployerID)
			}
			if m.FamilyID < 1 || m.FamilyID > len(ds.Families) {
				t.Fatalf("member %d: family id %d out of range", m.ID, m.FamilyID)
			}
		case CategoryGroup:
			if m.EmployerID == 0 || m.FamilyID != 0 {
				t.Fatalf("member %d: group member links wrong (family=%d employer=%d)",
					m.ID, m.FamilyID, m.EmployerID)
			}
			if m.EmployerID < 1 || m.EmployerID > len(ds.Employers) {
				t.Fatalf("member %d: employer id %d out of range", m.ID, m.EmployerID)
			}
		default:
			t.Fatalf("member %d: unknown insurance category %q", m.ID, m.InsuranceCategory)
		}
	}
}

func TestMemberAgesAndRiskScores(t *testing.T) {
	ds := generate(t, 42, smallCounts)

	for _, m := range ds.Members {
		age := ageAt(m.DateOfBirth)
		if age < 18 || age > 86 {
			t.Fatalf("member %d: age %d outside adult range", m.ID, age)
		}
		if m.HealthRiskScore < 0 || m.HealthRiskScore > 100 {
			t.Fatalf("member %d: risk score %f out of bounds", m.ID, m.HealthRiskScore)
		}
		// score = 0.6*age + 15*chronic + U(0,25): check the deterministic floor
		floor := 0.6 * float64(age)
		if m.ChronicCondition {
			floor += 15
		}
		if m.HealthRiskScore < floor-0.01 && m.HealthRiskScore < 100 {
			t.Fatalf("member %d: risk score %f below deterministic floor %f",
				m.ID, m.HealthRiskScore, floor)
		}
	}
}

func TestPolicyInvariants(t *testing.T) {
	ds := generate(t, 42, smallCounts)

	for _, p := range ds.Policies {
		if !p.EndDate.After(p.StartDate) {
			t.Fatalf("policy %d: end %v not after start %v", p.ID, p.EndDate, p.StartDate)
		}
		if p.MemberID < 1 || p.MemberID > len(ds.Members) {
			t.Fatalf("policy %d: member id %d out of range", p.ID, p.MemberID)
		}
		if p.CopayRate < 0.05-0.01 || p.CopayRate > 0.30+0.01 {
			t.Fatalf("policy %d: copay rate %f out of range", p.ID, p.CopayRate)
		}
	}
}

func TestClaimMonetaryInvariants(t *testing.T) {
	ds := generate(t, 42, smallCounts)

	for _, c := range ds.Claims {
		if c.PaidAmount < 0 || c.PaidAmount > c.Amount {
			t.Fatalf("claim %d: paid %f outside [0, %f]", c.ID, c.PaidAmount, c.Amount)
		}
		if (c.Status == StatusDenied || c.Status == StatusPending) && c.PaidAmount != 0 {
			t.Fatalf("claim %d: status %s but paid %f", c.ID, c.Status, c.PaidAmount)
		}
		if c.Amount <= 0 {
			t.Fatalf("claim %d: non-positive amount %f", c.ID, c.Amount)
		}
	}
}

func TestClaimLengthOfStay(t *testing.T) {
	ds := generate(t, 42, smallCounts)

	for _, c := range ds.Claims {
		if c.Type == ClaimTypeInpatient {
			if c.LengthOfStay < 1 || c.LengthOfStay > 14 {
				t.Fatalf("claim %d: inpatient length of stay %d outside [1, 14]", c.ID, c.LengthOfStay)
			}
		} else if c.LengthOfStay != 0 {
			t.Fatalf("claim %d: %s claim has length of stay %d", c.ID, c.Type, c.LengthOfStay)
		}
	}
}

func TestClaimReferentialIntegrity(t *testing.T) {
	ds := generate(t, 42, smallCounts)

	for _, c := range ds.Claims {
		if c.PolicyID < 1 || c.PolicyID > len(ds.Policies) {
			t.Fatalf("claim %d: policy id %d out of range", c.ID, c.PolicyID)
		}
		if c.ProviderID < 1 || c.ProviderID > len(ds.Providers) {
			t.Fatalf("claim %d: provider id %d out of range", c.ID, c.ProviderID)
		}

		policy := ds.Policies[c.PolicyID-1]
		if c.MemberID != policy.MemberID {
			t.Fatalf("claim %d: member %d does not own policy %d (owner %d)",
				c.ID, c.MemberID, c.PolicyID, policy.MemberID)
		}

		windowEnd := policy.EndDate.AddDate(0, 0, claimDateBufferDays)
		if c.Date.Before(policy.StartDate) || c.Date.After(windowEnd) {
			t.Fatalf("claim %d: date %v outside policy window [%v, %v]",
				c.ID, c.Date, policy.StartDate, windowEnd)
		}

		provider := ds.Providers[c.ProviderID-1]
		if c.NetworkProvider != provider.InNetwork {
			t.Fatalf("claim %d: network flag %v disagrees with provider %v",
				c.ID, c.NetworkProvider, provider.InNetwork)
		}
	}
}

func TestClaimTypeMatchesProviderWeights(t *testing.T) {
	ds := generate(t, 42, smallCounts)

	for _, c := range ds.Claims {
		provider := ds.Providers[c.ProviderID-1]
		weights := claimTypeWeightsByProvider[provider.Type]

		idx := -1
		for i, ct := range claimTypes {
			if ct == c.Type {
				idx = i
				break
			}
		}
		if idx < 0 {
			t.Fatalf("claim %d: unknown claim type %q", c.ID, c.Type)
		}
		if weights[idx] == 0 {
			t.Fatalf("claim %d: type %s has zero weight for provider type %s",
				c.ID, c.Type, provider.Type)
		}
	}
}

func TestDiagnosesPerClaim(t *testing.T) {
	ds := generate(t, 42, smallCounts)

	byClaim := make(map[int][]ClaimDiagnosis)
	for _, d := range ds.ClaimDiagnoses {
		byClaim[d.ClaimID] = append(byClaim[d.ClaimID], d)
	}

	for _, c := range ds.Claims {
		diags := byClaim[c.ID]
		if len(diags) < 1 || len(diags) > 3 {
			t.Fatalf("claim %d: %d diagnoses, want 1-3", c.ID, len(diags))
		}

		seen := make(map[string]bool)
		for i, d := range diags {
			if d.Rank != i+1 {
				t.Fatalf("claim %d: diagnosis rank %d at position %d", c.ID, d.Rank, i)
			}
			if seen[d.DiagnosisCode] {
				t.Fatalf("claim %d: duplicate diagnosis code %s", c.ID, d.DiagnosisCode)
			}
			seen[d.DiagnosisCode] = true
		}
	}

	for claimID := range byClaim {
		if claimID < 1 || claimID > len(ds.Claims) {
			t.Fatalf("diagnosis references unknown claim %d", claimID)
		}
	}
}

func TestPaymentsSumExactlyToPaidAmount(t *testing.T) {
	ds := generate(t, 42, smallCounts)

	sumCents := make(map[int]int64)
	for _, p := range ds.Payments {
		if p.ClaimID < 1 || p.ClaimID > len(ds.Claims) {
			t.Fatalf("payment %d references unknown claim %d", p.ID, p.ClaimID)
		}
		claim := ds.Claims[p.ClaimID-1]

		if !p.Date.After(claim.Date) {
			t.Fatalf("payment %d: date %v not after claim date %v", p.ID, p.Date, claim.Date)
		}
		if p.MemberID != claim.MemberID {
			t.Fatalf("payment %d: member %d disagrees with claim member %d",
				p.ID, p.MemberID, claim.MemberID)
		}
		if p.Amount <= 0 {
			t.Fatalf("payment %d: non-positive amount %f", p.ID, p.Amount)
		}
		sumCents[p.ClaimID] += int64(math.Round(p.Amount * 100))
	}

	for _, c := range ds.Claims {
		paidCents := int64(math.Round(c.PaidAmount * 100))
		if c.Status == StatusApproved && paidCents > 0 {
			if sumCents[c.ID] != paidCents {
				t.Fatalf("claim %d: payments sum to %d cents, paid amount is %d cents",
					c.ID, sumCents[c.ID], paidCents)
			}
		} else if sumCents[c.ID] != 0 {
			t.Fatalf("claim %d: status %s paid %f but has payments",
				c.ID, c.Status, c.PaidAmount)
		}
	}
}

func TestPaidAmountDerivation(t *testing.T) {
	// Approved claim of 1000.00 with a 0.2 patient share pays exactly 800.00
	if got := paidAmount(1000.00, StatusApproved, 0.2); got != 800.00 {
		t.Errorf("paidAmount(1000, Approved, 0.2) = %f, want 800.00", got)
	}
	if got := paidAmount(1000.00, StatusDenied, 0.2); got != 0 {
		t.Errorf("paidAmount for denied claim = %f, want 0", got)
	}
	if got := paidAmount(1000.00, StatusPending, 0.2); got != 0 {
		t.Errorf("paidAmount for pending claim = %f, want 0", got)
	}
}

func TestApprovedClaimPaymentsScenario(t *testing.T) {
	// An approved 1000.00 claim with patient share 0.2 pays 800.00, and its
	// payment events must sum to exactly 800.00 regardless of the split.
	g := New(42, smallCounts)
	claim := Claim{
		ID:         1,
		MemberID:   1,
		Status:     StatusApproved,
		Amount:     1000.00,
		PaidAmount: paidAmount(1000.00, StatusApproved, 0.2),
		Date:       referenceDate,
	}

	payments, err := g.generatePayments([]Claim{claim})
	if err != nil {
		t.Fatalf("generatePayments failed: %v", err)
	}
	if len(payments) < 1 || len(payments) > 2 {
		t.Fatalf("got %d payments, want 1 or 2", len(payments))
	}

	var sumCents int64
	for _, p := range payments {
		if !p.Date.After(claim.Date) {
			t.Errorf("payment date %v not after claim date %v", p.Date, claim.Date)
		}
		sumCents += int64(math.Round(p.Amount * 100))
	}
	if sumCents != 80000 {
		t.Errorf("payments sum to %d cents, want 80000", sumCents)
	}
}

func TestEmpiricalRates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full-size generation in short mode")
	}

	ds := generate(t, 42, defaultCounts)

	if len(ds.Claims) != 50000 {
		t.Errorf("claim count = %d, want 50000", len(ds.Claims))
	}
	if n := len(ds.ClaimDiagnoses); n < 50000 || n > 150000 {
		t.Errorf("diagnosis count = %d, want within [50000, 150000]", n)
	}

	fraud := 0
	for _, c := range ds.Claims {
		if c.FraudFlagged {
			fraud++
		}
	}
	fraudRate := float64(fraud) / float64(len(ds.Claims))
	if math.Abs(fraudRate-0.03) > 0.005 {
		t.Errorf("fraud rate = %f, want 0.03 +/- 0.005", fraudRate)
	}

	chronic := 0
	for _, m := range ds.Members {
		if m.ChronicCondition {
			chronic++
		}
	}
	chronicRate := float64(chronic) / float64(len(ds.Members))
	if math.Abs(chronicRate-0.25) > 0.02 {
		t.Errorf("chronic rate = %f, want 0.25 +/- 0.02", chronicRate)
	}

	// Lognormal severity: inpatient claims should be far costlier than
	// pharmacy claims on average.
	var inpatientSum, pharmacySum float64
	var inpatientN, pharmacyN int
	for _, c := range ds.Claims {
		switch c.Type {
		case ClaimTypeInpatient:
			inpatientSum += c.Amount
			inpatientN++
		case "Pharmacy":
			pharmacySum += c.Amount
			pharmacyN++
		}
	}
	if inpatientN == 0 || pharmacyN == 0 {
		t.Fatal("expected both inpatient and pharmacy claims at 50k rows")
	}
	if inpatientSum/float64(inpatientN) <= pharmacySum/float64(pharmacyN) {
		t.Error("mean inpatient claim amount not above mean pharmacy claim amount")
	}
}
