package insurance

import (
	"fmt"

	"github.com/healthsim/healthgen/internal/datagen"
	"github.com/healthsim/healthgen/internal/logging"
)

// claimDateBufferDays extends the eligible claim window past the policy's
// end date, so late-submitted claims against a just-expired policy exist.
const claimDateBufferDays = 30

// generateClaims produces the fact_claims rows. Per claim:
//
//  1. Pick a policy uniformly; the claim's member is the policy's member,
//     and the claim date falls within the policy period plus a buffer.
//  2. Pick a provider; the provider type conditions the claim-type weights.
//  3. Sample the claim amount from a lognormal whose parameters depend on
//     the claim type, rounded to cents.
//  4. Sample the status; Approved claims pay the claim amount less a
//     sampled patient-responsibility fraction, Denied and Pending pay zero.
//  5. Draw the fraud flag as an independent Bernoulli trial.
//  6. Inpatient claims get a 1-14 day length of stay, all others zero.
//
// The monetary invariant 0 <= paid <= amount is asserted for every row;
// a violation is a fatal generation error, never clamped away.
func (g *Generator) generateClaims(count int, policies []Policy, providers []Provider) ([]Claim, error) {
	if count <= 0 {
		return nil, fmt.Errorf("claims: count must be positive, got %d", count)
	}
	if len(policies) == 0 {
		return nil, fmt.Errorf("claims: policies list is empty")
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("claims: providers list is empty")
	}
	logging.Info().Int("count", count).Msg("Generating claims")

	claims := make([]Claim, 0, count)
	for i := 1; i <= count; i++ {
		policy := datagen.Choose(g.faker, policies)
		provider := datagen.Choose(g.faker, providers)

		claimType := datagen.ChooseWeighted(g.faker, claimTypes, claimTypeWeightsByProvider[provider.Type])

		params, ok := severityParams[claimType]
		if !ok {
			return nil, stageErr("claims", i, "no severity parameters for claim type %q", claimType)
		}
		amount := datagen.RoundCents(g.faker.LogNormal(params.Mu, params.Sigma))

		status := datagen.ChooseWeighted(g.faker, claimStatuses, claimStatusWeights)
		paid := paidAmount(amount, status, g.faker.Float64(0.05, 0.50))
		if paid < 0 || paid > amount {
			return nil, stageErr("claims", i, "paid amount %.2f outside [0, %.2f]", paid, amount)
		}

		lengthOfStay := 0
		if claimType == ClaimTypeInpatient {
			lengthOfStay = g.faker.Int(1, 14)
		}

		claims = append(claims, Claim{
			ID:                i,
			PolicyID:          policy.ID,
			MemberID:          policy.MemberID,
			ProviderID:        provider.ID,
			Date:              g.faker.Date(policy.StartDate, policy.EndDate.AddDate(0, 0, claimDateBufferDays)),
			Type:              claimType,
			Status:            status,
			Amount:            amount,
			PaidAmount:        paid,
			CopayAmount:       datagen.RoundCents(amount * g.faker.Float64(0.05, 0.20)),
			LengthOfStay:      lengthOfStay,
			SubmissionChannel: datagen.Choose(g.faker, submissionChannels),
			NetworkProvider:   provider.InNetwork,
			FraudFlagged:      g.faker.Bernoulli(fraudRate),
		})
	}
	return claims, nil
}

// paidAmount derives the paid amount from the claim status: Approved claims
// pay the claim amount less the patient-responsibility fraction; Denied
// claims pay nothing; Pending claims are not yet settled.
func paidAmount(amount float64, status string, patientShare float64) float64 {
	if status != StatusApproved {
		return 0
	}
	return datagen.RoundCents(amount * (1 - patientShare))
}
