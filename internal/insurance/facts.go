package insurance

import (
	"math"

	"github.com/healthsim/healthgen/internal/datagen"
	"github.com/healthsim/healthgen/internal/logging"
)

var diagnosisCountWeights = []int{60, 30, 10} // 1, 2 or 3 diagnoses per claim

// generateClaimDiagnoses attaches 1-3 diagnosis/procedure pairs to every
// claim. Codes within one claim are drawn without replacement, and the
// primary (rank 1) diagnosis is biased toward codes plausible for the
// claim's type.
func (g *Generator) generateClaimDiagnoses(claims []Claim) ([]ClaimDiagnosis, error) {
	logging.Info().Int("claims", len(claims)).Msg("Generating claim diagnoses")

	diagnoses := make([]ClaimDiagnosis, 0, len(claims)*2)
	id := 1
	for _, claim := range claims {
		n := datagen.ChooseWeighted(g.faker, []int{1, 2, 3}, diagnosisCountWeights)

		pool := make([]string, len(diagnosisCodes))
		copy(pool, diagnosisCodes)

		for rank := 1; rank <= n; rank++ {
			var code string
			if rank == 1 {
				code = datagen.Choose(g.faker, primaryDiagnosesByType[claim.Type])
			} else {
				code = datagen.Choose(g.faker, pool)
			}
			pool = remove(pool, code)

			diagnoses = append(diagnoses, ClaimDiagnosis{
				ID:            id,
				ClaimID:       claim.ID,
				Rank:          rank,
				DiagnosisCode: code,
				ProcedureCode: datagen.Choose(g.faker, procedureCodes),
			})
			id++
		}
	}
	return diagnoses, nil
}

// remove returns items without the first occurrence of s.
func remove(items []string, s string) []string {
	for i, v := range items {
		if v == s {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

var paymentCountWeights = []int{70, 30} // 1 or 2 payments per paid claim

// generatePayments emits payment events for every approved claim with a
// positive paid amount. Each claim gets 1 or 2 payments whose amounts are
// split in integer cents so they sum exactly to the claim's paid amount.
// Payment dates are strictly after the claim date.
func (g *Generator) generatePayments(claims []Claim) ([]Payment, error) {
	logging.Info().Int("claims", len(claims)).Msg("Generating payments")

	payments := make([]Payment, 0, len(claims))
	id := 1
	for _, claim := range claims {
		if claim.Status != StatusApproved || claim.PaidAmount <= 0 {
			continue
		}

		paidCents := int64(math.Round(claim.PaidAmount * 100))
		n := datagen.ChooseWeighted(g.faker, []int{1, 2}, paymentCountWeights)
		if paidCents < 2 {
			n = 1
		}

		firstDate := claim.Date.AddDate(0, 0, g.faker.Int(3, 30))
		if n == 1 {
			payments = append(payments, Payment{
				ID:       id,
				ClaimID:  claim.ID,
				MemberID: claim.MemberID,
				Date:     firstDate,
				Amount:   claim.PaidAmount,
				Method:   datagen.Choose(g.faker, paymentMethods),
			})
			id++
			continue
		}

		firstCents := int64(math.Round(g.faker.Float64(0.30, 0.70) * float64(paidCents)))
		if firstCents < 1 {
			firstCents = 1
		}
		if firstCents >= paidCents {
			firstCents = paidCents - 1
		}

		payments = append(payments,
			Payment{
				ID:       id,
				ClaimID:  claim.ID,
				MemberID: claim.MemberID,
				Date:     firstDate,
				Amount:   float64(firstCents) / 100,
				Method:   datagen.Choose(g.faker, paymentMethods),
			},
			Payment{
				ID:       id + 1,
				ClaimID:  claim.ID,
				MemberID: claim.MemberID,
				Date:     firstDate.AddDate(0, 0, g.faker.Int(5, 15)),
				Amount:   float64(paidCents-firstCents) / 100,
				Method:   datagen.Choose(g.faker, paymentMethods),
			},
		)
		id += 2
	}
	return payments, nil
}
