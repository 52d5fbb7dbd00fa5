package insurance

import (
	"fmt"
	"time"

	"github.com/healthsim/healthgen/internal/datagen"
	"github.com/healthsim/healthgen/internal/logging"
)

var (
	policyWindowStart = time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	policyWindowEnd   = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

// generatePolicies binds each policy to one uniformly chosen member.
// Members may carry zero, one, or several policies; there is no cap.
func (g *Generator) generatePolicies(count int, members []Member) ([]Policy, error) {
	if count <= 0 {
		return nil, fmt.Errorf("policies: count must be positive, got %d", count)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("policies: members list is empty")
	}
	logging.Info().Int("count", count).Msg("Generating policies")

	policies := make([]Policy, 0, count)
	for i := 1; i <= count; i++ {
		start := g.faker.Date(policyWindowStart, policyWindowEnd)
		end := start.AddDate(1, 0, 0)
		if !end.After(start) {
			return nil, stageErr("policies", i, "end date %s not after start date %s",
				end.Format("2006-01-02"), start.Format("2006-01-02"))
		}

		policies = append(policies, Policy{
			ID:                i,
			MemberID:          datagen.Choose(g.faker, members).ID,
			PlanType:          datagen.Choose(g.faker, planTypes),
			InsuranceCategory: datagen.Choose(g.faker, insuranceCategories),
			StartDate:         start,
			EndDate:           end,
			Deductible:        datagen.Choose(g.faker, deductibles),
			CopayRate:         datagen.RoundCents(g.faker.Float64(0.05, 0.30)),
			OutOfPocketMax:    datagen.Choose(g.faker, outOfPocketMaxes),
			Premium:           datagen.RoundCents(g.faker.Float64(150, 900)),
			Status:            datagen.ChooseWeighted(g.faker, policyStatuses, policyStatusWeights),
		})
	}
	return policies, nil
}
