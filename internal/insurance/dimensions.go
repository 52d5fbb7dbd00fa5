package insurance

import (
	"fmt"
	"time"

	"github.com/healthsim/healthgen/internal/datagen"
	"github.com/healthsim/healthgen/internal/logging"
)

// Age bands for member dates of birth, weighted to produce an adult-skewed
// population. Bands are inclusive in whole years at the reference date.
var ageBands = []struct{ Min, Max int }{
	{18, 30},
	{31, 45},
	{46, 65},
	{66, 85},
}
var ageBandWeights = []int{20, 30, 30, 20}

func (g *Generator) generateFamilies(count int) ([]Family, error) {
	if count <= 0 {
		return nil, fmt.Errorf("families: count must be positive, got %d", count)
	}
	logging.Info().Int("count", count).Msg("Generating families")

	families := make([]Family, 0, count)
	for i := 1; i <= count; i++ {
		families = append(families, Family{
			ID:             i,
			Size:           g.faker.Int(1, 5),
			State:          g.faker.State(),
			Zip:            g.faker.Zip(),
			IncomeCategory: datagen.Choose(g.faker, incomeCategories),
		})
	}
	return families, nil
}

func (g *Generator) generateEmployers(count int) ([]Employer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("employers: count must be positive, got %d", count)
	}
	logging.Info().Int("count", count).Msg("Generating employers")

	employers := make([]Employer, 0, count)
	for i := 1; i <= count; i++ {
		employers = append(employers, Employer{
			ID:            i,
			Name:          g.faker.Company(),
			Industry:      datagen.Choose(g.faker, industries),
			EmployeeCount: g.faker.Int(50, 10000),
			State:         g.faker.State(),
		})
	}
	return employers, nil
}

func (g *Generator) generateProviders(count int) ([]Provider, error) {
	if count <= 0 {
		return nil, fmt.Errorf("providers: count must be positive, got %d", count)
	}
	logging.Info().Int("count", count).Msg("Generating providers")

	providers := make([]Provider, 0, count)
	for i := 1; i <= count; i++ {
		providers = append(providers, Provider{
			ID:        i,
			Name:      g.faker.Company() + " Medical",
			Type:      datagen.ChooseWeighted(g.faker, providerTypes, providerTypeWeights),
			InNetwork: g.faker.Bernoulli(networkProviderRate),
			State:     g.faker.State(),
		})
	}
	return providers, nil
}

func (g *Generator) generateMembers(count int, families []Family, employers []Employer) ([]Member, error) {
	if count <= 0 {
		return nil, fmt.Errorf("members: count must be positive, got %d", count)
	}
	if len(families) == 0 {
		return nil, fmt.Errorf("members: families list is empty")
	}
	if len(employers) == 0 {
		return nil, fmt.Errorf("members: employers list is empty")
	}
	logging.Info().Int("count", count).Msg("Generating members")

	members := make([]Member, 0, count)
	for i := 1; i <= count; i++ {
		band := datagen.ChooseWeighted(g.faker, ageBands, ageBandWeights)
		dob := g.faker.Date(
			referenceDate.AddDate(-band.Max-1, 0, 1),
			referenceDate.AddDate(-band.Min, 0, 0),
		)

		// Exactly one enrollment path per member: Individual members link
		// to nothing, Family members to one household, Group members to
		// one employer.
		category := datagen.ChooseWeighted(g.faker, insuranceCategories, insuranceCategoryWeights)
		m := Member{
			ID:                 i,
			FirstName:          g.faker.FirstName(),
			LastName:           g.faker.LastName(),
			Gender:             datagen.Choose(g.faker, genders),
			DateOfBirth:        dob,
			InsuranceCategory:  category,
			EmploymentCategory: datagen.Choose(g.faker, employmentCategories),
			SmokingStatus:      datagen.Choose(g.faker, smokingStatuses),
			Zip:                g.faker.Zip(),
			State:              g.faker.State(),
			ChronicCondition:   g.faker.Bernoulli(chronicConditionRate),
		}
		switch category {
		case CategoryFamily:
			m.FamilyID = datagen.Choose(g.faker, families).ID
		case CategoryGroup:
			m.EmployerID = datagen.Choose(g.faker, employers).ID
		}
		m.HealthRiskScore = g.healthRiskScore(ageAt(dob), m.ChronicCondition)

		members = append(members, m)
	}
	return members, nil
}

// healthRiskScore computes a bounded [0, 100] score whose mean grows with
// age and is boosted by a chronic condition:
//
//	score = min(100, 0.6*age + 15*chronic + Uniform(0, 25))
//
// A healthy 30-year-old averages ~30.5; a chronic 70-year-old ~69.5.
func (g *Generator) healthRiskScore(age int, chronic bool) float64 {
	score := 0.6 * float64(age)
	if chronic {
		score += 15
	}
	score += g.faker.Float64(0, 25)
	if score > 100 {
		score = 100
	}
	return datagen.RoundCents(score)
}

// ageAt returns whole years between dob and the fixed reference date.
func ageAt(dob time.Time) int {
	years := referenceDate.Year() - dob.Year()
	if referenceDate.YearDay() < dob.YearDay() {
		years--
	}
	return years
}
