// Package datagen provides the shared random context used by all row
// generators. A single Faker instance is threaded through every generation
// stage so that a fixed seed reproduces the full dataset bit-for-bit.
package datagen

import (
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker provides seeded fake data and distribution sampling using gofakeit.
// All draws advance the same underlying source; generators must never
// re-seed mid-run or table-to-table correlations stop being reproducible.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a new Faker with a time-based seed.
func NewFaker() *Faker {
	return &Faker{
		faker: gofakeit.New(uint64(time.Now().UnixNano())),
	}
}

// NewFakerWithSeed creates a new Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

// FirstName generates a random first name.
func (f *Faker) FirstName() string {
	return f.faker.FirstName()
}

// LastName generates a random last name.
func (f *Faker) LastName() string {
	return f.faker.LastName()
}

// Company generates a random company name.
func (f *Faker) Company() string {
	return f.faker.Company()
}

// State generates a random US state abbreviation.
func (f *Faker) State() string {
	return f.faker.StateAbr()
}

// Zip generates a random US ZIP code.
func (f *Faker) Zip() string {
	return f.faker.Zip()
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Float64 generates a random float64 between min and max.
func (f *Faker) Float64(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Bool generates a random boolean.
func (f *Faker) Bool() bool {
	return f.faker.Bool()
}

// Date generates a random date within [start, end], truncated to midnight UTC.
func (f *Faker) Date(start, end time.Time) time.Time {
	d := f.faker.DateRange(start, end)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// Bernoulli returns true with probability p.
func (f *Faker) Bernoulli(p float64) bool {
	return f.Float64(0, 1) < p
}

// Normal samples a standard normal variate via the Box-Muller transform.
// Two uniform draws are consumed per call.
func (f *Faker) Normal() float64 {
	u1 := f.Float64(math.SmallestNonzeroFloat64, 1)
	u2 := f.Float64(0, 1)
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// LogNormal samples exp(mu + sigma*Z) with Z standard normal. Used for
// claim severity: many small values with a long right tail.
func (f *Faker) LogNormal(mu, sigma float64) float64 {
	return math.Exp(mu + sigma*f.Normal())
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}

// ChooseWeighted returns a random element based on weights.
func ChooseWeighted[T any](f *Faker, items []T, weights []int) T {
	if len(items) == 0 || len(weights) == 0 {
		var zero T
		return zero
	}

	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}

	r := f.Int(1, totalWeight)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return items[i]
		}
	}

	return items[len(items)-1]
}

// RoundCents rounds a monetary amount to 2 decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
