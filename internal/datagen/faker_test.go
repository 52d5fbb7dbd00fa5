package datagen

import (
	"math"
	"testing"
	"time"
)

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
	}
}

func TestFakerInt(t *testing.T) {
	f := NewFaker()
	for i := 0; i < 100; i++ {
		v := f.Int(5, 10)
		if v < 5 || v > 10 {
			t.Errorf("Int %d not in range [5, 10]", v)
		}
	}
}

func TestFakerFloat64(t *testing.T) {
	f := NewFaker()
	for i := 0; i < 100; i++ {
		v := f.Float64(1.5, 9.5)
		if v < 1.5 || v > 9.5 {
			t.Errorf("Float64 %f not in range [1.5, 9.5]", v)
		}
	}
}

func TestFakerDate(t *testing.T) {
	f := NewFaker()
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		d := f.Date(start, end)
		if d.Before(start) || d.After(end) {
			t.Errorf("Date %v not in range [%v, %v]", d, start, end)
		}
		if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 {
			t.Errorf("Date %v not truncated to midnight", d)
		}
	}
}

func TestFakerBernoulli(t *testing.T) {
	f := NewFakerWithSeed(42)
	const n = 20000
	hits := 0
	for i := 0; i < n; i++ {
		if f.Bernoulli(0.25) {
			hits++
		}
	}
	rate := float64(hits) / n
	if math.Abs(rate-0.25) > 0.02 {
		t.Errorf("Bernoulli(0.25) empirical rate %f too far from 0.25", rate)
	}
}

func TestFakerNormal(t *testing.T) {
	f := NewFakerWithSeed(7)
	const n = 20000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		z := f.Normal()
		sum += z
		sumSq += z * z
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	if math.Abs(mean) > 0.05 {
		t.Errorf("Normal mean %f too far from 0", mean)
	}
	if math.Abs(variance-1) > 0.1 {
		t.Errorf("Normal variance %f too far from 1", variance)
	}
}

func TestFakerLogNormal(t *testing.T) {
	f := NewFakerWithSeed(9)
	const mu, sigma = 7.0, 1.2
	const n = 20000
	var sumLog float64
	for i := 0; i < n; i++ {
		v := f.LogNormal(mu, sigma)
		if v <= 0 {
			t.Fatalf("LogNormal returned non-positive value %f", v)
		}
		sumLog += math.Log(v)
	}
	meanLog := sumLog / n
	if math.Abs(meanLog-mu) > 0.05 {
		t.Errorf("log-mean %f too far from mu %f", meanLog, mu)
	}
}

func TestChoose(t *testing.T) {
	f := NewFaker()
	items := []string{"a", "b", "c"}
	for i := 0; i < 50; i++ {
		v := Choose(f, items)
		if v != "a" && v != "b" && v != "c" {
			t.Errorf("Choose returned unexpected value: %s", v)
		}
	}
}

func TestChooseEmpty(t *testing.T) {
	f := NewFaker()
	v := Choose(f, []string{})
	if v != "" {
		t.Errorf("Choose on empty slice should return zero value, got %s", v)
	}
}

func TestChooseWeighted(t *testing.T) {
	f := NewFakerWithSeed(11)
	items := []string{"common", "rare"}
	weights := []int{95, 5}

	counts := make(map[string]int)
	for i := 0; i < 10000; i++ {
		counts[ChooseWeighted(f, items, weights)]++
	}

	if counts["common"] < 9000 {
		t.Errorf("common chosen only %d/10000 times with weight 95", counts["common"])
	}
	if counts["rare"] == 0 {
		t.Error("rare never chosen with weight 5")
	}
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.006, 1.01},
		{1.004, 1.0},
		{0, 0},
		{799.999, 800.0},
	}
	for _, tt := range tests {
		if got := RoundCents(tt.in); got != tt.want {
			t.Errorf("RoundCents(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
