package itembank

import (
	"math"
	"testing"
)

func TestInformationRasch(t *testing.T) {
	// At theta == b the Rasch response function is 0.5, so
	// I = p*q = 0.25.
	info, ok := Information(Rasch{Difficulty: Float64(0.7)}, 0.7)
	if !ok {
		t.Fatal("expected scorable item")
	}
	if math.Abs(info-0.25) > 1e-12 {
		t.Errorf("info = %g, want 0.25", info)
	}
}

func TestInformationTwoParamPeak(t *testing.T) {
	// 2PL information peaks at theta == b.
	m := TwoParam{Discrimination: Float64(1.5), Difficulty: Float64(-0.5)}

	atPeak, _ := Information(m, -0.5)
	left, _ := Information(m, -1.5)
	right, _ := Information(m, 0.5)

	if atPeak <= left || atPeak <= right {
		t.Errorf("peak %g not greater than neighbors %g, %g", atPeak, left, right)
	}

	// Closed form at the peak: a^2 / 4.
	want := 1.5 * 1.5 / 4
	if math.Abs(atPeak-want) > 1e-12 {
		t.Errorf("peak info = %g, want %g", atPeak, want)
	}
}

func TestInformationThreeParamBelowTwoParam(t *testing.T) {
	// A nonzero guessing floor always reduces information.
	theta := 0.0
	two, _ := Information(TwoParam{Discrimination: Float64(1.2), Difficulty: Float64(0)}, theta)
	three, _ := Information(ThreeParam{Discrimination: Float64(1.2), Difficulty: Float64(0), Guessing: 0.25}, theta)

	if three >= two {
		t.Errorf("3PL info %g should be below 2PL info %g", three, two)
	}
	if three <= 0 {
		t.Errorf("3PL info %g should be positive", three)
	}
}

func TestInformationGraded(t *testing.T) {
	m := Graded{
		Discrimination: Float64(1.3),
		Thresholds:     []*float64{Float64(-1), Float64(0), Float64(1)},
	}

	info, ok := Information(m, 0)
	if !ok {
		t.Fatal("expected scorable item")
	}
	if info <= 0 {
		t.Errorf("info = %g, want positive", info)
	}

	// A GRM with well-spread thresholds carries information over a wider
	// ability range than at the extremes.
	far, _ := Information(m, 6)
	if far >= info {
		t.Errorf("info at theta=6 (%g) should be below info at theta=0 (%g)", far, info)
	}
}

func TestInformationUnscorable(t *testing.T) {
	tests := []struct {
		name  string
		model Model
	}{
		{"nil model", nil},
		{"rasch unknown b", Rasch{}},
		{"2pl unknown a", TwoParam{Difficulty: Float64(0)}},
		{"grm nil threshold", Graded{Discrimination: Float64(1), Thresholds: []*float64{Float64(-1), nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Information(tt.model, 0); ok {
				t.Error("expected unscorable")
			}
		})
	}
}

func TestCategoryProbabilitiesSumToOne(t *testing.T) {
	models := []Model{
		Rasch{Difficulty: Float64(0.3)},
		TwoParam{Discrimination: Float64(2), Difficulty: Float64(-1)},
		ThreeParam{Discrimination: Float64(1), Difficulty: Float64(1), Guessing: 0.2},
		Graded{Discrimination: Float64(1.1), Thresholds: []*float64{Float64(-2), Float64(0.5), Float64(2)}},
	}

	for _, m := range models {
		for _, theta := range []float64{-3, 0, 3} {
			probs, ok := CategoryProbabilities(m, theta)
			if !ok {
				t.Fatalf("%T at %g: expected scorable", m, theta)
			}
			if len(probs) != m.Categories() {
				t.Errorf("%T: %d probabilities, want %d", m, len(probs), m.Categories())
			}
			var sum float64
			for _, p := range probs {
				if p < 0 {
					t.Errorf("%T at %g: negative probability %g", m, theta, p)
				}
				sum += p
			}
			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("%T at %g: probabilities sum to %g", m, theta, sum)
			}
		}
	}
}
