// Package estimator provides the reference ability estimator consumed by
// assessment sessions. The engine itself only depends on the
// assessment.Estimator interface; any external estimator with the same
// contract can replace this one.
package estimator

import (
	"errors"
	"math"

	"github.com/selvastics/inrep-sub013/internal/assessment"
	"github.com/selvastics/inrep-sub013/internal/itembank"
)

// ErrEstimationFailed indicates the response pattern was too degenerate
// to produce a finite estimate. Sessions absorb this by treating the
// standard error as unavailable and continuing, bounded by the item
// ceiling.
var ErrEstimationFailed = errors.New("ability estimation failed")

// EAP computes expected-a-posteriori ability estimates by numerical
// quadrature over a fixed grid with a normal prior. Deterministic for
// identical inputs.
type EAP struct {
	// GridMin and GridMax bound the quadrature grid in ability units.
	GridMin, GridMax float64

	// Points is the number of grid nodes.
	Points int
}

// NewEAP returns an estimator over the standard [-4, 4] grid.
func NewEAP() *EAP {
	return &EAP{GridMin: -4, GridMax: 4, Points: 81}
}

// Estimate implements assessment.Estimator. Items that cannot be scored
// (unknown parameters) and missing responses contribute nothing to the
// likelihood; with no scorable responses the posterior equals the prior.
func (e *EAP) Estimate(bank *itembank.Bank, responses []assessment.Response, priorMean, priorSD float64) (float64, float64, error) {
	if priorSD <= 0 {
		return 0, 0, ErrEstimationFailed
	}

	points := e.Points
	if points < 2 {
		points = 81
	}
	step := (e.GridMax - e.GridMin) / float64(points-1)

	weights := make([]float64, points)
	grid := make([]float64, points)
	var total float64

	for i := 0; i < points; i++ {
		theta := e.GridMin + float64(i)*step
		grid[i] = theta

		z := (theta - priorMean) / priorSD
		logw := -0.5 * z * z

		for _, r := range responses {
			if r.Value == assessment.ResponseMissing {
				continue
			}
			it, ok := bank.Get(r.ItemID)
			if !ok {
				continue
			}
			probs, scorable := itembank.CategoryProbabilities(it.Model, theta)
			if !scorable || r.Value < 0 || r.Value >= len(probs) {
				continue
			}
			p := probs[r.Value]
			if p <= 0 {
				logw = math.Inf(-1)
				break
			}
			logw += math.Log(p)
		}

		w := math.Exp(logw)
		weights[i] = w
		total += w
	}

	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, 0, ErrEstimationFailed
	}

	var mean float64
	for i := range grid {
		mean += grid[i] * weights[i] / total
	}
	var variance float64
	for i := range grid {
		d := grid[i] - mean
		variance += d * d * weights[i] / total
	}

	se := math.Sqrt(variance)
	if math.IsNaN(mean) || math.IsNaN(se) {
		return 0, 0, ErrEstimationFailed
	}
	return mean, se, nil
}
