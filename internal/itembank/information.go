package itembank

import "math"

// Information computes the Fisher information of the item's response
// model at the given ability value. The second return is false when the
// model cannot be scored: unknown parameters, or a pathological parameter
// combination producing a non-finite or negative result. Callers must
// treat such items as ineligible, not as zero-information.
func Information(m Model, theta float64) (float64, bool) {
	if m == nil || !m.Scorable() {
		return 0, false
	}

	var info float64
	switch v := m.(type) {
	case Rasch:
		info = dichotomousInfo(1, *v.Difficulty, 0, theta)
	case TwoParam:
		info = dichotomousInfo(*v.Discrimination, *v.Difficulty, 0, theta)
	case ThreeParam:
		info = dichotomousInfo(*v.Discrimination, *v.Difficulty, v.Guessing, theta)
	case Graded:
		info = gradedInfo(v, theta)
	default:
		return 0, false
	}

	if math.IsNaN(info) || math.IsInf(info, 0) || info < 0 {
		return 0, false
	}
	return info, true
}

// CategoryProbabilities returns the probability of each response category
// at the given ability value: {P(incorrect), P(correct)} for dichotomous
// models, the category probabilities for graded models. Returns false
// when the model cannot be scored.
func CategoryProbabilities(m Model, theta float64) ([]float64, bool) {
	if m == nil || !m.Scorable() {
		return nil, false
	}

	switch v := m.(type) {
	case Rasch:
		p := dichotomousProb(1, *v.Difficulty, 0, theta)
		return []float64{1 - p, p}, true
	case TwoParam:
		p := dichotomousProb(*v.Discrimination, *v.Difficulty, 0, theta)
		return []float64{1 - p, p}, true
	case ThreeParam:
		p := dichotomousProb(*v.Discrimination, *v.Difficulty, v.Guessing, theta)
		return []float64{1 - p, p}, true
	case Graded:
		return gradedProbs(v, theta), true
	}
	return nil, false
}

func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// dichotomousProb is the 3PL response function; c=0 reduces it to 2PL,
// and a=1, c=0 to the Rasch model.
func dichotomousProb(a, b, c, theta float64) float64 {
	return c + (1-c)*logistic(a*(theta-b))
}

// dichotomousInfo is the closed-form 3PL item information:
// I = a^2 * (q/p) * ((p-c)/(1-c))^2.
func dichotomousInfo(a, b, c, theta float64) float64 {
	p := dichotomousProb(a, b, c, theta)
	q := 1 - p
	if p <= 0 || p >= 1 {
		return 0
	}
	ratio := (p - c) / (1 - c)
	return a * a * (q / p) * ratio * ratio
}

// boundaryCurves returns the cumulative boundary probabilities
// P*_0=1, P*_k = logistic(a(theta-b_k)), P*_{K+1}=0.
func boundaryCurves(m Graded, theta float64) []float64 {
	a := *m.Discrimination
	curves := make([]float64, len(m.Thresholds)+2)
	curves[0] = 1
	for k, b := range m.Thresholds {
		curves[k+1] = logistic(a * (theta - *b))
	}
	curves[len(curves)-1] = 0
	return curves
}

func gradedProbs(m Graded, theta float64) []float64 {
	curves := boundaryCurves(m, theta)
	probs := make([]float64, len(curves)-1)
	for k := range probs {
		probs[k] = curves[k] - curves[k+1]
	}
	return probs
}

// gradedInfo is Samejima's category-wise item information: with
// w_k = P*_k(1-P*_k), I = a^2 * sum_k (w_k - w_{k+1})^2 / P_k.
func gradedInfo(m Graded, theta float64) float64 {
	a := *m.Discrimination
	curves := boundaryCurves(m, theta)

	var info float64
	for k := 0; k < len(curves)-1; k++ {
		pk := curves[k] - curves[k+1]
		if pk <= 0 {
			continue
		}
		wk := curves[k] * (1 - curves[k])
		wk1 := curves[k+1] * (1 - curves[k+1])
		d := wk - wk1
		info += d * d / pk
	}
	return a * a * info
}
