// Package simulate drives a full assessment session with a synthetic
// respondent of known ability, for bank evaluation and CLI demos.
package simulate

import (
	"fmt"
	"math/rand"

	"github.com/selvastics/inrep-sub013/internal/assessment"
	"github.com/selvastics/inrep-sub013/internal/itembank"
	"github.com/selvastics/inrep-sub013/internal/stopping"
)

// Respondent draws model-consistent responses for a fixed true ability.
type Respondent struct {
	theta float64
	rng   *rand.Rand
}

// NewRespondent creates a respondent with the given true ability and a
// seeded generator for reproducible runs.
func NewRespondent(theta float64, seed int64) *Respondent {
	return &Respondent{theta: theta, rng: rand.New(rand.NewSource(seed))}
}

// Respond draws a response category from the item's model at the true
// ability. Items with unknown parameters get a uniform draw: the
// respondent still answers, the model just cannot predict how.
func (r *Respondent) Respond(it *itembank.Item) int {
	probs, ok := itembank.CategoryProbabilities(it.Model, r.theta)
	if !ok {
		return r.rng.Intn(it.Model.Categories())
	}
	u := r.rng.Float64()
	var cum float64
	for k, p := range probs {
		cum += p
		if u < cum {
			return k
		}
	}
	return len(probs) - 1
}

// Step records one administered item within a simulated run.
type Step struct {
	Position int
	ItemID   string
	Value    int
	Theta    float64
	SE       float64
	Decision stopping.Decision
}

// Result is the transcript of one simulated session.
type Result struct {
	SessionID  string
	TrueTheta  float64
	Steps      []Step
	FinalTheta float64
	FinalSE    float64
	StopReason stopping.Reason
}

// Run executes a complete session loop against the bank: select,
// respond, submit, until the stopping rules end the session.
func Run(bank *itembank.Bank, cfg assessment.Config, est assessment.Estimator, trueTheta float64, seed int64) (*Result, error) {
	sess, err := assessment.NewSession(bank, cfg, est)
	if err != nil {
		return nil, err
	}
	resp := NewRespondent(trueTheta, seed)

	result := &Result{SessionID: sess.ID(), TrueTheta: trueTheta}
	for sess.Stage() != assessment.StageStopped {
		it, err := sess.CurrentItem()
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", len(result.Steps)+1, err)
		}

		value := resp.Respond(it)
		decision, err := sess.SubmitResponse(it.ID, value)
		if err != nil {
			return nil, fmt.Errorf("submit %q: %w", it.ID, err)
		}

		theta, se, _ := sess.Ability()
		result.Steps = append(result.Steps, Step{
			Position: len(result.Steps) + 1,
			ItemID:   it.ID,
			Value:    value,
			Theta:    theta,
			SE:       se,
			Decision: decision,
		})
	}

	result.FinalTheta, result.FinalSE, _ = sess.Ability()
	result.StopReason = sess.LastDecision().Reason
	return result, nil
}
