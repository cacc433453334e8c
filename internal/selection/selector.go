package selection

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/selvastics/inrep-sub013/internal/itembank"
)

// ErrNoEligibleItems is returned when selection is requested but the
// eligible pool is empty. Reaching this before the minimum item floor
// indicates a bank/configuration mismatch; at or beyond the floor the
// stopping rules report bank exhaustion before selection is attempted.
var ErrNoEligibleItems = errors.New("no eligible items to select from")

// Selector picks the next item from a bank. The random generator is
// seeded per session so that replays are reproducible; it is never
// shared across sessions.
type Selector struct {
	cfg Config
	rng *rand.Rand

	// draws counts consumed random picks, so a restored session can
	// fast-forward its generator to the identical state.
	draws int
}

// New creates a Selector with a session-seeded generator.
func New(cfg Config, seed int64) *Selector {
	if cfg.Criterion == "" {
		cfg.Criterion = MaximumInformation
	}
	return &Selector{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Draws returns how many random selections this Selector has made.
func (s *Selector) Draws() int { return s.draws }

// FastForward discards n random picks, restoring generator state after
// a session snapshot restore.
func (s *Selector) FastForward(n int) {
	for i := 0; i < n; i++ {
		s.rng.Int63()
		s.draws++
	}
}

// Next returns the ID of the item to administer at the given position.
// Ties on score are broken by lower exposure count, then by lowest ID in
// canonical order, never by iteration-order accident.
func (s *Selector) Next(bank *itembank.Bank, administered []string, position int, theta float64) (string, error) {
	pool := Eligible(bank, administered, position, s.cfg)
	if len(pool) == 0 {
		return "", ErrNoEligibleItems
	}

	// Pinned positions are deterministic, never scored.
	if position < len(s.cfg.FixedItems) {
		return pool[0], nil
	}

	if s.cfg.Criterion == Random {
		sort.Strings(pool)
		// Exactly one generator draw per pick, so FastForward can
		// reproduce the state without knowing historical pool sizes.
		pick := pool[int(s.rng.Int63()%int64(len(pool)))]
		s.draws++
		return pick, nil
	}

	type scored struct {
		id    string
		score float64
	}
	candidates := make([]scored, 0, len(pool))
	for _, id := range pool {
		it, _ := bank.Get(id)
		info, ok := itembank.Information(it.Model, theta)
		if !ok {
			// Unknown or pathological parameters: ineligible for
			// scoring, distinct from "known but uninformative".
			continue
		}
		score := info
		if s.cfg.Criterion == Weighted {
			score = info / float64(1+s.cfg.exposure(id))
		}
		candidates = append(candidates, scored{id: id, score: score})
	}
	if len(candidates) == 0 {
		return "", ErrNoEligibleItems
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		expI := s.cfg.exposure(candidates[i].id)
		expJ := s.cfg.exposure(candidates[j].id)
		if expI != expJ {
			return expI < expJ
		}
		return candidates[i].id < candidates[j].id
	})

	return candidates[0].id, nil
}
