package selection

import (
	"sort"

	"github.com/selvastics/inrep-sub013/internal/itembank"
)

// Eligible returns the item IDs that may be administered at the given
// zero-based position, in canonical sort order. An empty result means the
// bank is exhausted for this session, a terminal condition for the
// stopping rules rather than an error here.
func Eligible(bank *itembank.Bank, administered []string, position int, cfg Config) []string {
	used := make(map[string]bool, len(administered))
	for _, id := range administered {
		used[id] = true
	}

	// Fixed positions are deterministic: the pinned item is the entire
	// pool, unless it was already used or is missing from the bank.
	if position < len(cfg.FixedItems) {
		id := cfg.FixedItems[position]
		if _, ok := bank.Get(id); ok && !used[id] {
			return []string{id}
		}
		return nil
	}

	var pool []string
	for _, id := range bank.IDs() {
		if !used[id] {
			pool = append(pool, id)
		}
	}
	if len(pool) == 0 {
		return nil
	}

	if len(cfg.DomainQuotas) == 0 {
		return pool
	}

	// Content balancing: drop items whose domain has no remaining quota.
	// If that empties the pool, fall back to the unconstrained pool
	// rather than failing the session.
	spent := make(map[string]int)
	for _, id := range administered {
		if it, ok := bank.Get(id); ok && it.Domain != "" {
			spent[it.Domain]++
		}
	}

	var balanced []string
	for _, id := range pool {
		it, _ := bank.Get(id)
		quota, constrained := cfg.DomainQuotas[it.Domain]
		if constrained && spent[it.Domain] >= quota {
			continue
		}
		balanced = append(balanced, id)
	}
	if len(balanced) == 0 {
		return pool
	}

	sort.Strings(balanced)
	return balanced
}

// Servable reports whether Next could serve an item at the given
// position. Pinned positions and the Random criterion serve any
// eligible item; the scoring criteria additionally need at least one
// scorable item in the pool, since uncalibrated items are skipped. A
// false result is the exhaustion signal the stopping rules consume.
func Servable(bank *itembank.Bank, administered []string, position int, cfg Config) bool {
	pool := Eligible(bank, administered, position, cfg)
	if len(pool) == 0 {
		return false
	}
	if position < len(cfg.FixedItems) || cfg.Criterion == Random {
		return true
	}
	for _, id := range pool {
		if it, ok := bank.Get(id); ok && it.Model.Scorable() {
			return true
		}
	}
	return false
}
