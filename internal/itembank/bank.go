package itembank

import (
	"fmt"
	"sort"
)

// Bank is a read-only indexed collection of items. It is immutable after
// construction and safe for concurrent reads; re-calibration produces a
// new Bank, never a mutation.
type Bank struct {
	items []Item
	byID  map[string]*Item
}

// New builds a Bank from items, validating every entry. Returns a
// *SchemaError describing all problems if any item is invalid.
func New(items []Item) (*Bank, error) {
	var problems []string

	byID := make(map[string]*Item, len(items))
	stored := make([]Item, len(items))
	copy(stored, items)

	for i := range stored {
		it := &stored[i]
		if it.ID == "" {
			problems = append(problems, fmt.Sprintf("item %d: empty ID", i))
			continue
		}
		if _, dup := byID[it.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate item ID: %q", it.ID))
			continue
		}
		if it.Model == nil {
			problems = append(problems, fmt.Sprintf("item %q: missing response model", it.ID))
			continue
		}
		if err := it.Model.validate(); err != nil {
			problems = append(problems, fmt.Sprintf("item %q: %v", it.ID, err))
			continue
		}
		byID[it.ID] = it
	}

	if len(problems) > 0 {
		return nil, &SchemaError{Problems: problems}
	}

	return &Bank{items: stored, byID: byID}, nil
}

// Get returns the item with the given ID.
func (b *Bank) Get(id string) (*Item, bool) {
	it, ok := b.byID[id]
	return it, ok
}

// All returns the items in bank order. The slice is a copy.
func (b *Bank) All() []Item {
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

// Size returns the number of items in the bank.
func (b *Bank) Size() int { return len(b.items) }

// IDs returns all item IDs in canonical (sorted) order.
func (b *Bank) IDs() []string {
	ids := make([]string, 0, len(b.items))
	for _, it := range b.items {
		ids = append(ids, it.ID)
	}
	sort.Strings(ids)
	return ids
}

// Domains returns the distinct content domains present in the bank,
// sorted. Items without a domain tag are not represented.
func (b *Bank) Domains() []string {
	seen := make(map[string]bool)
	for _, it := range b.items {
		if it.Domain != "" {
			seen[it.Domain] = true
		}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
