package kitty

import "slices"

// Splits is the per item audit table: for each item label, the signed share
// of every member involved. Repeated labels are merged.
type Splits struct {
	currency string
	items    []string
	cells    map[string]map[Member]Money
}

func newSplits(currency string) *Splits {
	return &Splits{currency: currency, cells: make(map[string]map[Member]Money)}
}

// add folds an allocation into its item row.
func (s *Splits) add(a Allocation) {
	row, ok := s.cells[a.Item]
	if !ok {
		row = make(map[Member]Money)
		s.cells[a.Item] = row
		s.items = append(s.items, a.Item)
	}
	for _, d := range a.Deltas {
		if prev, ok := row[d.Member]; ok {
			row[d.Member] = prev.Add(d.Amount)
		} else {
			row[d.Member] = d.Amount
		}
	}
}

// Items returns the item labels in order of first appearance.
func (s *Splits) Items() []string { return slices.Clone(s.items) }

// Share returns the net signed share of m on item, zero if m is not involved.
func (s *Splits) Share(item string, m Member) Money {
	if v, ok := s.cells[item][m]; ok {
		return v
	}
	return M(0, s.currency)
}

// Involved reports whether m has a share on item.
func (s *Splits) Involved(item string, m Member) bool {
	_, ok := s.cells[item][m]
	return ok
}

// Total returns the net of m over all items. It equals m's balance.
func (s *Splits) Total(m Member) Money {
	total := M(0, s.currency)
	for _, item := range s.items {
		if v, ok := s.cells[item][m]; ok {
			total = total.Add(v)
		}
	}
	return total
}
