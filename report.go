package kitty

import (
	"errors"
	"fmt"
	"strings"
)

// Report holds every output table of a run. Tables are independent of
// each other and can be consumed separately.
type Report struct {
	Currency       string
	Members        []Member             // every known member, declared ones first.
	Splits         *Splits              // per item split matrix.
	Balances       []Balance[Member]    // member balances, in Members order.
	Subgroups      []Subgroup           // the member partition.
	GroupBalances  []Balance[GroupKey]  // subgroup balances, in Subgroups order.
	GroupTransfers []Transfer[GroupKey] // settlement between subgroups.
	Transfers      []Transfer[Member]   // settlement between members.
	Skipped        []*RowError          // expense rows that were ignored.
	Rejected       []string             // declared member names that cannot be members.
}

// Compute runs the whole netting pipeline over a ledger.
//
// Invalid expense rows are skipped and listed in Report.Skipped. Declared
// member names containing a comma are listed in Report.Rejected. The only
// error is a configuration error, in which case no report is produced.
func Compute(l *Ledger) (*Report, error) {
	currency := l.currency()
	if err := ValidateCurrency(currency); err != nil {
		return nil, err
	}

	r := &Report{Currency: currency, Splits: newSplits(currency)}
	members := newMemberSet()
	for _, raw := range l.Members {
		if strings.Contains(raw, ",") {
			r.Rejected = append(r.Rejected, strings.TrimSpace(raw))
			continue
		}
		if m, ok := Normalize(raw); ok {
			members.add(m)
		}
	}

	amounts := make(map[Member]Money)
	for _, rec := range l.Expenses {
		e, err := NewExpense(rec, currency)
		if err != nil {
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				r.Skipped = append(r.Skipped, rowErr)
				continue
			}
			return nil, err
		}
		// referenced members join the known members before the split.
		members.add(e.Payer)
		for _, p := range e.Participants {
			members.add(p.Member)
		}

		a := Allocate(e, members.members())
		r.Splits.add(a)
		for _, d := range a.Deltas {
			if prev, ok := amounts[d.Member]; ok {
				amounts[d.Member] = prev.Add(d.Amount)
			} else {
				amounts[d.Member] = d.Amount
			}
		}
	}

	r.Members = members.members()
	r.Balances = balanceTable(r.Members, amounts, currency)

	clustering := Cluster(r.Members, l.Groups)
	r.Subgroups = clustering.Subgroups()
	r.GroupBalances = Aggregate(r.Balances, clustering, currency)

	r.GroupTransfers = Minimize(r.GroupBalances)
	r.Transfers = Minimize(r.Balances)
	return r, nil
}

// Balance returns the balance of m, zero for an unknown member.
func (r *Report) Balance(m Member) Money {
	if v, ok := Lookup(r.Balances, m); ok {
		return v
	}
	return M(0, r.Currency)
}

// TransfersOf returns the member transfers paid or received by m.
func (r *Report) TransfersOf(m Member) []Transfer[Member] {
	var res []Transfer[Member]
	for _, t := range r.Transfers {
		if t.From == m || t.To == m {
			res = append(res, t)
		}
	}
	return res
}

// Check verifies the invariants of the report: member balances sum to zero,
// subgroup balances sum to zero, and both transfer lists settle their
// balances up to rounding.
func (r *Report) Check() error {
	zero := M(0, r.Currency)
	if total := Sum(r.Balances, r.Currency); !total.Equal(zero) {
		return fmt.Errorf("member balances do not sum to zero: %s", total.Decimal())
	}
	if total := Sum(r.GroupBalances, r.Currency); !total.Equal(zero) {
		return fmt.Errorf("subgroup balances do not sum to zero: %s", total.Decimal())
	}
	if err := checkSettled(r.Balances, r.Transfers); err != nil {
		return fmt.Errorf("member transfers: %w", err)
	}
	if err := checkSettled(r.GroupBalances, r.GroupTransfers); err != nil {
		return fmt.Errorf("subgroup transfers: %w", err)
	}
	return nil
}

// checkSettled verifies that transfers bring every balance within tolerance of zero.
//
// Balances are rounded before settlement, so the rounding residue of every
// party may end up on a single one: the tolerance is one minor unit per
// party, plus two.
func checkSettled[K comparable](balances []Balance[K], transfers []Transfer[K]) error {
	parties := W(len(balances) + 2)
	for _, b := range Apply(balances, transfers) {
		tolerance := b.Amount.Unit().Mul(parties)
		if b.Amount.Abs().GreaterThan(tolerance) {
			return fmt.Errorf("balance of %v is %s after settlement", b.Key, b.Amount.Decimal())
		}
	}
	return nil
}
