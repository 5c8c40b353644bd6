package kitty

import (
	"strings"
)

// Wildcard is the split specifier meaning "every known member, equal weight".
const Wildcard = "*"

// ExpenseRecord is a raw expense row as read from a source, before any
// validation.
type ExpenseRecord struct {
	Row          int    // 1-based row in the source, for error reports.
	Item         string // what was paid for.
	PaidBy       string // raw name of the payer.
	Amount       string // decimal amount.
	SplitBetween string // "*" or a comma-separated list of name or name:weight.
}

// Participant is a member sharing an expense with a given weight.
type Participant struct {
	Member Member
	Weight Weight
}

// Expense is a validated expense.
type Expense struct {
	Item         string
	Payer        Member
	Amount       Money
	Participants []Participant // empty when Wildcard is set.
	Wildcard     bool
}

// NewExpense validates a raw record. It returns a *RowError when the record
// must be skipped.
func NewExpense(rec ExpenseRecord, currency string) (Expense, error) {
	item := strings.TrimSpace(rec.Item)
	fail := func(err error) (Expense, error) {
		return Expense{}, &RowError{Row: rec.Row, Item: item, Err: err}
	}
	if item == "" {
		return fail(ErrMissingItem)
	}
	if strings.Contains(rec.PaidBy, ",") {
		return fail(ErrInvalidName)
	}
	payer, ok := Normalize(rec.PaidBy)
	if !ok {
		return fail(ErrMissingPayer)
	}
	amount, err := ParseMoney(strings.TrimSpace(rec.Amount), currency)
	if err != nil || !amount.IsPositive() {
		return fail(ErrInvalidAmount)
	}
	participants, wildcard := ParseSplit(rec.SplitBetween)
	if !wildcard && len(participants) == 0 {
		return fail(ErrNoParticipants)
	}
	return Expense{
		Item:         item,
		Payer:        payer,
		Amount:       amount,
		Participants: participants,
		Wildcard:     wildcard,
	}, nil
}

// ParseSplit parses a split specifier.
//
// It returns wildcard true for exactly "*". Otherwise each comma-separated
// entry is a name optionally suffixed with ":weight". A missing, non numeric
// or non positive weight counts as 1. A repeated name keeps its first weight.
func ParseSplit(spec string) (participants []Participant, wildcard bool) {
	spec = strings.TrimSpace(spec)
	if spec == Wildcard {
		return nil, true
	}
	seen := make(map[Member]struct{})
	for _, entry := range strings.Split(spec, ",") {
		name, weight := entry, one
		if i := strings.LastIndex(entry, ":"); i >= 0 {
			name = entry[:i]
			if w, ok := parseWeight(strings.TrimSpace(entry[i+1:])); ok {
				weight = w
			}
		}
		m, ok := Normalize(name)
		if !ok {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		participants = append(participants, Participant{Member: m, Weight: weight})
	}
	return participants, false
}

// Delta is a signed change to a member's balance.
type Delta struct {
	Member Member
	Amount Money
}

// Allocation is the effect of one expense: the payer is credited the full
// amount and each participant is debited its share. The same deltas apply
// to the balances and to the expense's item split.
type Allocation struct {
	Item   string
	Deltas []Delta
}

// Total returns the sum of all deltas. It is always zero.
func (a Allocation) Total(currency string) Money {
	total := M(0, currency)
	for _, d := range a.Deltas {
		total = total.Add(d.Amount)
	}
	return total
}

// Allocate splits e between its participants, or between known when e is a
// wildcard expense.
//
// Shares are proportional to weights and kept at full precision. The last
// participant bears the division remainder so that the shares sum exactly to
// the amount.
func Allocate(e Expense, known []Member) Allocation {
	participants := e.Participants
	if e.Wildcard {
		participants = make([]Participant, len(known))
		for i, m := range known {
			participants[i] = Participant{Member: m, Weight: one}
		}
	}
	a := Allocation{Item: e.Item, Deltas: make([]Delta, 0, len(participants)+1)}
	if len(participants) == 0 {
		return a
	}

	var total Weight
	for _, p := range participants {
		total = total.Add(p.Weight)
	}

	a.Deltas = append(a.Deltas, Delta{Member: e.Payer, Amount: e.Amount})
	allocated := M(0, e.Amount.Currency())
	for i, p := range participants {
		share := e.Amount.Mul(p.Weight).Div(total)
		if i == len(participants)-1 {
			share = e.Amount.Sub(allocated)
		}
		allocated = allocated.Add(share)
		a.Deltas = append(a.Deltas, Delta{Member: p.Member, Amount: share.Neg()})
	}
	return a
}
