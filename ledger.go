package kitty

import "strings"

// Ledger holds the raw records of one run: the declared members, the
// explicit subgroups and the expenses, in source order.
//
// A Ledger is the canonical input shape. Every decoder (JSONL, mapped JSON,
// spreadsheets) resolves its own fields into a Ledger before computing.
type Ledger struct {
	Currency string          // ISO 4217 code, DefaultCurrency when empty.
	Members  []string        // raw member names.
	Groups   []string        // raw comma-separated member lists.
	Expenses []ExpenseRecord // raw expense rows.
}

// NewLedger creates an empty ledger in currency.
func NewLedger(currency string) *Ledger {
	return &Ledger{Currency: currency}
}

// AddMember declares a member.
func (l *Ledger) AddMember(name string) { l.Members = append(l.Members, name) }

// AddGroup declares an explicit subgroup.
func (l *Ledger) AddGroup(members string) { l.Groups = append(l.Groups, members) }

// AddExpense appends an expense row. A zero Row is replaced by the expense's
// position in the ledger.
func (l *Ledger) AddExpense(rec ExpenseRecord) {
	if rec.Row == 0 {
		rec.Row = len(l.Expenses) + 1
	}
	l.Expenses = append(l.Expenses, rec)
}

// currency returns the effective, upper cased currency code.
func (l *Ledger) currency() string {
	if strings.TrimSpace(l.Currency) == "" {
		return DefaultCurrency
	}
	return strings.ToUpper(strings.TrimSpace(l.Currency))
}

// Fmt returns a canonical copy of the ledger: currency resolved, member
// names and groups normalized and deduplicated, expense fields trimmed and
// split specifiers rewritten with normalized names. Records are kept in
// order, invalid expenses included.
func (l *Ledger) Fmt() *Ledger {
	f := NewLedger(l.currency())

	members := newMemberSet()
	for _, raw := range l.Members {
		if m, ok := Normalize(raw); ok && members.add(m) {
			f.AddMember(string(m))
		}
	}

	groups := make(map[GroupKey]struct{})
	for _, raw := range l.Groups {
		names := NormalizeList(raw)
		if len(names) == 0 {
			continue
		}
		key := newGroupKey(names)
		if _, dup := groups[key]; dup {
			continue
		}
		groups[key] = struct{}{}
		f.AddGroup(joinMembers(key.Members(), ", "))
	}

	for _, rec := range l.Expenses {
		payer, _ := Normalize(rec.PaidBy)
		f.Expenses = append(f.Expenses, ExpenseRecord{
			Row:          rec.Row,
			Item:         strings.TrimSpace(rec.Item),
			PaidBy:       string(payer),
			Amount:       strings.TrimSpace(rec.Amount),
			SplitBetween: formatSplit(rec.SplitBetween),
		})
	}
	return f
}

// formatSplit rewrites a split specifier in canonical form. Weights equal to
// 1 are omitted.
func formatSplit(spec string) string {
	participants, wildcard := ParseSplit(spec)
	if wildcard {
		return Wildcard
	}
	entries := make([]string, len(participants))
	for i, p := range participants {
		entries[i] = string(p.Member)
		if !p.Weight.Equal(one) {
			entries[i] += ":" + p.Weight.String()
		}
	}
	return strings.Join(entries, ", ")
}

func joinMembers(members []Member, sep string) string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = string(m)
	}
	return strings.Join(names, sep)
}
