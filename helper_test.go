package kitty

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// JPY is a helper for test to create yen money, a currency without minor unit.
func JPY(v float64) Money { return M(v, "JPY") }

// members is a helper to build a member list from canonical names.
func members(names ...string) []Member {
	list := make([]Member, len(names))
	for i, n := range names {
		list[i] = Member(n)
	}
	return list
}

// lunchLedger is the worked example: three members share a 90 EUR lunch paid by Alice.
func lunchLedger() *Ledger {
	l := NewLedger("EUR")
	l.AddMember("Alice")
	l.AddMember("Bob")
	l.AddMember("Carol")
	l.AddExpense(ExpenseRecord{Item: "Lunch", PaidBy: "Alice", Amount: "90", SplitBetween: "*"})
	return l
}
