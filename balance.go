package kitty

// Balance is the signed net amount of a member or of a subgroup: positive
// when it is owed money, negative when it owes.
type Balance[K comparable] struct {
	Key    K
	Amount Money
}

// Sum returns the total of balances.
func Sum[K comparable](balances []Balance[K], currency string) Money {
	total := M(0, currency)
	for _, b := range balances {
		total = total.Add(b.Amount)
	}
	return total
}

// Lookup returns the balance of key, and false if key is not listed.
func Lookup[K comparable](balances []Balance[K], key K) (Money, bool) {
	for _, b := range balances {
		if b.Key == key {
			return b.Amount, true
		}
	}
	return Money{}, false
}

// balanceTable lists the amounts of members in order. A member without an
// amount has a zero balance.
func balanceTable(members []Member, amounts map[Member]Money, currency string) []Balance[Member] {
	table := make([]Balance[Member], len(members))
	for i, m := range members {
		amount, ok := amounts[m]
		if !ok {
			amount = M(0, currency)
		}
		table[i] = Balance[Member]{Key: m, Amount: amount}
	}
	return table
}

// Aggregate rolls member balances up to their subgroups. The result lists
// the subgroups of c in order.
func Aggregate(balances []Balance[Member], c Clustering, currency string) []Balance[GroupKey] {
	totals := make(map[GroupKey]Money)
	for _, b := range balances {
		key := c.Of(b.Key)
		if key.IsZero() {
			continue
		}
		if prev, ok := totals[key]; ok {
			totals[key] = prev.Add(b.Amount)
		} else {
			totals[key] = b.Amount
		}
	}
	subgroups := c.Subgroups()
	result := make([]Balance[GroupKey], len(subgroups))
	for i, s := range subgroups {
		amount, ok := totals[s.Key]
		if !ok {
			amount = M(0, currency)
		}
		result[i] = Balance[GroupKey]{Key: s.Key, Amount: amount}
	}
	return result
}
