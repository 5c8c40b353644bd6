package kitty

// Transfer is a payment of Amount from a debtor to a creditor.
type Transfer[K comparable] struct {
	From   K
	To     K
	Amount Money
}

// party is a creditor or a debtor with what remains to be settled (always
// positive).
type party[K comparable] struct {
	key    K
	remain Money
}

// Minimize reduces balances to a short list of transfers that bring every
// balance back to zero.
//
// Balances are first rounded to the currency minor unit, which is also the
// tolerance: balances within one minor unit of zero are already settled. Then
// the largest debtor pays the largest creditor the smallest of their
// remainders, until no creditor or no debtor is left. On equal remainders the
// party listed first in balances is picked first. Transfers are returned in
// the order they are generated.
func Minimize[K comparable](balances []Balance[K]) []Transfer[K] {
	var creditors, debtors []party[K]
	for _, b := range balances {
		amount := b.Amount.Round()
		eps := amount.Unit()
		switch {
		case amount.GreaterThan(eps):
			creditors = append(creditors, party[K]{key: b.Key, remain: amount})
		case amount.Neg().GreaterThan(eps):
			debtors = append(debtors, party[K]{key: b.Key, remain: amount.Neg()})
		}
	}

	var transfers []Transfer[K]
	for len(creditors) > 0 && len(debtors) > 0 {
		ci, di := largest(creditors), largest(debtors)
		c, d := &creditors[ci], &debtors[di]

		amount := c.remain.Min(d.remain)
		transfers = append(transfers, Transfer[K]{From: d.key, To: c.key, Amount: amount})
		c.remain = c.remain.Sub(amount)
		d.remain = d.remain.Sub(amount)

		if c.remain.LessThan(c.remain.Unit()) {
			creditors = remove(creditors, ci)
		}
		if d.remain.LessThan(d.remain.Unit()) {
			debtors = remove(debtors, di)
		}
	}
	return transfers
}

// largest returns the index of the party with the largest remainder, the
// first one on ties.
func largest[K comparable](parties []party[K]) int {
	best := 0
	for i := 1; i < len(parties); i++ {
		if parties[i].remain.GreaterThan(parties[best].remain) {
			best = i
		}
	}
	return best
}

// remove deletes parties[i] keeping the order of the others.
func remove[K comparable](parties []party[K], i int) []party[K] {
	return append(parties[:i], parties[i+1:]...)
}

// Apply returns balances after every transfer has been paid: the payer's
// balance goes up and the payee's goes down.
func Apply[K comparable](balances []Balance[K], transfers []Transfer[K]) []Balance[K] {
	result := make([]Balance[K], len(balances))
	copy(result, balances)
	for _, t := range transfers {
		for i := range result {
			switch result[i].Key {
			case t.From:
				result[i].Amount = result[i].Amount.Add(t.Amount)
			case t.To:
				result[i].Amount = result[i].Amount.Sub(t.Amount)
			}
		}
	}
	return result
}
