package kitty

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestCompute_Lunch(t *testing.T) {
	r, err := Compute(lunchLedger())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	want := map[Member]Money{"alice": EUR(60), "bob": EUR(-30), "carol": EUR(-30)}
	for m, w := range want {
		if got := r.Balance(m); !got.Equal(w) {
			t.Errorf("Balance(%q) = %s, want %s", m, got.Fixed(), w.Fixed())
		}
	}
	if got, want := formatTransfers(r.Transfers), "bob->alice:30.00 carol->alice:30.00 "; got != want {
		t.Errorf("Transfers = %q, want %q", got, want)
	}
	if got, want := formatTransfers(r.GroupTransfers), "bob->alice:30.00 carol->alice:30.00 "; got != want {
		t.Errorf("GroupTransfers = %q, want %q", got, want)
	}
	if err := r.Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestCompute_Weighted(t *testing.T) {
	l := NewLedger("EUR")
	l.AddMember("Alice")
	l.AddMember("Bob")
	l.AddExpense(ExpenseRecord{Item: "Groceries", PaidBy: "Bob", Amount: "100", SplitBetween: "Alice:3,Bob:1"})

	r, err := Compute(l)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if got := r.Splits.Share("Groceries", "alice"); !got.Equal(EUR(-75)) {
		t.Errorf("Share(Groceries, alice) = %s, want -75.00", got.Fixed())
	}
	if got := r.Splits.Share("Groceries", "bob"); !got.Equal(EUR(75)) {
		t.Errorf("Share(Groceries, bob) = %s, want 75.00", got.Fixed())
	}
	if got, want := formatTransfers(r.Transfers), "alice->bob:75.00 "; got != want {
		t.Errorf("Transfers = %q, want %q", got, want)
	}
}

func TestCompute_Subgroups(t *testing.T) {
	l := lunchLedger()
	l.AddGroup("alice, bob")

	r, err := Compute(l)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(r.Subgroups) != 2 || !r.Subgroups[0].Explicit || r.Subgroups[1].Explicit {
		t.Fatalf("Subgroups = %+v, want an explicit pair and a singleton", r.Subgroups)
	}
	if got, want := formatTransfers(r.GroupTransfers), "carol->alice,bob:30.00 "; got != want {
		t.Errorf("GroupTransfers = %q, want %q", got, want)
	}
	// member settlement is independent of subgroups.
	if got, want := formatTransfers(r.Transfers), "bob->alice:30.00 carol->alice:30.00 "; got != want {
		t.Errorf("Transfers = %q, want %q", got, want)
	}
	if err := r.Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestCompute_KnownMembersGrow(t *testing.T) {
	l := NewLedger("")
	l.AddMember("Alice")
	l.AddMember("Bob")
	l.AddExpense(ExpenseRecord{Item: "Cab", PaidBy: "Alice", Amount: "10", SplitBetween: "Dave"})
	l.AddExpense(ExpenseRecord{Item: "Lunch", PaidBy: "Carol", Amount: "80", SplitBetween: "*"})

	r, err := Compute(l)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if r.Currency != DefaultCurrency {
		t.Errorf("Currency = %q, want %q", r.Currency, DefaultCurrency)
	}
	if want := members("alice", "bob", "dave", "carol"); !reflect.DeepEqual(r.Members, want) {
		t.Errorf("Members = %v, want %v", r.Members, want)
	}
	// the wildcard splits between the four members known when Lunch is read.
	if got := r.Splits.Share("Lunch", "dave"); !got.Equal(EUR(-20)) {
		t.Errorf("Share(Lunch, dave) = %s, want -20.00", got.Fixed())
	}
	if got := r.Balance("carol"); !got.Equal(EUR(60)) {
		t.Errorf("Balance(carol) = %s, want 60.00", got.Fixed())
	}
	if err := r.Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestCompute_SkippedRows(t *testing.T) {
	l := lunchLedger()
	l.AddExpense(ExpenseRecord{Item: "Drinks", PaidBy: "", Amount: "12", SplitBetween: "*"})
	l.AddExpense(ExpenseRecord{Item: "Cake", PaidBy: "Bob", Amount: "lots", SplitBetween: "*"})
	l.AddExpense(ExpenseRecord{Item: "", PaidBy: "Bob", Amount: "5", SplitBetween: "*"})

	r, err := Compute(l)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	wantErrs := []error{ErrMissingPayer, ErrInvalidAmount, ErrMissingItem}
	if len(r.Skipped) != len(wantErrs) {
		t.Fatalf("Skipped = %v, want %d rows", r.Skipped, len(wantErrs))
	}
	for i, want := range wantErrs {
		if !errors.Is(r.Skipped[i], want) {
			t.Errorf("Skipped[%d] = %v, want %v", i, r.Skipped[i], want)
		}
		if r.Skipped[i].Row != i+2 {
			t.Errorf("Skipped[%d].Row = %d, want %d", i, r.Skipped[i].Row, i+2)
		}
	}
	if got := r.Balance("alice"); !got.Equal(EUR(60)) {
		t.Errorf("Balance(alice) = %s, want 60.00 as invalid rows are ignored", got.Fixed())
	}
}

func TestCompute_CommaInName(t *testing.T) {
	l, err := DecodeMerged([][]string{
		{"Member", "Item", "Paid By", "Amount", "Split Between"},
		{"Alice", "Lunch", "Alice", "90", "*"},
		{"Smith, John", "Taxi", "Smith, John", "20", "*"},
		{"Bob"},
	})
	if err != nil {
		t.Fatalf("DecodeMerged() error = %v", err)
	}

	r, err := Compute(l)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if want := members("alice", "bob"); !reflect.DeepEqual(r.Members, want) {
		t.Errorf("Members = %v, want %v", r.Members, want)
	}
	if want := []string{"Smith, John"}; !reflect.DeepEqual(r.Rejected, want) {
		t.Errorf("Rejected = %v, want %v", r.Rejected, want)
	}
	if len(r.Skipped) != 1 || r.Skipped[0].Row != 3 || !errors.Is(r.Skipped[0], ErrInvalidName) {
		t.Errorf("Skipped = %v, want row 3 with an invalid name", r.Skipped)
	}
	if got := r.Balance("alice"); !got.Equal(EUR(45)) {
		t.Errorf("Balance(alice) = %s, want 45.00", got.Fixed())
	}
}

func TestCompute_Degenerate(t *testing.T) {
	r, err := Compute(NewLedger("EUR"))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(r.Members) != 0 || len(r.Balances) != 0 || len(r.Transfers) != 0 || len(r.Splits.Items()) != 0 {
		t.Errorf("Compute() = %+v, want empty tables", r)
	}
	if err := r.Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}

	// members without expenses have zero balances.
	l := NewLedger("EUR")
	l.AddMember("alice")
	r, err = Compute(l)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(r.Balances) != 1 || !r.Balances[0].Amount.IsZero() || len(r.Transfers) != 0 {
		t.Errorf("Compute() = %+v, want one zero balance", r)
	}
}

func TestCompute_InvalidCurrency(t *testing.T) {
	r, err := Compute(NewLedger("ZZZ"))
	if !errors.Is(err, ErrInvalidCurrency) {
		t.Fatalf("Compute() error = %v, want %v", err, ErrInvalidCurrency)
	}
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "currency" {
		t.Errorf("Compute() error = %#v, want a *FieldError on currency", err)
	}
	if r != nil {
		t.Errorf("Compute() = %v, want no report on a configuration error", r)
	}
}

func TestCompute_Conservation(t *testing.T) {
	l := NewLedger("EUR")
	for _, m := range []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace"} {
		l.AddMember(m)
	}
	l.AddGroup("alice,bob")
	l.AddGroup("carol,dave,erin")
	l.AddExpense(ExpenseRecord{Item: "Hotel", PaidBy: "Alice", Amount: "1000", SplitBetween: "*"})
	l.AddExpense(ExpenseRecord{Item: "Fuel", PaidBy: "Dave", Amount: "77.77", SplitBetween: "Alice:2,Bob:1.5,Erin:0.3"})
	l.AddExpense(ExpenseRecord{Item: "Museum", PaidBy: "Grace", Amount: "35", SplitBetween: "carol,dave,frank"})
	l.AddExpense(ExpenseRecord{Item: "Dinner", PaidBy: "Frank", Amount: "212.3", SplitBetween: "*"})
	l.AddExpense(ExpenseRecord{Item: "Hotel", PaidBy: "Bob", Amount: "100", SplitBetween: "grace:3,frank"})

	r, err := Compute(l)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if total := Sum(r.Balances, "EUR"); !total.IsZero() {
		t.Errorf("Sum(Balances) = %s, want exactly 0", total.Decimal())
	}
	if got, want := r.Splits.Items(), []string{"Hotel", "Fuel", "Museum", "Dinner"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Items() = %v, want %v", got, want)
	}
	for _, b := range r.Balances {
		if total := r.Splits.Total(b.Key); !total.Equal(b.Amount) {
			t.Errorf("Splits.Total(%q) = %s, want the balance %s", b.Key, total.Decimal(), b.Amount.Decimal())
		}
	}
	if err := r.Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	l := lunchLedger()
	l.AddGroup("bob,carol")
	l.AddExpense(ExpenseRecord{Item: "Coffee", PaidBy: "Carol", Amount: "7.5", SplitBetween: "alice:2,carol"})

	var outputs [2]bytes.Buffer
	for i := range outputs {
		r, err := Compute(l)
		if err != nil {
			t.Fatalf("Compute() error = %v", err)
		}
		if err := EncodeReport(&outputs[i], r); err != nil {
			t.Fatalf("EncodeReport() error = %v", err)
		}
	}
	if outputs[0].String() != outputs[1].String() {
		t.Errorf("Compute() is not idempotent:\n%s\n%s", outputs[0].String(), outputs[1].String())
	}
}

func TestReport_MarshalJSON(t *testing.T) {
	r, err := Compute(lunchLedger())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	got, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"currency":"EUR","members":["alice","bob","carol"],` +
		`"splits":[{"item":"Lunch","shares":{"alice":60,"bob":-30,"carol":-30}}],` +
		`"totals":{"alice":60,"bob":-30,"carol":-30},` +
		`"balances":[{"key":"alice","amount":60},{"key":"bob","amount":-30},{"key":"carol","amount":-30}],` +
		`"subgroups":[{"key":["alice"],"members":["alice"]},{"key":["bob"],"members":["bob"]},{"key":["carol"],"members":["carol"]}],` +
		`"groupBalances":[{"key":["alice"],"amount":60},{"key":["bob"],"amount":-30},{"key":["carol"],"amount":-30}],` +
		`"groupTransfers":[{"from":["bob"],"to":["alice"],"amount":30},{"from":["carol"],"to":["alice"],"amount":30}],` +
		`"transfers":[{"from":"bob","to":"alice","amount":30},{"from":"carol","to":"alice","amount":30}]}`
	if string(got) != want {
		t.Errorf("json.Marshal() =\n%s\nwant\n%s", got, want)
	}
}

func TestReport_TransfersOf(t *testing.T) {
	r, err := Compute(lunchLedger())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if got := r.TransfersOf("alice"); len(got) != 2 {
		t.Errorf("TransfersOf(alice) = %v, want 2 transfers", got)
	}
	if got := r.TransfersOf("bob"); len(got) != 1 || got[0].To != "alice" {
		t.Errorf("TransfersOf(bob) = %v, want bob->alice", got)
	}
	if got := r.Balance("zoe"); !got.IsZero() {
		t.Errorf("Balance(zoe) = %s, want 0", got.Fixed())
	}
}
