package kitty

import (
	"strings"
	"unicode"
)

// Column declares a canonical field of a tabular source and the header
// names it may appear under.
type Column struct {
	Field    string
	Aliases  []string
	Required bool
}

// Canonical field names.
const (
	FieldMember       = "member"
	FieldGroup        = "group"
	FieldItem         = "item"
	FieldPaidBy       = "paidBy"
	FieldAmount       = "amount"
	FieldSplitBetween = "splitBetween"
)

var (
	memberAliases  = []string{"member", "members", "name", "participant", "participants"}
	groupAliases   = []string{"subgroup", "subgroups", "group", "groups"}
	expenseColumns = []Column{
		{Field: FieldItem, Aliases: []string{"item", "items", "description", "label", "what"}, Required: true},
		{Field: FieldPaidBy, Aliases: []string{"paidby", "payer", "paid", "who"}, Required: true},
		{Field: FieldAmount, Aliases: []string{"amount", "cost", "price", "total"}, Required: true},
		{Field: FieldSplitBetween, Aliases: []string{"splitbetween", "split", "between", "sharedby", "forwhom"}, Required: true},
	}
)

// MemberColumns are the columns of a members table.
var MemberColumns = []Column{{Field: FieldMember, Aliases: memberAliases, Required: true}}

// GroupColumns are the columns of a subgroups table. A groups table lists
// members of a group, so "members" is a group header here.
var GroupColumns = []Column{{Field: FieldGroup, Aliases: append([]string{"members"}, groupAliases...), Required: true}}

// ExpenseColumns are the columns of an expenses table.
var ExpenseColumns = expenseColumns

// MergedColumns are the columns of a single row-oriented table holding
// members, subgroups and expenses side by side. Subgroups are optional.
var MergedColumns = append([]Column{
	{Field: FieldMember, Aliases: memberAliases, Required: true},
	{Field: FieldGroup, Aliases: groupAliases},
}, expenseColumns...)

// headerKey normalizes a header cell for matching: case-folded, letters and
// digits only.
func headerKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve finds each column in header. It returns the index of every
// resolved field. A required column that cannot be found is a *FieldError
// naming the field and source.
func Resolve(source string, header []string, columns []Column) (map[string]int, error) {
	index := make(map[string]int, len(columns))
	for _, col := range columns {
		found := -1
		for _, alias := range col.Aliases {
			for i, cell := range header {
				if headerKey(cell) == alias {
					found = i
					break
				}
			}
			if found >= 0 {
				break
			}
		}
		if found < 0 {
			if col.Required {
				return nil, NewFieldError(source, col.Field)
			}
			continue
		}
		index[col.Field] = found
	}
	return index, nil
}

// cell returns row[index[field]], "" when the field or the cell is missing.
func cell(row []string, index map[string]int, field string) string {
	i, ok := index[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Tables holds the rows of separate members, subgroups and expenses tables.
// Each table starts with a header row. Groups may be nil.
type Tables struct {
	Members  [][]string
	Groups   [][]string
	Expenses [][]string
}

// DecodeTables resolves separate tables into a Ledger. Expense rows are
// numbered as in the source, the header being row 1.
func DecodeTables(t Tables) (*Ledger, error) {
	ledger := NewLedger("")

	if len(t.Members) == 0 {
		return nil, NewFieldError("members", FieldMember)
	}
	idx, err := Resolve("members", t.Members[0], MemberColumns)
	if err != nil {
		return nil, err
	}
	for _, row := range t.Members[1:] {
		if name := cell(row, idx, FieldMember); name != "" {
			ledger.AddMember(name)
		}
	}

	if len(t.Groups) > 0 {
		idx, err := Resolve("subgroups", t.Groups[0], GroupColumns)
		if err != nil {
			return nil, err
		}
		for _, row := range t.Groups[1:] {
			if g := cell(row, idx, FieldGroup); g != "" {
				ledger.AddGroup(g)
			}
		}
	}

	if len(t.Expenses) == 0 {
		return nil, NewFieldError("expenses", FieldItem)
	}
	idx, err = Resolve("expenses", t.Expenses[0], ExpenseColumns)
	if err != nil {
		return nil, err
	}
	for i, row := range t.Expenses[1:] {
		if blank(row) {
			continue
		}
		ledger.AddExpense(expenseRow(row, idx, i+2))
	}
	return ledger, nil
}

// DecodeMerged resolves a single row-oriented table into a Ledger. A row
// may declare a member, a subgroup and an expense at the same time; a row
// with all expense cells empty carries no expense.
func DecodeMerged(rows [][]string) (*Ledger, error) {
	if len(rows) == 0 {
		return nil, NewFieldError("table", FieldMember)
	}
	idx, err := Resolve("table", rows[0], MergedColumns)
	if err != nil {
		return nil, err
	}
	ledger := NewLedger("")
	for i, row := range rows[1:] {
		if name := cell(row, idx, FieldMember); name != "" {
			ledger.AddMember(name)
		}
		if g := cell(row, idx, FieldGroup); g != "" {
			ledger.AddGroup(g)
		}
		e := expenseRow(row, idx, i+2)
		if e.Item == "" && e.PaidBy == "" && e.Amount == "" && e.SplitBetween == "" {
			continue
		}
		ledger.AddExpense(e)
	}
	return ledger, nil
}

func expenseRow(row []string, idx map[string]int, n int) ExpenseRecord {
	return ExpenseRecord{
		Row:          n,
		Item:         cell(row, idx, FieldItem),
		PaidBy:       cell(row, idx, FieldPaidBy),
		Amount:       cell(row, idx, FieldAmount),
		SplitBetween: cell(row, idx, FieldSplitBetween),
	}
}
