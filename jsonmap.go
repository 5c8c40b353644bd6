package kitty

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Mapping tells where the ledger fields live in an arbitrary JSON document.
// Every value is a JSONPath expression.
//
// Members, Groups and Expenses are evaluated against the document root and
// must yield arrays. Groups is optional. Item, PaidBy, Amount and
// SplitBetween are evaluated against each element of the Expenses array.
// Name is evaluated against each member element when members are objects,
// and Group against each group element when groups are objects.
type Mapping struct {
	Currency     string `json:"currency,omitempty"`
	Members      string `json:"members"`
	Name         string `json:"name,omitempty"`
	Groups       string `json:"groups,omitempty"`
	Group        string `json:"group,omitempty"`
	Expenses     string `json:"expenses"`
	Item         string `json:"item"`
	PaidBy       string `json:"paidBy"`
	Amount       string `json:"amount"`
	SplitBetween string `json:"splitBetween"`
}

// DefaultMapping reads a document shaped like the canonical Ledger.
var DefaultMapping = Mapping{
	Currency:     "$.currency",
	Members:      "$.members",
	Groups:       "$.groups",
	Expenses:     "$.expenses",
	Item:         "$.item",
	PaidBy:       "$.paidBy",
	Amount:       "$.amount",
	SplitBetween: "$.splitBetween",
}

// DecodeMapping reads a Mapping from JSON. Missing paths default to DefaultMapping.
func DecodeMapping(r io.Reader) (Mapping, error) {
	m := DefaultMapping
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Mapping{}, fmt.Errorf("could not decode mapping: %w", err)
	}
	return m, nil
}

const mappedSource = "json"

// DecodeMapped decodes a JSON document into a Ledger using m.
//
// A required path that does not resolve is a configuration error reported
// as a *FieldError. Inside an expense element, unresolved fields are left
// empty so that the row is skipped later on.
func DecodeMapped(r io.Reader, m Mapping) (*Ledger, error) {
	var doc any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode json document: %w", err)
	}

	required := []struct{ field, path string }{
		{"members", m.Members},
		{"expenses", m.Expenses},
		{"item", m.Item},
		{"paidBy", m.PaidBy},
		{"amount", m.Amount},
		{"splitBetween", m.SplitBetween},
	}
	for _, req := range required {
		if strings.TrimSpace(req.path) == "" {
			return nil, NewFieldError(mappedSource, req.field)
		}
	}

	ledger := NewLedger("")
	if m.Currency != "" {
		if v, err := jsonpath.Get(m.Currency, doc); err == nil {
			ledger.Currency = scalar(v)
		}
	}

	members, err := array(doc, m.Members)
	if err != nil {
		return nil, NewFieldError(mappedSource, "members")
	}
	for _, v := range members {
		if m.Name != "" {
			v, _ = jsonpath.Get(m.Name, v)
		}
		ledger.AddMember(scalar(v))
	}

	if m.Groups != "" {
		// groups are optional, an unresolved path means no explicit groups.
		groups, _ := array(doc, m.Groups)
		for _, v := range groups {
			if m.Group != "" {
				v, _ = jsonpath.Get(m.Group, v)
			}
			ledger.AddGroup(listOrScalar(v))
		}
	}

	expenses, err := array(doc, m.Expenses)
	if err != nil {
		return nil, NewFieldError(mappedSource, "expenses")
	}
	for i, v := range expenses {
		ledger.AddExpense(ExpenseRecord{
			Row:          i + 1,
			Item:         field(v, m.Item),
			PaidBy:       field(v, m.PaidBy),
			Amount:       field(v, m.Amount),
			SplitBetween: listOrScalar(get(v, m.SplitBetween)),
		})
	}
	return ledger, nil
}

// array evaluates path against doc and expects an array.
func array(doc any, path string) ([]any, error) {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%q is a %T not an array", path, v)
	}
	return list, nil
}

func get(v any, path string) any {
	res, err := jsonpath.Get(path, v)
	if err != nil {
		return nil
	}
	return res
}

func field(v any, path string) string { return scalar(get(v, path)) }

// scalar renders a JSON scalar as a string, "" for anything else.
func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// listOrScalar joins an array of scalars with commas, so that ["a","b:2"]
// and "a,b:2" are equivalent.
func listOrScalar(v any) string {
	list, ok := v.([]any)
	if !ok {
		return scalar(v)
	}
	parts := make([]string, 0, len(list))
	for _, e := range list {
		parts = append(parts, scalar(e))
	}
	return strings.Join(parts, ",")
}
