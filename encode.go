package kitty

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MarshalJSON implements the json.Marshaler interface for Balance.
func (b Balance[K]) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("key", b.Key)
	w.Append("amount", b.Amount)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for Transfer.
func (t Transfer[K]) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("from", t.From)
	w.Append("to", t.To)
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for Subgroup.
func (s Subgroup) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("key", s.Key)
	w.Append("members", s.Members)
	w.Optional("explicit", s.Explicit)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for RowError.
func (e *RowError) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("row", e.Row)
	w.Optional("item", e.Item)
	w.Append("reason", e.Err.Error())
	return w.MarshalJSON()
}

// marshalJSON writes the split matrix as a list of items, each with the
// shares of the members involved, in member order.
func (s *Splits) marshalJSON(members []Member) ([]byte, error) {
	var items jsonArrayWriter
	for _, item := range s.items {
		var shares jsonObjectWriter
		for _, m := range members {
			if s.Involved(item, m) {
				shares.Append(string(m), s.Share(item, m))
			}
		}
		var row jsonObjectWriter
		row.Append("item", item)
		row.Append("shares", &shares)
		items.Append(&row)
	}
	return items.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for Report. Keys are
// written in a stable order and amounts are rounded to the minor unit.
func (r *Report) MarshalJSON() ([]byte, error) {
	splits, err := r.Splits.marshalJSON(r.Members)
	if err != nil {
		return nil, err
	}
	var totals jsonObjectWriter
	for _, m := range r.Members {
		totals.Append(string(m), r.Splits.Total(m))
	}

	var w jsonObjectWriter
	w.Append("currency", r.Currency)
	w.Append("members", nonNil(r.Members))
	w.Append("splits", json.RawMessage(splits))
	w.Append("totals", &totals)
	w.Append("balances", nonNil(r.Balances))
	w.Append("subgroups", nonNil(r.Subgroups))
	w.Append("groupBalances", nonNil(r.GroupBalances))
	w.Append("groupTransfers", nonNil(r.GroupTransfers))
	w.Append("transfers", nonNil(r.Transfers))
	w.Optional("skipped", r.Skipped)
	w.Optional("rejected", r.Rejected)
	return w.MarshalJSON()
}

// nonNil makes nil slices marshal as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// EncodeReport writes r as indented JSON.
func EncodeReport(w io.Writer, r *Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(json.RawMessage(data)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
