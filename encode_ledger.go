package kitty

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// RecordKind is a typed string identifying the records of a JSONL ledger.
type RecordKind string

// Record kinds.
const (
	KindCurrency RecordKind = "currency"
	KindMember   RecordKind = "member"
	KindGroup    RecordKind = "group"
	KindExpense  RecordKind = "expense"
)

// flexString decodes a JSON string or a JSON number as a string.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or a number, got %s", data)
	}
	*s = flexString(n.String())
	return nil
}

// DecodeLedger decodes a stream of JSONL records into a Ledger.
//
// Each line is a JSON object whose "kind" is one of currency, member, group
// or expense. Empty lines are skipped. Expense rows are numbered by line.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger("")
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var rec struct {
			Kind         RecordKind `json:"kind"`
			Code         string     `json:"code"`
			Name         string     `json:"name"`
			Members      string     `json:"members"`
			Item         flexString `json:"item"`
			PaidBy       string     `json:"paidBy"`
			Amount       flexString `json:"amount"`
			SplitBetween string     `json:"splitBetween"`
		}
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("line %d: could not decode record %q: %w", line, string(lineBytes), err)
		}

		switch rec.Kind {
		case KindCurrency:
			ledger.Currency = rec.Code
		case KindMember:
			ledger.AddMember(rec.Name)
		case KindGroup:
			ledger.AddGroup(rec.Members)
		case KindExpense:
			ledger.AddExpense(ExpenseRecord{
				Row:          line,
				Item:         string(rec.Item),
				PaidBy:       rec.PaidBy,
				Amount:       string(rec.Amount),
				SplitBetween: rec.SplitBetween,
			})
		default:
			return nil, fmt.Errorf("line %d: unknown record kind: %q", line, rec.Kind)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return ledger, nil
}

// EncodeLedger writes the ledger as JSONL: the currency first, then members,
// groups and expenses in order. Keys are written in a fixed order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	var records []*jsonObjectWriter
	if l.Currency != "" {
		rec := record(KindCurrency)
		rec.Append("code", l.Currency)
		records = append(records, rec)
	}
	for _, name := range l.Members {
		rec := record(KindMember)
		rec.Append("name", name)
		records = append(records, rec)
	}
	for _, members := range l.Groups {
		rec := record(KindGroup)
		rec.Append("members", members)
		records = append(records, rec)
	}
	for _, e := range l.Expenses {
		rec := record(KindExpense)
		rec.Append("item", e.Item)
		rec.Append("paidBy", e.PaidBy)
		rec.Append("amount", amountValue(e.Amount))
		rec.Append("splitBetween", e.SplitBetween)
		records = append(records, rec)
	}

	for _, rec := range records {
		data, err := rec.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return nil
}

func record(kind RecordKind) *jsonObjectWriter {
	w := new(jsonObjectWriter)
	w.Append("kind", kind)
	return w
}

// amountValue writes valid decimal amounts as JSON numbers, anything else
// is kept verbatim as a string.
func amountValue(s string) any {
	if m, err := ParseMoney(s, ""); err == nil {
		return json.RawMessage(m.Decimal().String())
	}
	return s
}
