package sheet

import (
	"fmt"
	"io"

	"github.com/etnz/kitty"
	"github.com/xuri/excelize/v2"
)

// Sheet names of a report workbook.
const (
	SplitsSheet         = "Splits"
	BalancesSheet       = "Balances"
	GroupBalancesSheet  = "Subgroups"
	GroupTransfersSheet = "Subgroup Transfers"
	TransfersSheet      = "Transfers"
	SkippedSheet        = "Skipped"
)

// report writes a Report into a workbook.
type report struct {
	f      *excelize.File
	header int // bold style
	amount int // fixed point style
}

// WriteReport writes r as a workbook, one sheet per table. Amounts are
// rounded to the currency minor unit.
func WriteReport(w io.Writer, r *kitty.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	x, err := newReport(f, r.Currency)
	if err != nil {
		return err
	}
	if err := f.SetSheetName(f.GetSheetName(0), SplitsSheet); err != nil {
		return err
	}
	if err := x.splits(r); err != nil {
		return fmt.Errorf("could not write splits: %w", err)
	}
	if err := x.balances(r); err != nil {
		return fmt.Errorf("could not write balances: %w", err)
	}
	if err := x.transfers(r); err != nil {
		return fmt.Errorf("could not write transfers: %w", err)
	}
	if len(r.Skipped) > 0 {
		if err := x.skipped(r.Skipped); err != nil {
			return fmt.Errorf("could not write skipped rows: %w", err)
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func newReport(f *excelize.File, currency string) (*report, error) {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	// built-in formats: 2 is "0.00", 1 is "0".
	numFmt := 2
	if kitty.M(0, currency).Unit().Decimal().IsInteger() {
		numFmt = 1
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: numFmt})
	if err != nil {
		return nil, err
	}
	return &report{f: f, header: header, amount: amount}, nil
}

// table writes a header and rows in sheet, creating it if needed. Columns
// from amountCol on hold amounts.
func (x *report) table(sheet string, header []any, rows [][]any, amountCol int) error {
	if idx, err := x.f.GetSheetIndex(sheet); err != nil || idx < 0 {
		if _, err := x.f.NewSheet(sheet); err != nil {
			return err
		}
	}
	if err := x.f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := x.f.SetCellStyle(sheet, "A1", last, x.header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := x.f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if len(rows) > 0 && amountCol <= len(header) {
		from, _ := excelize.CoordinatesToCellName(amountCol, 2)
		to, _ := excelize.CoordinatesToCellName(len(header), len(rows)+1)
		if err := x.f.SetCellStyle(sheet, from, to, x.amount); err != nil {
			return err
		}
	}
	return x.f.SetColWidth(sheet, "A", "A", 24)
}

// value converts an amount to a cell value.
func value(m kitty.Money) any {
	return m.Round().Decimal().InexactFloat64()
}

func (x *report) splits(r *kitty.Report) error {
	header := []any{"Item"}
	for _, m := range r.Members {
		header = append(header, m.Title())
	}
	var rows [][]any
	for _, item := range r.Splits.Items() {
		row := []any{item}
		for _, m := range r.Members {
			if r.Splits.Involved(item, m) {
				row = append(row, value(r.Splits.Share(item, m)))
			} else {
				row = append(row, nil)
			}
		}
		rows = append(rows, row)
	}
	total := []any{"Total"}
	for _, m := range r.Members {
		total = append(total, value(r.Splits.Total(m)))
	}
	rows = append(rows, total)
	return x.table(SplitsSheet, header, rows, 2)
}

func (x *report) balances(r *kitty.Report) error {
	var rows [][]any
	for _, b := range r.Balances {
		rows = append(rows, []any{b.Key.Title(), value(b.Amount)})
	}
	if err := x.table(BalancesSheet, []any{"Member", "Balance"}, rows, 2); err != nil {
		return err
	}

	rows = nil
	for _, b := range r.GroupBalances {
		rows = append(rows, []any{b.Key.Title(), value(b.Amount)})
	}
	return x.table(GroupBalancesSheet, []any{"Subgroup", "Balance"}, rows, 2)
}

func (x *report) transfers(r *kitty.Report) error {
	var rows [][]any
	for _, t := range r.GroupTransfers {
		rows = append(rows, []any{t.From.Title(), t.To.Title(), value(t.Amount)})
	}
	if err := x.table(GroupTransfersSheet, []any{"From", "To", "Amount"}, rows, 3); err != nil {
		return err
	}

	rows = nil
	for _, t := range r.Transfers {
		rows = append(rows, []any{t.From.Title(), t.To.Title(), value(t.Amount)})
	}
	return x.table(TransfersSheet, []any{"From", "To", "Amount"}, rows, 3)
}

func (x *report) skipped(skipped []*kitty.RowError) error {
	var rows [][]any
	for _, e := range skipped {
		rows = append(rows, []any{e.Row, e.Item, e.Err.Error()})
	}
	return x.table(SkippedSheet, []any{"Row", "Item", "Reason"}, rows, 4)
}
