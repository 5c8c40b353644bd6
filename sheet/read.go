// Package sheet reads ledgers from spreadsheets and writes reports to
// workbooks.
//
// A workbook holds either three sheets named Members, Subgroups (optional)
// and Expenses, each starting with a header row, or a single row-oriented
// table with Member, Subgroup, Item, Paid By, Amount and Split Between
// columns. A CSV file is always read as a single table.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/kitty"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the separate tables shape. Matching is case insensitive.
const (
	MembersSheet   = "Members"
	SubgroupsSheet = "Subgroups"
	ExpensesSheet  = "Expenses"
)

// IsSpreadsheet reports whether name has a spreadsheet extension read by Open.
func IsSpreadsheet(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx", ".xlsm":
		return true
	}
	return false
}

// Open reads the ledger stored in a spreadsheet file, chosen by extension.
func Open(name string) (*kitty.Ledger, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ReadCSV(f)
	case ".xlsx", ".xlsm":
		return ReadWorkbook(f)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet type %q", filepath.Ext(name))
	}
}

// ReadCSV reads a single row-oriented table.
func ReadCSV(r io.Reader) (*kitty.Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may be short
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read csv: %w", err)
	}
	return kitty.DecodeMerged(rows)
}

// ReadWorkbook reads a workbook. It uses the separate tables when the
// workbook has both a Members and an Expenses sheet, and the first sheet as
// a single table otherwise.
func ReadWorkbook(r io.Reader) (*kitty.Ledger, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open workbook: %w", err)
	}
	defer f.Close()

	// raw values, so that number formats like "#,##0.00" do not reach the
	// amount parser.
	raw := excelize.Options{RawCellValue: true}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, kitty.NewFieldError("workbook", kitty.FieldMember)
	}
	members, hasMembers := find(sheets, MembersSheet)
	expenses, hasExpenses := find(sheets, ExpensesSheet)
	if !hasMembers || !hasExpenses {
		rows, err := f.GetRows(sheets[0], raw)
		if err != nil {
			return nil, fmt.Errorf("could not read sheet %q: %w", sheets[0], err)
		}
		return kitty.DecodeMerged(rows)
	}

	var t kitty.Tables
	if t.Members, err = f.GetRows(members, raw); err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", members, err)
	}
	if t.Expenses, err = f.GetRows(expenses, raw); err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", expenses, err)
	}
	if groups, ok := find(sheets, SubgroupsSheet); ok {
		if t.Groups, err = f.GetRows(groups, raw); err != nil {
			return nil, fmt.Errorf("could not read sheet %q: %w", groups, err)
		}
	}
	return kitty.DecodeTables(t)
}

// find returns the actual name of the sheet called name, ignoring case.
func find(sheets []string, name string) (string, bool) {
	for _, s := range sheets {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return s, true
		}
	}
	return "", false
}
