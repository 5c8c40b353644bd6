package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/kitty"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// section is a parsed H2 section of a rendered report.
type section struct {
	title string
	rows  [][]string // table rows, header included
	text  []string   // paragraphs and list items
}

// parse splits rendered markdown into sections, using a GFM parser.
func parse(t *testing.T, content string) (title string, sections []*section) {
	t.Helper()
	source := []byte(content)
	parser := goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()
	root := parser.Parse(text.NewReader(source))

	var current *section
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			if n.Level == 1 {
				title = string(n.Text(source))
				return ast.WalkSkipChildren, nil
			}
			current = &section{title: string(n.Text(source))}
			sections = append(sections, current)
			return ast.WalkSkipChildren, nil
		case *east.TableHeader, *east.TableRow:
			var row []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				row = append(row, strings.TrimSpace(string(c.Text(source))))
			}
			if current != nil {
				current.rows = append(current.rows, row)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock:
			if current != nil {
				current.text = append(current.text, string(n.Text(source)))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("ast.Walk() error = %v", err)
	}
	return title, sections
}

func find(sections []*section, title string) *section {
	for _, s := range sections {
		if strings.EqualFold(s.title, title) {
			return s
		}
	}
	return nil
}

// sameRows compares table rows ignoring case, headers may be capitalized.
func sameRows(got, want [][]string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			return false
		}
		for j := range want[i] {
			if !strings.EqualFold(got[i][j], want[i][j]) {
				return false
			}
		}
	}
	return true
}

func report(t *testing.T) *kitty.Report {
	t.Helper()
	l := kitty.NewLedger("EUR")
	for _, m := range []string{"Alice", "Bob", "Carol"} {
		l.AddMember(m)
	}
	l.AddGroup("alice, bob")
	l.AddExpense(kitty.ExpenseRecord{Item: "Lunch", PaidBy: "Alice", Amount: "90", SplitBetween: "*"})
	l.AddExpense(kitty.ExpenseRecord{Item: "Taxi", PaidBy: "Bob", Amount: "12", SplitBetween: "bob, carol:2"})
	l.AddExpense(kitty.ExpenseRecord{Item: "Cake", PaidBy: "Carol", Amount: "free", SplitBetween: "*"})
	r, err := kitty.Compute(l)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	return r
}

func TestRenderReport(t *testing.T) {
	r := report(t)
	title, sections := parse(t, RenderReport(r, ReportRenderOptions{}))

	if title != "Kitty in EUR" {
		t.Errorf("title = %q, want %q", title, "Kitty in EUR")
	}
	var titles []string
	for _, s := range sections {
		titles = append(titles, s.title)
	}
	want := []string{"Splits", "Balances", "Subgroup Balances", "Subgroup Transfers", "Transfers", "Skipped Rows"}
	if strings.Join(titles, "|") != strings.Join(want, "|") {
		t.Errorf("sections = %q, want %q", titles, want)
	}

	testCases := []struct {
		section string
		rows    [][]string
	}{
		{
			section: "Splits",
			rows: [][]string{
				{"Item", "Alice", "Bob", "Carol"},
				{"Lunch", "+€60.00", "-€30.00", "-€30.00"},
				{"Taxi", "", "+€8.00", "-€8.00"},
				{"Total", "+€60.00", "-€22.00", "-€38.00"},
			},
		},
		{
			section: "Balances",
			rows:    [][]string{{"Member", "Balance"}, {"Alice", "+€60.00"}, {"Bob", "-€22.00"}, {"Carol", "-€38.00"}},
		},
		{
			section: "Subgroup Balances",
			rows:    [][]string{{"Subgroup", "Balance"}, {"Alice, Bob", "+€38.00"}, {"Carol", "-€38.00"}},
		},
		{
			section: "Subgroup Transfers",
			rows:    [][]string{{"From", "To", "Amount"}, {"Carol", "Alice, Bob", "€38.00"}},
		},
		{
			section: "Transfers",
			rows:    [][]string{{"From", "To", "Amount"}, {"Carol", "Alice", "€38.00"}, {"Bob", "Alice", "€22.00"}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.section, func(t *testing.T) {
			s := find(sections, tc.section)
			if s == nil {
				t.Fatalf("section %q not found", tc.section)
			}
			if !sameRows(s.rows, tc.rows) {
				t.Errorf("section %q rows = %q, want %q", tc.section, s.rows, tc.rows)
			}
		})
	}

	skipped := find(sections, "Skipped Rows")
	if skipped == nil || len(skipped.text) != 1 || !strings.Contains(skipped.text[0], "row 3 (Cake)") {
		t.Errorf("skipped rows = %+v, want the Cake row", skipped)
	}
}

func TestRenderReport_Options(t *testing.T) {
	r := report(t)
	_, sections := parse(t, RenderReport(r, ReportRenderOptions{SkipSplits: true, SkipSubgroups: true}))
	for _, s := range sections {
		if strings.HasPrefix(s.title, "Subgroup") || s.title == "Splits" {
			t.Errorf("section %q rendered, want it skipped", s.title)
		}
	}
	if find(sections, "Transfers") == nil {
		t.Error("Transfers section is missing")
	}
}

func TestRenderTransfers_Settled(t *testing.T) {
	l := kitty.NewLedger("EUR")
	l.AddMember("alice")
	l.AddExpense(kitty.ExpenseRecord{Item: "Book", PaidBy: "alice", Amount: "20", SplitBetween: "alice"})
	r, err := kitty.Compute(l)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	_, sections := parse(t, RenderTransfers(r, false))
	s := find(sections, "Transfers")
	if s == nil || len(s.rows) != 0 || len(s.text) != 1 || !strings.Contains(s.text[0], "settled") {
		t.Errorf("RenderTransfers() = %+v, want a settled note", s)
	}
}

func TestRender_Empty(t *testing.T) {
	r, err := kitty.Compute(kitty.NewLedger(""))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if got := RenderBalances(r); got != "" {
		t.Errorf("RenderBalances() = %q, want nothing for an empty report", got)
	}
	if got := RenderTransfers(r, true); got != "" {
		t.Errorf("RenderTransfers() = %q, want nothing for an empty report", got)
	}
}
