// Package renderer renders kitty reports as markdown.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/kitty"
	md "github.com/nao1215/markdown"
)

// ReportRenderOptions holds configuration for rendering a report.
type ReportRenderOptions struct {
	SkipSplits    bool // Do not render the per item split matrix.
	SkipSubgroups bool // Do not render subgroup balances and transfers.
	SkipMembers   bool // Do not render member balances and transfers.
}

// RenderReport renders every table of a report to a markdown string.
func RenderReport(r *kitty.Report, opts ReportRenderOptions) string {
	var b strings.Builder
	ConditionalBlock(&b, func(w io.Writer) bool { return renderTitle(w, r) })
	if !opts.SkipSplits {
		ConditionalBlock(&b, func(w io.Writer) bool { return renderSplits(w, r) })
	}
	if !opts.SkipMembers {
		ConditionalBlock(&b, func(w io.Writer) bool { return renderBalances(w, r) })
	}
	if !opts.SkipSubgroups {
		ConditionalBlock(&b, func(w io.Writer) bool { return renderGroupBalances(w, r) })
		ConditionalBlock(&b, func(w io.Writer) bool { return renderGroupTransfers(w, r) })
	}
	if !opts.SkipMembers {
		ConditionalBlock(&b, func(w io.Writer) bool { return renderTransfers(w, r) })
	}
	ConditionalBlock(&b, func(w io.Writer) bool { return renderSkipped(w, r) })
	return b.String()
}

// RenderBalances renders the member and subgroup balance tables.
func RenderBalances(r *kitty.Report) string {
	var b strings.Builder
	ConditionalBlock(&b, func(w io.Writer) bool { return renderBalances(w, r) })
	ConditionalBlock(&b, func(w io.Writer) bool { return renderGroupBalances(w, r) })
	return b.String()
}

// RenderTransfers renders the transfers between subgroups, or between members.
func RenderTransfers(r *kitty.Report, bySubgroup bool) string {
	var b strings.Builder
	if bySubgroup {
		ConditionalBlock(&b, func(w io.Writer) bool { return renderGroupTransfers(w, r) })
	} else {
		ConditionalBlock(&b, func(w io.Writer) bool { return renderTransfers(w, r) })
	}
	return b.String()
}

func renderTitle(w io.Writer, r *kitty.Report) bool {
	doc := md.NewMarkdown(w)
	doc.H1(fmt.Sprintf("Kitty in %s", r.Currency))
	doc.PlainText(fmt.Sprintf("%d members, %d items, %d transfers to settle.",
		len(r.Members), len(r.Splits.Items()), len(r.Transfers)))
	return build(doc)
}

func renderSplits(w io.Writer, r *kitty.Report) bool {
	items := r.Splits.Items()
	if len(items) == 0 || len(r.Members) == 0 {
		return false
	}
	header := []string{"Item"}
	for _, m := range r.Members {
		header = append(header, m.Title())
	}
	var rows [][]string
	for _, item := range items {
		row := []string{item}
		for _, m := range r.Members {
			cell := ""
			if r.Splits.Involved(item, m) {
				cell = signed(r.Splits.Share(item, m))
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	total := []string{md.Bold("Total")}
	for _, m := range r.Members {
		total = append(total, md.Bold(signed(r.Splits.Total(m))))
	}
	rows = append(rows, total)

	doc := md.NewMarkdown(w)
	doc.H2("Splits")
	doc.Table(md.TableSet{Header: header, Rows: rows})
	return build(doc)
}

func renderBalances(w io.Writer, r *kitty.Report) bool {
	if len(r.Balances) == 0 {
		return false
	}
	var rows [][]string
	for _, b := range r.Balances {
		rows = append(rows, []string{b.Key.Title(), signed(b.Amount)})
	}
	doc := md.NewMarkdown(w)
	doc.H2("Balances")
	doc.Table(md.TableSet{Header: []string{"Member", "Balance"}, Rows: rows})
	return build(doc)
}

func renderGroupBalances(w io.Writer, r *kitty.Report) bool {
	if len(r.GroupBalances) == 0 {
		return false
	}
	var rows [][]string
	for _, b := range r.GroupBalances {
		rows = append(rows, []string{b.Key.Title(), signed(b.Amount)})
	}
	doc := md.NewMarkdown(w)
	doc.H2("Subgroup Balances")
	doc.Table(md.TableSet{Header: []string{"Subgroup", "Balance"}, Rows: rows})
	return build(doc)
}

// transferTable renders a list of transfers, or a settled note when empty.
func transferTable[K interface {
	comparable
	Title() string
}](w io.Writer, title string, transfers []kitty.Transfer[K]) bool {
	doc := md.NewMarkdown(w)
	doc.H2(title)
	if len(transfers) == 0 {
		doc.PlainText("Everyone is settled, nothing to pay.")
		return build(doc)
	}
	var rows [][]string
	for _, t := range transfers {
		rows = append(rows, []string{t.From.Title(), t.To.Title(), amount(t.Amount)})
	}
	doc.Table(md.TableSet{Header: []string{"From", "To", "Amount"}, Rows: rows})
	return build(doc)
}

func renderGroupTransfers(w io.Writer, r *kitty.Report) bool {
	if len(r.GroupBalances) == 0 {
		return false
	}
	return transferTable(w, "Subgroup Transfers", r.GroupTransfers)
}

func renderTransfers(w io.Writer, r *kitty.Report) bool {
	if len(r.Balances) == 0 {
		return false
	}
	return transferTable(w, "Transfers", r.Transfers)
}

func renderSkipped(w io.Writer, r *kitty.Report) bool {
	if len(r.Skipped) == 0 && len(r.Rejected) == 0 {
		return false
	}
	var lines []string
	for _, e := range r.Skipped {
		lines = append(lines, e.Error())
	}
	for _, name := range r.Rejected {
		lines = append(lines, fmt.Sprintf("member %q: %v", name, kitty.ErrInvalidName))
	}
	doc := md.NewMarkdown(w)
	doc.H2("Skipped Rows")
	doc.BulletList(lines...)
	return build(doc)
}
