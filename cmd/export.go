package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/kitty/sheet"
	"github.com/google/subcommands"
)

type exportCmd struct {
	outputFile string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the report as an Excel workbook" }
func (*exportCmd) Usage() string {
	return `kitty export [-o <file.xlsx>]

  Writes every table of the report into a workbook, one sheet per table:
  Splits, Balances, Subgroups, Subgroup Transfers, Transfers and Skipped.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputFile, "o", "kitty.xlsx", "Path of the workbook to write")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := ComputeReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(c.outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.outputFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := sheet.WriteReport(out, r); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing workbook %q: %v\n", c.outputFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Report written to %s\n", c.outputFile)
	return subcommands.ExitSuccess
}
