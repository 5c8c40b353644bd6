package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/kitty"
	"github.com/etnz/kitty/sheet"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	outputFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "formats the ledger into a canonical JSONL ledger"
}
func (*fmtCmd) Usage() string {
	return `kitty fmt [-o <file>]

  Formats the ledger: member names are normalized and deduplicated, subgroup
  members sorted, split specifiers rewritten with normalized names and unit
  weights omitted. Invalid expenses are kept as is.

  A JSONL ledger is rewritten in place. Other inputs (spreadsheets, mapped
  JSON documents) are converted and printed, unless -o is given.

Usage Examples:
# Rewrites the default ledger file.
$ kitty fmt

# Converts a spreadsheet into a JSONL ledger.
$ kitty -ledger trip.xlsx fmt -o trip.jsonl
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.outputFile, "o", "", "Output file. Defaults to the ledger file itself for JSONL ledgers, stdout otherwise.")
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	var b bytes.Buffer
	if err := kitty.EncodeLedger(&b, ledger.Fmt()); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	output := p.outputFile
	if output == "" && *ledgerFile != "-" && *mappingFile == "" && !sheet.IsSpreadsheet(*ledgerFile) {
		output = *ledgerFile
	}
	if output == "" {
		stdout.Write(b.Bytes())
		return subcommands.ExitSuccess
	}

	if err := os.WriteFile(output, b.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Ledger file '%s' has been formatted.\n", output)
	return subcommands.ExitSuccess
}
