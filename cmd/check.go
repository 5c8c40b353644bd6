package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type checkCmd struct {
	strict bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the ledger and the settlement" }
func (*checkCmd) Usage() string {
	return `kitty check [-strict]

  Reads the ledger, lists the expense rows that cannot be used, and verifies
  that balances sum to zero and that the transfers settle every balance.
  With -strict, any skipped row is an error.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Fail when an expense row is skipped")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := ComputeReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, skipped := range r.Skipped {
		fmt.Fprintf(stdout, "skipped %v\n", skipped)
	}

	if err := r.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.strict && len(r.Skipped) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d expense rows skipped\n", len(r.Skipped))
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stdout, "%d members, %d items, %d transfers: ok\n", len(r.Members), len(r.Splits.Items()), len(r.Transfers))
	return subcommands.ExitSuccess
}
