package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/kitty"
	"github.com/etnz/kitty/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	json          bool
	skipSplits    bool
	skipSubgroups bool
	skipMembers   bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the splits, balances and transfers of the kitty" }
func (*reportCmd) Usage() string {
	return `kitty report [-json] [-no-splits] [-no-subgroups] [-no-members]

  Displays every table of the kitty: how each item is split between members,
  member and subgroup balances, and the transfers that settle them.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the report as JSON")
	f.BoolVar(&c.skipSplits, "no-splits", false, "Do not display the split of each item")
	f.BoolVar(&c.skipSubgroups, "no-subgroups", false, "Do not display subgroup balances and transfers")
	f.BoolVar(&c.skipMembers, "no-members", false, "Do not display member balances and transfers")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := ComputeReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		if err := kitty.EncodeReport(stdout, r); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderReport(r, renderer.ReportRenderOptions{
		SkipSplits:    c.skipSplits,
		SkipSubgroups: c.skipSubgroups,
		SkipMembers:   c.skipMembers,
	}))
	return subcommands.ExitSuccess
}

type balancesCmd struct{}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "display member and subgroup balances" }
func (*balancesCmd) Usage() string {
	return `kitty balances

  Displays the net balance of each member and subgroup: positive balances are
  owed money, negative balances owe money.
`
}

func (*balancesCmd) SetFlags(f *flag.FlagSet) {}

func (*balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := ComputeReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderBalances(r))
	return subcommands.ExitSuccess
}

// transfersCmd holds the flags for the 'transfers' subcommand.
type transfersCmd struct {
	by     string
	member string
}

func (*transfersCmd) Name() string     { return "transfers" }
func (*transfersCmd) Synopsis() string { return "display who pays whom to settle the kitty" }
func (*transfersCmd) Usage() string {
	return `kitty transfers [-by member|group] [-m <member>]

  Displays the transfers that settle every balance, between members or between
  subgroups. With -m, only the transfers of one member are listed.
`
}

func (c *transfersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.by, "by", "member", "Settle between 'member' or 'group'")
	f.StringVar(&c.member, "m", "", "Only list the transfers of this member")
}

func (c *transfersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.by != "member" && c.by != "group" {
		fmt.Fprintf(os.Stderr, "Error: -by must be 'member' or 'group', got %q\n", c.by)
		return subcommands.ExitUsageError
	}
	if c.member != "" && c.by == "group" {
		fmt.Fprintln(os.Stderr, "Error: -m only applies to transfers between members")
		return subcommands.ExitUsageError
	}

	r, err := ComputeReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.member != "" {
		m, ok := kitty.Normalize(c.member)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: invalid member name %q\n", c.member)
			return subcommands.ExitUsageError
		}
		r.Transfers = r.TransfersOf(m)
	}
	printMarkdown(renderer.RenderTransfers(r, c.by == "group"))
	return subcommands.ExitSuccess
}
