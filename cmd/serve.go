package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/etnz/kitty/api"
	"github.com/google/subcommands"
)

type serveCmd struct {
	bind    string
	origins string
	check   bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve settlements over HTTP" }
func (*serveCmd) Usage() string {
	return `kitty serve [-bind <addr>] [-origins <list>] [-check]

  Starts an HTTP responder computing reports for posted ledgers:

    GET  /api/health       health check
    POST /api/settle       JSON report
    POST /api/settle.md    markdown report
    POST /api/settle.xlsx  Excel workbook

  The body is a JSONL ledger, or a JSON ledger document when the
  Content-Type is application/json.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.bind, "bind", envOr("KITTY_BIND", ":8080"), "Address to listen on")
	f.StringVar(&c.origins, "origins", os.Getenv("KITTY_ORIGINS"), "Comma separated list of CORS allowed origins, all by default")
	f.BoolVar(&c.check, "check", false, "Verify every report before responding")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := api.Config{Bind: c.bind, Check: c.check}
	for _, o := range strings.Split(c.origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.Origins = append(cfg.Origins, o)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.New(cfg).Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
