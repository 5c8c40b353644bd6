// Package cmd implements the CLI application to settle a kitty.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/kitty"
	"github.com/etnz/kitty/sheet"
	"github.com/google/subcommands"
)

// Commands lists every subcommand of the application.
var Commands = []subcommands.Command{
	&reportCmd{},
	&balancesCmd{},
	&transfersCmd{},
	&checkCmd{},
	&fmtCmd{},
	&exportCmd{},
	&serveCmd{},
	&AssistCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
	c.Register(c.CommandsCommand(), "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile  = flag.String("ledger", "kitty.jsonl", "Path to the ledger: a JSONL ledger, a JSON document read through -mapping, or a CSV/XLSX spreadsheet. Use - for stdin.")
	mappingFile = flag.String("mapping", "", "Path to a JSON file of JSONPath expressions to read a JSON document ledger")
	currency    = flag.String("currency", "", "Currency code, overrides the ledger's one")
	Verbose     = flag.Bool("v", false, "Enable verbose logging")
	rawMarkdown = flag.Bool("markdown", false, "Print raw markdown instead of rendering it for the terminal")
)

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envFlags maps the environment variables to the global flags they set.
var envFlags = map[string]string{
	EnvLedgerFile:  "ledger",
	EnvMappingFile: "mapping",
	EnvCurrency:    "currency",
	EnvVerbose:     "v",
}

// ApplyEnv sets the global flags from the environment. It must be called
// before flag.Parse so that command line flags take precedence.
func ApplyEnv() error {
	for key, name := range envFlags {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		if err := flag.Set(name, v); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	return nil
}

// SetupLogging configures the default logger on stderr, at debug level in
// verbose mode. LOG_LEVEL can set the level too.
func SetupLogging() {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	if *Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DecodeLedger decodes the app ledger file, whatever its format.
func DecodeLedger() (*kitty.Ledger, error) {
	name := *ledgerFile
	var ledger *kitty.Ledger
	var err error
	switch {
	case name == "-":
		ledger, err = kitty.DecodeLedger(os.Stdin)
	case sheet.IsSpreadsheet(name):
		ledger, err = sheet.Open(name)
	case *mappingFile != "":
		ledger, err = decodeMapped(name, *mappingFile)
	default:
		ledger, err = decodeFile(name)
	}
	if err != nil {
		return nil, err
	}
	if *currency != "" {
		ledger.Currency = *currency
	}
	slog.Debug("ledger decoded", "file", name, "members", len(ledger.Members), "groups", len(ledger.Groups), "expenses", len(ledger.Expenses))
	return ledger, nil
}

func decodeFile(name string) (*kitty.Ledger, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return kitty.DecodeLedger(f)
}

func decodeMapped(name, mapping string) (*kitty.Ledger, error) {
	mf, err := os.Open(mapping)
	if err != nil {
		return nil, err
	}
	defer mf.Close()
	m, err := kitty.DecodeMapping(mf)
	if err != nil {
		return nil, fmt.Errorf("mapping %q: %w", mapping, err)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return kitty.DecodeMapped(f, m)
}

// ComputeReport decodes the app ledger and computes its report.
func ComputeReport() (*kitty.Report, error) {
	ledger, err := DecodeLedger()
	if err != nil {
		return nil, err
	}
	r, err := kitty.Compute(ledger)
	if err != nil {
		return nil, err
	}
	for _, name := range r.Rejected {
		slog.Warn("rejected member", "name", name, "reason", kitty.ErrInvalidName)
	}
	for _, skipped := range r.Skipped {
		slog.Warn("skipped expense", "row", skipped.Row, "item", skipped.Item, "reason", skipped.Err)
	}
	return r, nil
}

// markdownStyle is the glamour style used in the terminal.
const markdownStyle = "dark"

// renderMarkdown renders md for the terminal, md itself in raw mode or when
// rendering fails.
func renderMarkdown(md string) string {
	if *rawMarkdown {
		return md
	}
	out, err := glamour.Render(md, markdownStyle)
	if err != nil {
		slog.Warn("could not render markdown", "error", err)
		return md
	}
	return out
}

func printMarkdown(md string) {
	fmt.Fprint(stdout, renderMarkdown(md))
}
