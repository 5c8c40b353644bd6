package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

// withFlags overrides the global flags for the duration of the test.
func withFlags(t *testing.T, ledger, cur string, verbose bool) {
	t.Helper()
	oldLedger, oldMapping, oldCurrency, oldVerbose, oldRaw := *ledgerFile, *mappingFile, *currency, *Verbose, *rawMarkdown
	*ledgerFile, *mappingFile, *currency, *Verbose, *rawMarkdown = ledger, "", cur, verbose, true
	t.Cleanup(func() {
		*ledgerFile, *mappingFile, *currency, *Verbose, *rawMarkdown = oldLedger, oldMapping, oldCurrency, oldVerbose, oldRaw
	})
}

// withStdout redirects the command outputs to w for the duration of the test.
func withStdout(t *testing.T, w io.Writer) {
	t.Helper()
	old := stdout
	stdout = w
	t.Cleanup(func() { stdout = old })
}

// createTempLedger writes content into a temporary file named name.
func createTempLedger(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

const tripLedger = `{"kind":"currency","code":"EUR"}
{"kind":"member","name":" Alice "}
{"kind":"member","name":"bob"}
{"kind":"member","name":"Carol"}
{"kind":"group","members":"Bob, alice"}
{"kind":"expense","item":"Lunch","paidBy":"Alice","amount":90,"splitBetween":"*"}
{"kind":"expense","item":"Taxi","paidBy":"","amount":12,"splitBetween":"*"}
`
