package docs

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/kitty"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ledgerBlock is the info string of fenced blocks holding a JSONL ledger.
const ledgerBlock = "jsonl ledger"

func TestTopics(t *testing.T) {
	// This test ensures that the documentation is in sync with the code.
	// It checks two things:
	// 1. Every topic listed in docs/readme.md can be loaded.
	// 2. Every .md file in the docs directory (excluding readme.md itself) is listed in docs/readme.md.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(topicsInReadme, topic) {
			t.Errorf("topic %q is not listed in docs/readme.md", topic)
		}
	}
}

func TestGetTopic(t *testing.T) {
	if _, err := GetTopic("nope"); err == nil {
		t.Error(`GetTopic("nope") succeeded, want an error`)
	}
	all, err := GetTopic("*")
	if err != nil {
		t.Fatalf(`GetTopic("*") error = %v`, err)
	}
	if !strings.Contains(all, "# Settlement") || strings.Contains(all, "# kitty") {
		t.Error(`GetTopic("*") should hold every topic but the readme`)
	}
}

// TestLedgerBlocks checks that every ledger example of the documentation
// decodes and computes a consistent report.
func TestLedgerBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		for _, block := range parseLedgerBlocks(t, file) {
			t.Run(filepath.Base(file), func(t *testing.T) {
				l, err := kitty.DecodeLedger(strings.NewReader(block))
				if err != nil {
					t.Fatalf("%s: DecodeLedger() error = %v", file, err)
				}
				r, err := kitty.Compute(l)
				if err != nil {
					t.Fatalf("%s: Compute() error = %v", file, err)
				}
				if len(r.Skipped) > 0 {
					t.Errorf("%s: example has skipped rows: %v", file, r.Skipped)
				}
				if err := r.Check(); err != nil {
					t.Errorf("%s: Check() = %v", file, err)
				}
			})
		}
	}
}

// parseLedgerBlocks returns the content of the ledger fenced blocks of a markdown file.
func parseLedgerBlocks(t *testing.T, file string) []string {
	t.Helper()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var blocks []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil || string(fcb.Info.Segment.Value(content)) != ledgerBlock {
			return ast.WalkContinue, nil
		}
		var b bytes.Buffer
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(content))
		}
		blocks = append(blocks, b.String())
		return ast.WalkContinue, nil
	})
	return blocks
}
