package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	tempDir := t.TempDir()

	script := fmt.Sprintf("#!/bin/sh\necho \"args=$*\"\necho \"%s=$%s\"\necho \"%s=$%s\"\necho \"%s=$%s\"\n",
		EnvLedgerFile, EnvLedgerFile, EnvCurrency, EnvCurrency, EnvVerbose, EnvVerbose)
	if err := os.WriteFile(filepath.Join(tempDir, "kitty-hello"), []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write kitty-hello: %v", err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	expectedLedgerFile := filepath.Join(tempDir, "trip.jsonl")
	expectedCurrency := "JPY"
	withFlags(t, expectedLedgerFile, expectedCurrency, true)

	var out bytes.Buffer
	withStdout(t, &out)

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found {
		t.Fatal("RunExtension() did not find kitty-hello")
	}
	if code != 0 {
		t.Fatalf("RunExtension() exit code = %d, want 0", code)
	}

	output := out.String()
	for _, expectedLine := range []string{
		"args=a b",
		EnvLedgerFile + "=" + expectedLedgerFile,
		EnvCurrency + "=" + expectedCurrency,
		EnvVerbose + "=" + strconv.FormatBool(true),
	} {
		if !strings.Contains(output, expectedLine) {
			t.Errorf("Expected output to contain %q, but got:\n%s", expectedLine, output)
		}
	}
}

func TestExtensionExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "kitty-fail"), []byte("#!/bin/sh\nexit 3\n"), 0755); err != nil {
		t.Fatalf("Failed to write kitty-fail: %v", err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	found, code := RunExtension("fail", nil)
	if !found || code != 3 {
		t.Errorf("RunExtension() = (%v, %d), want (true, 3)", found, code)
	}
}

func TestExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, _ := RunExtension("does-not-exist", nil); found {
		t.Error("RunExtension() found a missing extension")
	}
}
