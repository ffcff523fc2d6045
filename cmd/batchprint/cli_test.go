package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTestConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	body := `
[paths]
data_dir = "` + filepath.Join(base, "data") + `"
log_dir = "` + filepath.Join(base, "logs") + `"

[[hot_folders]]
name = "inbox"
watch_path = "` + filepath.Join(base, "inbox") + `"
`
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("output = %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite must refuse.
	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite init: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	path := writeTestConfig(t)

	out, err := runCLI(t, "--config", path, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("output = %q", out)
	}
}

func TestConfigValidateMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.toml")
	if _, err := runCLI(t, "--config", missing, "config", "validate"); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestConfigShowListsFolders(t *testing.T) {
	path := writeTestConfig(t)

	out, err := runCLI(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "inbox") {
		t.Fatalf("output missing folder: %q", out)
	}
	if !strings.Contains(out, "(system default)") {
		t.Fatalf("output missing printer default marker: %q", out)
	}
}

func TestLedgerListEmpty(t *testing.T) {
	path := writeTestConfig(t)

	out, err := runCLI(t, "--config", path, "ledger", "list")
	if err != nil {
		t.Fatalf("ledger list: %v", err)
	}
	if !strings.Contains(out, "No dispatches recorded") {
		t.Fatalf("output = %q", out)
	}
}

func TestLedgerStatsEmpty(t *testing.T) {
	path := writeTestConfig(t)

	out, err := runCLI(t, "--config", path, "ledger", "stats")
	if err != nil {
		t.Fatalf("ledger stats: %v", err)
	}
	if !strings.Contains(out, "printed") || !strings.Contains(out, "failed") {
		t.Fatalf("output = %q", out)
	}
}
