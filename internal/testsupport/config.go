// Package testsupport provides shared helpers for exercising the pipeline in
// tests: temp-directory configs, sized file writers, and a ledger opener.
package testsupport

import (
	"path/filepath"
	"testing"

	"batchprint/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config with one hot folder rooted in unique temp
// directories per test. Timings are collapsed so drain cycles run fast.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Workflow.PollInterval = 1
	cfgVal.Workflow.SettleDelayMS = 1
	cfgVal.Workflow.StabilityIntervalMS = 1
	cfgVal.Workflow.StabilityAttempts = 3
	cfgVal.Workflow.PostSubmitPauseMS = 1
	cfgVal.HotFolders = []config.HotFolder{newFolder(base, "inbox")}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("validate test config: %v", err)
	}
	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return builder.cfg
}

// WithPrinter sets an explicit printer on every hot folder.
func WithPrinter(printer string) ConfigOption {
	return func(b *configBuilder) {
		for i := range b.cfg.HotFolders {
			b.cfg.HotFolders[i].Printer = printer
		}
	}
}

// WithFolder appends another hot folder rooted in the test's temp directory.
func WithFolder(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.HotFolders = append(b.cfg.HotFolders, newFolder(b.baseDir, name))
	}
}

// newFolder builds a hot folder with the nested Success and Error defaults
// already resolved, matching what config loading produces.
func newFolder(base, name string) config.HotFolder {
	watch := filepath.Join(base, name)
	return config.HotFolder{
		Name:       name,
		WatchPath:  watch,
		SuccessDir: filepath.Join(watch, "Success"),
		ErrorDir:   filepath.Join(watch, "Error"),
	}
}
