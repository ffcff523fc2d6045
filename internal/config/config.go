package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration shared by the daemon and CLI.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Workflow contains timing configuration for the drain loop and per-file
// processing delays. All values are interpreted as documented units.
type Workflow struct {
	PollInterval        int `toml:"poll_interval"`         // seconds between drain cycles
	SettleDelayMS       int `toml:"settle_delay_ms"`       // pause before each file's readiness check
	StabilityIntervalMS int `toml:"stability_interval_ms"` // gap between the two size samples
	StabilityAttempts   int `toml:"stability_attempts"`    // probe rounds per drain pass
	PostSubmitPauseMS   int `toml:"post_submit_pause_ms"`  // pause after a successful submission
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// HotFolder describes one watched directory and its print routing. Printer is
// optional; empty means the system default printer is resolved at dispatch
// time. SuccessDir and ErrorDir default to Success/ and Error/ under the
// watch path when left empty.
type HotFolder struct {
	Name       string `toml:"name"`
	WatchPath  string `toml:"watch_path"`
	Printer    string `toml:"printer"`
	SuccessDir string `toml:"success_dir"`
	ErrorDir   string `toml:"error_dir"`
}

// Config encapsulates all configuration values for batchprint.
type Config struct {
	Paths      Paths       `toml:"paths"`
	Workflow   Workflow    `toml:"workflow"`
	Logging    Logging     `toml:"logging"`
	HotFolders []HotFolder `toml:"hot_folders"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/batchprint/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file was actually found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	// Defaults alone carry no hot folders; validation only applies to a real
	// file so `config init` and `config show` still work before one exists.
	if exists {
		if err := cfg.Validate(); err != nil {
			return nil, "", false, err
		}
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("batchprint.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the daemon requires: the data and
// log directories plus every hot folder's watch, success, and error
// directories. Success and error directories exist before any file is
// processed, per the hot folder invariant.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir, c.Paths.LogDir}
	for _, folder := range c.HotFolders {
		dirs = append(dirs, folder.WatchPath, folder.SuccessDir, folder.ErrorDir)
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LedgerPath returns the location of the dispatch ledger database.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.Paths.DataDir, "ledger.db")
}

// LockPath returns the location of the single-instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "batchprint.lock")
}

// FolderByName returns the hot folder with the given name, or nil.
func (c *Config) FolderByName(name string) *HotFolder {
	for i := range c.HotFolders {
		if c.HotFolders[i].Name == name {
			return &c.HotFolders[i]
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
