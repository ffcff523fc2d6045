package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateHotFolders()
}

func (c *Config) validateWorkflow() error {
	if err := ensurePositiveMap(map[string]int{
		"workflow.poll_interval":         c.Workflow.PollInterval,
		"workflow.settle_delay_ms":       c.Workflow.SettleDelayMS,
		"workflow.stability_interval_ms": c.Workflow.StabilityIntervalMS,
		"workflow.stability_attempts":    c.Workflow.StabilityAttempts,
	}); err != nil {
		return err
	}
	if c.Workflow.PostSubmitPauseMS < 0 {
		return errors.New("workflow.post_submit_pause_ms must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateHotFolders() error {
	if len(c.HotFolders) == 0 {
		return errors.New("at least one [[hot_folders]] entry must be configured")
	}

	names := make(map[string]struct{}, len(c.HotFolders))
	for _, folder := range c.HotFolders {
		if folder.Name == "" {
			return errors.New("hot folder name must be set")
		}
		if _, dup := names[folder.Name]; dup {
			return fmt.Errorf("hot folder %q: name is not unique", folder.Name)
		}
		names[folder.Name] = struct{}{}

		if folder.SuccessDir == folder.WatchPath {
			return fmt.Errorf("hot folder %q: success_dir must differ from watch_path", folder.Name)
		}
		if folder.ErrorDir == folder.WatchPath {
			return fmt.Errorf("hot folder %q: error_dir must differ from watch_path", folder.Name)
		}
		if folder.SuccessDir == folder.ErrorDir {
			return fmt.Errorf("hot folder %q: success_dir and error_dir must differ", folder.Name)
		}
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
