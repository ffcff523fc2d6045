package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// normalize expands user paths, trims whitespace, and fills per-folder
// defaults so validation and runtime code only ever see absolute paths.
func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return err
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	for i := range c.HotFolders {
		folder := &c.HotFolders[i]
		folder.Name = strings.TrimSpace(folder.Name)
		folder.Printer = strings.TrimSpace(folder.Printer)

		folder.WatchPath = strings.TrimSpace(folder.WatchPath)
		if folder.WatchPath == "" {
			return fmt.Errorf("hot folder %q: watch_path must be set", folder.Name)
		}
		if folder.WatchPath, err = expandPath(folder.WatchPath); err != nil {
			return err
		}

		if strings.TrimSpace(folder.SuccessDir) == "" {
			folder.SuccessDir = filepath.Join(folder.WatchPath, "Success")
		}
		if folder.SuccessDir, err = expandPath(strings.TrimSpace(folder.SuccessDir)); err != nil {
			return err
		}

		if strings.TrimSpace(folder.ErrorDir) == "" {
			folder.ErrorDir = filepath.Join(folder.WatchPath, "Error")
		}
		if folder.ErrorDir, err = expandPath(strings.TrimSpace(folder.ErrorDir)); err != nil {
			return err
		}
	}
	return nil
}
