package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gofrs/flock"

	"batchprint/internal/config"
	"batchprint/internal/ledger"
	"batchprint/internal/logging"
	"batchprint/internal/supervisor"
)

// Daemon runs the hot folder pipeline and enforces single-instance execution.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	journal    *ledger.Store
	supervisor *supervisor.Supervisor

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, journal *ledger.Store, sup *supervisor.Supervisor, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || journal == nil || sup == nil || logger == nil {
		return nil, errors.New("daemon requires config, ledger, supervisor, and logger")
	}

	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		journal:    journal,
		supervisor: sup,
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and launches the supervisor.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another batchprint instance is already running")
	}

	if err := d.supervisor.Start(ctx); err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("start supervisor: %w", err)
	}

	d.running.Store(true)
	d.logger.Info("daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts the supervisor down and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	d.supervisor.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("daemon stopped")
}

// Close stops the daemon and releases the ledger.
func (d *Daemon) Close() error {
	d.Stop()
	if d.journal != nil {
		return d.journal.Close()
	}
	return nil
}

// Running reports whether the pipeline is active.
func (d *Daemon) Running() bool {
	return d.running.Load()
}
