// Package supervisor wires the per-folder pipeline together and runs the
// drain loop. Each hot folder gets its own intake queue, watcher, and
// processor; a single goroutine sweeps every folder in configuration order on
// each poll tick so dispatches never overlap.
package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"batchprint/internal/config"
	"batchprint/internal/intake"
	"batchprint/internal/ledger"
	"batchprint/internal/logging"
	"batchprint/internal/printing"
	"batchprint/internal/processor"
	"batchprint/internal/stability"
	"batchprint/internal/watcher"
)

// unit holds the pipeline pieces for one hot folder.
type unit struct {
	folder    config.HotFolder
	queue     *intake.Queue
	watcher   *watcher.Watcher
	processor *processor.Processor
}

// Supervisor coordinates watchers and the drain loop for all hot folders.
type Supervisor struct {
	cfg          *config.Config
	logger       *slog.Logger
	units        []*unit
	pollInterval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Option configures optional Supervisor behavior.
type Option func(*options)

type options struct {
	gateway  printing.Gateway
	resolver printing.Resolver
}

// WithGateway injects a custom print gateway (used in tests).
func WithGateway(gateway printing.Gateway) Option {
	return func(o *options) {
		if gateway != nil {
			o.gateway = gateway
		}
	}
}

// WithResolver injects a custom default-printer resolver (used in tests).
func WithResolver(resolver printing.Resolver) Option {
	return func(o *options) {
		if resolver != nil {
			o.resolver = resolver
		}
	}
}

// New constructs a supervisor for every hot folder in cfg.
func New(cfg *config.Config, journal *ledger.Store, logger *slog.Logger, opts ...Option) *Supervisor {
	settings := options{
		gateway:  printing.NewGateway(),
		resolver: printing.NewResolver(),
	}
	for _, opt := range opts {
		opt(&settings)
	}

	prober := stability.New(
		time.Duration(cfg.Workflow.StabilityIntervalMS)*time.Millisecond,
		cfg.Workflow.StabilityAttempts,
	)
	timing := processor.Timing{
		SettleDelay:     time.Duration(cfg.Workflow.SettleDelayMS) * time.Millisecond,
		PostSubmitPause: time.Duration(cfg.Workflow.PostSubmitPauseMS) * time.Millisecond,
	}

	s := &Supervisor{
		cfg:          cfg,
		logger:       logging.NewComponentLogger(logger, "supervisor"),
		pollInterval: time.Duration(cfg.Workflow.PollInterval) * time.Second,
	}
	for _, folder := range cfg.HotFolders {
		queue := intake.New()
		s.units = append(s.units, &unit{
			folder:    folder,
			queue:     queue,
			watcher:   watcher.New(folder, queue, logger),
			processor: processor.New(folder, queue, prober, settings.gateway, settings.resolver, journal, logger, timing),
		})
	}
	return s
}

// Start launches all folder watchers and the drain loop.
func (s *Supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("supervisor already running")
	}
	if len(s.units) == 0 {
		return errors.New("no hot folders configured")
	}

	// Watch, success, and error directories must exist before the first file
	// is processed.
	if err := s.cfg.EnsureDirectories(); err != nil {
		return err
	}

	for i, u := range s.units {
		if err := u.watcher.Start(); err != nil {
			for _, started := range s.units[:i] {
				started.watcher.Stop()
			}
			return err
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.wg.Add(1)
	go s.run(runCtx)

	s.logger.Info("supervisor started",
		logging.Int("folders", len(s.units)),
		logging.Duration("poll_interval", s.pollInterval),
	)
	return nil
}

// Stop shuts the pipeline down in order: watchers first so no new events
// arrive, then the drain loop. An in-progress drain cycle runs to completion;
// files are never abandoned mid-dispatch.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	s.running = false
	s.cancel = nil
	s.mu.Unlock()

	for _, u := range s.units {
		u.watcher.Stop()
	}
	cancel()
	s.wg.Wait()
	s.logger.Info("supervisor stopped")
}

func (s *Supervisor) run(ctx context.Context) {
	defer s.wg.Done()

	// Dispatch work is shielded from cancellation so shutdown lets the
	// current drain cycle finish cleanly.
	drainCtx := context.WithoutCancel(ctx)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.sweep(drainCtx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(drainCtx)
		}
	}
}

// sweep runs one full cycle over every folder: rescan the directory as a
// backstop for missed events, then drain the pending set.
func (s *Supervisor) sweep(ctx context.Context) {
	for _, u := range s.units {
		s.rescan(u)
		u.processor.Process(ctx)
	}
}

// rescan folds every regular file sitting directly in the watch path into the
// intake queue. Files whose events were dropped or that predate the daemon
// are picked up here.
func (s *Supervisor) rescan(u *unit) {
	entries, err := os.ReadDir(u.folder.WatchPath)
	if err != nil {
		s.logger.Warn("rescan failed",
			logging.String(logging.FieldFolder, u.folder.Name),
			logging.Error(err),
		)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if info, err := entry.Info(); err != nil || !info.Mode().IsRegular() {
			continue
		}
		path := filepath.Join(u.folder.WatchPath, entry.Name())
		if u.queue.Observe(path) {
			s.logger.Info("file observed by rescan",
				logging.String(logging.FieldFolder, u.folder.Name),
				logging.String(logging.FieldSource, path),
			)
		}
	}
}
