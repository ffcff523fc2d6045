// Package processor drains a hot folder's pending set and drives each file
// through the per-cycle state machine: settle, readiness probe, dispatch to
// the print gateway, journal, relocate. Files are handled strictly
// sequentially in filename order; printers do not tolerate overlapping jobs
// and operators depend on the sequence.
package processor

import (
	"context"
	"log/slog"
	"time"

	"batchprint/internal/config"
	"batchprint/internal/intake"
	"batchprint/internal/ledger"
	"batchprint/internal/logging"
	"batchprint/internal/printing"
	"batchprint/internal/relocate"
	"batchprint/internal/stability"
)

// Timing bundles the fixed per-file delays of a drain pass.
type Timing struct {
	// SettleDelay runs before each file's readiness check so a file whose
	// creation event just fired has begun settling.
	SettleDelay time.Duration
	// PostSubmitPause runs after a successful submission so the spooler can
	// queue the job before the file moves away.
	PostSubmitPause time.Duration
}

// Processor owns one hot folder's drain-and-dispatch logic.
type Processor struct {
	folder   config.HotFolder
	queue    *intake.Queue
	prober   *stability.Prober
	gateway  printing.Gateway
	resolver printing.Resolver
	journal  *ledger.Store
	logger   *slog.Logger
	timing   Timing

	sleep func(ctx context.Context, d time.Duration) bool
}

// New constructs a processor for one hot folder.
func New(
	folder config.HotFolder,
	queue *intake.Queue,
	prober *stability.Prober,
	gateway printing.Gateway,
	resolver printing.Resolver,
	journal *ledger.Store,
	logger *slog.Logger,
	timing Timing,
) *Processor {
	return &Processor{
		folder:   folder,
		queue:    queue,
		prober:   prober,
		gateway:  gateway,
		resolver: resolver,
		journal:  journal,
		logger:   logging.NewComponentLogger(logger, "processor").With(logging.String(logging.FieldFolder, folder.Name)),
		timing:   timing,
		sleep:    sleepCtx,
	}
}

// Process runs one drain cycle: snapshot the pending set, then handle each
// surviving path in sorted order. Terminal outcomes remove the path from the
// pending set; NotReady leaves it for the next cycle.
func (p *Processor) Process(ctx context.Context) {
	for _, path := range p.queue.Drain() {
		p.ProcessOne(ctx, path)
	}
}

// ProcessOne drives a single pending file through the state machine and
// returns its outcome for this cycle.
func (p *Processor) ProcessOne(ctx context.Context, path string) Outcome {
	if !p.sleep(ctx, p.timing.SettleDelay) {
		return OutcomeNotReady
	}

	// A file printed on an earlier cycle whose relocation failed must not be
	// submitted again; only the move is retried.
	if prior, err := p.journal.PendingRelocation(ctx, path); err != nil {
		p.logger.Warn("ledger lookup failed", logging.String(logging.FieldSource, path), logging.Error(err))
	} else if prior != nil {
		p.queue.Remove(path)
		p.relocate(ctx, prior, path, p.folder.SuccessDir)
		return OutcomePrinted
	}

	if !p.prober.IsReady(ctx, path) {
		p.logger.Debug("file not ready, leaving pending", logging.String(logging.FieldSource, path))
		return OutcomeNotReady
	}

	printer := p.folder.Printer
	var submitErr error
	if printer == "" {
		if printer = p.resolver.DefaultPrinter(ctx); printer == "" {
			submitErr = printing.ErrNoPrinter
		}
	}
	if submitErr == nil {
		submitErr = p.gateway.Submit(ctx, path, printer)
	}

	// At most one dispatch attempt per readiness determination: the file
	// leaves the pending set whatever the gateway said.
	p.queue.Remove(path)

	if submitErr != nil {
		p.logger.Error("print failed",
			logging.String(logging.FieldSource, path),
			logging.String(logging.FieldPrinter, printer),
			logging.Error(submitErr),
		)
		entry := p.record(ctx, path, printer, ledger.OutcomeFailed, submitErr.Error())
		p.relocate(ctx, entry, path, p.folder.ErrorDir)
		return OutcomePrintFailed
	}

	p.logger.Info("file sent to printer",
		logging.String(logging.FieldSource, path),
		logging.String(logging.FieldPrinter, printer),
	)
	entry := p.record(ctx, path, printer, ledger.OutcomePrinted, "")
	p.sleep(ctx, p.timing.PostSubmitPause)
	p.relocate(ctx, entry, path, p.folder.SuccessDir)
	return OutcomePrinted
}

// record journals the dispatch before any relocation happens so a crash
// between print and move stays visible.
func (p *Processor) record(ctx context.Context, path, printer string, outcome ledger.Outcome, detail string) *ledger.Entry {
	entry, err := p.journal.Record(ctx, p.folder.Name, path, printer, outcome, detail)
	if err != nil {
		p.logger.Warn("ledger record failed",
			logging.String(logging.FieldSource, path),
			logging.String(logging.FieldOutcome, string(outcome)),
			logging.Error(err),
		)
		return nil
	}
	return entry
}

// relocate moves path into destDir and marks the ledger entry. A failed move
// is logged and the file stays where it is; for printed files the open ledger
// row guarantees the next cycle retries the move without reprinting.
func (p *Processor) relocate(ctx context.Context, entry *ledger.Entry, path, destDir string) {
	target, err := relocate.Move(path, destDir)
	if err != nil {
		p.logger.Error("relocation failed, file left in place",
			logging.String(logging.FieldSource, path),
			logging.String(logging.FieldDestination, destDir),
			logging.Error(err),
		)
		return
	}
	p.logger.Info("file relocated",
		logging.String(logging.FieldSource, path),
		logging.String(logging.FieldDestination, target),
	)
	if entry == nil {
		return
	}
	if err := p.journal.MarkRelocated(ctx, entry.ID, target); err != nil {
		p.logger.Warn("ledger relocation update failed",
			logging.String(logging.FieldSource, path),
			logging.Error(err),
		)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
