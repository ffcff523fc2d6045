package supervisor_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"batchprint/internal/logging"
	"batchprint/internal/supervisor"
	"batchprint/internal/testsupport"
)

type recordingGateway struct {
	mu          sync.Mutex
	submissions []string
}

func (g *recordingGateway) Submit(_ context.Context, path, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submissions = append(g.submissions, path)
	return nil
}

func (g *recordingGateway) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.submissions)
}

type staticResolver struct{ name string }

func (r staticResolver) DefaultPrinter(context.Context) string { return r.name }

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestSupervisorProcessesPreexistingFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPrinter("Office-Laser"))
	folder := cfg.HotFolders[0]

	// The file predates the supervisor, so only the rescan backstop can find
	// it.
	path := filepath.Join(folder.WatchPath, "doc.pdf")
	testsupport.WriteFile(t, path, 256)

	journal := testsupport.MustOpenLedger(t, cfg)
	gateway := &recordingGateway{}
	sup := supervisor.New(cfg, journal, logging.NewNop(),
		supervisor.WithGateway(gateway),
		supervisor.WithResolver(staticResolver{}),
	)

	if err := sup.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer sup.Stop()

	moved := filepath.Join(folder.SuccessDir, "doc.pdf")
	if !waitFor(t, 5*time.Second, func() bool {
		_, err := os.Stat(moved)
		return err == nil
	}) {
		t.Fatal("pre-existing file was not processed")
	}
	if gateway.count() != 1 {
		t.Fatalf("submissions = %d, want 1", gateway.count())
	}
}

func TestSupervisorProcessesWatchedFile(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPrinter("Office-Laser"))
	folder := cfg.HotFolders[0]

	journal := testsupport.MustOpenLedger(t, cfg)
	gateway := &recordingGateway{}
	sup := supervisor.New(cfg, journal, logging.NewNop(),
		supervisor.WithGateway(gateway),
		supervisor.WithResolver(staticResolver{}),
	)

	if err := sup.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer sup.Stop()

	path := filepath.Join(folder.WatchPath, "late.pdf")
	testsupport.WriteFile(t, path, 256)

	moved := filepath.Join(folder.SuccessDir, "late.pdf")
	if !waitFor(t, 5*time.Second, func() bool {
		_, err := os.Stat(moved)
		return err == nil
	}) {
		t.Fatal("watched file was not processed")
	}
}

func TestSupervisorCoversEveryFolder(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithFolder("invoices"),
		testsupport.WithPrinter("Office-Laser"),
	)

	journal := testsupport.MustOpenLedger(t, cfg)
	gateway := &recordingGateway{}
	sup := supervisor.New(cfg, journal, logging.NewNop(),
		supervisor.WithGateway(gateway),
		supervisor.WithResolver(staticResolver{}),
	)

	for _, folder := range cfg.HotFolders {
		testsupport.WriteFile(t, filepath.Join(folder.WatchPath, "doc.pdf"), 256)
	}

	if err := sup.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer sup.Stop()

	for _, folder := range cfg.HotFolders {
		moved := filepath.Join(folder.SuccessDir, "doc.pdf")
		if !waitFor(t, 5*time.Second, func() bool {
			_, err := os.Stat(moved)
			return err == nil
		}) {
			t.Fatalf("folder %s was not drained", folder.Name)
		}
	}
}

func TestSupervisorStartStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	journal := testsupport.MustOpenLedger(t, cfg)
	sup := supervisor.New(cfg, journal, logging.NewNop(),
		supervisor.WithGateway(&recordingGateway{}),
		supervisor.WithResolver(staticResolver{}),
	)

	if err := sup.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := sup.Start(context.Background()); err == nil {
		t.Fatal("second Start should fail while running")
	}
	sup.Stop()
	sup.Stop()
}
