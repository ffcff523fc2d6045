package intake_test

import (
	"os"
	"path/filepath"
	"testing"

	"batchprint/internal/intake"
	"batchprint/internal/testsupport"
)

func TestObserveDeduplicates(t *testing.T) {
	q := intake.New()

	if !q.Observe("/tmp/a.pdf") {
		t.Fatal("first observation should report new")
	}
	if q.Observe("/tmp/a.pdf") {
		t.Fatal("second observation should report already pending")
	}
	if q.Len() != 1 {
		t.Fatalf("Len = %d, want 1", q.Len())
	}
}

func TestDrainSortsByFilename(t *testing.T) {
	dir := t.TempDir()
	// Deliberately observed out of order; drain must return filename order.
	names := []string{"10_report.pdf", "2_report.pdf", "Invoice.pdf", "invoice.pdf"}
	for _, name := range names {
		testsupport.WriteFile(t, filepath.Join(dir, name), 8)
	}

	q := intake.New()
	q.Observe(filepath.Join(dir, "invoice.pdf"))
	q.Observe(filepath.Join(dir, "2_report.pdf"))
	q.Observe(filepath.Join(dir, "Invoice.pdf"))
	q.Observe(filepath.Join(dir, "10_report.pdf"))

	got := q.Drain()
	// Byte order: digits before uppercase before lowercase, so "10" < "2".
	want := []string{
		filepath.Join(dir, "10_report.pdf"),
		filepath.Join(dir, "2_report.pdf"),
		filepath.Join(dir, "Invoice.pdf"),
		filepath.Join(dir, "invoice.pdf"),
	}
	if len(got) != len(want) {
		t.Fatalf("Drain returned %d paths, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Drain[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDrainDropsVanishedFiles(t *testing.T) {
	dir := t.TempDir()
	kept := filepath.Join(dir, "kept.pdf")
	gone := filepath.Join(dir, "gone.pdf")
	testsupport.WriteFile(t, kept, 8)
	testsupport.WriteFile(t, gone, 8)

	q := intake.New()
	q.Observe(kept)
	q.Observe(gone)

	if err := os.Remove(gone); err != nil {
		t.Fatalf("remove: %v", err)
	}

	got := q.Drain()
	if len(got) != 1 || got[0] != kept {
		t.Fatalf("Drain = %v, want [%s]", got, kept)
	}
	if q.Contains(gone) {
		t.Fatal("vanished file should leave the pending set")
	}
}

func TestDrainKeepsPendingEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	testsupport.WriteFile(t, path, 8)

	q := intake.New()
	q.Observe(path)

	if got := q.Drain(); len(got) != 1 {
		t.Fatalf("first drain = %v", got)
	}
	// Drain snapshots without consuming; removal is the processor's call.
	if got := q.Drain(); len(got) != 1 {
		t.Fatalf("second drain = %v, want file still pending", got)
	}

	q.Remove(path)
	if got := q.Drain(); len(got) != 0 {
		t.Fatalf("drain after remove = %v, want empty", got)
	}
}
