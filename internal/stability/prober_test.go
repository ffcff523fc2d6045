package stability_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"batchprint/internal/stability"
	"batchprint/internal/testsupport"
)

func noSleep(context.Context, time.Duration) bool { return true }

func TestIsReadyStableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	testsupport.WriteFile(t, path, 4096)

	prober := stability.New(time.Millisecond, 3, stability.WithSleep(noSleep))
	if !prober.IsReady(context.Background(), path) {
		t.Fatal("stable non-empty file should be ready")
	}
}

func TestIsReadyEmptyFileNeverReady(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	prober := stability.New(time.Millisecond, 3, stability.WithSleep(noSleep))
	if prober.IsReady(context.Background(), path) {
		t.Fatal("zero-byte file must not be ready")
	}
}

func TestIsReadyGrowingFileSettlesWithinAttempts(t *testing.T) {
	// Sizes sampled pairwise per attempt: (1,2) differ, (2,3) differ, (3,3)
	// match on the final attempt.
	sizes := []int64{1, 2, 2, 3, 3, 3}
	idx := 0
	sampler := func(string) (int64, error) {
		size := sizes[idx]
		if idx < len(sizes)-1 {
			idx++
		}
		return size, nil
	}

	prober := stability.New(time.Millisecond, 3,
		stability.WithFileSize(sampler),
		stability.WithSleep(noSleep),
	)
	if !prober.IsReady(context.Background(), "growing.pdf") {
		t.Fatal("file that settles within the attempt budget should be ready")
	}
}

func TestIsReadyGivesUpAfterAttempts(t *testing.T) {
	size := int64(0)
	sampler := func(string) (int64, error) {
		size++
		return size, nil
	}

	calls := 0
	countingSleep := func(context.Context, time.Duration) bool {
		calls++
		return true
	}

	prober := stability.New(time.Millisecond, 3,
		stability.WithFileSize(sampler),
		stability.WithSleep(countingSleep),
	)
	if prober.IsReady(context.Background(), "still-growing.pdf") {
		t.Fatal("ever-growing file must not be ready")
	}
	if calls != 3 {
		t.Fatalf("sleep called %d times, want one per attempt (3)", calls)
	}
}

func TestIsReadyDetectsGrowthOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copying.pdf")
	testsupport.WriteFile(t, path, 10)

	// Grow the file during every inter-sample gap, like a copy in progress.
	grow := func(context.Context, time.Duration) bool {
		testsupport.AppendBytes(t, path, 10)
		return true
	}

	prober := stability.New(time.Millisecond, 3, stability.WithSleep(grow))
	if prober.IsReady(context.Background(), path) {
		t.Fatal("file growing on disk must not be ready")
	}
}

func TestIsReadyStatErrorFailsImmediately(t *testing.T) {
	sampler := func(string) (int64, error) {
		return 0, errors.New("stat failed")
	}

	prober := stability.New(time.Millisecond, 3,
		stability.WithFileSize(sampler),
		stability.WithSleep(func(context.Context, time.Duration) bool {
			t.Fatal("should not sleep after a stat error")
			return false
		}),
	)
	if prober.IsReady(context.Background(), "gone.pdf") {
		t.Fatal("unreadable file must not be ready")
	}
}
