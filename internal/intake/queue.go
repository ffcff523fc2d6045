// Package intake tracks the files a hot folder has observed but not yet
// processed. The pending set deduplicates repeated creation notifications and
// hands the processor an ordered snapshot at drain time.
package intake

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Queue is one hot folder's pending set. Observe runs on the watcher
// goroutine while Drain and Remove run on the driver loop, so every operation
// takes the mutex.
type Queue struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{pending: make(map[string]struct{})}
}

// Observe adds path to the pending set and reports whether it was newly
// added. Duplicate notifications for the same path collapse to one entry.
func (q *Queue) Observe(path string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.pending[path]; ok {
		return false
	}
	q.pending[path] = struct{}{}
	return true
}

// Drain returns a snapshot of all pending paths whose backing file still
// exists, sorted ascending by filename (not full path) in byte order. Entries
// whose file vanished are dropped from the set without error: the file is
// simply no longer ours to process.
func (q *Queue) Drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	paths := make([]string, 0, len(q.pending))
	for path := range q.pending {
		if _, err := os.Stat(path); err != nil {
			delete(q.pending, path)
			continue
		}
		paths = append(paths, path)
	}

	sort.Slice(paths, func(i, j int) bool {
		ni, nj := filepath.Base(paths[i]), filepath.Base(paths[j])
		if ni != nj {
			return ni < nj
		}
		return paths[i] < paths[j]
	})
	return paths
}

// Remove deletes path from the pending set. Removing an absent path is a
// no-op.
func (q *Queue) Remove(path string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, path)
}

// Contains reports whether path is currently pending.
func (q *Queue) Contains(path string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.pending[path]
	return ok
}

// Len returns the number of pending entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
