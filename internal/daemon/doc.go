// Package daemon owns the batchprint process lifecycle: single-instance
// enforcement via a lock file, supervisor startup, and ordered shutdown.
package daemon
