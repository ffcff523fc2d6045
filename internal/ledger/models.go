package ledger

import "time"

// Outcome is the terminal result of one dispatch attempt.
type Outcome string

const (
	OutcomePrinted Outcome = "printed"
	OutcomeFailed  Outcome = "failed"
)

// Entry is one dispatch record. RelocatedPath stays empty and RelocatedAt nil
// until the post-print move succeeds.
type Entry struct {
	ID            string
	Folder        string
	SourcePath    string
	Filename      string
	Printer       string
	Outcome       Outcome
	Detail        string
	RelocatedPath string
	CreatedAt     time.Time
	RelocatedAt   *time.Time
}

// RelocationPending reports whether the entry's file was printed but is still
// sitting at its original path.
func (e *Entry) RelocationPending() bool {
	return e.Outcome == OutcomePrinted && e.RelocatedAt == nil
}
