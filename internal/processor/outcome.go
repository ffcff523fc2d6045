package processor

// Outcome is the result of attempting one pending file within a drain cycle.
type Outcome int

const (
	// OutcomeNotReady leaves the file pending for a later drain cycle.
	OutcomeNotReady Outcome = iota
	// OutcomePrinted is terminal: the file was submitted successfully and
	// routed to the success directory.
	OutcomePrinted
	// OutcomePrintFailed is terminal: submission failed and the file was
	// routed to the error directory.
	OutcomePrintFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomePrinted:
		return "printed"
	case OutcomePrintFailed:
		return "print_failed"
	default:
		return "not_ready"
	}
}
