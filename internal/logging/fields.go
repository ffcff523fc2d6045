package logging

// Standardized attribute keys. Using the same key for the same concept across
// packages keeps log output greppable after the fact.
const (
	FieldComponent   = "component"
	FieldFolder      = "folder"
	FieldSource      = "source"
	FieldFilename    = "filename"
	FieldPrinter     = "printer"
	FieldDestination = "destination"
	FieldOutcome     = "outcome"
)
