// Package logging constructs the slog loggers used across batchprint.
//
// Two handler formats are supported: a compact console format (timestamp,
// level, component, message, key=value attributes) and standard JSON. When
// the configuration leaves the format empty, console output is chosen for
// terminals and JSON otherwise. Attr helpers and standardized field names
// keep file-disposition logs auditable: every processed file logs its folder,
// source path, printer, destination, and outcome.
package logging
