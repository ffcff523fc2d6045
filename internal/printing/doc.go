// Package printing submits files to the host OS print spooler.
//
// The Gateway implementation is selected once at startup from the running
// platform: lp on Linux, lpr on macOS, and an always-failing gateway
// elsewhere. The Resolver queries lpstat for the system default printer and
// is consulted fresh on every dispatch that has no configured printer, never
// cached. Both shell out through an Executor seam so tests can observe the
// exact command without a spooler present.
package printing
