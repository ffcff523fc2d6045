package printing

import (
	"context"
	"runtime"
	"strings"
)

// Resolver reports the system default printer. An empty name means no default
// could be determined; any underlying error collapses to "absent" because the
// caller treats an unresolvable printer as a per-file print failure, not a
// service fault.
type Resolver interface {
	DefaultPrinter(ctx context.Context) string
}

// NewResolver selects the resolver implementation for the running platform.
func NewResolver(opts ...Option) Resolver {
	return newResolverFor(runtime.GOOS, opts...)
}

func newResolverFor(goos string, opts ...Option) Resolver {
	settings := applyOptions(opts)
	switch goos {
	case "linux", "darwin":
		return &lpstatResolver{exec: settings.exec}
	default:
		return absentResolver{}
	}
}

type lpstatResolver struct {
	exec Executor
}

func (r *lpstatResolver) DefaultPrinter(ctx context.Context) string {
	output, err := r.exec.Run(ctx, "lpstat", []string{"-d"})
	if err != nil {
		return ""
	}
	return ParseLpstatDefault(output)
}

// ParseLpstatDefault extracts the printer name from `lpstat -d` output, e.g.
// "system default destination: Office-Laser". The "no system default
// destination" response yields an empty name.
func ParseLpstatDefault(output string) string {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(line), "no system default") {
			return ""
		}
		if _, name, found := strings.Cut(line, "destination:"); found {
			return strings.TrimSpace(name)
		}
	}
	return ""
}

type absentResolver struct{}

func (absentResolver) DefaultPrinter(context.Context) string { return "" }
