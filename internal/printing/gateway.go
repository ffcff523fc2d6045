package printing

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrUnsupported marks platforms with no known print command.
	ErrUnsupported = errors.New("printing not supported on this platform")
	// ErrSubmitFailed marks a print command that ran and reported failure.
	ErrSubmitFailed = errors.New("print submission failed")
	// ErrNoPrinter marks a dispatch with no configured printer and no
	// resolvable system default.
	ErrNoPrinter = errors.New("no printer configured and no system default resolvable")
)

// Gateway submits one file to the spooler. An empty printer selects whatever
// default the command applies; callers that need explicit default resolution
// pass a printer obtained from the Resolver.
type Gateway interface {
	Submit(ctx context.Context, path, printer string) error
}

// NewGateway selects the gateway implementation for the running platform.
func NewGateway(opts ...Option) Gateway {
	return newGatewayFor(runtime.GOOS, opts...)
}

func newGatewayFor(goos string, opts ...Option) Gateway {
	settings := applyOptions(opts)
	switch goos {
	case "linux":
		// lp -d <printer> <file>
		return &commandGateway{binary: "lp", printerFlag: "-d", exec: settings.exec}
	case "darwin":
		// lpr -P <printer> <file>
		return &commandGateway{binary: "lpr", printerFlag: "-P", exec: settings.exec}
	default:
		return unsupportedGateway{goos: goos}
	}
}

// Option configures gateway and resolver construction.
type Option func(*options)

type options struct {
	exec Executor
}

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(o *options) {
		if exec != nil {
			o.exec = exec
		}
	}
}

func applyOptions(opts []Option) options {
	settings := options{exec: commandExecutor{}}
	for _, opt := range opts {
		opt(&settings)
	}
	return settings
}

type commandGateway struct {
	binary      string
	printerFlag string
	exec        Executor
}

func (g *commandGateway) Submit(ctx context.Context, path, printer string) error {
	args := make([]string, 0, 3)
	if strings.TrimSpace(printer) != "" {
		args = append(args, g.printerFlag, printer)
	}
	args = append(args, path)

	if _, err := g.exec.Run(ctx, g.binary, args); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	return nil
}

type unsupportedGateway struct {
	goos string
}

func (g unsupportedGateway) Submit(context.Context, string, string) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, g.goos)
}
