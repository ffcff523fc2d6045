package printing_test

import (
	"context"
	"errors"
	"testing"

	"batchprint/internal/printing"
)

type recordingExecutor struct {
	binary string
	args   []string
	output string
	err    error
}

func (e *recordingExecutor) Run(_ context.Context, binary string, args []string) (string, error) {
	e.binary = binary
	e.args = append([]string(nil), args...)
	return e.output, e.err
}

func TestLinuxGatewayUsesLp(t *testing.T) {
	exec := &recordingExecutor{}
	gateway := printing.NewGatewayFor("linux", printing.WithExecutor(exec))

	if err := gateway.Submit(context.Background(), "/watch/doc.pdf", "Office-Laser"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if exec.binary != "lp" {
		t.Fatalf("binary = %s, want lp", exec.binary)
	}
	want := []string{"-d", "Office-Laser", "/watch/doc.pdf"}
	assertArgs(t, exec.args, want)
}

func TestDarwinGatewayUsesLpr(t *testing.T) {
	exec := &recordingExecutor{}
	gateway := printing.NewGatewayFor("darwin", printing.WithExecutor(exec))

	if err := gateway.Submit(context.Background(), "/watch/doc.pdf", "Office-Laser"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if exec.binary != "lpr" {
		t.Fatalf("binary = %s, want lpr", exec.binary)
	}
	want := []string{"-P", "Office-Laser", "/watch/doc.pdf"}
	assertArgs(t, exec.args, want)
}

func TestGatewayOmitsPrinterFlagWhenEmpty(t *testing.T) {
	exec := &recordingExecutor{}
	gateway := printing.NewGatewayFor("linux", printing.WithExecutor(exec))

	if err := gateway.Submit(context.Background(), "/watch/doc.pdf", ""); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	assertArgs(t, exec.args, []string{"/watch/doc.pdf"})
}

func TestGatewayWrapsCommandFailure(t *testing.T) {
	exec := &recordingExecutor{err: errors.New("lp: printer offline")}
	gateway := printing.NewGatewayFor("linux", printing.WithExecutor(exec))

	err := gateway.Submit(context.Background(), "/watch/doc.pdf", "Office-Laser")
	if !errors.Is(err, printing.ErrSubmitFailed) {
		t.Fatalf("err = %v, want ErrSubmitFailed", err)
	}
}

func TestUnsupportedPlatformGateway(t *testing.T) {
	gateway := printing.NewGatewayFor("windows")
	err := gateway.Submit(context.Background(), "/watch/doc.pdf", "any")
	if !errors.Is(err, printing.ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestResolverReturnsDefaultPrinter(t *testing.T) {
	exec := &recordingExecutor{output: "system default destination: Office-Laser"}
	resolver := printing.NewResolverFor("linux", printing.WithExecutor(exec))

	if got := resolver.DefaultPrinter(context.Background()); got != "Office-Laser" {
		t.Fatalf("DefaultPrinter = %q", got)
	}
	if exec.binary != "lpstat" {
		t.Fatalf("binary = %s, want lpstat", exec.binary)
	}
	assertArgs(t, exec.args, []string{"-d"})
}

func TestResolverAbsentOnNoDefault(t *testing.T) {
	exec := &recordingExecutor{output: "no system default destination"}
	resolver := printing.NewResolverFor("linux", printing.WithExecutor(exec))

	if got := resolver.DefaultPrinter(context.Background()); got != "" {
		t.Fatalf("DefaultPrinter = %q, want empty", got)
	}
}

func TestResolverAbsentOnCommandFailure(t *testing.T) {
	exec := &recordingExecutor{err: errors.New("lpstat: not found")}
	resolver := printing.NewResolverFor("linux", printing.WithExecutor(exec))

	if got := resolver.DefaultPrinter(context.Background()); got != "" {
		t.Fatalf("DefaultPrinter = %q, want empty", got)
	}
}

func TestParseLpstatDefault(t *testing.T) {
	cases := []struct {
		name   string
		output string
		want   string
	}{
		{"plain", "system default destination: Office-Laser", "Office-Laser"},
		{"whitespace", "  system default destination:   HP_Deskjet  ", "HP_Deskjet"},
		{"no default", "no system default destination", ""},
		{"multiline", "lpstat: some notice\nsystem default destination: Basement", "Basement"},
		{"garbage", "unexpected output", ""},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := printing.ParseLpstatDefault(tc.output); got != tc.want {
				t.Fatalf("ParseLpstatDefault(%q) = %q, want %q", tc.output, got, tc.want)
			}
		})
	}
}

func assertArgs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("args = %v, want %v", got, want)
		}
	}
}
