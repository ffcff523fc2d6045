package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"batchprint/internal/logging"
)

func TestConsoleFormatIncludesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	component := logging.NewComponentLogger(logger, "processor")
	component.Info("file sent to printer",
		logging.String(logging.FieldFolder, "inbox"),
		logging.String(logging.FieldPrinter, "Office-Laser"),
	)

	line := buf.String()
	if !strings.Contains(line, "processor: file sent to printer") {
		t.Fatalf("component prefix missing: %q", line)
	}
	if !strings.Contains(line, "folder=inbox") || !strings.Contains(line, "printer=Office-Laser") {
		t.Fatalf("fields missing: %q", line)
	}
}

func TestJSONFormatEmitsStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("file relocated", logging.String(logging.FieldDestination, "/out/doc.pdf"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if record["msg"] != "file relocated" {
		t.Fatalf("msg = %v", record["msg"])
	}
	if record[logging.FieldDestination] != "/out/doc.pdf" {
		t.Fatalf("destination = %v", record[logging.FieldDestination])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info record leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "emitted") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Info("goes nowhere")
	logger.Error("also nowhere")
}
