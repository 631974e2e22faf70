package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.With("run_id", "abc").Infow("Converted file", "input", "a.srt")
	logger.Debugw("hidden")
	_ = logger.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var record map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if record["msg"] != "Converted file" {
		t.Errorf("unexpected msg: %v", record["msg"])
	}
	if record["input"] != "a.srt" || record["run_id"] != "abc" {
		t.Errorf("missing fields: %v", record)
	}
}

func TestVerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Verbose: true, Writer: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Debugw("member skipped", "member", "notes.txt")
	_ = logger.Sync()

	if !strings.Contains(buf.String(), "member skipped") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected no color codes when writing to a buffer")
	}
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Infow("discarded")
	logger.With("k", "v").Warnw("discarded")
}
