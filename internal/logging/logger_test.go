package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []Entry {
	t.Helper()
	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New().SetOutput(&buf).SetLevel(LevelWarn)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("unexpected levels: %s, %s", entries[0].Level, entries[1].Level)
	}
}

func TestLogger_FieldsAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New().SetOutput(&buf).Component("journal").WithFields(Fields{"a": 1})

	logger.Info("toggled", Fields{"id": "2", "err": errors.New("boom")})

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	f := entries[0].Fields
	if f["component"] != "journal" {
		t.Errorf("expected component field, got %v", f["component"])
	}
	if f["id"] != "2" {
		t.Errorf("expected id field, got %v", f["id"])
	}
	if f["err"] != "boom" {
		t.Errorf("expected error to be stringified, got %v", f["err"])
	}
	if f["a"] != float64(1) {
		t.Errorf("expected inherited field, got %v", f["a"])
	}
}

func TestLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	New().SetOutput(&buf).Info("plain")

	if strings.Contains(buf.String(), "fields") {
		t.Errorf("expected fields to be omitted, got %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"WARN":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewFile_WritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger := NewFile(FileOptions{Path: path, MaxSizeMB: 1})
	logger.Info("to file")
	if err := logger.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
