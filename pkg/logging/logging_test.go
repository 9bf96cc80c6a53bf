package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"error", LevelError},
		{" error ", LevelError},
		{"", LevelInfo},
		{"trace", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{"", FormatText},
		{"logfmt", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidLevelAndFormat(t *testing.T) {
	if !ValidLevel("warning") || ValidLevel("verbose") {
		t.Error("ValidLevel mismatch")
	}
	if !ValidFormat("JSON") || ValidFormat("xml") {
		t.Error("ValidFormat mismatch")
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	log.Debug("hidden")
	log.Info("assigned", "count", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if rec["msg"] != "assigned" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec["count"] != float64(2) {
		t.Errorf("count = %v", rec["count"])
	}
}

func TestFromStrings_Text(t *testing.T) {
	var buf bytes.Buffer
	log := FromStrings("debug", "text", &buf)
	log.Debug("seed loaded", "clients", 7)

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "clients=7") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(Config{Output: &buf}), "dataset")
	log.Info("reset")
	if !strings.Contains(buf.String(), "component=dataset") {
		t.Errorf("component attribute missing: %q", buf.String())
	}

	if Component(nil, "x") == nil {
		t.Error("Component(nil) returned nil")
	}
}

func TestNop(t *testing.T) {
	if Nop() == nil {
		t.Fatal("Nop returned nil")
	}
	Nop().Error("dropped", "error", "boom")
}
