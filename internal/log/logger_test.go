package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf, Component: ComponentIngest})
	logger.Info("sheet loaded", "rows", 12)

	line := buf.String()
	if !strings.Contains(line, "component=ingest") {
		t.Fatalf("record missing component attribute: %s", line)
	}
	if !strings.Contains(line, "rows=12") {
		t.Fatalf("record missing caller attribute: %s", line)
	}
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf, Format: "json"})
	logger.Warn("slow response")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if record[FieldComponent] != ComponentApp {
		t.Fatalf("component = %v, want %q", record[FieldComponent], ComponentApp)
	}
	if record["level"] != "WARN" {
		t.Fatalf("level = %v, want WARN", record["level"])
	}
}

func TestWithComponentSwapsAttribution(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Output: &buf})
	httpLog := base.WithComponent(ComponentHTTP)
	httpLog.Error("handler failed")

	line := buf.String()
	if !strings.Contains(line, "component=http") {
		t.Fatalf("record missing swapped component: %s", line)
	}
	if strings.Count(line, "component=") != 1 {
		t.Fatalf("component attribute repeated: %s", line)
	}
}
