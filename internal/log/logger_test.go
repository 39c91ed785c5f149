package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "INFO", FormatJSON)

	logger.Info("record stored", "api_num", "05-123-45678")

	out := buf.String()
	if !strings.Contains(out, `"msg":"record stored"`) {
		t.Errorf("JSON output missing message: %s", out)
	}
	if !strings.Contains(out, `"api_num":"05-123-45678"`) {
		t.Errorf("JSON output missing attribute: %s", out)
	}
}

func TestNewWithWriter_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "INFO", FormatPretty)

	logger.Info("record stored", "api_num", "05-123-45678")

	out := buf.String()
	if !strings.Contains(out, "INFO") {
		t.Errorf("pretty output missing level label: %s", out)
	}
	if !strings.Contains(out, "record stored") {
		t.Errorf("pretty output missing message: %s", out)
	}
	if !strings.Contains(out, "api_num=") {
		t.Errorf("pretty output missing attribute key: %s", out)
	}
}

func TestTerminalHandler_AttrRendering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "INFO", FormatPretty)

	date := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	logger.Info("record collected",
		"first_date", date,
		"well_name", "Smith Fee #1",
		slog.Any("error", errors.New("fetch failed")),
	)

	out := buf.String()
	if !strings.Contains(out, "first_date=2020-03-01") {
		t.Errorf("calendar date not rendered as YYYY-MM-DD: %s", out)
	}
	if !strings.Contains(out, `well_name="Smith Fee #1"`) {
		t.Errorf("string with spaces not quoted: %s", out)
	}
	if !strings.Contains(out, "fetch failed") {
		t.Errorf("error value missing: %s", out)
	}
}

func TestTerminalHandler_GroupPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "INFO", FormatPretty).WithGroup("well")

	logger.Info("stored", "api_num", "05-123-45678")

	if out := buf.String(); !strings.Contains(out, "well.api_num=05-123-45678") {
		t.Errorf("group name not prefixed onto attribute key: %s", out)
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "WARN", FormatJSON)

	logger.Info("filtered")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "filtered") {
		t.Errorf("info record emitted at WARN level: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
