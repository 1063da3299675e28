package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/numerik/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithConfig(Config{Level: level, Format: format, Output: &buf, Name: "test"}), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatJSON)
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Audit("always")

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %s", len(lines), buf.String())
	}
	if lines[0]["message"] != "shown" || lines[1]["level"] != "audit" {
		t.Errorf("unexpected lines: %v", lines)
	}
}

func TestJSONFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)
	logger.WithField("component", "calc").WithRequestID("req-1").Info("evaluated", String("expr", "1+2"), Int("depth", 1))

	lines := decodeLines(t, buf)
	got := lines[0]
	for key, want := range map[string]interface{}{
		"logger":     "test",
		"component":  "calc",
		"request_id": "req-1",
		"expr":       "1+2",
		"depth":      float64(1),
	} {
		if got[key] != want {
			t.Errorf("%s = %v, want %v", key, got[key], want)
		}
	}
}

func TestDerivedLoggersDoNotShareFields(t *testing.T) {
	base, buf := newBufferLogger(LevelInfo, FormatJSON)
	_ = base.WithField("a", 1)
	base.Info("plain")

	if _, ok := decodeLines(t, buf)[0]["a"]; ok {
		t.Error("field leaked into parent logger")
	}
}

func TestLogErrorUsesSeverity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"low", mdwerror.New("bad input").WithCode(mdwerror.CodeInvalidInput), "info"},
		{"medium", mdwerror.New("odd"), "warn"},
		{"high", mdwerror.New("db").WithCode(mdwerror.CodeDatabaseError), "error"},
		{"plain", errors.New("plain"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelDebug, FormatJSON)
			logger.LogError(tt.err)
			if got := decodeLines(t, buf)[0]["level"]; got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextAndLogfmt(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatLogfmt)
	logger.Info("saved entry", String("id", "abc"), String("note", "two words"))
	line := buf.String()
	for _, want := range []string{`level=info`, `msg="saved entry"`, `id=abc`, `note="two words"`, `logger=test`} {
		if !strings.Contains(line, want) {
			t.Errorf("logfmt line %q missing %q", line, want)
		}
	}

	logger, buf = newBufferLogger(LevelInfo, FormatText)
	logger.Warn("slow", Int("ms", 12))
	if !strings.Contains(buf.String(), "[WARN] test: slow ms=12") {
		t.Errorf("text line = %q", buf.String())
	}
}

func TestTimer(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)
	timer := logger.StartTimer("evaluate")
	time.Sleep(time.Millisecond)
	if d := timer.Stop(); d <= 0 {
		t.Errorf("Stop() = %v", d)
	}
	if timer.Stop() != 0 {
		t.Error("second Stop() should return 0")
	}

	lines := decodeLines(t, buf)
	if len(lines) != 1 || lines[0]["message"] != "evaluate completed" {
		t.Fatalf("lines = %v", lines)
	}
	if _, ok := lines[0]["duration_ms"]; !ok {
		t.Error("duration_ms missing")
	}
}

func TestParse(t *testing.T) {
	levels := []struct {
		input string
		want  Level
	}{
		{"", LevelInfo},
		{"debug", LevelDebug},
		{"WARNING", LevelWarn},
		{" error ", LevelError},
		{"audit", LevelAudit},
	}
	for _, tt := range levels {
		if got, err := ParseLevel(tt.input); err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v", tt.input, got, err, tt.want)
		}
	}
	for _, input := range []string{"loud", "trace", "fatal"} {
		if _, err := ParseLevel(input); err == nil {
			t.Errorf("ParseLevel(%q) should fail", input)
		}
	}
	if LevelAudit.ShortString() != "AUD" || Level(42).String() != "unknown" {
		t.Errorf("names = %q, %q", LevelAudit.ShortString(), Level(42).String())
	}
	if LevelAudit.ShouldLog(levelOff) {
		t.Error("audit records must not pass a disabled logger")
	}
	if f, err := ParseFormat("console"); err != nil || f != FormatConsole {
		t.Errorf("ParseFormat(console) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}
