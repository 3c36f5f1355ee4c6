package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: "json"}, "pronounce", buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	line := strings.TrimSpace(buf.String())
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "shouting")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("invalid level should fall back to info")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected info message")
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	if l := NewFromEnv("env-svc"); l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info").WithComponent("scoring")
	l.Info("scored", Fields(FieldTarget, "red", FieldScore, 85))

	m := decodeLine(t, &buf)
	if m["service"] != "pronounce" {
		t.Errorf("expected service field, got %v", m["service"])
	}
	if m[FieldComponent] != "scoring" {
		t.Errorf("expected component=scoring, got %v", m[FieldComponent])
	}
	if m[FieldTarget] != "red" {
		t.Errorf("expected target=red, got %v", m[FieldTarget])
	}
	if m[FieldScore] != float64(85) {
		t.Errorf("expected score=85, got %v", m[FieldScore])
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithAssessmentID(ctx, "asm-1")
	ctx = ContextWithTrace(ctx, "trace-1", "span-1")

	jsonLogger(&buf, "info").WithContext(ctx).Info("assessing")
	m := decodeLine(t, &buf)
	for k, want := range map[string]string{
		FieldRequestID:    "req-1",
		FieldAssessmentID: "asm-1",
		FieldTraceID:      "trace-1",
		FieldSpanID:       "span-1",
	} {
		if m[k] != want {
			t.Errorf("%s = %v, want %s", k, m[k], want)
		}
	}
	if RequestIDFrom(ctx) != "req-1" {
		t.Errorf("RequestIDFrom = %q", RequestIDFrom(ctx))
	}
	if RequestIDFrom(context.Background()) != "" {
		t.Error("empty context should have no request id")
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithError(errors.New("decode failed")).Warn("stage failed")
	m := decodeLine(t, &buf)
	if m["error"] != "decode failed" {
		t.Errorf("expected error field, got %v", m["error"])
	}
}

func TestNop(t *testing.T) {
	Nop().Info("nothing", Fields("k", "v"))
}

func TestGlobalLogger(t *testing.T) {
	old := globalLogger
	defer func() { globalLogger = old }()

	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected lazily created global logger")
	}
	custom := NewDefault("custom")
	SetGlobalLogger(custom)
	if GetGlobalLogger() != custom {
		t.Error("expected custom global logger")
	}
	if WithComponent("api") == nil {
		t.Error("expected component logger")
	}
}

func TestFields(t *testing.T) {
	f := Fields("a", 1, "b", "two", "dangling")
	if len(f) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(f))
	}
	if f["a"] != 1 || f["b"] != "two" {
		t.Errorf("unexpected fields %v", f)
	}

	sf := StageFields("decode", 1500*time.Millisecond)
	if sf[FieldStage] != "decode" || sf[FieldDuration] != int64(1500) {
		t.Errorf("unexpected stage fields %v", sf)
	}

	ef := ErrorFields("extract", errors.New("silent"))
	if ef[FieldError] != "silent" {
		t.Errorf("unexpected error fields %v", ef)
	}

	merged := MergeWithError(nil, errors.New("x"))
	if merged[FieldError] != "x" {
		t.Errorf("unexpected merged %v", merged)
	}
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad level", Config{Level: "loud", Format: "json", Output: "stdout"}},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
