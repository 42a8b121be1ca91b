package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: FormatJSON}, "prodquery", buf)
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", buf.String(), err)
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
	l := jsonLogger(&buf, "invalid-level")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected invalid level to fall back to info, got %q", buf.String())
	}
	l.Info("shown")
	if buf.Len() == 0 {
		t.Error("expected info line to be written")
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	l := NewFromEnv("env-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "debug").WithComponent("catalog")
	l.Debug("sorted", Fields("operation", "order_by", "count", 3))

	m := decode(t, &buf)
	if m["message"] != "sorted" {
		t.Errorf("expected message 'sorted', got %v", m["message"])
	}
	if m[FieldComponent] != "catalog" {
		t.Errorf("expected component 'catalog', got %v", m[FieldComponent])
	}
	if m[FieldOperation] != "order_by" {
		t.Errorf("expected operation 'order_by', got %v", m[FieldOperation])
	}
	if m[FieldCount] != float64(3) {
		t.Errorf("expected count 3, got %v", m[FieldCount])
	}
	if m["service"] != "prodquery" {
		t.Errorf("expected service 'prodquery', got %v", m["service"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithError(fmt.Errorf("boom")).Warn("failed")
	if m := decode(t, &buf); m["error"] != "boom" {
		t.Errorf("expected error 'boom', got %v", m["error"])
	}
}

func TestWithContextCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithCorrelationID(context.Background(), "run-1")
	jsonLogger(&buf, "info").WithContext(ctx).Info("run")
	if m := decode(t, &buf); m[FieldCorrelationID] != "run-1" {
		t.Errorf("expected correlation id, got %v", m[FieldCorrelationID])
	}

	l := jsonLogger(&buf, "info")
	if l.WithContext(context.Background()) != l {
		t.Error("expected logger unchanged without correlation id")
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, "prodquery", &buf)
	l.Warn("no product found", Fields("operation", "first"))
	out := buf.String()
	if !strings.Contains(out, "[PRO][WRN]") {
		t.Errorf("expected service and level tag, got %q", out)
	}
	if !strings.Contains(out, "operation:first") {
		t.Errorf("expected field in output, got %q", out)
	}
}

func TestNop(t *testing.T) {
	Nop().Error("discarded")
}

func TestFieldsHelpers(t *testing.T) {
	f := Fields("a", 1, "b")
	if len(f) != 1 || f["a"] != 1 {
		t.Errorf("expected odd trailing key to be dropped, got %v", f)
	}
	ef := ErrorFields("single", fmt.Errorf("x"))
	if ef[FieldOperation] != "single" || ef[FieldError] != "x" {
		t.Errorf("unexpected error fields %v", ef)
	}
	merged := MergeFields(Fields("a", 1, "b", 2), Fields("b", 3))
	if merged["a"] != 1 || merged["b"] != 3 {
		t.Errorf("expected later map to win, got %v", merged)
	}
	of := OperationFields("where", 4, 2*time.Second)
	if of[FieldCount] != 4 || of[FieldDuration] != int64(2000) {
		t.Errorf("unexpected operation fields %v", of)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	bad := Config{Level: "loud", Format: FormatJSON, Output: "stderr"}
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("expected level error, got %v", err)
	}
	bad = Config{Level: "info", Format: "xml", Output: "stderr"}
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Errorf("expected format error, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	defer Reset()
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info")
	Register("catalog", l)
	if Get("catalog") != l {
		t.Error("expected registered logger")
	}
	if Get("unknown") == nil {
		t.Error("expected fallback logger")
	}
}

func TestGlobalLogger(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	var buf bytes.Buffer
	SetGlobalLogger(jsonLogger(&buf, "debug"))
	Debug("d")
	Info("i")
	Warn("w")
	Error("e")
	if lines := strings.Count(buf.String(), "\n"); lines != 4 {
		t.Errorf("expected 4 log lines, got %d", lines)
	}
	WithComponent("x").Info("tagged")
	if !strings.Contains(buf.String(), `"component":"x"`) {
		t.Error("expected component tag from global logger")
	}
}
