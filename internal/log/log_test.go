package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewBindsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentReport, Output: &buf})
	l.Info("hello", "k", "v")
	out := buf.String()
	if !strings.Contains(out, "component=report") || !strings.Contains(out, "k=v") {
		t.Fatalf("unexpected output: %s", out)
	}
	if l.Component() != ComponentReport {
		t.Fatalf("component = %q", l.Component())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Output: &buf})
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf})
	var got *Logger
	h := Middleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got != l {
		t.Fatalf("logger not propagated")
	}
	if fallback := FromContext(context.Background()); fallback.Component() != "unknown" {
		t.Fatalf("fallback component = %q", fallback.Component())
	}
}

func TestStructuredLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Level: slog.LevelDebug, Output: &buf}))
	req := httptest.NewRequest(http.MethodGet, "/report?month=2024-01", nil)

	sl.LogHTTPEnd(context.Background(), req, 404, 3, "127.0.0.1", "req_1")
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "status_code=404") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
	buf.Reset()

	sl.LogReportRendered(context.Background(), OpRender, "", "all", "", 0, 0, false)
	if !strings.Contains(buf.String(), "month=none") || !strings.Contains(buf.String(), "cache_hit=false") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
	buf.Reset()

	sl.LogError(context.Background(), "failed", errors.New("boom"), OpList, nil)
	if !strings.Contains(buf.String(), "error=boom") || !strings.Contains(buf.String(), "level=ERROR") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}
