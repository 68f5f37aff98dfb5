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

func TestLogFieldsToSlice(t *testing.T) {
	fields := NewFields().
		WithComponent(ComponentHTTP).
		WithOperation(OpCreate).
		WithContribution("Mama Jane Funeral", "Jane", "QJ12345678", 500).
		WithError(errors.New("boom"))

	slice := fields.ToSlice()
	if len(slice) != len(fields)*2 {
		t.Fatalf("slice len = %d, want %d", len(slice), len(fields)*2)
	}

	got := map[string]any{}
	for i := 0; i < len(slice); i += 2 {
		got[slice[i].(string)] = slice[i+1]
	}
	if got[FieldGroup] != "Mama Jane Funeral" || got[FieldAmount] != 500.0 {
		t.Errorf("contribution fields = %v", got)
	}
	if got[FieldError] != "boom" {
		t.Errorf("error field = %v", got[FieldError])
	}
}

func TestWithErrorNilIsNoop(t *testing.T) {
	fields := NewFields().WithError(nil)
	if len(fields) != 0 {
		t.Fatalf("fields = %v, want empty", fields)
	}
}

func TestLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: ComponentWorker,
		Handler:   slog.NewTextHandler(&buf, nil),
	})

	logger.Info("hello")
	if !strings.Contains(buf.String(), "component=worker") {
		t.Errorf("output missing component tag: %s", buf.String())
	}
}

func TestMiddlewareInjectsLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: ComponentHTTP,
		Handler:   slog.NewTextHandler(&buf, nil),
	})

	var seen *Logger
	h := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if seen != logger {
		t.Fatal("logger not propagated through context")
	}
}

func TestFromContextFallsBack(t *testing.T) {
	logger := FromContext(context.Background())
	if logger == nil || logger.Logger == nil {
		t.Fatal("expected fallback logger")
	}
}
