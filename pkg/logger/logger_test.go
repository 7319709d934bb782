package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init(WithFormat("yaml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if err := Init(WithLevel("loud")); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(WithFormat(FormatJSON), WithWriter(&buf), WithLevel("debug"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	l.Named("lineup").Debug(context.Background(), "solved",
		String("solver", "ilp"),
		Int("starters", 9),
		Float64("value", 1.5),
		Bool("stack", true),
		Duration("took", time.Millisecond),
		Error(errors.New("boom")),
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if entry["msg"] != "solved" || entry["level"] != "DEBUG" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	group, ok := entry["lineup"].(map[string]any)
	if !ok {
		t.Fatalf("missing named group: %v", entry)
	}
	if group["solver"] != "ilp" || group["starters"] != float64(9) || group["stack"] != true {
		t.Fatalf("unexpected fields: %v", group)
	}
	src, _ := group["source"].(string)
	if !strings.Contains(src, "logger_test.go") {
		t.Fatalf("source should point at the caller, got %q", src)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("init: %v", err)
	}
	ctx := context.Background()

	Get().Debug(ctx, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info: %q", buf.String())
	}

	if err := SetLevelString("DEBUG"); err != nil {
		t.Fatalf("set level: %v", err)
	}
	Named("test").Debug(ctx, "shown", String("k", "v"))
	if !strings.Contains(buf.String(), "shown") || !strings.Contains(buf.String(), "test.k=v") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	SetLevel(0)
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Error(context.Background(), "discarded", Error(errors.New("x")))
	l.Named("x").Info(context.Background(), "discarded")
}
