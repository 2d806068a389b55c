package observability

import (
	"context"
	"errors"
	"testing"
)

func TestNopTracer(t *testing.T) {
	tracer := NopTracer()
	ctx := context.Background()
	ctx2, span := tracer.StartSpan(ctx, "test")
	if ctx2 != ctx {
		t.Fatalf("nop tracer should return same context")
	}
	span.SetTag("key", "value")
	span.SetError(nil)
	span.Finish()
}

func TestFieldConstructors(t *testing.T) {
	if f := String("path", "/tmp/x.png"); f.Key() != "path" || f.Value() != "/tmp/x.png" {
		t.Fatalf("String field = %v %v", f.Key(), f.Value())
	}
	if f := Int("frames", 42); f.Value() != 42 {
		t.Fatalf("Int field = %v", f.Value())
	}
	if f := Int64("bytes", int64(1<<40)); f.Value() != int64(1<<40) {
		t.Fatalf("Int64 field = %v", f.Value())
	}
	err := errors.New("boom")
	if f := Error("error", err); f.Value() != err {
		t.Fatalf("Error field = %v", f.Value())
	}
}

func TestNewZapLogger(t *testing.T) {
	log, err := NewZapLogger("debug")
	if err != nil {
		t.Fatalf("NewZapLogger() error = %v", err)
	}
	log.Debug("debug line", String("k", "v"))
	log.With(Int("frames", 3)).Info("info line")

	if _, err := NewZapLogger("chatty"); err == nil {
		t.Fatalf("invalid level must be rejected")
	}
}
