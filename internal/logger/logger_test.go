package logger

import "testing"

func TestGet_InitializesOnce(t *testing.T) {
	first := Get()
	if first == nil {
		t.Fatal("expected a logger")
	}
	Init("production")
	if Get() != first {
		t.Error("Init after first use must not replace the logger")
	}
}

func TestNamed(t *testing.T) {
	l := Named("scheduler")
	if l == nil {
		t.Fatal("expected a named logger")
	}
	if l.Desugar().Name() != "scheduler" {
		t.Errorf("expected name scheduler, got %q", l.Desugar().Name())
	}
	Sync()
}
