package uuid

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	a, b := New(), New()
	if !IsValid(a) || !IsValid(b) {
		t.Fatalf("expected valid UUIDs, got %q and %q", a, b)
	}
	if a == b {
		t.Error("expected distinct UUIDs")
	}
	if a[14] != '7' {
		t.Errorf("expected version 7, got %q", a)
	}
}

func TestParse(t *testing.T) {
	id := New()
	got, err := Parse(strings.ToUpper(id))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != id {
		t.Errorf("expected %q, got %q", id, got)
	}
	if _, err := Parse("not-a-uuid"); err == nil {
		t.Error("expected error for malformed UUID")
	}
}
