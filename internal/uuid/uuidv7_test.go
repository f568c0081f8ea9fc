package uuid

import (
	"strings"
	"testing"
)

func TestNewIsVersion7(t *testing.T) {
	id := New()
	if !IsValid(id) {
		t.Fatalf("generated id %q is not a valid UUID", id)
	}
	// Version nibble is the first character of the third group.
	if parts := strings.Split(id, "-"); parts[2][0] != '7' {
		t.Errorf("expected version 7, got %q", id)
	}
}

func TestParseCanonicalises(t *testing.T) {
	got, err := Parse("0190A8E4-8F2B-7C3D-9E4F-123456789ABC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0190a8e4-8f2b-7c3d-9e4f-123456789abc" {
		t.Errorf("expected lowercase form, got %q", got)
	}

	if _, err := Parse("not-a-uuid"); err == nil {
		t.Error("expected error for invalid input")
	}
}
