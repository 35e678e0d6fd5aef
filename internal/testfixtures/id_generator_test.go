package testfixtures

import "testing"

func TestIDGeneratorProducesSequentialIDs(t *testing.T) {
	gen := NewIDGenerator("apt")

	first := gen.Next()
	second := gen.Next()

	if first != "apt-1" || second != "apt-2" {
		t.Fatalf("unexpected identifiers: %q, %q", first, second)
	}
	if gen.Issued() != 2 {
		t.Fatalf("expected 2 issued identifiers, got %d", gen.Issued())
	}
}

func TestIDGeneratorCanReset(t *testing.T) {
	gen := NewIDGenerator("srv")
	_ = gen.Next()
	gen.SetCounter(0)
	gen.SetPrefix("service")

	if next := gen.Next(); next != "service-1" {
		t.Fatalf("expected service-1 after reset, got %q", next)
	}
}

func TestIDGeneratorNilFunc(t *testing.T) {
	var gen *IDGenerator
	if gen.NextFunc() != nil {
		t.Fatalf("expected nil generator to yield a nil func")
	}
}
