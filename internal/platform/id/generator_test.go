package id

import (
	"strings"
	"testing"
)

func TestRandomGenerator_NewID(t *testing.T) {
	gen := NewPrefixedGenerator("es_", 8)

	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	if !strings.HasPrefix(first, "es_") || len(first) != len("es_")+16 {
		t.Fatalf("unexpected id shape: %s", first)
	}
	if first == second {
		t.Fatalf("ids must differ: %s", first)
	}
}
