package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator returns hex encoded random ids, optionally prefixed
// (for example "es_" for editor sessions).
type RandomGenerator struct {
	prefix string
	size   int
}

func NewPrefixedGenerator(prefix string, size int) *RandomGenerator {
	if size <= 0 {
		size = 16
	}
	return &RandomGenerator{prefix: strings.TrimSpace(prefix), size: size}
}

func (g *RandomGenerator) NewID() (string, error) {
	size := g.size
	if size <= 0 {
		size = 16
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return g.prefix + hex.EncodeToString(buf), nil
}
