// Package codes generates unique unlock codes and writes the flat files
// the app and the distribution tracker consume.
package codes

import (
	"fmt"
	"math/rand"
	"sort"
)

// Alphabet leaves out 0, O, 1 and I so codes survive being read aloud
// or retyped. It must stay byte-for-byte stable: codes already handed
// out were minted from it.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const suffixLength = 6

// Generator mints unlock codes with a fixed prefix.
type Generator struct {
	prefix string
	rng    *rand.Rand
}

// NewGenerator creates a generator seeded for reproducible batches.
func NewGenerator(prefix string, seed int64) *Generator {
	return &Generator{
		prefix: prefix,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// One mints a single code: prefix plus six characters from the alphabet.
func (g *Generator) One() string {
	suffix := make([]byte, suffixLength)
	for i := range suffix {
		suffix[i] = Alphabet[g.rng.Intn(len(Alphabet))]
	}
	return g.prefix + string(suffix)
}

// Batch mints count unique codes, sorted.
func (g *Generator) Batch(count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive")
	}
	seen := make(map[string]struct{}, count)
	for len(seen) < count {
		seen[g.One()] = struct{}{}
	}
	codes := make([]string, 0, count)
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}
