// Package flavor generates idle mob chatter and room ambiance lines.
// Generation is Markov-chain enhanced for variety, but strictly
// cosmetic: nothing here feeds back into game state, so its
// non-determinism never threatens the engine's deterministic
// simulation core.
package flavor

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/mb-14/gomarkov"
)

const chainOrder = 2

// Generator produces ambiance lines from small per-archetype text
// corpora, one Markov chain per corpus key (typically an archetype or
// mood id).
type Generator struct {
	mu     sync.RWMutex
	rng    *rand.Rand
	chains map[string]*gomarkov.Chain
	corpus map[string][]string
}

// NewGenerator returns an empty Generator; callers populate it with
// Train before calling Generate.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		chains: make(map[string]*gomarkov.Chain),
		corpus: make(map[string][]string),
	}
}

// Train builds (or replaces) the Markov chain for key from lines. A
// key none of whose lines has more than chainOrder words still stores
// its corpus for verbatim fallback but will not train a chain, since
// gomarkov needs at least chainOrder+1 words per sentence to learn a
// transition.
func (g *Generator) Train(key string, lines []string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.corpus[key] = append([]string(nil), lines...)

	chain := gomarkov.NewChain(chainOrder)
	trained := false
	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) > chainOrder {
			chain.Add(words)
			trained = true
		}
	}
	if trained {
		g.chains[key] = chain
	} else {
		delete(g.chains, key)
	}
}

// Generate returns one ambiance line for key. When a trained chain is
// available it seeds generation from a random corpus line's opening
// words; otherwise (or on generation failure) it falls back to a
// verbatim corpus line chosen at random. Generate returns an error
// only when key has no corpus at all.
func (g *Generator) Generate(key string) (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	lines := g.corpus[key]
	if len(lines) == 0 {
		return "", fmt.Errorf("flavor: no corpus registered for %q", key)
	}

	seedLine := lines[g.rng.Intn(len(lines))]

	chain, ok := g.chains[key]
	if !ok {
		return seedLine, nil
	}

	words := strings.Fields(seedLine)
	seedLen := chainOrder
	if len(words) < seedLen {
		return seedLine, nil
	}
	seed := words[:seedLen]

	generated, err := chain.Generate(seed)
	if err != nil {
		return seedLine, nil
	}

	return strings.Join(seed, " ") + " " + generated, nil
}

// Keys returns every corpus key currently registered.
func (g *Generator) Keys() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	keys := make([]string, 0, len(g.corpus))
	for k := range g.corpus {
		keys = append(keys, k)
	}
	return keys
}
