package sequence

import (
	"fmt"
	"sync"
	"time"
)

// Generator produces unique, human-readable document numbers of the form
// "{prefix}-{YYYYMMDD}-{NNNNNN}". Implementations must return strictly
// increasing, never-repeating values under concurrent use.
type Generator interface {
	Next(prefix string) string
}

// Document number prefixes used by the pipeline
const (
	PrefixMovement    = "MOV"
	PrefixJournal     = "JE"
	PrefixTransaction = "FIN"
)

// InMemoryGenerator is the default Generator: a single mutex-guarded counter
// shared across all prefixes. The counter is not reset daily, so gaps appear
// within a day's numbers; callers must not assume contiguity.
//
// The counter lives in process memory and is neither persisted nor coordinated
// across instances. Suitable for single-instance deployments only; a
// storage-backed Generator must be substituted for horizontal scale-out.
type InMemoryGenerator struct {
	mu      sync.Mutex
	counter uint64
	now     func() time.Time
}

// NewInMemoryGenerator creates a generator starting at zero
func NewInMemoryGenerator() *InMemoryGenerator {
	return &InMemoryGenerator{now: time.Now}
}

// Next returns the next document number for the given prefix
func (g *InMemoryGenerator) Next(prefix string) string {
	g.mu.Lock()
	g.counter++
	n := g.counter
	g.mu.Unlock()
	return fmt.Sprintf("%s-%s-%06d", prefix, g.now().UTC().Format("20060102"), n)
}

// Ensure InMemoryGenerator implements Generator
var _ Generator = (*InMemoryGenerator)(nil)
