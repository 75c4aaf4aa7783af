package testfixtures

import (
	"fmt"
	"sync"
)

// ProfileIDs produces deterministic, well-formed UUID strings for storage
// profile cookies.
type ProfileIDs struct {
	mu      sync.Mutex
	counter uint64
}

// NewProfileIDs constructs a generator starting at 1.
func NewProfileIDs() *ProfileIDs {
	return &ProfileIDs{}
}

// Next returns the next identifier in the sequence.
func (g *ProfileIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", g.counter)
}

// NextFunc exposes Next for injection into the profile middleware.
func (g *ProfileIDs) NextFunc() func() string {
	if g == nil {
		return nil
	}
	return g.Next
}

// Issued reports how many identifiers were handed out.
func (g *ProfileIDs) Issued() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}
