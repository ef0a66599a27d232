package testfixtures

import (
	"fmt"
	"sync"
)

// UUID returns a fixed, well-formed identifier for n
func UUID(n int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}

// IDGenerator yields UUID(1), UUID(2), ... for injection into services
type IDGenerator struct {
	mu      sync.Mutex
	counter int
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return UUID(g.counter)
}

func (g *IDGenerator) NextFunc() func() string {
	return g.Next
}
