package filter

import (
	"sync"

	"github.com/matzehuels/certpaths/pkg/graph"
)

// DefaultMemoSize bounds the number of states a Memo keeps. Typing a
// query produces one state per keystroke.
const DefaultMemoSize = 64

// Memo caches Resolve results for one graph, keyed by filter state.
// When the cache reaches its limit it is cleared before the next insert.
// It is safe for concurrent use.
type Memo struct {
	g     *graph.Graph
	limit int

	mu    sync.RWMutex
	cache map[State]*graph.Graph
	hits  int
}

// NewMemo returns a memoizing resolver over g holding at most
// DefaultMemoSize states.
func NewMemo(g *graph.Graph) *Memo {
	return NewMemoSize(g, DefaultMemoSize)
}

// NewMemoSize is NewMemo with an explicit limit. A limit below 1 is 1.
func NewMemoSize(g *graph.Graph, limit int) *Memo {
	return &Memo{g: g, limit: max(limit, 1), cache: make(map[State]*graph.Graph)}
}

// Graph returns the full graph the memo resolves against.
func (m *Memo) Graph() *graph.Graph { return m.g }

// Resolve returns the visible subgraph for s, computing it at most once.
// Callers must treat the result as read-only.
func (m *Memo) Resolve(s State) *graph.Graph {
	m.mu.RLock()
	sub, ok := m.cache[s]
	m.mu.RUnlock()
	if ok {
		m.mu.Lock()
		m.hits++
		m.mu.Unlock()
		return sub
	}

	sub = Resolve(m.g, s)

	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.cache[s]; ok {
		return prev
	}
	if len(m.cache) >= m.limit {
		clear(m.cache)
	}
	m.cache[s] = sub
	return sub
}

// Stats returns the number of cached states and cache hits so far.
func (m *Memo) Stats() (entries, hits int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cache), m.hits
}
