package domain

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Graph holds the nodes and edges of a workflow at a point in time.
// It is not required to be acyclic. Safe for concurrent use; the engine only reads it.
type Graph struct {
	mu    sync.RWMutex
	nodes []*Node
	index map[string]*Node
	edges []*Edge
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index: make(map[string]*Node),
	}
}

// AddNode inserts a node. The only check is the uniqueness of its ID.
func (g *Graph) AddNode(n *Node) error {
	if n == nil {
		return ErrNilNode
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.index[n.id]; exists {
		return &ValidationError{Op: "add node", Source: n.id, Err: ErrDuplicateNode}
	}
	g.nodes = append(g.nodes, n)
	g.index[n.id] = n
	return nil
}

// RemoveNode removes the node and every edge where it is the source or target owner.
func (g *Graph) RemoveNode(n *Node) error {
	if n == nil {
		return ErrNilNode
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.index[n.id] != n {
		return ErrNodeNotFound
	}

	var detached []*Port
	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.touches(n) {
			detached = append(detached, e.Source, e.Target)
			continue
		}
		kept = append(kept, e)
	}
	clear(g.edges[len(kept):])
	g.edges = kept

	g.nodes = slices.DeleteFunc(g.nodes, func(x *Node) bool { return x == n })
	delete(g.index, n.id)

	for _, p := range detached {
		g.refreshConnected(p)
	}
	return nil
}

// AddEdge connects two ports. The Output-typed port always becomes the source,
// whichever order the ports are given in.
func (g *Graph) AddEdge(a, b *Port) (*Edge, error) {
	if a == nil || b == nil {
		return nil, &ValidationError{Op: "add edge", Err: ErrPortNotInGraph}
	}
	if a.direction == b.direction {
		return nil, &ValidationError{Op: "add edge", Source: a.id, Target: b.id, Err: ErrDirectionMismatch}
	}
	if a.node == b.node {
		return nil, &ValidationError{Op: "add edge", Source: a.id, Target: b.id, Err: ErrSelfLoop}
	}

	source, target := a, b
	if a.direction == Input {
		source, target = b, a
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.index[source.node.id] != source.node || g.index[target.node.id] != target.node {
		return nil, &ValidationError{Op: "add edge", Source: source.id, Target: target.id, Err: ErrPortNotInGraph}
	}
	for _, e := range g.edges {
		if e.Source == source && e.Target == target {
			return nil, &ValidationError{Op: "add edge", Source: source.id, Target: target.id, Err: ErrDuplicateEdge}
		}
	}

	edge := &Edge{
		ID:     uuid.NewString(),
		Source: source,
		Target: target,
	}
	g.edges = append(g.edges, edge)
	source.connected.Store(true)
	target.connected.Store(true)
	return edge, nil
}

// RemoveEdge removes the edge. A port stays connected while another edge still uses it.
func (g *Graph) RemoveEdge(e *Edge) error {
	if e == nil {
		return ErrEdgeNotFound
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	i := slices.Index(g.edges, e)
	if i < 0 {
		return ErrEdgeNotFound
	}
	g.edges = slices.Delete(g.edges, i, i+1)
	g.refreshConnected(e.Source)
	g.refreshConnected(e.Target)
	return nil
}

// refreshConnected recomputes the connected flag. Caller holds the write lock.
func (g *Graph) refreshConnected(p *Port) {
	for _, e := range g.edges {
		if e.uses(p) {
			p.connected.Store(true)
			return
		}
	}
	p.connected.Store(false)
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.nodes)
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.edges)
}

// Node looks up a node by ID.
func (g *Graph) Node(id string) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.index[id]
	return n, ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// FirstEdgeFrom returns the first edge, in insertion order, whose source is p.
func (g *Graph) FirstEdgeFrom(p *Port) (*Edge, bool) {
	if p == nil {
		return nil, false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, e := range g.edges {
		if e.Source == p {
			return e, true
		}
	}
	return nil, false
}

// HasIncoming reports whether any edge targets one of the node's ports.
func (g *Graph) HasIncoming(n *Node) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, e := range g.edges {
		if e.Target.node == n {
			return true
		}
	}
	return false
}

// EdgesOf returns every edge where n is the source or the target owner.
func (g *Graph) EdgesOf(n *Node) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []*Edge
	for _, e := range g.edges {
		if e.touches(n) {
			out = append(out, e)
		}
	}
	return out
}
