package dsl

import (
	"fmt"

	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/registry"
)

// Builder manages the graph construction.
type Builder struct {
	registry *registry.Registry
	order    []string
	nodes    map[string]*NodeBuilder
}

// New creates a new graph builder that resolves kinds through reg.
func New(reg *registry.Registry) *Builder {
	return &Builder{
		registry: reg,
		nodes:    make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
// Nodes keep the order in which they were first added.
func (b *Builder) Add(id, kind string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		id:      id,
		kind:    kind,
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Build constructs every node, then connects the declared edges in order.
func (b *Builder) Build() (*domain.Graph, error) {
	g := domain.NewGraph()
	built := make(map[string]*domain.Node, len(b.order))

	for _, id := range b.order {
		n, err := b.nodes[id].build()
		if err != nil {
			return nil, err
		}
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
		built[id] = n
	}

	for _, id := range b.order {
		for _, l := range b.nodes[id].links {
			if err := connect(g, built, id, l); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func connect(g *domain.Graph, built map[string]*domain.Node, from string, l link) error {
	target, ok := built[l.target]
	if !ok {
		return fmt.Errorf("edge %s.%s -> %s: %w", from, l.port, l.target, domain.ErrNodeNotFound)
	}
	out := built[from].Output(l.port)
	if out == nil {
		return fmt.Errorf("node %q has no output port %q", from, l.port)
	}
	in := target.Input(l.targetPort)
	if in == nil {
		return fmt.Errorf("node %q has no input port %q", l.target, l.targetPort)
	}
	if _, err := g.AddEdge(out, in); err != nil {
		return fmt.Errorf("edge %s.%s -> %s.%s: %w", from, l.port, l.target, l.targetPort, err)
	}
	return nil
}
