package dsl

import (
	"fmt"

	"github.com/cmdflow/cmdflow/pkg/domain"
)

type link struct {
	port       string
	target     string
	targetPort string
}

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	id      string
	kind    string
	title   string
	params  map[string]any
	action  domain.Action
	inputs  []string
	outputs []string
	ports   bool
	links   []link
	builder *Builder
}

// Title sets the display title. Defaults to the node id.
func (n *NodeBuilder) Title(title string) *NodeBuilder {
	n.title = title
	return n
}

// Param sets one kind parameter, decoded by the registry.
func (n *NodeBuilder) Param(key string, value any) *NodeBuilder {
	if n.params == nil {
		n.params = make(map[string]any)
	}
	n.params[key] = value
	return n
}

// Params merges several kind parameters.
func (n *NodeBuilder) Params(params map[string]any) *NodeBuilder {
	for k, v := range params {
		n.Param(k, v)
	}
	return n
}

// Action uses a as the node's behavior instead of looking the kind up in the registry.
func (n *NodeBuilder) Action(a domain.Action) *NodeBuilder {
	n.action = a
	return n
}

// Ports overrides the default in/out ports of a custom action node.
func (n *NodeBuilder) Ports(inputs, outputs []string) *NodeBuilder {
	n.inputs = inputs
	n.outputs = outputs
	n.ports = true
	return n
}

// Go connects the "out" port to the target's "in" port.
func (n *NodeBuilder) Go(target string) *NodeBuilder {
	return n.Connect(domain.PortOut, target, domain.PortIn)
}

// Body connects a loop's "body" port to the target.
func (n *NodeBuilder) Body(target string) *NodeBuilder {
	return n.Connect(domain.PortBody, target, domain.PortIn)
}

// Done connects a loop's "done" port to the target.
func (n *NodeBuilder) Done(target string) *NodeBuilder {
	return n.Connect(domain.PortDone, target, domain.PortIn)
}

// Connect adds an edge from one of this node's output ports to a target input port.
func (n *NodeBuilder) Connect(port, target, targetPort string) *NodeBuilder {
	n.links = append(n.links, link{port: port, target: target, targetPort: targetPort})
	return n
}

func (n *NodeBuilder) build() (*domain.Node, error) {
	title := n.title
	if title == "" {
		title = n.id
	}
	opts := []domain.NodeOption{domain.WithID(n.id)}

	if n.action != nil {
		if n.ports {
			opts = append(opts, domain.WithPorts(n.inputs, n.outputs))
		}
		return domain.NewNode(n.kind, title, n.action, opts...), nil
	}
	if n.builder.registry == nil {
		return nil, fmt.Errorf("node %q: no registry to build kind %s", n.id, n.kind)
	}
	return n.builder.registry.Build(n.kind, title, n.params, opts...)
}
