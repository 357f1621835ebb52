package domain

import (
	"slices"
	"sync/atomic"

	"github.com/google/uuid"
)

// Kind constants for the built-in node kinds.
// Any other string is treated as a plain action kind.
const (
	KindStart         = "start"
	KindDelay         = "delay"
	KindLoop          = "loop"
	KindMouseClick    = "mouse_click"
	KindMouseMove     = "mouse_move"
	KindKeyboardInput = "keyboard_input"
	KindKeyPress      = "key_press"
)

// Standard port names.
const (
	PortIn   = "in"
	PortOut  = "out"
	PortBody = "body"
	PortDone = "done"
)

// Node represents a unit of work in the graph.
// ID, kind, title and ports are fixed at construction; only the status changes during a run.
type Node struct {
	id      string
	kind    string
	title   string
	inputs  []*Port
	outputs []*Port
	action  Action
	status  atomic.Int32
}

// NodeOption configures a Node at construction.
type NodeOption func(*nodeConfig)

type nodeConfig struct {
	id      string
	inputs  []string
	outputs []string
	custom  bool
}

// WithID sets an explicit node ID instead of a generated one.
func WithID(id string) NodeOption {
	return func(c *nodeConfig) {
		c.id = id
	}
}

// WithPorts declares the node's input and output port names, in order.
// Without it a node gets a single "in" and a single "out" port.
func WithPorts(inputs []string, outputs []string) NodeOption {
	return func(c *nodeConfig) {
		c.inputs = inputs
		c.outputs = outputs
		c.custom = true
	}
}

// NewNode creates a node of the given kind backed by action.
func NewNode(kind, title string, action Action, opts ...NodeOption) *Node {
	cfg := nodeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	if !cfg.custom {
		cfg.inputs = []string{PortIn}
		cfg.outputs = []string{PortOut}
	}
	if title == "" {
		title = kind
	}

	n := &Node{
		id:     cfg.id,
		kind:   kind,
		title:  title,
		action: action,
	}
	for _, name := range cfg.inputs {
		n.inputs = append(n.inputs, newPort(n, Input, name))
	}
	for _, name := range cfg.outputs {
		n.outputs = append(n.outputs, newPort(n, Output, name))
	}
	return n
}

func (n *Node) ID() string     { return n.id }
func (n *Node) Kind() string   { return n.kind }
func (n *Node) Title() string  { return n.title }
func (n *Node) Action() Action { return n.action }

// Inputs returns the node's input ports in declared order.
func (n *Node) Inputs() []*Port { return slices.Clone(n.inputs) }

// Outputs returns the node's output ports in declared order.
func (n *Node) Outputs() []*Port { return slices.Clone(n.outputs) }

// Input returns the input port with the given name, or nil.
func (n *Node) Input(name string) *Port { return findPort(n.inputs, name) }

// Output returns the output port with the given name, or nil.
func (n *Node) Output(name string) *Port { return findPort(n.outputs, name) }

// Status returns a snapshot of the execution status.
// Observers may call it concurrently with a run.
func (n *Node) Status() NodeStatus {
	return NodeStatus(n.status.Load())
}

// SetStatus updates the execution status. Only the engine writes it during a run.
func (n *Node) SetStatus(s NodeStatus) {
	n.status.Store(int32(s))
}

// Detail returns the action's progress text, if it exposes one.
func (n *Node) Detail() string {
	if d, ok := n.action.(Describer); ok {
		return d.Detail()
	}
	return ""
}

func (n *Node) ports() []*Port {
	all := make([]*Port, 0, len(n.inputs)+len(n.outputs))
	all = append(all, n.inputs...)
	return append(all, n.outputs...)
}

func findPort(ports []*Port, name string) *Port {
	for _, p := range ports {
		if p.name == name {
			return p
		}
	}
	return nil
}
