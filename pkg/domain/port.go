package domain

import "sync/atomic"

// Direction tells whether a port receives or emits flow.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// Port is a named attachment point on a node.
type Port struct {
	id        string
	direction Direction
	name      string
	node      *Node
	connected atomic.Bool
}

func newPort(owner *Node, dir Direction, name string) *Port {
	return &Port{
		id:        MakePortID(owner.id, dir, name),
		direction: dir,
		name:      name,
		node:      owner,
	}
}

// MakePortID builds the port identifier "{node_id}:{direction}:{name}".
func MakePortID(nodeID string, dir Direction, name string) string {
	return nodeID + ":" + dir.String() + ":" + name
}

func (p *Port) ID() string           { return p.id }
func (p *Port) Direction() Direction { return p.direction }
func (p *Port) Name() string         { return p.name }

// Node returns the owning node. The port does not own it.
func (p *Port) Node() *Node { return p.node }

// Connected reports whether at least one edge uses the port.
func (p *Port) Connected() bool { return p.connected.Load() }
