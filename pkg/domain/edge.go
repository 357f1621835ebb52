package domain

// Edge links an Output port to an Input port of a different node.
type Edge struct {
	ID     string
	Source *Port
	Target *Port
}

// From returns the node owning the source port.
func (e *Edge) From() *Node { return e.Source.Node() }

// To returns the node owning the target port.
func (e *Edge) To() *Node { return e.Target.Node() }

func (e *Edge) touches(n *Node) bool {
	return e.Source.node == n || e.Target.node == n
}

func (e *Edge) uses(p *Port) bool {
	return e.Source == p || e.Target == p
}
