// Package validator reports structural problems that make part of a workflow
// graph dead: nodes the engine can never reach and edges it never follows.
package validator

import (
	"fmt"
	"strings"

	"github.com/cmdflow/cmdflow/pkg/domain"
)

// Issues lists the problems found in g, in graph order. An empty result means
// every node is reachable and every edge is followed.
func Issues(g *domain.Graph) []string {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil
	}

	var issues []string

	var queue []*domain.Node
	for _, n := range nodes {
		if n.Kind() == domain.KindStart {
			queue = append(queue, n)
		}
	}
	if len(queue) == 0 {
		issues = append(issues, fmt.Sprintf("no start node; execution begins at %q", nodes[0].Title()))
		queue = append(queue, nodes[0])
	}

	// Crawl along the edges the engine would take: the first edge of each output port.
	visited := make(map[string]bool)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current.ID()] {
			continue
		}
		visited[current.ID()] = true

		for _, port := range current.Outputs() {
			edge, ok := g.FirstEdgeFrom(port)
			if !ok {
				if current.Kind() == domain.KindLoop && port.Name() == domain.PortBody {
					issues = append(issues, fmt.Sprintf("loop %q has nothing connected to its body", current.Title()))
				}
				continue
			}
			if !visited[edge.To().ID()] {
				queue = append(queue, edge.To())
			}
		}
	}

	for _, n := range nodes {
		if !visited[n.ID()] {
			issues = append(issues, fmt.Sprintf("node %q is unreachable", n.Title()))
		}
	}

	for _, e := range g.Edges() {
		if first, ok := g.FirstEdgeFrom(e.Source); ok && first != e {
			issues = append(issues, fmt.Sprintf("edge %s.%s -> %s is never followed; only the first edge of a port runs",
				e.From().Title(), e.Source.Name(), e.To().Title()))
		}
	}

	return issues
}

// ValidateGraph returns an error listing every issue in g, or nil.
func ValidateGraph(g *domain.Graph) error {
	issues := Issues(g)
	if len(issues) > 0 {
		return fmt.Errorf("found %d issues:\n- %s", len(issues), strings.Join(issues, "\n- "))
	}
	return nil
}
