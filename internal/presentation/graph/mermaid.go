package graph

import (
	"fmt"
	"strings"

	"github.com/cmdflow/cmdflow/pkg/domain"
)

// Overlay selects which run state is painted onto the chart.
type Overlay struct {
	// Statuses colors nodes by their current execution status.
	Statuses bool
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a graph.
// It applies semantic styling:
// - Start: ((Circle))
// - Loop: {{Hexagon}}
// - Delay: [/Parallelogram/]
// - Device actions: [[Subroutine]]
// - Default: [Rectangle]
// Edges leaving a port other than "out" are labeled with the port name.
func GenerateMermaid(g *domain.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range g.Nodes() {
		safeID := sanitizeMermaidID(node.ID())

		opener, closer := "[", "]"
		switch node.Kind() {
		case domain.KindStart:
			opener, closer = "((", "))"
		case domain.KindLoop:
			opener, closer = "{{", "}}"
		case domain.KindDelay:
			opener, closer = "[/", "/]"
		case domain.KindMouseClick, domain.KindMouseMove, domain.KindKeyboardInput, domain.KindKeyPress:
			opener, closer = "[[", "]]"
		}

		label := escapeLabel(node.Title())
		if overlay != nil && overlay.Statuses {
			if detail := node.Detail(); detail != "" {
				label += " <br/> " + escapeLabel(detail)
			}
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)
	}

	for _, e := range g.Edges() {
		from := sanitizeMermaidID(e.From().ID())
		to := sanitizeMermaidID(e.To().ID())
		arrow := "-->"
		if name := e.Source.Name(); name != domain.PortOut {
			arrow = fmt.Sprintf("-- \"%s\" -->", escapeLabel(name))
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", from, arrow, to)
	}

	if overlay != nil && overlay.Statuses {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high contrast regardless of theme.
		sb.WriteString("    classDef succeeded fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef running fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")

		for _, node := range g.Nodes() {
			switch s := node.Status(); s {
			case domain.StatusSucceeded, domain.StatusRunning, domain.StatusFailed:
				fmt.Fprintf(&sb, "    class %s %s;\n", sanitizeMermaidID(node.ID()), s)
			}
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
