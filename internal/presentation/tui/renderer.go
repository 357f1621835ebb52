package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/cmdflow/cmdflow/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// With plain set, markdown is returned unchanged.
func NewRenderer(plain bool) func(string) (string, error) {
	if plain {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Summary describes a finished run as markdown.
func Summary(workflow string, r *domain.Report) string {
	var sb strings.Builder
	if workflow != "" {
		fmt.Fprintf(&sb, "# %s\n\n", workflow)
	}
	if r.Declined {
		sb.WriteString("Run declined: another run is in progress.\n")
		return sb.String()
	}

	sb.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Run | `%s` |\n", r.RunID)
	fmt.Fprintf(&sb, "| State | **%s** |\n", r.State)
	fmt.Fprintf(&sb, "| Nodes executed | %d |\n", r.Executed)
	fmt.Fprintf(&sb, "| Duration | %s |\n", r.Duration().Round(time.Millisecond))
	if r.FailedNode != "" {
		fmt.Fprintf(&sb, "| Failed node | `%s` |\n", r.FailedNode)
	}
	if r.Error != "" {
		fmt.Fprintf(&sb, "\n> %s\n", strings.ReplaceAll(r.Error, "\n", " "))
	}
	return sb.String()
}

// HistoryTable lists reports as a markdown table.
func HistoryTable(reports []*domain.Report) string {
	if len(reports) == 0 {
		return "No runs recorded.\n"
	}
	var sb strings.Builder
	sb.WriteString("| Run | Started | State | Nodes | Duration |\n|---|---|---|---|---|\n")
	for _, r := range reports {
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %d | %s |\n",
			r.RunID,
			r.StartedAt.Format(time.DateTime),
			r.State,
			r.Executed,
			r.Duration().Round(time.Millisecond),
		)
	}
	return sb.String()
}
