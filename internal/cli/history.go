package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cmdflow/cmdflow/internal/config"
	"github.com/cmdflow/cmdflow/internal/presentation/tui"
	"github.com/cmdflow/cmdflow/pkg/samples"
)

// PrintSamples writes the built-in workflow names with their descriptions.
func PrintSamples(w io.Writer) {
	for _, name := range samples.Names() {
		s, _ := samples.Get(name)
		fmt.Fprintf(w, "%-12s %s\n", name, s.Description)
	}
}

// PrintHistory writes the most recent run reports from the configured store.
func PrintHistory(ctx context.Context, w io.Writer, cfg config.Config, limit int, plain bool) error {
	store, closeStore, err := createStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	reports, err := store.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	table := tui.HistoryTable(reports)
	if !plain && w == os.Stdout && tui.IsTerminal(os.Stdout) {
		if text, err := tui.NewRenderer(false)(table); err == nil {
			table = text
		}
	}
	fmt.Fprint(w, strings.TrimRight(table, "\n")+"\n")
	return nil
}
