package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cmdflow/cmdflow/internal/config"
	"github.com/cmdflow/cmdflow/internal/presentation/tui"
	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/observability"
)

// ErrRunFailed is returned when the workflow ended in the failed state.
var ErrRunFailed = errors.New("workflow failed")

// RunOptions holds the configuration for running a workflow.
type RunOptions struct {
	Workflow   string
	ConfigPath string
	EnvFile    string
	Debug      bool
	JSON       bool
	NoColor    bool

	// Out receives the event stream and summary. Defaults to os.Stdout.
	Out io.Writer
}

func (o RunOptions) stdout() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

// LoadConfig reads the config file and env overrides.
func LoadConfig(path, envFile string) (config.Config, error) {
	var opts []config.Option
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	return config.Load(path, opts...)
}

// Execute runs a sample workflow until it ends or the process is interrupted.
func Execute(ctx context.Context, opts RunOptions) error {
	cfg, err := LoadConfig(opts.ConfigPath, opts.EnvFile)
	if err != nil {
		return err
	}
	return RunWorkflow(ctx, cfg, opts)
}

// RunWorkflow executes opts.Workflow with an already loaded config.
func RunWorkflow(ctx context.Context, cfg config.Config, opts RunOptions) error {
	logger, err := createLogger(cfg, opts.Debug)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	engine, closeStore, err := createEngine(sigCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	g, err := engine.Sample(opts.Workflow)
	if err != nil {
		return err
	}

	out := opts.stdout()
	color := !opts.NoColor && !opts.JSON && isTerminal(out)

	var handlers []observability.Handler
	if opts.JSON {
		enc := json.NewEncoder(out)
		handlers = append(handlers, func(ev domain.Event) {
			_ = enc.Encode(ev)
		})
	} else {
		tui.PrintBanner(out, color)
		handlers = append(handlers, tui.NewLogPrinter(out, color).Handle)
	}
	handlers = append(handlers, observability.Audit(logger, observability.WithoutLogEvents()))

	stopWatch := observability.Watch(context.Background(), engine.Bus(), cfg.EventBuffer, handlers...)
	report, runErr := engine.Run(sigCtx, g)
	stopWatch()

	if sig := sigCtx.Signal(); sig != nil {
		logger.Debug("run interrupted", "signal", sig.String())
	}

	if !opts.JSON {
		render := tui.NewRenderer(!color)
		text, rerr := render(tui.Summary(opts.Workflow, report))
		if rerr != nil {
			text = tui.Summary(opts.Workflow, report)
		}
		fmt.Fprintln(out, text)
	}

	if runErr != nil {
		return fmt.Errorf("%w: %v", ErrRunFailed, runErr)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.IsTerminal(f)
}
