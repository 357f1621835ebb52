package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cmdflow/cmdflow/internal/config"
	cmdhttp "github.com/cmdflow/cmdflow/pkg/adapters/http"
	"github.com/cmdflow/cmdflow/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures the control server.
type ServeOptions struct {
	Addr  string
	Debug bool

	// Listener overrides Addr when set.
	Listener net.Listener
}

// Serve runs the HTTP control server until ctx is done or the process is interrupted.
func Serve(ctx context.Context, cfg config.Config, opts ServeOptions) error {
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

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	stopWatch := observability.Watch(sigCtx, engine.Bus(), cfg.EventBuffer,
		metrics.Handle,
		observability.Audit(logger, observability.WithoutLogEvents()),
	)
	defer stopWatch()

	addr := cfg.Server.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}
	srv := &http.Server{
		Addr: addr,
		Handler: cmdhttp.NewHandler(engine,
			cmdhttp.WithLogger(logger),
			cmdhttp.WithGatherer(reg),
			cmdhttp.WithRunContext(sigCtx),
		),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		BaseContext:       func(net.Listener) context.Context { return sigCtx },
		ReadTimeout:       cfg.Server.ReadTimeout,
	}

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		logger.Info("control server listening", "addr", addr)
		var err error
		if opts.Listener != nil {
			err = srv.Serve(opts.Listener)
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down control server")
		engine.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
