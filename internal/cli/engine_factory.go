package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmdflow/cmdflow"
	"github.com/cmdflow/cmdflow/internal/config"
	"github.com/cmdflow/cmdflow/internal/logging"
	"github.com/cmdflow/cmdflow/pkg/actuator"
	"github.com/cmdflow/cmdflow/pkg/adapters/memory"
	"github.com/cmdflow/cmdflow/pkg/adapters/redis"
	"github.com/cmdflow/cmdflow/pkg/nodes"
	"github.com/cmdflow/cmdflow/pkg/ports"
)

// createLogger configures the application logger from the config level.
// Debug forces the debug level.
func createLogger(cfg config.Config, debug bool) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(level), nil
}

// createStore opens the configured run history backend.
// The returned close function releases its connections.
func createStore(ctx context.Context, cfg config.Config) (ports.RunStore, func() error, error) {
	switch cfg.History.Backend {
	case config.BackendRedis:
		rc := cfg.History.Redis
		opts := []redis.Option{redis.WithTTL(rc.TTL)}
		if rc.Prefix != "" {
			opts = append(opts, redis.WithPrefix(rc.Prefix))
		}
		store := redis.New(rc.Addr, rc.Password, rc.DB, opts...)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("redis history at %s: %w", rc.Addr, err)
		}
		return store, store.Close, nil
	default:
		return memory.NewStore(), func() error { return nil }, nil
	}
}

// createEngine initializes an engine with standard CLI conventions.
func createEngine(ctx context.Context, cfg config.Config, logger *slog.Logger) (*cmdflow.Engine, func() error, error) {
	store, closeStore, err := createStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// No native injector ships with the CLI; dry_run=false is rejected until one does.
	if !cfg.DryRun {
		_ = closeStore()
		return nil, nil, fmt.Errorf("native input injection is not available on this build; set dry_run: true")
	}
	dry := actuator.NewDryRun(logger)

	engine := cmdflow.New(
		cmdflow.WithLogger(logger),
		cmdflow.WithStore(store),
		cmdflow.WithDevices(nodes.Devices{Pointer: dry, Keyboard: dry}),
	)
	return engine, closeStore, nil
}
