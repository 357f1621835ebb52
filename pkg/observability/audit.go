package observability

import (
	"context"
	"log/slog"

	"github.com/cmdflow/cmdflow/pkg/domain"
)

type auditOptions struct {
	skipLogs bool
}

// AuditOption configures Audit.
type AuditOption func(*auditOptions)

// WithoutLogEvents leaves log events out of the audit trail. Use it when the
// engine writes to the same logger, which already records every log event.
func WithoutLogEvents() AuditOption {
	return func(o *auditOptions) {
		o.skipLogs = true
	}
}

// Audit returns a Handler that writes every event to logger as a structured record.
func Audit(logger *slog.Logger, opts ...AuditOption) Handler {
	var o auditOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(ev domain.Event) {
		ctx := context.Background()
		switch ev.Type {
		case domain.EventLog:
			if ev.Log == nil || o.skipLogs {
				return
			}
			logger.LogAttrs(ctx, severityLevel(ev.Log.Severity), ev.Log.Message,
				slog.String("run_id", ev.RunID),
				slog.String("severity", string(ev.Log.Severity)),
			)
		case domain.EventNodeStatus:
			if ev.Node == nil {
				return
			}
			attrs := []slog.Attr{
				slog.String("run_id", ev.RunID),
				slog.String("node_id", ev.Node.NodeID),
				slog.String("kind", ev.Node.Kind),
				slog.String("status", ev.Node.Status.String()),
			}
			if ev.Node.Detail != "" {
				attrs = append(attrs, slog.String("detail", ev.Node.Detail))
			}
			logger.LogAttrs(ctx, slog.LevelDebug, "node_status", attrs...)
		case domain.EventRunStarted:
			logger.Info("run_started", "run_id", ev.RunID)
		case domain.EventRunStopped:
			logger.Info("run_stopped", "run_id", ev.RunID, "state", ev.State)
		}
	}
}

func severityLevel(s domain.Severity) slog.Level {
	switch s {
	case domain.SeverityWarning:
		return slog.LevelWarn
	case domain.SeverityError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
