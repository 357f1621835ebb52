/*
Package observability provides tools for monitoring the cmdflow engine.

Everything here consumes the engine's event bus: Watch drains a subscription and
fans each event out to handlers such as the Prometheus Metrics collector and the
slog-based Audit log. Handlers never slow the engine down; a subscriber that
falls behind loses events instead.
*/
package observability
