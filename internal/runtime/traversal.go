package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmdflow/cmdflow/pkg/domain"
)

// NodeError reports the node whose action failed a run.
type NodeError struct {
	NodeID string
	Title  string
	Err    error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %q (%s): %v", e.Title, e.NodeID, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

type visitedSet map[string]struct{}

// run holds the state of a single Engine.Run call.
type run struct {
	engine *Engine
	graph  *domain.Graph
	ctx    context.Context
	report *domain.Report
}

func (r *run) cancelled() bool {
	return r.ctx.Err() != nil
}

// execute traverses every entry node with its own visited set.
func (r *run) execute() error {
	for _, root := range r.entries() {
		if err := r.visit(root, visitedSet{}); err != nil {
			return err
		}
		if r.cancelled() {
			return nil
		}
	}
	return nil
}

// entries selects where traversal begins: every start node in graph order,
// falling back to the first node.
func (r *run) entries() []*domain.Node {
	nodes := r.graph.Nodes()

	var roots []*domain.Node
	for _, n := range nodes {
		if n.Kind() == domain.KindStart {
			roots = append(roots, n)
		}
	}
	if len(roots) > 0 {
		return roots
	}

	// Source nodes qualify only if they are start nodes too, so this adds
	// nothing once the loop above came up empty.
	for _, n := range nodes {
		if !r.graph.HasIncoming(n) && n.Kind() == domain.KindStart {
			roots = append(roots, n)
		}
	}
	if len(roots) == 0 && len(nodes) > 0 {
		r.log(domain.SeverityWarning, "no start node found, starting from first node")
		roots = nodes[:1]
	}
	return roots
}

func (r *run) visit(n *domain.Node, visited visitedSet) error {
	if r.cancelled() {
		return nil
	}
	if _, seen := visited[n.ID()]; seen {
		return nil
	}
	visited[n.ID()] = struct{}{}

	r.log(domain.SeverityInfo, "executing node: "+n.Title())
	r.setStatus(n, domain.StatusRunning)
	r.report.Executed++

	action := n.Action()
	if action != nil {
		if err := action.Execute(r.ctx); err != nil {
			return r.fail(n, err)
		}
	}
	r.setStatus(n, domain.StatusSucceeded)

	if loop, ok := action.(domain.Looper); ok {
		return r.loop(n, loop, visited)
	}
	for _, out := range n.Outputs() {
		if err := r.follow(out, visited); err != nil {
			return err
		}
	}
	return nil
}

// loop runs the body branch once per iteration, each pass with a fresh visited
// set seeded with the loop itself, then continues through "done".
func (r *run) loop(n *domain.Node, l domain.Looper, visited visitedSet) error {
	body := n.Output(domain.PortBody)

	var err error
	for l.Continue() && !r.cancelled() {
		if iterErr := l.Iterate(r.ctx); iterErr != nil {
			err = r.fail(n, iterErr)
			break
		}
		r.publishNode(n)
		if err = r.follow(body, visitedSet{n.ID(): {}}); err != nil {
			break
		}
	}
	l.Reset()
	if err != nil {
		return err
	}

	r.setStatus(n, domain.StatusIdle)
	return r.follow(n.Output(domain.PortDone), visited)
}

// follow continues along the first edge leaving p, if any.
func (r *run) follow(p *domain.Port, visited visitedSet) error {
	if p == nil {
		return nil
	}
	edge, ok := r.graph.FirstEdgeFrom(p)
	if !ok {
		return nil
	}
	return r.visit(edge.To(), visited)
}

// fail records a node failure. Errors caused by the run being cancelled are
// not failures: the node goes back to idle and traversal unwinds.
func (r *run) fail(n *domain.Node, err error) error {
	if r.cancelled() && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		r.setStatus(n, domain.StatusIdle)
		return nil
	}
	r.setStatus(n, domain.StatusFailed)
	r.log(domain.SeverityError, fmt.Sprintf("node %s failed: %v", n.Title(), err))
	return &NodeError{NodeID: n.ID(), Title: n.Title(), Err: err}
}

// finish derives the terminal state and completes the report.
func (r *run) finish(err error) domain.RunState {
	state := domain.RunCompleted
	switch {
	case err != nil:
		state = domain.RunFailed
		r.report.Err = err
		r.report.Error = err.Error()
		var nodeErr *NodeError
		if errors.As(err, &nodeErr) {
			r.report.FailedNode = nodeErr.NodeID
		}
		r.log(domain.SeverityError, "execution failed: "+err.Error())
	case r.cancelled():
		state = domain.RunCancelled
		r.log(domain.SeverityWarning, "workflow stopped")
	default:
		r.log(domain.SeveritySuccess, "workflow completed")
	}
	r.report.State = state
	r.report.FinishedAt = r.engine.now()
	return state
}

func (r *run) setStatus(n *domain.Node, s domain.NodeStatus) {
	n.SetStatus(s)
	r.engine.logger.Debug("node status",
		"run_id", r.report.RunID,
		"node_id", n.ID(),
		"kind", n.Kind(),
		"status", s.String(),
	)
	r.publishNode(n)
}

func (r *run) publishNode(n *domain.Node) {
	r.publish(domain.Event{
		Type: domain.EventNodeStatus,
		Node: &domain.NodeEvent{
			NodeID: n.ID(),
			Kind:   n.Kind(),
			Title:  n.Title(),
			Status: n.Status(),
			Detail: n.Detail(),
		},
	})
}

func (r *run) log(sev domain.Severity, msg string) {
	now := r.engine.now()
	r.engine.logger.Log(context.Background(), slogLevel(sev), msg, "run_id", r.report.RunID)
	r.publish(domain.Event{
		Type: domain.EventLog,
		Log:  &domain.LogEvent{Timestamp: now, Message: msg, Severity: sev},
	})
}

func (r *run) publish(ev domain.Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = r.engine.now()
	}
	ev.RunID = r.report.RunID
	r.engine.bus.Publish(ev)
}

func slogLevel(sev domain.Severity) slog.Level {
	switch sev {
	case domain.SeverityWarning:
		return slog.LevelWarn
	case domain.SeverityError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
