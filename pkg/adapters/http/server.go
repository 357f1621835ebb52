package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmdflow/cmdflow"
	"github.com/cmdflow/cmdflow/internal/presentation/graph"
	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/samples"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines what the control server needs from the cmdflow engine.
type Engine interface {
	Sample(name string) (*domain.Graph, error)
	Start(ctx context.Context, g *domain.Graph) (<-chan cmdflow.Result, error)
	Stop()
	IsRunning() bool
	State() domain.RunState
	RunID() string
	History(ctx context.Context, limit int) ([]*domain.Report, error)
	Report(ctx context.Context, runID string) (*domain.Report, error)
	Subscribe(buffer int) (<-chan domain.Event, func())
}

// Server serves the control API.
type Server struct {
	Engine   Engine
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	runCtx   context.Context
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer exposes the given registry on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithRunContext sets the parent context of runs started over HTTP.
// Runs outlive the request that started them.
func WithRunContext(ctx context.Context) Option {
	return func(s *Server) {
		s.runCtx = ctx
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine:   engine,
		logger:   slog.Default(),
		gatherer: prometheus.DefaultGatherer,
		runCtx:   context.Background(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", server.GetHealth)
	r.Get("/status", server.GetStatus)
	r.Get("/workflows", server.ListWorkflows)
	r.Get("/workflows/{name}/graph", server.GetGraph)
	r.Post("/workflows/{name}/run", server.RunWorkflow)
	r.Post("/stop", server.Stop)
	r.Get("/runs", server.ListRuns)
	r.Get("/runs/{id}", server.GetRun)
	r.Get("/events", server.SubscribeEvents)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Status is the body of GET /status.
type Status struct {
	State   domain.RunState `json:"state"`
	Running bool            `json:"running"`
	RunID   string          `json:"run_id,omitempty"`
}

// Workflow is one entry of GET /workflows.
type Workflow struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetStatus handles GET /status.
func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, Status{
		State:   s.Engine.State(),
		Running: s.Engine.IsRunning(),
		RunID:   s.Engine.RunID(),
	})
}

// ListWorkflows handles GET /workflows.
func (s *Server) ListWorkflows(w http.ResponseWriter, r *http.Request) {
	out := []Workflow{}
	for _, name := range samples.Names() {
		sample, _ := samples.Get(name)
		out = append(out, Workflow{Name: sample.Name, Description: sample.Description})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// GetGraph handles GET /workflows/{name}/graph and returns Mermaid source.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.Engine.Sample(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(g, nil)))
}

// RunWorkflow handles POST /workflows/{name}/run. The run continues after the response.
func (s *Server) RunWorkflow(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	g, err := s.Engine.Sample(name)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	done, err := s.Engine.Start(s.runCtx, g)
	if err != nil {
		if errors.Is(err, cmdflow.ErrBusy) {
			s.writeError(w, http.StatusConflict, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	go func() {
		res := <-done
		if res.Err != nil {
			s.logger.Warn("workflow failed", "workflow", name, "error", res.Err)
			return
		}
		if res.Report != nil {
			s.logger.Info("workflow finished", "workflow", name, "run_id", res.Report.RunID, "state", res.Report.State)
		}
	}()

	s.writeJSON(w, http.StatusAccepted, map[string]string{"workflow": name, "status": "started"})
}

// Stop handles POST /stop.
func (s *Server) Stop(w http.ResponseWriter, r *http.Request) {
	s.Engine.Stop()
	s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "stopping"})
}

// ListRuns handles GET /runs?limit=N.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", v))
			return
		}
		limit = n
	}

	reports, err := s.Engine.History(r.Context(), limit)
	if err != nil {
		s.logger.Error("history failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, reports)
}

// GetRun handles GET /runs/{id}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	report, err := s.Engine.Report(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// SubscribeEvents handles GET /events (SSE). Each engine event is sent as JSON.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch, cancel := s.Engine.Subscribe(0)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				s.logger.Error("SSE encode failed", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
			flusher.Flush()
		}
	}
}
