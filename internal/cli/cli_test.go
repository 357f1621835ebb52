package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cmdflow/cmdflow/internal/config"
	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStore_Memory(t *testing.T) {
	store, closeStore, err := createStore(context.Background(), config.Default())
	require.NoError(t, err)
	defer closeStore()

	runs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestCreateStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.History.Backend = config.BackendRedis
	cfg.History.Redis.Addr = mr.Addr()

	store, closeStore, err := createStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeStore()

	report := &domain.Report{RunID: "r1", State: domain.RunCompleted, StartedAt: time.Now()}
	require.NoError(t, store.Save(context.Background(), report))
	assert.True(t, mr.Exists("cmdflow:runs:r1"))
}

func TestCreateStore_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.History.Backend = config.BackendRedis
	cfg.History.Redis.Addr = addr

	_, _, err := createStore(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), addr)
}

func TestCreateEngine_RequiresDryRun(t *testing.T) {
	cfg := config.Default()
	cfg.DryRun = false

	logger, err := createLogger(cfg, false)
	require.NoError(t, err)

	_, _, err = createEngine(context.Background(), cfg, logger)
	assert.ErrorContains(t, err, "dry_run")
}

func TestCreateLogger_InvalidLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "loud"
	_, err := createLogger(cfg, false)
	assert.Error(t, err)
}

func decodeEvents(t *testing.T, r io.Reader) []domain.Event {
	t.Helper()
	var out []domain.Event
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		var ev domain.Event
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev), sc.Text())
		out = append(out, ev)
	}
	return out
}

func TestRunWorkflow_JSON(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "error"

	var buf bytes.Buffer
	err := RunWorkflow(context.Background(), cfg, RunOptions{
		Workflow: "drag",
		JSON:     true,
		Out:      &buf,
	})
	require.NoError(t, err)

	evs := decodeEvents(t, &buf)
	require.NotEmpty(t, evs)
	assert.Equal(t, domain.EventRunStarted, evs[0].Type)
	last := evs[len(evs)-1]
	assert.Equal(t, domain.EventRunStopped, last.Type)
	assert.Equal(t, domain.RunCompleted, last.State)
}

func TestRunWorkflow_Plain(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "error"

	var buf bytes.Buffer
	err := RunWorkflow(context.Background(), cfg, RunOptions{
		Workflow: "drag",
		NoColor:  true,
		Out:      &buf,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "workflow completed")
	assert.Contains(t, out, "# drag")
	assert.Contains(t, out, "completed")
}

func TestRunWorkflow_UnknownSample(t *testing.T) {
	err := RunWorkflow(context.Background(), config.Default(), RunOptions{
		Workflow: "nope",
		Out:      io.Discard,
	})
	assert.Error(t, err)
}

func TestRunWorkflow_Cancelled(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "error"

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	err := RunWorkflow(ctx, cfg, RunOptions{Workflow: "save", JSON: true, Out: &buf})
	require.NoError(t, err, "a stopped run is not a failure")

	evs := decodeEvents(t, &buf)
	require.NotEmpty(t, evs)
	assert.Equal(t, domain.RunCancelled, evs[len(evs)-1].State)
}

func TestExecute_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmdflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: error\nevent_buffer: 16\n"), 0o600))

	var buf bytes.Buffer
	err := Execute(context.Background(), RunOptions{
		Workflow:   "drag",
		ConfigPath: path,
		EnvFile:    filepath.Join(t.TempDir(), "missing.env"),
		JSON:       true,
		Out:        &buf,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, decodeEvents(t, &buf))
}

func TestPrintSamples(t *testing.T) {
	var buf bytes.Buffer
	PrintSamples(&buf)
	assert.Contains(t, buf.String(), "click-loop")
	assert.Contains(t, buf.String(), "hello")
}

func TestPrintHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintHistory(context.Background(), &buf, config.Default(), 10, true))
	assert.Equal(t, "No runs recorded.\n", buf.String())
}

func TestServe_HealthAndShutdown(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "error"

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, cfg, ServeOptions{Listener: ln}) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
