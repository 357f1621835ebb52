package cmdflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmdflow/cmdflow"
	"github.com/cmdflow/cmdflow/pkg/actuator"
	"github.com/cmdflow/cmdflow/pkg/adapters/memory"
	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/nodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_RunRecordsHistory(t *testing.T) {
	rec := actuator.NewRecorder(actuator.Point{})
	store := memory.NewStore()
	eng := cmdflow.New(
		cmdflow.WithDevices(nodes.Devices{Pointer: rec, Keyboard: rec}),
		cmdflow.WithStore(store),
	)

	g, err := eng.Sample("drag")
	require.NoError(t, err)

	report, err := eng.Run(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, report.State)
	assert.Equal(t, "move(960,540)", rec.Ops()[len(rec.Ops())-2])
	assert.Equal(t, "click(left)", rec.Ops()[len(rec.Ops())-1])

	history, err := eng.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, report.RunID, history[0].RunID)

	stored, err := eng.Report(context.Background(), report.RunID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Executed)
	assert.Equal(t, report.RunID, eng.RunID())
}

func TestEngine_StartAndStop(t *testing.T) {
	eng := cmdflow.New()
	g := domain.NewGraph()
	require.NoError(t, g.AddNode(nodes.NewDelay("Long", nodes.DelayConfig{Duration: time.Minute})))

	done, err := eng.Start(context.Background(), g)
	require.NoError(t, err)
	assert.True(t, eng.IsRunning())

	_, err = eng.Start(context.Background(), g)
	assert.ErrorIs(t, err, cmdflow.ErrBusy)

	eng.Stop()
	select {
	case res := <-done:
		require.NoError(t, res.Err)
		assert.Equal(t, domain.RunCancelled, res.Report.State)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop")
	}
	assert.Equal(t, domain.RunCancelled, eng.State())

	history, err := eng.History(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.RunCancelled, history[0].State)
}

func TestEngine_SubscribeSeesRun(t *testing.T) {
	eng := cmdflow.New()
	ch, cancel := eng.Subscribe(64)
	defer cancel()

	g, err := eng.Sample("hello")
	require.NoError(t, err)
	_, err = eng.Run(context.Background(), g)
	require.NoError(t, err)

	first := <-ch
	assert.Equal(t, domain.EventRunStarted, first.Type)
}

func TestEngine_UnknownSample(t *testing.T) {
	_, err := cmdflow.New().Sample("missing")
	assert.Error(t, err)
}

func TestEngine_StartTwiceWithoutWaiting(t *testing.T) {
	for i := 0; i < 20; i++ {
		eng := cmdflow.New()
		g := domain.NewGraph()
		require.NoError(t, g.AddNode(nodes.NewStart("Start")))

		first, err := eng.Start(context.Background(), g)
		require.NoError(t, err)
		second, err := eng.Start(context.Background(), g)
		assert.ErrorIs(t, err, cmdflow.ErrBusy)
		assert.Nil(t, second)

		res := <-first
		require.NoError(t, res.Err)
		assert.False(t, res.Report.Declined)
		assert.Equal(t, domain.RunCompleted, res.Report.State)
		assert.NotEmpty(t, res.Report.RunID)
	}
}
