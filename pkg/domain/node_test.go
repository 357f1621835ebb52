package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type detailAction struct{ domain.ActionFunc }

func (detailAction) Detail() string { return "waiting" }

func TestNewNode_DefaultPorts(t *testing.T) {
	n := domain.NewNode("action", "", noop())

	assert.NotEmpty(t, n.ID())
	assert.Equal(t, "action", n.Title(), "title falls back to the kind")
	require.Len(t, n.Inputs(), 1)
	require.Len(t, n.Outputs(), 1)

	in := n.Input(domain.PortIn)
	require.NotNil(t, in)
	assert.Equal(t, domain.Input, in.Direction())
	assert.Same(t, n, in.Node())
	assert.False(t, in.Connected())
	assert.Equal(t, domain.MakePortID(n.ID(), domain.Input, "in"), in.ID())
}

func TestNewNode_CustomPorts(t *testing.T) {
	n := domain.NewNode(domain.KindLoop, "Loop", noop(),
		domain.WithID("loop-1"),
		domain.WithPorts([]string{"in"}, []string{"body", "done"}),
	)

	assert.Equal(t, "loop-1", n.ID())
	outs := n.Outputs()
	require.Len(t, outs, 2)
	assert.Equal(t, "body", outs[0].Name())
	assert.Equal(t, "done", outs[1].Name())
	assert.Nil(t, n.Output("missing"))

	// The returned slice is a copy.
	outs[0] = nil
	assert.NotNil(t, n.Outputs()[0])
}

func TestNewNode_NoInputs(t *testing.T) {
	n := domain.NewNode(domain.KindStart, "Start", noop(), domain.WithPorts(nil, []string{"out"}))
	assert.Empty(t, n.Inputs())
	assert.Len(t, n.Outputs(), 1)
}

func TestNode_StatusAndDetail(t *testing.T) {
	n := domain.NewNode("action", "A", detailAction{})
	assert.Equal(t, domain.StatusIdle, n.Status())

	n.SetStatus(domain.StatusRunning)
	assert.Equal(t, domain.StatusRunning, n.Status())
	assert.Equal(t, "waiting", n.Detail())

	plain := domain.NewNode("action", "B", noop())
	assert.Empty(t, plain.Detail())
}

func TestNodeStatus_JSON(t *testing.T) {
	ev := domain.NodeEvent{NodeID: "a", Status: domain.StatusSucceeded}
	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"succeeded"`)

	var back domain.NodeEvent
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, domain.StatusSucceeded, back.Status)
}

func TestRunState_Terminal(t *testing.T) {
	assert.False(t, domain.RunIdle.Terminal())
	assert.False(t, domain.RunRunning.Terminal())
	assert.True(t, domain.RunCompleted.Terminal())
	assert.True(t, domain.RunCancelled.Terminal())
	assert.True(t, domain.RunFailed.Terminal())
}
