package graph_test

import (
	"context"
	"testing"

	"github.com/cmdflow/cmdflow/internal/presentation/graph"
	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/nodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) (*domain.Graph, *domain.Node) {
	t.Helper()
	g := domain.NewGraph()
	start := nodes.NewStart("Start", domain.WithID("start"))
	loop := nodes.NewLoop("Repeat \"3\"", nodes.LoopConfig{Count: 3}, domain.WithID("my-loop"))
	wait := nodes.NewDelay("Wait", nodes.DefaultDelayConfig(), domain.WithID("wait"))
	click := nodes.NewMouseClick("Click", nodes.DefaultMouseClickConfig(), nil, domain.WithID("click"))
	for _, n := range []*domain.Node{start, loop, wait, click} {
		require.NoError(t, g.AddNode(n))
	}
	for _, pair := range [][2]*domain.Port{
		{start.Output(domain.PortOut), loop.Input(domain.PortIn)},
		{loop.Output(domain.PortBody), click.Input(domain.PortIn)},
		{loop.Output(domain.PortDone), wait.Input(domain.PortIn)},
	} {
		_, err := g.AddEdge(pair[0], pair[1])
		require.NoError(t, err)
	}
	return g, loop
}

func TestGenerateMermaid(t *testing.T) {
	g, _ := sample(t)
	out := graph.GenerateMermaid(g, nil)

	assert.Contains(t, out, "graph TD\n")
	assert.Contains(t, out, `start(("Start"))`)
	assert.Contains(t, out, `my_loop{{"Repeat '3'"}}`)
	assert.Contains(t, out, `wait[/"Wait"/]`)
	assert.Contains(t, out, `click[["Click"]]`)
	assert.Contains(t, out, "start --> my_loop")
	assert.Contains(t, out, `my_loop -- "body" --> click`)
	assert.Contains(t, out, `my_loop -- "done" --> wait`)
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_StatusOverlay(t *testing.T) {
	g, loop := sample(t)
	start, _ := g.Node("start")
	start.SetStatus(domain.StatusSucceeded)
	loop.SetStatus(domain.StatusRunning)
	require.NoError(t, loop.Action().Execute(context.Background()))

	out := graph.GenerateMermaid(g, &graph.Overlay{Statuses: true})
	assert.Contains(t, out, "class start succeeded;")
	assert.Contains(t, out, "class my_loop running;")
	assert.Contains(t, out, "iteration 0/3")
	assert.NotContains(t, out, "class wait")
}
