package validator

import (
	"context"
	"testing"

	"github.com/cmdflow/cmdflow/pkg/actuator"
	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/nodes"
	"github.com/cmdflow/cmdflow/pkg/registry"
	"github.com/cmdflow/cmdflow/pkg/samples"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(kind, title string, outputs ...string) *domain.Node {
	if len(outputs) == 0 {
		outputs = []string{domain.PortOut}
	}
	inputs := []string{domain.PortIn}
	if kind == domain.KindStart {
		inputs = nil
	}
	return domain.NewNode(kind, title,
		domain.ActionFunc(func(context.Context) error { return nil }),
		domain.WithPorts(inputs, outputs),
	)
}

func connect(t *testing.T, g *domain.Graph, from *domain.Node, port string, to *domain.Node) {
	t.Helper()
	_, err := g.AddEdge(from.Output(port), to.Input(domain.PortIn))
	require.NoError(t, err)
}

func build(t *testing.T, nodes ...*domain.Node) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	for _, n := range nodes {
		require.NoError(t, g.AddNode(n))
	}
	return g
}

func TestValidateGraph_Valid(t *testing.T) {
	start := node(domain.KindStart, "Start")
	loop := node(domain.KindLoop, "Repeat", domain.PortBody, domain.PortDone)
	click := node("action", "Click")
	wait := node("action", "Wait")
	g := build(t, start, loop, click, wait)

	connect(t, g, start, domain.PortOut, loop)
	connect(t, g, loop, domain.PortBody, click)
	connect(t, g, loop, domain.PortDone, wait)

	assert.Empty(t, Issues(g))
	assert.NoError(t, ValidateGraph(g))
}

func TestValidateGraph_Empty(t *testing.T) {
	assert.NoError(t, ValidateGraph(domain.NewGraph()))
}

func TestValidateGraph_Issues(t *testing.T) {
	start := node(domain.KindStart, "Start")
	a := node("action", "A")
	b := node("action", "B")
	orphan := node("action", "Orphan")
	g := build(t, start, a, b, orphan)

	connect(t, g, start, domain.PortOut, a)
	connect(t, g, start, domain.PortOut, b)

	issues := Issues(g)
	assert.Equal(t, []string{
		`node "B" is unreachable`,
		`node "Orphan" is unreachable`,
		"edge Start.out -> B is never followed; only the first edge of a port runs",
	}, issues)

	err := ValidateGraph(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 3 issues")
}

func TestValidateGraph_NoStartAndEmptyLoop(t *testing.T) {
	loop := node(domain.KindLoop, "Repeat", domain.PortBody, domain.PortDone)
	after := node("action", "After")
	g := build(t, loop, after)
	connect(t, g, loop, domain.PortDone, after)

	assert.Equal(t, []string{
		`no start node; execution begins at "Repeat"`,
		`loop "Repeat" has nothing connected to its body`,
	}, Issues(g))
}

func TestBuiltInSamplesAreValid(t *testing.T) {
	rec := actuator.NewRecorder(actuator.Point{})
	reg := registry.NewDefault(nodes.Devices{Pointer: rec, Keyboard: rec})

	for _, name := range samples.Names() {
		g, err := samples.Build(name, reg)
		require.NoError(t, err, name)
		assert.Empty(t, Issues(g), name)
	}
}
