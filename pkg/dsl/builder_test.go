package dsl_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmdflow/cmdflow/pkg/actuator"
	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/dsl"
	"github.com/cmdflow/cmdflow/pkg/nodes"
	"github.com/cmdflow/cmdflow/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder() *dsl.Builder {
	rec := actuator.NewRecorder(actuator.Point{})
	return dsl.New(registry.NewDefault(nodes.Devices{Pointer: rec, Keyboard: rec}))
}

func TestBuilder_SimpleFlow(t *testing.T) {
	b := newBuilder()

	b.Add("start", domain.KindStart).Go("loop")
	b.Add("loop", domain.KindLoop).
		Title("Repeat").
		Param("count", 2).
		Body("click").
		Done("save")
	b.Add("click", domain.KindMouseClick).
		Params(map[string]any{"x": 10, "y": 20})
	b.Add("save", domain.KindKeyPress).
		Param("key", "s").
		Param("ctrl", true)

	g, err := b.Build()
	require.NoError(t, err)

	require.Equal(t, 4, g.Len())
	ids := []string{}
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID())
	}
	assert.Equal(t, []string{"start", "loop", "click", "save"}, ids, "graph keeps declaration order")

	loop, ok := g.Node("loop")
	require.True(t, ok)
	assert.Equal(t, "Repeat", loop.Title())
	assert.Equal(t, 2, loop.Action().(*nodes.Loop).Config.Count)

	click, _ := g.Node("click")
	assert.Equal(t, "click", click.Title(), "title defaults to the id")

	body, ok := g.FirstEdgeFrom(loop.Output(domain.PortBody))
	require.True(t, ok)
	assert.Equal(t, "click", body.To().ID())

	done, ok := g.FirstEdgeFrom(loop.Output(domain.PortDone))
	require.True(t, ok)
	assert.Equal(t, "save", done.To().ID())

	assert.Len(t, g.Edges(), 3)
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := newBuilder()
	first := b.Add("wait", domain.KindDelay)
	assert.Same(t, first, b.Add("wait", domain.KindDelay))
}

func TestBuilder_CustomAction(t *testing.T) {
	called := 0
	b := newBuilder()
	b.Add("fork", "fork").
		Action(domain.ActionFunc(func(context.Context) error {
			called++
			return nil
		})).
		Ports([]string{"in"}, []string{"left", "right"}).
		Connect("right", "wait", domain.PortIn)
	b.Add("wait", domain.KindDelay).Param("duration", "10ms")

	g, err := b.Build()
	require.NoError(t, err)

	fork, _ := g.Node("fork")
	require.NoError(t, fork.Action().Execute(context.Background()))
	assert.Equal(t, 1, called)
	assert.Len(t, fork.Outputs(), 2)

	wait, _ := g.Node("wait")
	assert.Equal(t, 10*time.Millisecond, wait.Action().(*nodes.Delay).Config.Duration)
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *dsl.Builder)
		want  string
	}{
		{"unknown target", func(b *dsl.Builder) {
			b.Add("start", domain.KindStart).Go("nowhere")
		}, "node not found"},
		{"unknown port", func(b *dsl.Builder) {
			b.Add("start", domain.KindStart).Body("end")
			b.Add("end", domain.KindDelay)
		}, `no output port "body"`},
		{"start has no input", func(b *dsl.Builder) {
			b.Add("wait", domain.KindDelay).Go("start")
			b.Add("start", domain.KindStart)
		}, `no input port "in"`},
		{"bad params", func(b *dsl.Builder) {
			b.Add("loop", domain.KindLoop).Param("count", -1)
		}, "must not be negative"},
		{"unknown kind", func(b *dsl.Builder) {
			b.Add("x", "teleport")
		}, "kind not found"},
		{"self loop", func(b *dsl.Builder) {
			b.Add("wait", domain.KindDelay).Go("wait")
		}, "same node"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuilder()
			tt.setup(b)
			_, err := b.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
