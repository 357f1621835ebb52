package cmdflow_test

import (
	"context"
	"fmt"

	"github.com/cmdflow/cmdflow"
	"github.com/cmdflow/cmdflow/pkg/actuator"
	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/dsl"
	"github.com/cmdflow/cmdflow/pkg/nodes"
)

func Example() {
	rec := actuator.NewRecorder(actuator.Point{})
	eng := cmdflow.New(cmdflow.WithDevices(nodes.Devices{Pointer: rec, Keyboard: rec}))

	b := dsl.New(eng.Registry())
	b.Add("start", domain.KindStart).Go("loop")
	b.Add("loop", domain.KindLoop).Param("count", 2).Body("click").Done("type")
	b.Add("click", domain.KindMouseClick).Params(map[string]any{"x": 5, "y": 5})
	b.Add("type", domain.KindKeyboardInput).Params(map[string]any{"text": "ok", "interval": 0})

	g, err := b.Build()
	if err != nil {
		panic(err)
	}

	report, err := eng.Run(context.Background(), g)
	if err != nil {
		panic(err)
	}

	fmt.Println(report.State)
	for _, op := range rec.Ops() {
		fmt.Println(op)
	}
	// Output:
	// completed
	// move(5,5)
	// click(left)
	// move(5,5)
	// click(left)
	// type('o')
	// type('k')
}
