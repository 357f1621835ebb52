// Package samples holds the built-in workflows shipped with cmdflow.
package samples

import (
	"fmt"
	"sort"

	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/dsl"
	"github.com/cmdflow/cmdflow/pkg/registry"
)

// Sample is a named workflow definition.
type Sample struct {
	Name        string
	Description string
	Define      func(b *dsl.Builder)
}

var catalog = map[string]Sample{
	"hello": {
		Name:        "hello",
		Description: "Types a greeting and presses Enter.",
		Define: func(b *dsl.Builder) {
			b.Add("start", domain.KindStart).Title("Start").Go("type")
			b.Add("type", domain.KindKeyboardInput).
				Title("Type greeting").
				Param("text", "hello from cmdflow").
				Go("enter")
			b.Add("enter", domain.KindKeyPress).Title("Press Enter")
		},
	},
	"click-loop": {
		Name:        "click-loop",
		Description: "Clicks the same spot three times, then waits.",
		Define: func(b *dsl.Builder) {
			b.Add("start", domain.KindStart).Title("Start").Go("loop")
			b.Add("loop", domain.KindLoop).
				Title("Repeat").
				Param("count", 3).
				Body("click").
				Done("wait")
			b.Add("click", domain.KindMouseClick).
				Title("Click").
				Params(map[string]any{"x": 640, "y": 360})
			b.Add("wait", domain.KindDelay).
				Title("Wait").
				Param("duration", "500ms")
		},
	},
	"save": {
		Name:        "save",
		Description: "Presses Ctrl+S and waits for the save to settle.",
		Define: func(b *dsl.Builder) {
			b.Add("start", domain.KindStart).Title("Start").Go("save")
			b.Add("save", domain.KindKeyPress).
				Title("Ctrl+S").
				Params(map[string]any{"key": "s", "ctrl": true}).
				Go("wait")
			b.Add("wait", domain.KindDelay).Title("Settle").Param("duration", "1s")
		},
	},
	"drag": {
		Name:        "drag",
		Description: "Glides the cursor to the center of the screen and clicks.",
		Define: func(b *dsl.Builder) {
			b.Add("start", domain.KindStart).Title("Start").Go("move")
			b.Add("move", domain.KindMouseMove).
				Title("Glide").
				Params(map[string]any{"x": 960, "y": 540, "smooth": true, "duration": "300ms"}).
				Go("click")
			b.Add("click", domain.KindMouseClick).
				Title("Click").
				Params(map[string]any{"x": 960, "y": 540})
		},
	},
}

// Names returns the sample names, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks a sample up by name.
func Get(name string) (Sample, bool) {
	s, ok := catalog[name]
	return s, ok
}

// Build constructs the named sample with kinds from reg.
func Build(name string, reg *registry.Registry) (*domain.Graph, error) {
	s, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown workflow %q", name)
	}
	b := dsl.New(reg)
	s.Define(b)
	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build workflow %s: %w", name, err)
	}
	return g, nil
}
