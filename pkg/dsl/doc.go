/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing cmdflow graphs.

It allows developers to define automation workflows using a fluent builder instead of
wiring nodes, ports and edges by hand. Kinds are resolved through a registry, so node
parameters use the same names and defaults everywhere.

Example usage:

	b := dsl.New(registry.NewDefault(devices))

	b.Add("start", domain.KindStart).Go("loop")

	b.Add("loop", domain.KindLoop).
		Param("count", 3).
		Body("click").
		Done("save")

	b.Add("click", domain.KindMouseClick).
		Params(map[string]any{"x": 640, "y": 360})

	b.Add("save", domain.KindKeyPress).
		Param("key", "s").
		Param("ctrl", true)

	graph, err := b.Build()
	// ... pass graph to engine.Run(ctx, graph)
*/
package dsl
