/*
Package cmdflow runs desktop automation workflows described as graphs.

A workflow is a directed graph of nodes (mouse clicks and moves, keyboard input, key
presses, delays, loops) connected through named ports. The engine walks the graph
depth-first from its start nodes, executes each node's action once per path, repeats
loop bodies, and reports progress on an event bus that any number of observers can
read without ever slowing the run down.

# Concept

The graph model lives in pkg/domain, the node kinds in pkg/nodes and the traversal in
the engine. This package wires them together with a kind registry, a run history and
the input devices, so hosts (the CLI, the HTTP server, tests) only deal with one type.

# Usage

	eng := cmdflow.New(cmdflow.WithLogger(logger))

	g, err := eng.Sample("click-loop")
	if err != nil {
		log.Fatal(err)
	}

	report, err := eng.Run(ctx, g)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(report.State)

Runs are exclusive: calling Run while another run is active returns a declined
Report immediately. Stop cancels the active run, which then ends in the Cancelled
state without an error.
*/
package cmdflow
