/*
Package domain contains the workflow graph model for the cmdflow engine.

It defines the fundamental entities an editor assembles and the engine walks: Nodes with
ordered input and output Ports, Edges linking an output port to an input port, and the
Graph that owns them. The package holds no execution behavior and no I/O; the engine
depends on it read-only, except for the per-node execution status.

# Key Entities

  - Node: a unit of work of a given kind, carrying its Action and its execution status.
  - Port: a named Input or Output attachment point owned by a Node.
  - Edge: a directed link from an Output port to an Input port of another node.
  - Graph: the set of nodes and edges, with structural validation on mutation.
  - Event: what the engine reports to observers (logs, lifecycle, node status).
  - Report: the summary of a finished run.
*/
package domain
