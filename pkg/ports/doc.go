/*
Package ports defines the driven ports (interfaces) of cmdflow.

These interfaces decouple the engine facade from external implementations, so run
history can live in memory or in Redis without the callers noticing.

# Key Interfaces

  - RunStore: persists the Report of every finished run.
*/
package ports
