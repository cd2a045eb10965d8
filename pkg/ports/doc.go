/*
Package ports defines the driven ports (interfaces) of tmsim.

These interfaces decouple the simulator core from the adapters that expose it
(HTTP, MCP) and from the backends that persist its output.

# Key Interfaces

  - Simulator: loads machine descriptions and evaluates them.
  - ReportStore: persists evaluation reports (memory, file, Redis, Postgres).
*/
package ports
