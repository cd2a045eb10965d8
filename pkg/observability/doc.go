/*
Package observability provides Prometheus instrumentation for the simulator.

Metrics plugs into the engine through domain.LifecycleHooks, so any caller that
builds an engine with WithLifecycleHooks(m.Hooks()) gets verdict counters and
step histograms without further wiring.
*/
package observability
