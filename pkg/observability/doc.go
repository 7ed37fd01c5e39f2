/*
Package observability turns engine lifecycle events into Prometheus metrics.

Metrics.Hooks plugs into troupe.WithLifecycleHooks; Metrics.Handler serves the
collected series (the CLI mounts it at /metrics).
*/
package observability
