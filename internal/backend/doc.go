// Package backend connects the configuration store to the native inference
// library. The library is reached through the Backend interface; the
// Reconciler pushes pending snapshots to it and acknowledges completed
// reconfigurations back into the store.
//
//   - backend.go: Backend and ClassifierSource interfaces.
//   - simulated.go: in-process Backend with configurable latency, used by the demo and tests.
//   - reconciler.go: single-flight apply loop with stale-acknowledgment protection.
//   - events.go, eventpub_memory.go: lifecycle events and publishers.
//   - errors.go: error types and helpers (IsUnavailable).
//   - metrics.go: Prometheus collectors for applies.
package backend
