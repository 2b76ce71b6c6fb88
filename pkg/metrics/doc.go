// Package metrics defines the Prometheus collectors exported by the backend
// and the handler that serves them.
package metrics
