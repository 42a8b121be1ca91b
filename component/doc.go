// Package component manages the lifecycle of the pieces a prodquery run is
// assembled from: trace and metric providers and the catalog engine.
//
// Components are started in registration order and stopped in reverse.
//
// # Interfaces
//
//   - Component: Name/Start/Stop/Health
//   - Describable: one-line description for startup logs
package component
