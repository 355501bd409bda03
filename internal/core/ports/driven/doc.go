// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Gateway: Authenticated HTTP access to the extraction API
//   - TokenIssuer: Exchanges a username and password for a bearer token
//   - SessionStore: Session-scoped key/value state (credential, job id, verified record)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Local record of workflow events. Without it, history is not kept.
//   - ResponseValidator: Schema validation of poll responses. Without it, bodies are only decoded.
//   - Exporter: Output formats. Formats without an exporter are unavailable.
//   - FileWatcher: Directory watching for the watch command.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
