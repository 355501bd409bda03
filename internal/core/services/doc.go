// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The submit, poll and update operations share one HTTP outcome
// classifier. Each maps a failed outcome onto the failure kinds it
// accepts.
package services
