// Package providers contains the concrete job-board source providers
// and the registry that exposes the enabled set to the discovery
// orchestrator.
package providers
