// Package services implements the driving port interfaces.
// Services contain the core business logic - discovery orchestration,
// ingestion and dedup, scoring, criteria filtering, event-driven
// re-scoring - and orchestrate calls to driven ports (adapters).
package services
