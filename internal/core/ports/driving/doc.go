// Package driving defines the interfaces through which the outside world
// calls INTO the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement them; the CLI driver and the scheduler consume
// them.
//
//   - Discoverer: Runs multi-source discovery for a query
//   - Ingestor: Persists and hydrates normalised postings
//   - Scorer: Embeds text and computes relevance scores
//   - Recommender: Computes the criteria-gated recommended view
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, provider, or service package
package driving
