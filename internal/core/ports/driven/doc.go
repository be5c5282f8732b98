// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SourceProvider: Fetches postings from an external job source
//   - ProviderRegistry: Configuration-driven provider selection
//   - PostingStore: Posting persistence with batch upsert
//   - MatchStore: Relevance score persistence
//   - CriteriaStore: User criteria persistence
//   - AttemptStore: Ingestion attempt logs
//   - ProfileStore: Candidate profile persistence
//   - EventBus: In-process publish/subscribe
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it, scoring
//     is disabled and discovery still works.
//   - Hydrator: Deep-enrichment of postings after discovery.
//   - ProfileVectorCache: Read-through cache for profile embeddings.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or provider package
package driven
