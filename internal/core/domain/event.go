package domain

// Event kinds published on the in-process bus.
const (
	// KindProfileUpdated fires when a user's profile text or embedding
	// changed. Subscribers re-score that user's postings.
	KindProfileUpdated = "profile.updated"

	// KindPostingsIngested fires after a discovery run persisted at
	// least one posting. Subscribers re-score every known profile.
	KindPostingsIngested = "postings.ingested"
)

// Event is a message published on the in-process bus. Implementations
// are plain data; subscribers type-switch on the concrete type.
type Event interface {
	// Kind returns the event kind used for subscription routing.
	Kind() string
}

// ProfileUpdated signals that a user's profile changed.
type ProfileUpdated struct {
	// UserID is the user whose profile changed.
	UserID string
}

// Kind returns the event kind.
func (ProfileUpdated) Kind() string { return KindProfileUpdated }

// PostingsIngested signals that new or refreshed postings were persisted.
type PostingsIngested struct {
	// UserID is the user the postings were persisted for.
	UserID string

	// PostingIDs are the rows touched by the batch upsert.
	PostingIDs []string
}

// Kind returns the event kind.
func (PostingsIngested) Kind() string { return KindPostingsIngested }
