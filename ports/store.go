package ports

import (
	"context"

	"github.com/hannesgao/docgate/core"
)

// ChallengeStore tracks outstanding login challenges with exactly-once
// consumption: a challenge can be consumed at most once, and consuming an
// unknown or already-consumed challenge is always an error.
type ChallengeStore interface {
	// Save records a pending challenge until it expires.
	Save(ctx context.Context, ch *core.Challenge) error

	// Consume removes and returns the challenge with the given ID.
	// Returns core.ErrChallengeNotFound if it is unknown or already
	// consumed, core.ErrChallengeExpired if it outlived its window.
	Consume(ctx context.Context, id string) (*core.Challenge, error)
}

// DocumentStore is keyed lookup of encrypted documents. The gate never
// sees plaintext at rest.
type DocumentStore interface {
	// Get returns the encrypted document for id, or
	// core.ErrContentNotFound if none exists.
	Get(ctx context.Context, id string) (*core.EncryptedDocument, error)

	// Put stores an encrypted document under id, replacing any previous
	// version.
	Put(ctx context.Context, id string, doc *core.EncryptedDocument) error
}
