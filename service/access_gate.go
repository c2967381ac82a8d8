// Package service implements the access gate: challenge issuance, wallet
// login, and authenticated content decryption.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"

	"github.com/hannesgao/docgate/allowlist"
	"github.com/hannesgao/docgate/core"
	"github.com/hannesgao/docgate/internal/eth"
	"github.com/hannesgao/docgate/ports"
	"github.com/hannesgao/docgate/vault"
)

const (
	// DefaultChallengeTTL bounds how long a login challenge stays valid.
	DefaultChallengeTTL = 5 * time.Minute

	// DefaultSessionTTL bounds how long an issued session stays valid.
	DefaultSessionTTL = 15 * time.Minute
)

// AccessGate orchestrates the authorization-and-decryption flow. It is the
// only component exposed to the transport layer.
type AccessGate struct {
	allow     *allowlist.AllowList
	store     ports.ChallengeStore
	tokenizer ports.Tokenizer
	docs      ports.DocumentStore
	cipher    *vault.Cipher
	events    ports.EventPublisher
	log       *slog.Logger

	challengeTTL time.Duration
	sessionTTL   time.Duration
	now          func() time.Time
}

// Option configures an AccessGate.
type Option func(*AccessGate)

// WithTTLs overrides the challenge and session lifetimes.
func WithTTLs(challenge, session time.Duration) Option {
	return func(g *AccessGate) {
		g.challengeTTL = challenge
		g.sessionTTL = session
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *AccessGate) {
		g.now = now
	}
}

// WithEventPublisher attaches an audit event publisher. Publishing is
// best-effort: event failures never fail the request.
func WithEventPublisher(events ports.EventPublisher) Option {
	return func(g *AccessGate) {
		g.events = events
	}
}

// WithLogger attaches a structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(g *AccessGate) {
		g.log = log
	}
}

// NewAccessGate creates a gate over the given collaborators.
func NewAccessGate(
	allow *allowlist.AllowList,
	store ports.ChallengeStore,
	tokenizer ports.Tokenizer,
	docs ports.DocumentStore,
	cipher *vault.Cipher,
	opts ...Option,
) *AccessGate {
	g := &AccessGate{
		allow:        allow,
		store:        store,
		tokenizer:    tokenizer,
		docs:         docs,
		cipher:       cipher,
		log:          slog.Default(),
		challengeTTL: DefaultChallengeTTL,
		sessionTTL:   DefaultSessionTTL,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CreateChallenge issues a new single-use login challenge.
func (g *AccessGate) CreateChallenge(ctx context.Context) (*core.Challenge, error) {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	now := g.now()
	ch := &core.Challenge{
		ID:        uuid.New().String(),
		Nonce:     hex.EncodeToString(nonce),
		IssuedAt:  now,
		ExpiresAt: now.Add(g.challengeTTL),
	}
	if err := g.store.Save(ctx, ch); err != nil {
		return nil, fmt.Errorf("failed to save challenge: %w", err)
	}
	return ch, nil
}

// Login consumes a challenge, verifies the wallet signature over its
// message, checks allow-list membership, and issues a session token.
func (g *AccessGate) Login(ctx context.Context, challengeID, rawAddress, signature string) (string, error) {
	address, err := eth.ParseAddress(rawAddress)
	if err != nil {
		return "", err
	}

	// Consume before verifying so a failed attempt still burns the
	// challenge and cannot be retried.
	ch, err := g.store.Consume(ctx, challengeID)
	if err != nil {
		return "", err
	}
	if g.now().After(ch.ExpiresAt) {
		return "", core.ErrChallengeExpired
	}

	sig, err := hexutil.Decode(signature)
	if err != nil {
		return "", fmt.Errorf("%w: undecodable signature", core.ErrSignatureMismatch)
	}
	ok, err := eth.VerifySignature([]byte(ch.Message()), sig, address)
	if err != nil {
		return "", fmt.Errorf("signature verification: %w", err)
	}
	if !ok {
		g.publish(ctx, core.AccessEvent{Kind: core.EventAccessDenied, Address: string(address), At: g.now()})
		return "", core.ErrSignatureMismatch
	}

	if !g.allow.IsMember(address) {
		g.publish(ctx, core.AccessEvent{Kind: core.EventAccessDenied, Address: string(address), At: g.now()})
		return "", core.ErrNotWhitelisted
	}

	now := g.now()
	session := &core.Session{
		ID:        uuid.New().String(),
		Address:   address,
		IssuedAt:  now,
		ExpiresAt: now.Add(g.sessionTTL),
	}
	token, err := g.tokenizer.SessionToToken(session)
	if err != nil {
		return "", fmt.Errorf("failed to issue session: %w", err)
	}

	g.log.InfoContext(ctx, "login", "address", address)
	g.publish(ctx, core.AccessEvent{Kind: core.EventLogin, Address: string(address), At: now})
	return token, nil
}

// FetchContent validates the session token, re-checks allow-list
// membership for its address, and returns the decrypted document.
//
// The allow-list re-check happens on every fetch: membership can change
// between issuance and use, and session validity alone is not enough.
func (g *AccessGate) FetchContent(ctx context.Context, token, documentID string) ([]byte, error) {
	session, err := g.tokenizer.TokenToSession(token)
	if err != nil {
		return nil, err
	}

	if !g.allow.IsMember(session.Address) {
		g.publish(ctx, core.AccessEvent{Kind: core.EventAccessDenied, Address: string(session.Address), DocumentID: documentID, At: g.now()})
		return nil, core.ErrNotWhitelisted
	}

	doc, err := g.docs.Get(ctx, documentID)
	if err != nil {
		// Storage failures stay distinct from decryption failures:
		// only these are eligible for caller-directed retry.
		return nil, err
	}

	plaintext, err := g.cipher.Decrypt(doc)
	if err != nil {
		return nil, err
	}

	g.publish(ctx, core.AccessEvent{Kind: core.EventContentServed, Address: string(session.Address), DocumentID: documentID, At: g.now()})
	return plaintext, nil
}

func (g *AccessGate) publish(ctx context.Context, ev core.AccessEvent) {
	if g.events == nil {
		return
	}
	if err := g.events.PublishAccess(ctx, ev); err != nil {
		g.log.WarnContext(ctx, "failed to publish access event", "error", err)
	}
}
