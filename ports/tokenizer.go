package ports

import "github.com/hannesgao/docgate/core"

// Tokenizer converts sessions to and from self-verifying bearer tokens.
type Tokenizer interface {
	// SessionToToken serializes a session into a signed bearer token.
	SessionToToken(session *core.Session) (string, error)

	// TokenToSession parses and verifies a bearer token. It fails with
	// core.ErrSessionMalformed when the token cannot be parsed,
	// core.ErrSessionTampered when the integrity check fails, and
	// core.ErrSessionExpired when the session has expired.
	TokenToSession(token string) (*core.Session, error)
}
