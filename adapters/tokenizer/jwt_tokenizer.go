// Package tokenizer implements the session Tokenizer port with HS256 JWTs
// signed by a server-held key.
package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hannesgao/docgate/core"
	"github.com/hannesgao/docgate/internal/eth"
)

// AudienceSession distinguishes session tokens from anything else signed
// with the same key.
const AudienceSession = "docgate:session"

// SigningKeySize is the required HMAC key length in bytes.
const SigningKeySize = 32

// JWT implements ports.Tokenizer.
type JWT struct {
	signKey []byte
	clock   func() time.Time
}

// Option configures a JWT tokenizer.
type Option func(*JWT)

// WithClock overrides the time source used for expiry validation.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.clock = now
	}
}

// NewJWT creates a tokenizer. The signing key must be exactly
// SigningKeySize bytes.
func NewJWT(signKey []byte, opts ...Option) (*JWT, error) {
	if len(signKey) != SigningKeySize {
		return nil, fmt.Errorf("%w: session signing key must be %d bytes, got %d", core.ErrConfiguration, SigningKeySize, len(signKey))
	}
	key := make([]byte, SigningKeySize)
	copy(key, signKey)
	j := &JWT{signKey: key, clock: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// SessionToToken serializes a session into a signed bearer token.
func (j *JWT) SessionToToken(session *core.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   string(session.Address),
		ID:        session.ID,
		Audience:  jwt.ClaimStrings{AudienceSession},
		IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// TokenToSession parses and verifies a bearer token, returning the
// embedded session.
func (j *JWT) TokenToSession(tokenStr string) (*core.Session, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.signKey, nil
	},
		jwt.WithAudience(AudienceSession),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.clock),
	)
	if err != nil {
		return nil, mapParseError(err)
	}
	if !token.Valid {
		return nil, core.ErrSessionTampered
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, core.ErrSessionMalformed
	}
	address, err := eth.ParseAddress(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", core.ErrSessionMalformed)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, core.ErrSessionMalformed
	}

	return &core.Session{
		ID:        claims.ID,
		Address:   address,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return core.ErrSessionExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return core.ErrSessionTampered
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return core.ErrSessionTampered
	default:
		return fmt.Errorf("%w: %v", core.ErrSessionMalformed, err)
	}
}
