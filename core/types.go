package core

import (
	"fmt"
	"time"
)

// Address is a canonical Ethereum account address: "0x" followed by
// 40 lowercase hex characters. Values are produced by eth.ParseAddress;
// every other component compares Addresses directly.
type Address string

// Challenge is a single-use login challenge. It is consumed exactly once:
// a second login attempt against the same challenge must fail.
type Challenge struct {
	ID        string    `json:"id"`
	Nonce     string    `json:"nonce"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Message returns the text the wallet signs to answer the challenge.
// Binding the challenge ID into the message ties the signature to this
// login attempt and no other.
func (c *Challenge) Message() string {
	return fmt.Sprintf("Sign this message to access the documentation.\n\nChallenge ID: %s\nNonce: %s", c.ID, c.Nonce)
}

// Session represents an authenticated user session. Sessions are
// self-contained bearer credentials; there is no server-side session table.
type Session struct {
	ID        string
	Address   Address
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// EncryptedDocument is the at-rest form of a protected document.
// The auth tag is kept as a separate field so tampering with either
// the ciphertext or the tag fails decryption.
type EncryptedDocument struct {
	Nonce      []byte `json:"nonce"`
	AuthTag    []byte `json:"auth_tag"`
	Ciphertext []byte `json:"ciphertext"`
}

// AccessEvent is published on login and content access for audit purposes.
type AccessEvent struct {
	Kind       string    `json:"kind"`
	Address    string    `json:"address,omitempty"`
	DocumentID string    `json:"document_id,omitempty"`
	At         time.Time `json:"at"`
}

// Access event kinds.
const (
	EventLogin         = "login"
	EventAccessDenied  = "access_denied"
	EventContentServed = "content_served"
)
