// Package vault provides authenticated encryption for document payloads
// using XChaCha20-Poly1305 with a server-held key.
package vault

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/hannesgao/docgate/core"
)

const (
	// KeySize is the required key length in bytes.
	KeySize = chacha20poly1305.KeySize

	// NonceSize is the per-document nonce length in bytes.
	NonceSize = chacha20poly1305.NonceSizeX

	// TagSize is the Poly1305 integrity tag length in bytes.
	TagSize = chacha20poly1305.Overhead
)

// Cipher seals and opens document payloads with a single symmetric key.
type Cipher struct {
	key []byte
}

// New creates a Cipher. The key must be exactly KeySize bytes.
func New(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: content key must be %d bytes, got %d", core.ErrConfiguration, KeySize, len(key))
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &Cipher{key: k}, nil
}

// Encrypt seals plaintext under a fresh random nonce. Two encryptions of
// the same plaintext produce different ciphertexts.
func (c *Cipher) Encrypt(plaintext []byte) (*core.EncryptedDocument, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrEncryptionUnavailable, err)
	}
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrEncryptionUnavailable, err)
	}
	sealed := aead.Seal(nil, nonce, plaintext, nil)

	// Seal appends the tag; the envelope carries it as a separate field.
	split := len(sealed) - TagSize
	return &core.EncryptedDocument{
		Nonce:      nonce,
		AuthTag:    sealed[split:],
		Ciphertext: sealed[:split],
	}, nil
}

// Decrypt opens doc. It fails closed: on any integrity failure it returns
// core.ErrDecryptionFailed and no plaintext, with no distinction between
// a wrong key and tampered ciphertext.
func (c *Cipher) Decrypt(doc *core.EncryptedDocument) ([]byte, error) {
	if doc == nil || len(doc.Nonce) != NonceSize || len(doc.AuthTag) != TagSize {
		return nil, core.ErrDecryptionFailed
	}
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, core.ErrDecryptionFailed
	}
	sealed := make([]byte, 0, len(doc.Ciphertext)+TagSize)
	sealed = append(sealed, doc.Ciphertext...)
	sealed = append(sealed, doc.AuthTag...)

	plaintext, err := aead.Open(nil, doc.Nonce, sealed, nil)
	if err != nil {
		return nil, core.ErrDecryptionFailed
	}
	return plaintext, nil
}
