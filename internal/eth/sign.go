package eth

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/hannesgao/docgate/core"
)

// SignatureLength is the byte length of an Ethereum wallet signature:
// 32-byte R, 32-byte S, 1-byte recovery ID.
const SignatureLength = 65

var errEmptyMessage = errors.New("empty message")

// PersonalHash returns the EIP-191 personal-sign digest of msg, the hash
// wallets actually sign when asked to sign a text message.
func PersonalHash(msg []byte) []byte {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(msg), msg)
	return crypto.Keccak256([]byte(prefixed))
}

// RecoverAddress recovers the canonical signing address from a
// personal-sign signature over message.
func RecoverAddress(message, sig []byte) (core.Address, error) {
	if len(message) == 0 {
		return "", errEmptyMessage
	}
	if len(sig) != SignatureLength {
		return "", fmt.Errorf("signature must be %d bytes, got %d", SignatureLength, len(sig))
	}

	// Wallets emit V as 27/28; secp256k1 recovery wants 0/1.
	normalized := make([]byte, SignatureLength)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}

	pub, err := crypto.SigToPub(PersonalHash(message), normalized)
	if err != nil {
		return "", fmt.Errorf("pubkey recovery failed: %w", err)
	}
	return ParseAddress(crypto.PubkeyToAddress(*pub).Hex())
}

// VerifySignature reports whether sig is a valid personal-sign signature
// over message by the holder of claimed. Malformed signatures and recovery
// failures verify as false; the error return is reserved for programmer
// error caught before the cryptographic step.
func VerifySignature(message, sig []byte, claimed core.Address) (bool, error) {
	if len(message) == 0 {
		return false, errEmptyMessage
	}
	recovered, err := RecoverAddress(message, sig)
	if err != nil {
		return false, nil
	}
	return recovered == claimed, nil
}

// SignPersonal signs message with key in the wallet convention (V = 27/28).
// Used by tests and tooling; a production client signs in its wallet.
func SignPersonal(message []byte, key *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := crypto.Sign(PersonalHash(message), key)
	if err != nil {
		return nil, err
	}
	sig[64] += 27
	return sig, nil
}
