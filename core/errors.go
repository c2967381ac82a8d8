package core

import "errors"

var (
	// ErrInvalidAddress is returned when an address string is not the
	// expected length or charset.
	ErrInvalidAddress = errors.New("invalid ethereum address")

	// ErrMalformedAllowList is returned when the allow-list source cannot
	// be parsed.
	ErrMalformedAllowList = errors.New("malformed allow-list source")

	// ErrChallengeNotFound is returned when a login challenge is unknown
	// or has already been consumed.
	ErrChallengeNotFound = errors.New("challenge not found")

	// ErrChallengeExpired is returned when a login challenge has expired.
	ErrChallengeExpired = errors.New("challenge has expired")

	// ErrNotWhitelisted is returned when an address is absent from the
	// allow-list.
	ErrNotWhitelisted = errors.New("address is not allow-listed")

	// ErrSignatureMismatch is returned when a signature does not recover
	// to the claimed address.
	ErrSignatureMismatch = errors.New("signature does not match address")

	// ErrSessionMalformed is returned when a session token cannot be
	// parsed into its expected fields.
	ErrSessionMalformed = errors.New("session token is malformed")

	// ErrSessionTampered is returned when a session token fails its
	// integrity check.
	ErrSessionTampered = errors.New("session token failed integrity check")

	// ErrSessionExpired is returned when a session token has expired.
	ErrSessionExpired = errors.New("session has expired")

	// ErrDecryptionFailed is the single opaque decryption failure. Callers
	// are deliberately not told whether the key or the ciphertext was bad.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrEncryptionUnavailable is returned when encryption cannot proceed,
	// e.g. the randomness source fails.
	ErrEncryptionUnavailable = errors.New("encryption unavailable")

	// ErrContentNotFound is returned when no encrypted document exists for
	// a document ID.
	ErrContentNotFound = errors.New("content not found")

	// ErrStoreOperationFailed is returned when a store operation fails.
	ErrStoreOperationFailed = errors.New("store operation failed")

	// ErrConfiguration is returned for missing or malformed startup
	// configuration, including wrong-length secrets.
	ErrConfiguration = errors.New("invalid configuration")
)
