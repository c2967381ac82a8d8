package eth

import (
	"fmt"
	"strings"

	"github.com/hannesgao/docgate/core"
)

// addressLength is "0x" plus 40 hex characters.
const addressLength = 42

// ParseAddress canonicalizes a raw address string to lowercase hex.
// It accepts checksummed (mixed-case) and lowercase forms and is
// idempotent on its own output.
func ParseAddress(raw string) (core.Address, error) {
	if len(raw) != addressLength {
		return "", fmt.Errorf("%w: want %d characters, got %d", core.ErrInvalidAddress, addressLength, len(raw))
	}
	if raw[0] != '0' || (raw[1] != 'x' && raw[1] != 'X') {
		return "", fmt.Errorf("%w: missing 0x prefix", core.ErrInvalidAddress)
	}
	for _, r := range raw[2:] {
		if !isHex(r) {
			return "", fmt.Errorf("%w: non-hex character %q", core.ErrInvalidAddress, r)
		}
	}
	return core.Address("0x" + strings.ToLower(raw[2:])), nil
}

func isHex(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}
