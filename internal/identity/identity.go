// Package identity derives and validates orb identifiers.
//
// An orb identifier is the first eight characters of the lowercase hex
// SHA-256 digest of the orb's ed25519 public key, where the digest is
// taken over the base64 key body as it appears in the OpenSSH public key
// file (not the key type prefix or the comment).
package identity

import (
	"errors"
	"fmt"
	"strings"
)

// Length is the canonical identifier length in characters.
const Length = 8

// OrbID is a canonical orb identifier: Length characters, lowercase.
type OrbID string

func (id OrbID) String() string { return string(id) }

// ErrInvalidIdentity reports an operator-supplied identifier that cannot
// be normalized into canonical form.
var ErrInvalidIdentity = errors.New("invalid orb identifier")

// Normalize canonicalizes a raw, operator-supplied identifier. Uppercase
// characters are lowered and identifiers shorter than Length are left
// padded with zeros; both adjustments are reported in notes so callers
// can surface them. Identifiers longer than Length, or empty, are
// rejected with ErrInvalidIdentity.
func Normalize(raw string) (OrbID, []string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", nil, fmt.Errorf("%w: empty identifier", ErrInvalidIdentity)
	}
	if len(id) > Length {
		return "", nil, fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidIdentity, id, Length)
	}

	var notes []string
	if lowered := strings.ToLower(id); lowered != id {
		notes = append(notes, fmt.Sprintf("orb id %q contains uppercase characters, lowering", id))
		id = lowered
	}
	if len(id) < Length {
		notes = append(notes, fmt.Sprintf("orb id %q is shorter than %d characters, padding with zeros", id, Length))
		id = strings.Repeat("0", Length-len(id)) + id
	}

	return OrbID(id), notes, nil
}
