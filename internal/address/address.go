// Package address derives and parses the legacy-chain Base58Check
// addresses this protocol binds attestations to.
package address

import (
	"fmt"

	"github.com/arcswapsign/arcswapsign/internal/base58check"
	"github.com/arcswapsign/arcswapsign/internal/cryptoutil"
	"github.com/arcswapsign/arcswapsign/internal/errs"
	"github.com/arcswapsign/arcswapsign/internal/secp256k1"
)

// Version is the address version byte prefixed before the pubkey hash.
const Version byte = 0x50

// FromPublicKey derives the Base58Check address for pub, using pub's own
// compression flag for the encoding that gets hashed.
func FromPublicKey(pub *secp256k1.PublicKey) string {
	hash := cryptoutil.Hash160(pub.EncodeDefault())
	payload := make([]byte, 0, 21)
	payload = append(payload, Version)
	payload = append(payload, hash...)
	return base58check.EncodeChecked(payload)
}

// FromBase58 decodes a Base58Check address, returning its version byte
// and 20-byte pubkey hash. Input strings of length 25 or 34 are
// accepted; any other length is rejected even though 25 is an unusual
// length for a Base58Check-encoded string, because a pre-existing input
// of that length must continue to be accepted.
func FromBase58(s string) (version byte, hash []byte, err error) {
	if len(s) != 25 && len(s) != 34 {
		return 0, nil, fmt.Errorf("%w: address string must be 25 or 34 characters, got %d", errs.ErrInvalidParameter, len(s))
	}

	payload, err := base58check.DecodeChecked(s)
	if err != nil {
		return 0, nil, err
	}
	if len(payload) < 1 {
		return 0, nil, fmt.Errorf("%w: empty address payload", errs.ErrInvalidParameter)
	}

	return payload[0], payload[1:], nil
}
