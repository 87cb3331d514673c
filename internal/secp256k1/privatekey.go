package secp256k1

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/arcswapsign/arcswapsign/internal/base58check"
	"github.com/arcswapsign/arcswapsign/internal/errs"
)

// DefaultWIFVersion is the version byte stamped onto freshly-constructed
// private keys that did not come from parsing an existing WIF string.
const DefaultWIFVersion = 0x80

// PrivateKey is a secp256k1 scalar d in (0, n) with a compression flag
// and the WIF version byte it round-trips against.
type PrivateKey struct {
	key        *btcec.PrivateKey
	compressed bool
	version    byte
}

// NewPrivateKeyFromScalar builds a PrivateKey from a 32-byte big-endian
// scalar, rejecting d <= 0 or d >= n.
func NewPrivateKeyFromScalar(d []byte, compressed bool) (*PrivateKey, error) {
	x := new(big.Int).SetBytes(d)
	if x.Sign() <= 0 || x.Cmp(curveN) >= 0 {
		return nil, fmt.Errorf("%w: private scalar must satisfy 0 < d < n", errs.ErrInvalidKey)
	}

	padded := make([]byte, 32)
	putBigIntPadded(padded, x)
	priv, _ := btcec.PrivKeyFromBytes(padded)

	return &PrivateKey{key: priv, compressed: compressed, version: DefaultWIFVersion}, nil
}

// NewPrivateKeyFromHex builds a PrivateKey from a hex-encoded scalar.
func NewPrivateKeyFromHex(s string, compressed bool) (*PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hex scalar: %v", errs.ErrInvalidParameter, err)
	}
	return NewPrivateKeyFromScalar(b, compressed)
}

// ParseWIF decodes a Wallet Import Format string into a PrivateKey.
//
// The WIF string must be 51 or 52 characters; a leading 'W' or 'X'
// requires exactly 52. The Base58Check payload carries a 1-byte version
// prefix followed by either a 32-byte scalar (uncompressed) or a 33-byte
// scalar whose trailing byte is 0x01 (compressed).
func ParseWIF(s string) (*PrivateKey, error) {
	if len(s) != 51 && len(s) != 52 {
		return nil, fmt.Errorf("%w: WIF must be 51 or 52 characters, got %d", errs.ErrInvalidKey, len(s))
	}
	if len(s) > 0 && (s[0] == 'W' || s[0] == 'X') && len(s) != 52 {
		return nil, fmt.Errorf("%w: WIF beginning with %q must be 52 characters", errs.ErrInvalidKey, s[0])
	}

	payload, err := base58check.DecodeChecked(s)
	if err != nil {
		return nil, err
	}
	if len(payload) < 2 {
		return nil, fmt.Errorf("%w: WIF payload too short", errs.ErrInvalidKey)
	}

	version := payload[0]
	scalar := payload[1:]

	var compressed bool
	switch len(scalar) {
	case 32:
		compressed = false
	case 33:
		if scalar[32] != 0x01 {
			return nil, fmt.Errorf("%w: compressed WIF scalar must end in 0x01", errs.ErrInvalidKey)
		}
		compressed = true
		scalar = scalar[:32]
	default:
		return nil, fmt.Errorf("%w: WIF scalar has unexpected length %d", errs.ErrInvalidKey, len(scalar))
	}

	pk, err := NewPrivateKeyFromScalar(scalar, compressed)
	if err != nil {
		return nil, err
	}
	pk.version = version
	return pk, nil
}

// WIF re-serializes the private key to its Base58Check WIF string using
// its stored version byte and compression flag.
func (pk *PrivateKey) WIF() string {
	scalar := pk.key.Serialize()
	payload := make([]byte, 0, 34)
	payload = append(payload, pk.version)
	payload = append(payload, scalar...)
	if pk.compressed {
		payload = append(payload, 0x01)
	}
	return base58check.EncodeChecked(payload)
}

// Compressed reports the private key's default serialization mode.
func (pk *PrivateKey) Compressed() bool { return pk.compressed }

// Version returns the WIF version byte this key was parsed with, or
// DefaultWIFVersion if it was constructed directly.
func (pk *PrivateKey) Version() byte { return pk.version }

// PublicKey derives the public key Q = d*G for this private key.
func (pk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{pub: pk.key.PubKey(), compressed: pk.compressed}
}

// Scalar returns the raw 32-byte big-endian scalar.
func (pk *PrivateKey) Scalar() []byte {
	return pk.key.Serialize()
}

// Zero overwrites the private scalar's in-memory representation. The
// underlying btcec.PrivateKey already zeroizes on GC finalization; this
// additionally clears our own cached version/compressed state so a
// reused struct cannot be mistaken for a live key.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
	pk.compressed = false
	pk.version = 0
}
