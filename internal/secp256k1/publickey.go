package secp256k1

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/arcswapsign/arcswapsign/internal/errs"
)

// PublicKey is a non-infinity, non-zero-y point on secp256k1 with a
// compression flag governing its default serialization.
type PublicKey struct {
	pub        *btcec.PublicKey
	compressed bool
}

// checkIfOnCurve validates that (x, y) lies on the curve, returning an
// error when it does not. The boolean return is carried over from the
// legacy implementation this package is bit-compatible with: it reports
// whether (x, y) is the zero point, which is always false for anything
// that reaches the return statement, and no caller inspects it.
func checkIfOnCurve(x, y *big.Int) (bool, error) {
	if !onCurve(x, y) {
		return false, fmt.Errorf("%w: point is not on the curve", errs.ErrInvalidPoint)
	}
	return x.Sign() == 0 && y.Sign() == 0, nil
}

// NewPublicKeyFromPoint builds a PublicKey from affine coordinates,
// rejecting the point at infinity, a zero y-coordinate, or an
// off-curve point.
func NewPublicKeyFromPoint(x, y []byte, compressed bool) (*PublicKey, error) {
	xi := new(big.Int).SetBytes(x)
	yi := new(big.Int).SetBytes(y)

	if xi.Sign() == 0 && yi.Sign() == 0 {
		return nil, fmt.Errorf("%w: point at infinity", errs.ErrInvalidPoint)
	}
	if yi.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero y-coordinate", errs.ErrInvalidPoint)
	}
	if xi.Cmp(curveP) >= 0 {
		return nil, fmt.Errorf("%w: x-coordinate exceeds field prime", errs.ErrInvalidPoint)
	}
	if _, err := checkIfOnCurve(xi, yi); err != nil {
		return nil, err
	}

	der := make([]byte, 65)
	der[0] = 0x04
	putBigIntPadded(der[1:33], xi)
	putBigIntPadded(der[33:65], yi)

	pub, err := btcec.ParsePubKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidPoint, err)
	}
	return &PublicKey{pub: pub, compressed: compressed}, nil
}

// ParsePublicKey decodes a DER-style public key encoding:
//   - 65 bytes, 0x04 prefix: uncompressed
//   - 33 bytes, 0x02/0x03 prefix: compressed
//   - 65 bytes, 0x06/0x07 prefix: hybrid, accepted only when strict is false
func ParsePublicKey(der []byte, strict bool) (*PublicKey, error) {
	if len(der) == 0 {
		return nil, fmt.Errorf("%w: empty public key buffer", errs.ErrInvalidParameter)
	}

	prefix := der[0]
	switch prefix {
	case 0x02, 0x03:
		if len(der) != 33 {
			return nil, fmt.Errorf("%w: compressed public key must be 33 bytes, got %d", errs.ErrInvalidParameter, len(der))
		}
	case 0x04:
		if len(der) != 65 {
			return nil, fmt.Errorf("%w: uncompressed public key must be 65 bytes, got %d", errs.ErrInvalidParameter, len(der))
		}
	case 0x06, 0x07:
		if strict {
			return nil, fmt.Errorf("%w: hybrid public key prefix 0x%02x requires strict=false", errs.ErrInvalidParameter, prefix)
		}
		if len(der) != 65 {
			return nil, fmt.Errorf("%w: hybrid public key must be 65 bytes, got %d", errs.ErrInvalidParameter, len(der))
		}
	default:
		return nil, fmt.Errorf("%w: unrecognized public key prefix 0x%02x", errs.ErrInvalidParameter, prefix)
	}

	// btcec only recognizes 0x02/0x03/0x04 natively; normalize hybrid
	// prefixes to 0x04 since the X/Y payload is identical and the parity
	// byte is redundant with the Y coordinate itself.
	parseBuf := der
	if prefix == 0x06 || prefix == 0x07 {
		parseBuf = append([]byte{0x04}, der[1:]...)
	}

	pub, err := btcec.ParsePubKey(parseBuf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidPoint, err)
	}

	full := pub.SerializeUncompressed()
	xi := new(big.Int).SetBytes(full[1:33])
	yi := new(big.Int).SetBytes(full[33:65])
	if _, err := checkIfOnCurve(xi, yi); err != nil {
		return nil, err
	}

	compressed := prefix == 0x02 || prefix == 0x03
	return &PublicKey{pub: pub, compressed: compressed}, nil
}

// Encode serializes the public key, compressed (33 bytes) or
// uncompressed (65 bytes) per the caller's choice.
func (p *PublicKey) Encode(compressed bool) []byte {
	if compressed {
		return p.pub.SerializeCompressed()
	}
	return p.pub.SerializeUncompressed()
}

// EncodeDefault serializes using the key's own compression flag.
func (p *PublicKey) EncodeDefault() []byte {
	return p.Encode(p.compressed)
}

// Compressed reports the key's default serialization mode.
func (p *PublicKey) Compressed() bool { return p.compressed }

// WithCompressed returns a copy of the key with a different compression flag.
func (p *PublicKey) WithCompressed(compressed bool) *PublicKey {
	return &PublicKey{pub: p.pub, compressed: compressed}
}

// Equal reports whether two public keys represent the same curve point.
func (p *PublicKey) Equal(o *PublicKey) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.pub.IsEqual(o.pub)
}
