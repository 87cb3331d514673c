package secp256k1

import (
	"encoding/asn1"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/arcswapsign/arcswapsign/internal/errs"
)

// Signature is (r, s) plus an optional recovery index and the
// compression flag of the key that produced (or was recovered from) it.
// The associated public key, if any, is carried alongside rather than
// back-referenced from the key that produced it.
type Signature struct {
	R, S       *big.Int
	Recovery   *int
	Compressed bool

	pub *PublicKey
}

// PublicKey returns the public key associated with this signature, if
// one was captured at Sign time or by a prior RecoverPublicKey call.
func (sig *Signature) PublicKey() *PublicKey { return sig.pub }

// Sign produces a deterministic (RFC 6979) ECDSA signature over hash,
// canonicalized to low-S. The recovery index is the one ecdsa.SignCompact
// reports in its header byte; CalculateRecoveryID performs the explicit
// search over i in {0,1,2,3} for a signature that lacks one.
func Sign(priv *PrivateKey, hash []byte) (*Signature, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("%w: hash must be 32 bytes, got %d", errs.ErrSignature, len(hash))
	}

	compact := ecdsa.SignCompact(priv.key, hash, priv.compressed)
	sig, err := CompactDecode(compact)
	if err != nil {
		return nil, err
	}
	sig.pub = priv.PublicKey()
	return sig, nil
}

// CompactEncode renders the signature as the 65-byte compact form:
// header byte (27 + 4*compressed + i), big-endian r, big-endian s.
func (sig *Signature) CompactEncode() ([]byte, error) {
	if sig.Recovery == nil {
		return nil, fmt.Errorf("%w: no recovery factor computed for this signature", errs.ErrSignature)
	}
	i := *sig.Recovery
	if i < 0 || i > 3 {
		return nil, fmt.Errorf("%w: recovery index out of range", errs.ErrSignature)
	}

	out := make([]byte, 65)
	out[0] = byte(27 + 4*boolToInt(sig.Compressed) + i)
	putBigIntPadded(out[1:33], sig.R)
	putBigIntPadded(out[33:65], sig.S)
	return out, nil
}

// CompactDecode parses a 65-byte compact signature.
func CompactDecode(compact []byte) (*Signature, error) {
	if len(compact) != 65 {
		return nil, fmt.Errorf("%w: compact signature must be 65 bytes, got %d", errs.ErrSignature, len(compact))
	}

	header := int(compact[0])
	if header < 27 || header > 34 {
		return nil, fmt.Errorf("%w: invalid compact signature header byte 0x%02x", errs.ErrSignature, compact[0])
	}
	header -= 27
	compressed := header&4 != 0
	i := header & 3

	r := new(big.Int).SetBytes(compact[1:33])
	s := new(big.Int).SetBytes(compact[33:65])

	return &Signature{R: r, S: s, Recovery: &i, Compressed: compressed}, nil
}

// CalculateRecoveryID searches i in {0,1,2,3} for the index that recovers
// pub from (r, s, hash), per SEC 1 §4.1.6. It fails if no i matches.
func CalculateRecoveryID(pub *PublicKey, r, s *big.Int, hash []byte) (int, error) {
	rb, sb := make([]byte, 32), make([]byte, 32)
	putBigIntPadded(rb, r)
	putBigIntPadded(sb, s)

	for i := 0; i < 4; i++ {
		compact := make([]byte, 65)
		compact[0] = byte(27 + i)
		copy(compact[1:33], rb)
		copy(compact[33:65], sb)

		recovered, _, err := ecdsa.RecoverCompact(compact, hash)
		if err != nil {
			continue
		}
		if recovered.IsEqual(pub.pub) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no recovery factor found for this signature", errs.ErrSignature)
}

// RecoverPublicKey recovers the public key Q from (r, s, i, hash) per
// SEC 1 §4.1.6, requiring n*R = O on the intermediate point.
func RecoverPublicKey(r, s *big.Int, i int, hash []byte) (*PublicKey, error) {
	if i < 0 || i > 3 {
		return nil, fmt.Errorf("%w: recovery index must be in 0..3, got %d", errs.ErrSignature, i)
	}

	rb, sb := make([]byte, 32), make([]byte, 32)
	putBigIntPadded(rb, r)
	putBigIntPadded(sb, s)

	compact := make([]byte, 65)
	compact[0] = byte(27 + i)
	copy(compact[1:33], rb)
	copy(compact[33:65], sb)

	recovered, wasCompressed, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrSignature, err)
	}
	return &PublicKey{pub: recovered, compressed: wasCompressed}, nil
}

// Verify checks sig against hash and pub using standard ECDSA
// verification. It fails rather than returning false for an
// uninitialized signature.
func (sig *Signature) Verify(hash []byte, pub *PublicKey) (bool, error) {
	if sig == nil || sig.R == nil || sig.S == nil || sig.R.Sign() == 0 || sig.S.Sign() == 0 {
		return false, fmt.Errorf("%w: signature is uninitialized", errs.ErrSignature)
	}
	ecSig := ecdsa.NewSignature(modNScalar(sig.R), modNScalar(sig.S))
	return ecSig.Verify(hash, pub.pub), nil
}

type derSignature struct {
	R *big.Int
	S *big.Int
}

// DER renders the signature as an ASN.1 SEQUENCE of two INTEGERs.
func (sig *Signature) DER() ([]byte, error) {
	out, err := asn1.Marshal(derSignature{R: sig.R, S: sig.S})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrSignature, err)
	}
	return out, nil
}

// ParseDER decodes an ASN.1 SEQUENCE of two INTEGERs into a Signature
// with no recovery index set.
func ParseDER(der []byte) (*Signature, error) {
	var parsed derSignature
	rest, err := asn1.Unmarshal(der, &parsed)
	if err != nil || len(rest) != 0 {
		return nil, fmt.Errorf("%w: malformed DER signature", errs.ErrSignature)
	}
	if parsed.R == nil || parsed.S == nil || parsed.R.Sign() <= 0 || parsed.S.Sign() <= 0 {
		return nil, fmt.Errorf("%w: DER signature fields must be positive", errs.ErrSignature)
	}
	return &Signature{R: parsed.R, S: parsed.S}, nil
}

func modNScalar(x *big.Int) *btcec.ModNScalar {
	var s btcec.ModNScalar
	b := make([]byte, 32)
	putBigIntPadded(b, x)
	s.SetByteSlice(b)
	return &s
}
