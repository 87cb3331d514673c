// Package secp256k1 wraps github.com/btcsuite/btcd/btcec/v2 with the
// exact private-key, public-key, and signature contract the swap-file
// signing protocol depends on: WIF parsing with its own length rules,
// compact-signature recovery-index search, and a pinned low-S threshold
// constant for checking that signatures are canonical.
package secp256k1

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

var (
	curveN = btcec.S256().N
	curveP = btcec.S256().P
)

// LowSThresholdHex is the exact low-S boundary used by the swap-file
// signing protocol: s values above this must be replaced by n - s.
// It is numerically equal to n/2, spelled out as a literal so a reviewer
// can diff it directly against the wire contract instead of trusting
// arithmetic on the curve order.
const LowSThresholdHex = "7FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF5D576E7357A4501DDFE92F46681B20A0"

var lowSThreshold = mustHexBigInt(LowSThresholdHex)

func mustHexBigInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("secp256k1: bad low-S threshold literal")
	}
	return n
}

// IsLowS reports whether s is at or below the canonical low-S threshold.
func IsLowS(s *big.Int) bool {
	return s.Cmp(lowSThreshold) <= 0
}

// onCurve reports whether (x, y) satisfies y^2 = x^3 + 7 mod p.
func onCurve(x, y *big.Int) bool {
	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, curveP)

	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, big.NewInt(7))
	rhs.Mod(rhs, curveP)

	return lhs.Cmp(rhs) == 0
}

func putBigIntPadded(dst []byte, x *big.Int) {
	b := x.Bytes()
	copy(dst[len(dst)-len(b):], b)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
