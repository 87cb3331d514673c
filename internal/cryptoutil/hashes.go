// Package cryptoutil collects the hashing, key-derivation, and symmetric
// cipher primitives shared by the swap-file codec and the secp256k1
// signing pipeline.
package cryptoutil

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for Bitcoin-style hash160
)

// SHA256 returns the SHA-256 digest of b.
func SHA256(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

// DoubleSHA256 returns SHA256(SHA256(b)), the Bitcoin-style "hash256".
func DoubleSHA256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// Hash160 returns RIPEMD160(SHA256(b)), the standard pubkey-to-hash
// function used for P2PKH addresses.
func Hash160(b []byte) []byte {
	sum := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sum[:])
	return h.Sum(nil)
}
