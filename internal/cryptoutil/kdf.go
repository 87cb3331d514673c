package cryptoutil

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// Fixed parameters for the swap-file decryption pipeline. These are a
// wire contract, not a tunable: every .swp file in circulation was
// encrypted against exactly these values.
const (
	PBKDF2Salt       = "znn"
	PBKDF2Iterations = 120000
	PBKDF2KeyLen     = 32
)

// DeriveKey stretches passphrase into a 32-byte AES-256 key using
// PBKDF2-HMAC-SHA-256 with the fixed salt and iteration count.
func DeriveKey(passphrase string) []byte {
	return pbkdf2.Key([]byte(passphrase), []byte(PBKDF2Salt), PBKDF2Iterations, PBKDF2KeyLen, sha256.New)
}

// DeriveIVSeed stretches the code-point-reversed passphrase the same way;
// the caller takes the first 16 bytes as the AES-CBC IV.
func DeriveIVSeed(passphrase string) []byte {
	return pbkdf2.Key([]byte(ReverseCodePoints(passphrase)), []byte(PBKDF2Salt), PBKDF2Iterations, PBKDF2KeyLen, sha256.New)
}

// ReverseCodePoints reverses s over Unicode code points (runes), not
// bytes, so multi-byte UTF-8 passphrases reverse correctly.
func ReverseCodePoints(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
