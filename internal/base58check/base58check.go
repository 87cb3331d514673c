// Package base58check implements the Bitcoin-style base-58 encoding used
// by WIF private keys and P2PKH addresses, plus the 4-byte double-SHA-256
// checksum wrapper around it.
package base58check

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/arcswapsign/arcswapsign/internal/cryptoutil"
	"github.com/arcswapsign/arcswapsign/internal/errs"
)

const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var (
	bigRadix = big.NewInt(58)
	bigZero  = big.NewInt(0)
)

var decodeMap [256]int8

func init() {
	for i := range decodeMap {
		decodeMap[i] = -1
	}
	for i, c := range alphabet {
		decodeMap[c] = int8(i)
	}
}

// Encode converts raw bytes to a base-58 string, preserving one leading
// '1' for every leading zero byte in b.
func Encode(b []byte) string {
	x := new(big.Int).SetBytes(b)

	answer := make([]byte, 0, len(b)*136/100+1)
	mod := new(big.Int)
	for x.Cmp(bigZero) > 0 {
		x.DivMod(x, bigRadix, mod)
		answer = append(answer, alphabet[mod.Int64()])
	}

	for _, c := range b {
		if c != 0 {
			break
		}
		answer = append(answer, alphabet[0])
	}

	// reverse
	for i, j := 0, len(answer)-1; i < j; i, j = i+1, j-1 {
		answer[i], answer[j] = answer[j], answer[i]
	}

	return string(answer)
}

// Decode converts a base-58 string back to raw bytes, preserving one
// leading zero byte for every leading '1' in s.
func Decode(s string) ([]byte, error) {
	answer := big.NewInt(0)
	scratch := new(big.Int)
	for i := 0; i < len(s); i++ {
		d := decodeMap[s[i]]
		if d == -1 {
			return nil, fmt.Errorf("%w: %q at position %d", errs.ErrIllegalCharacter, s[i], i)
		}
		answer.Mul(answer, bigRadix)
		scratch.SetInt64(int64(d))
		answer.Add(answer, scratch)
	}

	decoded := answer.Bytes()
	leadingZeros := 0
	for i := 0; i < len(s) && s[i] == alphabet[0]; i++ {
		leadingZeros++
	}

	result := make([]byte, leadingZeros+len(decoded))
	copy(result[leadingZeros:], decoded)
	return result, nil
}

// DecodeChecked decodes s and validates its trailing 4-byte double-SHA-256
// checksum, returning the payload with the checksum stripped.
func DecodeChecked(s string) ([]byte, error) {
	full, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if len(full) < 4 {
		return nil, fmt.Errorf("%w: base58check payload too short (%d bytes)", errs.ErrInvalidParameter, len(full))
	}

	payload := full[:len(full)-4]
	checksum := full[len(full)-4:]
	expected := cryptoutil.DoubleSHA256(payload)[:4]

	if !bytes.Equal(checksum, expected) {
		return nil, fmt.Errorf("%w: base58check checksum mismatch", errs.ErrInvalidChecksum)
	}
	return payload, nil
}

// EncodeChecked appends the 4-byte double-SHA-256 checksum of payload and
// base-58 encodes the result.
func EncodeChecked(payload []byte) string {
	checksum := cryptoutil.DoubleSHA256(payload)[:4]
	full := make([]byte, 0, len(payload)+4)
	full = append(full, payload...)
	full = append(full, checksum...)
	return Encode(full)
}
