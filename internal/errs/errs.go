// Package errs defines the sentinel error kinds shared across the
// swap-file codec, secp256k1 primitives, and attestation signing pipeline.
package errs

import "errors"

// Sentinel kinds. Wrap with fmt.Errorf("...: %w", Err*) to attach detail
// while keeping errors.Is checks stable across package boundaries.
var (
	ErrInvalidPath      = errors.New("invalid path")
	ErrInvalidChecksum  = errors.New("invalid checksum")
	ErrIllegalCharacter = errors.New("illegal character")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidPoint     = errors.New("invalid point")
	ErrInvalidKey       = errors.New("invalid key")
	ErrSignature        = errors.New("signature error")
)

// Code is a machine-readable classification for the CLI's dashboard JSON
// error envelope, mirroring the teacher's FFI error-code mapping.
type Code string

const (
	CodeInvalidPath      Code = "INVALID_PATH"
	CodeInvalidChecksum  Code = "INVALID_CHECKSUM"
	CodeIllegalCharacter Code = "ILLEGAL_CHARACTER"
	CodeInvalidParameter Code = "INVALID_PARAMETER"
	CodeInvalidPoint     Code = "INVALID_POINT"
	CodeInvalidKey       Code = "INVALID_KEY"
	CodeSignature        Code = "SIGNATURE_ERROR"
	CodeUnknown          Code = "UNKNOWN"
)

// Classify maps an error produced anywhere in this module to its
// machine-readable code, by walking errors.Is against the sentinel kinds.
// Order matters only in that every kind is checked; the kinds are disjoint
// in practice since each package returns exactly one sentinel per failure.
func Classify(err error) Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidPath):
		return CodeInvalidPath
	case errors.Is(err, ErrInvalidChecksum):
		return CodeInvalidChecksum
	case errors.Is(err, ErrIllegalCharacter):
		return CodeIllegalCharacter
	case errors.Is(err, ErrInvalidParameter):
		return CodeInvalidParameter
	case errors.Is(err, ErrInvalidPoint):
		return CodeInvalidPoint
	case errors.Is(err, ErrInvalidKey):
		return CodeInvalidKey
	case errors.Is(err, ErrSignature):
		return CodeSignature
	default:
		return CodeUnknown
	}
}
