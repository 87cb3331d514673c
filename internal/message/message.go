// Package message implements the Bitcoin-style magic-prefixed signed
// message framing this protocol uses to bind a signature to a specific
// text body: length-prefix the magic string, length-prefix the body,
// double-SHA-256 the result.
package message

import (
	"encoding/base64"
	"fmt"

	"github.com/arcswapsign/arcswapsign/internal/cryptoutil"
	"github.com/arcswapsign/arcswapsign/internal/errs"
	"github.com/arcswapsign/arcswapsign/internal/secp256k1"
)

// Magic is the fixed prefix string framed around every signed message.
const Magic = "Zenon secp256k1 signature:"

// Frame builds [len(magic)] || magic || [len(body)] || body. Both
// lengths are single bytes, so body (and Magic) must be under 253 bytes.
func Frame(body string) ([]byte, error) {
	if len(Magic) >= 253 || len(body) >= 253 {
		return nil, fmt.Errorf("%w: message body too long to length-prefix as a single byte", errs.ErrInvalidParameter)
	}

	out := make([]byte, 0, 2+len(Magic)+len(body))
	out = append(out, byte(len(Magic)))
	out = append(out, Magic...)
	out = append(out, byte(len(body)))
	out = append(out, body...)
	return out, nil
}

// Hash returns the magic hash doubleSHA256(Frame(body)).
func Hash(body string) ([]byte, error) {
	frame, err := Frame(body)
	if err != nil {
		return nil, err
	}
	return cryptoutil.DoubleSHA256(frame), nil
}

// Sign produces a compact, Base64-encoded signature over the magic hash
// of body.
func Sign(priv *secp256k1.PrivateKey, body string) (string, error) {
	hash, err := Hash(body)
	if err != nil {
		return "", err
	}

	sig, err := secp256k1.Sign(priv, hash)
	if err != nil {
		return "", err
	}

	compact, err := sig.CompactEncode()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(compact), nil
}

// VerifyFromPublicKey decodes sigB64, recovers the claimed public key
// using the magic hash of body as the signed digest, and succeeds only
// if the recovered point equals pub and standard ECDSA verification
// against pub also passes.
func VerifyFromPublicKey(pub *secp256k1.PublicKey, body string, sigB64 string) (bool, error) {
	raw, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		return false, fmt.Errorf("%w: invalid base64 signature: %v", errs.ErrSignature, err)
	}
	if len(raw) != 65 {
		return false, fmt.Errorf("%w: compact signature must decode to 65 bytes, got %d", errs.ErrSignature, len(raw))
	}

	sig, err := secp256k1.CompactDecode(raw)
	if err != nil {
		return false, err
	}

	hash, err := Hash(body)
	if err != nil {
		return false, err
	}

	recovered, err := secp256k1.RecoverPublicKey(sig.R, sig.S, *sig.Recovery, hash)
	if err != nil {
		return false, err
	}
	if !recovered.Equal(pub) {
		return false, nil
	}

	return sig.Verify(hash, pub)
}
