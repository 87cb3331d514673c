// Package attestation signs the two swap-attestation message families on
// behalf of a single swap-file entry, decrypting its legacy private key
// on demand from a caller-supplied passphrase.
package attestation

import (
	"encoding/base64"
	"fmt"

	"github.com/arcswapsign/arcswapsign/internal/cryptoutil"
	"github.com/arcswapsign/arcswapsign/internal/errs"
	"github.com/arcswapsign/arcswapsign/internal/message"
	"github.com/arcswapsign/arcswapsign/internal/secp256k1"
	"github.com/arcswapsign/arcswapsign/internal/swapfile"
)

const (
	templateAssets       = "ZNN swap retrieve assets "
	templateLegacyPillar = "ZNN swap retrieve legacy pillar "
)

// Entry wraps a swapfile.Entry with the signing operations this
// protocol defines over it.
type Entry struct {
	record *swapfile.Entry
}

// New wraps a loaded swap-file record for signing.
func New(record *swapfile.Entry) *Entry {
	return &Entry{record: record}
}

// Record returns the underlying swap-file record, including its
// derivedPubKeyB64 cache as of the last successful signing call.
func (e *Entry) Record() *swapfile.Entry { return e.record }

// decrypt runs the passphrase-derived decryption pipeline against the
// entry's ciphertext and parses the resulting plaintext as a WIF private
// key. Any failure along this path — Base64 decode, PKCS#7 unpad, or WIF
// parse — is coalesced into a single InvalidKey error so no oracle about
// which step failed reaches the caller.
func (e *Entry) decrypt(passphrase string) (*secp256k1.PrivateKey, error) {
	priv, err := e.decryptInner(passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: Invalid decryption passphrase, please check again", errs.ErrInvalidKey)
	}
	return priv, nil
}

func (e *Entry) decryptInner(passphrase string) (*secp256k1.PrivateKey, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(e.record.EncryptedPrivKeyB64)
	if err != nil {
		return nil, err
	}

	key := cryptoutil.DeriveKey(passphrase)
	defer cryptoutil.ClearBytes(key)
	ivSeed := cryptoutil.DeriveIVSeed(passphrase)
	defer cryptoutil.ClearBytes(ivSeed)
	iv := ivSeed[:16]

	plaintext, err := cryptoutil.DecryptAESCBC(ciphertext, key, iv)
	if err != nil {
		return nil, err
	}
	defer cryptoutil.ClearBytes(plaintext)

	if len(plaintext) < 52 {
		return nil, fmt.Errorf("plaintext shorter than a WIF string")
	}
	wif := string(plaintext[:52])

	return secp256k1.ParseWIF(wif)
}

// sign decrypts the entry's private key under passphrase, derives its
// public key, builds the requested message template, signs it, and
// caches the derived public key on the record.
func (e *Entry) sign(passphrase, template, recipient string) (string, error) {
	priv, err := e.decrypt(passphrase)
	if err != nil {
		return "", err
	}
	defer priv.Zero()

	pub := priv.PublicKey().WithCompressed(false)
	derivedPubKeyB64 := base64.StdEncoding.EncodeToString(pub.EncodeDefault())

	body := template + derivedPubKeyB64 + " " + recipient

	sigB64, err := message.Sign(priv, body)
	if err != nil {
		return "", err
	}

	e.record.DerivedPubKeyB64 = derivedPubKeyB64
	return sigB64, nil
}

// SignAssets signs the "retrieve assets" attestation binding this entry's
// legacy key to recipient.
func (e *Entry) SignAssets(passphrase, recipient string) (string, error) {
	return e.sign(passphrase, templateAssets, recipient)
}

// SignLegacyPillar signs the "retrieve legacy pillar" attestation binding
// this entry's legacy key to recipient.
func (e *Entry) SignLegacyPillar(passphrase, recipient string) (string, error) {
	return e.sign(passphrase, templateLegacyPillar, recipient)
}

// CanDecryptWith probes whether passphrase decrypts this entry by
// signing the legacy-pillar template against an empty recipient and
// discarding the signature. A nil return means the passphrase is
// correct; derivedPubKeyB64 is populated as a side effect.
func (e *Entry) CanDecryptWith(passphrase string) error {
	_, err := e.SignLegacyPillar(passphrase, "")
	return err
}
