package attestation

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"testing"

	"github.com/arcswapsign/arcswapsign/internal/cryptoutil"
	"github.com/arcswapsign/arcswapsign/internal/errs"
	"github.com/arcswapsign/arcswapsign/internal/message"
	"github.com/arcswapsign/arcswapsign/internal/secp256k1"
	"github.com/arcswapsign/arcswapsign/internal/swapfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassphrase = "correct horse battery staple"

func buildEncryptedEntry(t *testing.T, wif string, passphrase string) *swapfile.Entry {
	t.Helper()

	key := cryptoutil.DeriveKey(passphrase)
	ivSeed := cryptoutil.DeriveIVSeed(passphrase)
	iv := ivSeed[:16]

	block, err := aes.NewCipher(key)
	require.NoError(t, err)

	plaintext := []byte(wif)
	require.Len(t, plaintext, 52)

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return &swapfile.Entry{
		EncryptedPrivKeyB64: base64.StdEncoding.EncodeToString(ciphertext),
	}
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padding := make([]byte, padLen)
	for i := range padding {
		padding[i] = byte(padLen)
	}
	return append(data, padding...)
}

func testWIF(t *testing.T) string {
	t.Helper()
	scalar := make([]byte, 32)
	scalar[31] = 0x09
	priv, err := secp256k1.NewPrivateKeyFromScalar(scalar, true)
	require.NoError(t, err)
	wif := priv.WIF()
	require.Len(t, wif, 52)
	return wif
}

func TestSignAssetsProducesVerifiableSignature(t *testing.T) {
	wif := testWIF(t)
	record := buildEncryptedEntry(t, wif, testPassphrase)
	entry := New(record)

	sigB64, err := entry.SignAssets(testPassphrase, "z1qxyexampleaddress")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sigB64)
	require.NoError(t, err)
	assert.Len(t, raw, 65)
	assert.Contains(t, []byte{27, 28, 29, 30, 31, 32, 33, 34}, raw[0])

	priv, err := secp256k1.ParseWIF(wif)
	require.NoError(t, err)
	pub := priv.PublicKey().WithCompressed(false)
	derivedPubKeyB64 := base64.StdEncoding.EncodeToString(pub.EncodeDefault())
	assert.Equal(t, derivedPubKeyB64, record.DerivedPubKeyB64)

	body := templateAssets + derivedPubKeyB64 + " " + "z1qxyexampleaddress"
	ok, err := message.VerifyFromPublicKey(pub, body, sigB64)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSignWithWrongPassphraseIsOpaque(t *testing.T) {
	wif := testWIF(t)
	record := buildEncryptedEntry(t, wif, testPassphrase)
	entry := New(record)

	_, err := entry.SignAssets("wrong passphrase", "z1qxy")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidKey)
	assert.Contains(t, err.Error(), "Invalid decryption passphrase, please check again")
}

func TestCanDecryptWithIsIdempotent(t *testing.T) {
	wif := testWIF(t)
	record := buildEncryptedEntry(t, wif, testPassphrase)
	entry := New(record)

	err1 := entry.CanDecryptWith(testPassphrase)
	err2 := entry.CanDecryptWith(testPassphrase)
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.NotEmpty(t, record.DerivedPubKeyB64)
}

func TestCanDecryptWithFailsConsistently(t *testing.T) {
	wif := testWIF(t)
	record := buildEncryptedEntry(t, wif, testPassphrase)
	entry := New(record)

	err1 := entry.CanDecryptWith("nope")
	err2 := entry.CanDecryptWith("nope")
	assert.Error(t, err1)
	assert.Error(t, err2)
}
