package secp256k1

import (
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomScalar(t *testing.T) []byte {
	t.Helper()
	for {
		b := make([]byte, 32)
		_, err := rand.Read(b)
		require.NoError(t, err)
		if _, err := NewPrivateKeyFromScalar(b, true); err == nil {
			return b
		}
	}
}

func TestWIFRoundTrip(t *testing.T) {
	scalar := randomScalar(t)
	priv, err := NewPrivateKeyFromScalar(scalar, true)
	require.NoError(t, err)

	wif := priv.WIF()
	parsed, err := ParseWIF(wif)
	require.NoError(t, err)
	assert.Equal(t, wif, parsed.WIF())
	assert.Equal(t, priv.Compressed(), parsed.Compressed())
	assert.Equal(t, priv.Version(), parsed.Version())
}

func TestParseWIFWrongLength(t *testing.T) {
	_, err := ParseWIF("tooShort")
	require.Error(t, err)
}

func TestPublicKeyFromPrivate(t *testing.T) {
	scalar := randomScalar(t)
	priv, err := NewPrivateKeyFromScalar(scalar, false)
	require.NoError(t, err)

	pub := priv.PublicKey()
	der := pub.EncodeDefault()
	assert.Len(t, der, 65)
	assert.Equal(t, byte(0x04), der[0])
}

func TestParsePublicKeyCompressedAndUncompressed(t *testing.T) {
	scalar := randomScalar(t)
	priv, err := NewPrivateKeyFromScalar(scalar, true)
	require.NoError(t, err)
	pub := priv.PublicKey()

	compressed := pub.Encode(true)
	parsedCompressed, err := ParsePublicKey(compressed, true)
	require.NoError(t, err)
	assert.True(t, parsedCompressed.Equal(pub))

	uncompressed := pub.Encode(false)
	parsedUncompressed, err := ParsePublicKey(uncompressed, true)
	require.NoError(t, err)
	assert.True(t, parsedUncompressed.Equal(pub))
}

func TestParsePublicKeyInvalidPrefix(t *testing.T) {
	_, err := ParsePublicKey([]byte{0xFF, 0x01}, true)
	require.Error(t, err)
}

func TestSignLowS(t *testing.T) {
	scalar := randomScalar(t)
	priv, err := NewPrivateKeyFromScalar(scalar, true)
	require.NoError(t, err)

	hash := sha256.Sum256([]byte("message to sign"))
	sig, err := Sign(priv, hash[:])
	require.NoError(t, err)
	assert.True(t, IsLowS(sig.S))
}

func TestCompactRoundTrip(t *testing.T) {
	scalar := randomScalar(t)
	priv, err := NewPrivateKeyFromScalar(scalar, true)
	require.NoError(t, err)

	hash := sha256.Sum256([]byte("round trip message"))
	sig, err := Sign(priv, hash[:])
	require.NoError(t, err)

	compact, err := sig.CompactEncode()
	require.NoError(t, err)
	assert.Len(t, compact, 65)

	decoded, err := CompactDecode(compact)
	require.NoError(t, err)
	assert.Equal(t, sig.R, decoded.R)
	assert.Equal(t, sig.S, decoded.S)
	assert.Equal(t, *sig.Recovery, *decoded.Recovery)
	assert.Equal(t, sig.Compressed, decoded.Compressed)
}

func TestRecoveryConsistency(t *testing.T) {
	scalar := randomScalar(t)
	priv, err := NewPrivateKeyFromScalar(scalar, true)
	require.NoError(t, err)

	hash := sha256.Sum256([]byte("recoverable message"))
	sig, err := Sign(priv, hash[:])
	require.NoError(t, err)

	recovered, err := RecoverPublicKey(sig.R, sig.S, *sig.Recovery, hash[:])
	require.NoError(t, err)
	assert.True(t, recovered.Equal(priv.PublicKey()))
}

func TestVerifyAfterSign(t *testing.T) {
	scalar := randomScalar(t)
	priv, err := NewPrivateKeyFromScalar(scalar, true)
	require.NoError(t, err)
	pub := priv.PublicKey()

	hash := sha256.Sum256([]byte("verify me"))
	sig, err := Sign(priv, hash[:])
	require.NoError(t, err)

	ok, err := sig.Verify(hash[:], pub)
	require.NoError(t, err)
	assert.True(t, ok)

	tamperedHash := sha256.Sum256([]byte("verify me!"))
	ok, err = sig.Verify(tamperedHash[:], pub)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDEREncodeDecode(t *testing.T) {
	scalar := randomScalar(t)
	priv, err := NewPrivateKeyFromScalar(scalar, true)
	require.NoError(t, err)

	hash := sha256.Sum256([]byte("der message"))
	sig, err := Sign(priv, hash[:])
	require.NoError(t, err)

	der, err := sig.DER()
	require.NoError(t, err)

	parsed, err := ParseDER(der)
	require.NoError(t, err)
	assert.Equal(t, sig.R, parsed.R)
	assert.Equal(t, sig.S, parsed.S)
}
