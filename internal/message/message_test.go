package message

import (
	"encoding/base64"
	"testing"

	"github.com/arcswapsign/arcswapsign/internal/secp256k1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrivateKey(t *testing.T) *secp256k1.PrivateKey {
	t.Helper()
	scalar := make([]byte, 32)
	scalar[31] = 0x2a
	priv, err := secp256k1.NewPrivateKeyFromScalar(scalar, true)
	require.NoError(t, err)
	return priv
}

func TestFrameLayout(t *testing.T) {
	frame, err := Frame("body")
	require.NoError(t, err)
	assert.Equal(t, byte(len(Magic)), frame[0])
	assert.Equal(t, Magic, string(frame[1:1+len(Magic)]))
	assert.Equal(t, byte(4), frame[1+len(Magic)])
	assert.Equal(t, "body", string(frame[2+len(Magic):]))
}

func TestSignAndVerify(t *testing.T) {
	priv := testPrivateKey(t)
	pub := priv.PublicKey()

	sigB64, err := Sign(priv, "hello recipient")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sigB64)
	require.NoError(t, err)
	assert.Len(t, raw, 65)

	ok, err := VerifyFromPublicKey(pub, "hello recipient", sigB64)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyFailsOnTamperedMessage(t *testing.T) {
	priv := testPrivateKey(t)
	pub := priv.PublicKey()

	sigB64, err := Sign(priv, "hello recipient")
	require.NoError(t, err)

	ok, err := VerifyFromPublicKey(pub, "goodbye recipient", sigB64)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyFailsOnTamperedSignature(t *testing.T) {
	priv := testPrivateKey(t)
	pub := priv.PublicKey()

	sigB64, err := Sign(priv, "hello recipient")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sigB64)
	require.NoError(t, err)
	raw[10] ^= 0xFF
	tampered := base64.StdEncoding.EncodeToString(raw)

	ok, err := VerifyFromPublicKey(pub, "hello recipient", tampered)
	if err == nil {
		assert.False(t, ok)
	}
}
