package address

import (
	"testing"

	"github.com/arcswapsign/arcswapsign/internal/secp256k1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPublicKeyAndBack(t *testing.T) {
	scalar := make([]byte, 32)
	scalar[31] = 0x01
	priv, err := secp256k1.NewPrivateKeyFromScalar(scalar, false)
	require.NoError(t, err)

	addr := FromPublicKey(priv.PublicKey())
	assert.Len(t, addr, 34)

	version, hash, err := FromBase58(addr)
	require.NoError(t, err)
	assert.Equal(t, Version, version)
	assert.Len(t, hash, 20)
}

func TestFromBase58RejectsBadLength(t *testing.T) {
	_, _, err := FromBase58("tooshort")
	require.Error(t, err)
}
