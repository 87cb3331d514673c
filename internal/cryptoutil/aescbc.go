package cryptoutil

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/arcswapsign/arcswapsign/internal/errs"
)

// DecryptAESCBC decrypts ciphertext with AES-256-CBC under key/iv and
// strips PKCS#7 padding. key must be 32 bytes, iv must be 16 bytes.
func DecryptAESCBC(ciphertext, key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidKey, err)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: iv must be %d bytes", errs.ErrInvalidKey, aes.BlockSize)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not a multiple of the block size", errs.ErrInvalidKey)
	}

	plaintext := make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(block, iv)
	mode.CryptBlocks(plaintext, ciphertext)

	return unpadPKCS7(plaintext)
}

func unpadPKCS7(data []byte) ([]byte, error) {
	n := len(data)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", errs.ErrInvalidKey)
	}
	padLen := int(data[n-1])
	if padLen == 0 || padLen > aes.BlockSize || padLen > n {
		return nil, fmt.Errorf("%w: bad PKCS#7 padding", errs.ErrInvalidKey)
	}
	for _, b := range data[n-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("%w: bad PKCS#7 padding", errs.ErrInvalidKey)
		}
	}
	return data[:n-padLen], nil
}

// ClearBytes zeros a byte slice in place so secret material does not
// linger on the heap longer than necessary.
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
