// Package swapfile reads and verifies the checksum-protected .swp
// container that carries one or more encrypted legacy private keys
// across to the signing pipeline.
package swapfile

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcswapsign/arcswapsign/internal/address"
	"github.com/arcswapsign/arcswapsign/internal/cryptoutil"
	"github.com/arcswapsign/arcswapsign/internal/errs"
	"github.com/arcswapsign/arcswapsign/internal/secp256k1"
)

// Extension is the only file extension this codec accepts.
const Extension = ".swp"

const trailerLen = 64

// Entry is one record decoded from a swap file.
type Entry struct {
	// LegacyPubKeyB64 is intentionally left empty on load: the only
	// materialized public key is the one derived after a successful
	// decrypt-and-sign, stored in DerivedPubKeyB64.
	LegacyPubKeyB64     string
	LegacyAddress       string
	KeyIDHashHex        string
	EncryptedPrivKeyB64 string
	DerivedPubKeyB64    string
}

// File is the parsed, checksum-verified contents of a .swp container.
type File struct {
	Entries []*Entry
}

// Load reads and parses the swap file at path.
func Load(path string) (*File, error) {
	if filepath.Ext(path) != Extension {
		return nil, fmt.Errorf("%w: swap file path must end in %q, got %q", errs.ErrInvalidPath, Extension, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidPath, err)
	}

	return Parse(raw)
}

// Parse decodes raw swap-file content: `<JSON-object><64-hex checksum>`,
// optionally surrounded by whitespace.
func Parse(raw []byte) (*File, error) {
	content := strings.TrimSpace(string(raw))
	if len(content) <= trailerLen {
		return nil, fmt.Errorf("%w: swap file content too short to contain a checksum", errs.ErrInvalidParameter)
	}

	split := len(content) - trailerLen
	body := content[:split]
	trailer := strings.ToLower(content[split:])

	if body == "" {
		return nil, fmt.Errorf("%w: swap file body is empty", errs.ErrInvalidParameter)
	}
	if _, err := hex.DecodeString(trailer); err != nil {
		return nil, fmt.Errorf("%w: swap file trailer is not hex", errs.ErrInvalidChecksum)
	}

	expected := hex.EncodeToString(cryptoutil.SHA256([]byte(body)))
	if expected != trailer {
		return nil, fmt.Errorf("%w: invalid swap wallet checksum", errs.ErrInvalidChecksum)
	}

	var records map[string][2]string
	if err := json.Unmarshal([]byte(body), &records); err != nil {
		return nil, fmt.Errorf("%w: malformed swap file body: %v", errs.ErrInvalidParameter, err)
	}

	f := &File{Entries: make([]*Entry, 0, len(records))}
	for pubKeyB64, rec := range records {
		entry, err := newEntry(pubKeyB64, rec[0], rec[1])
		if err != nil {
			return nil, err
		}
		f.Entries = append(f.Entries, entry)
	}
	return f, nil
}

func newEntry(pubKeyB64, encB64, keyIDHex string) (*Entry, error) {
	der, err := decodeBase64(pubKeyB64)
	if err != nil {
		return nil, err
	}

	pub, err := secp256k1.ParsePublicKey(der, true)
	if err != nil {
		return nil, err
	}

	addr := address.FromPublicKey(pub.WithCompressed(true))

	return &Entry{
		LegacyPubKeyB64:     "",
		LegacyAddress:       addr,
		KeyIDHashHex:        keyIDHex,
		EncryptedPrivKeyB64: encB64,
		DerivedPubKeyB64:    "",
	}, nil
}

func decodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", errs.ErrInvalidParameter, err)
	}
	return b, nil
}
