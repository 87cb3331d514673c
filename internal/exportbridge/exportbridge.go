// Package exportbridge is a thin boundary adapter to the externally
// supplied legacy-wallet-conversion binary. The binary is a pre-existing
// artifact this module does not build or own; this package only locates
// it and invokes it by path and passphrase.
package exportbridge

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/arcswapsign/arcswapsign/internal/errs"
)

// symbolName is the function this library's native counterpart exposes;
// kept here as documentation of the contract this subprocess scheme
// replaces a direct FFI call with.
const symbolName = "exportSwapFile"

// libraryBaseName is the export tool's name sans platform extension.
const libraryBaseName = "zenon-legacy-export"

// CandidateDirs is the fixed, ordered list of directories probed for the
// export tool. Callers may override it in tests.
var CandidateDirs = []string{
	".",
	"./bin",
	"/usr/local/lib/arcswapsign",
	"/usr/lib/arcswapsign",
}

// Bridge is a handle to the located export binary, acquired once and
// reused across calls. This replaces a lazily-initialized global function
// pointer with an explicit, scoped handle.
type Bridge struct {
	binaryPath string
}

// Locate probes CandidateDirs, in order, for a platform-appropriate
// export binary and returns a Bridge bound to the first one found.
func Locate() (*Bridge, error) {
	name := platformBinaryName()
	for _, dir := range CandidateDirs {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return &Bridge{binaryPath: candidate}, nil
		}
	}
	return nil, fmt.Errorf("%w: export library %q not found in any candidate directory", errs.ErrInvalidPath, name)
}

func platformBinaryName() string {
	switch runtime.GOOS {
	case "darwin":
		return libraryBaseName + ".dylib"
	case "windows":
		return libraryBaseName + ".dll"
	default:
		return libraryBaseName + ".so"
	}
}

// ExportSwapFile invokes the located binary with (walletPath, passphrase)
// and returns its status string: empty means success, with a wallet.swp
// written next to walletPath; any other string is the error message
// reported by the external tool.
//
// This is a subprocess-based substitute for the binary's native
// exportSwapFile symbol: the bridge execs it with the two arguments and
// takes trimmed stdout as the status string, which is an equivalent
// scheme for an interface specified only at this surface.
func (b *Bridge) ExportSwapFile(ctx context.Context, walletPath, passphrase string) (string, error) {
	cmd := exec.CommandContext(ctx, b.binaryPath, walletPath, passphrase)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("%w: %s", errs.ErrInvalidPath, bytes.TrimSpace(stderr.Bytes()))
		}
		return "", fmt.Errorf("%w: %v", errs.ErrInvalidPath, err)
	}

	return string(bytes.TrimSpace(stdout.Bytes())), nil
}
