package exportbridge

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateFindsFirstMatchingCandidate(t *testing.T) {
	dir := t.TempDir()
	name := libraryBaseName + platformExt()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho ok\n"), 0o755))

	orig := CandidateDirs
	CandidateDirs = []string{"/does/not/exist", dir}
	defer func() { CandidateDirs = orig }()

	b, err := Locate()
	require.NoError(t, err)
	assert.Equal(t, path, b.binaryPath)
}

func TestLocateFailsWhenNoCandidateMatches(t *testing.T) {
	orig := CandidateDirs
	CandidateDirs = []string{t.TempDir()}
	defer func() { CandidateDirs = orig }()

	_, err := Locate()
	require.Error(t, err)
}

func TestExportSwapFileReturnsTrimmedStdout(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "stub.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf ''\n"), 0o755))

	b := &Bridge{binaryPath: script}
	status, err := b.ExportSwapFile(context.Background(), "wallet.dat", "secret")
	require.NoError(t, err)
	assert.Equal(t, "", status)
}

func platformExt() string {
	switch runtime.GOOS {
	case "darwin":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}
