// Package config loads the handful of knobs the CLI needs beyond its
// subcommand flags: the swap-file path, an optional export-bridge
// override directory, and verbosity — each settable by flag or by an
// ARCSWAPSIGN_-prefixed environment variable, flags taking precedence.
package config

import (
	"os"
	"strconv"
)

// Config holds the resolved runtime settings for a single CLI invocation.
type Config struct {
	SwapFilePath    string
	ExportBridgeDir string
	Verbose         bool
}

// Load resolves a Config from environment variables, applying each flag
// argument as an override when it is non-zero (flags always win over env).
func Load(swapFileFlag, exportDirFlag string, verboseFlag bool) Config {
	cfg := Config{
		SwapFilePath:    envOr("ARCSWAPSIGN_SWAP_FILE", ""),
		ExportBridgeDir: envOr("ARCSWAPSIGN_EXPORT_DIR", ""),
		Verbose:         envBoolOr("ARCSWAPSIGN_VERBOSE", false),
	}

	if swapFileFlag != "" {
		cfg.SwapFilePath = swapFileFlag
	}
	if exportDirFlag != "" {
		cfg.ExportBridgeDir = exportDirFlag
	}
	if verboseFlag {
		cfg.Verbose = true
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
