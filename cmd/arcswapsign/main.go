package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/arcswapsign/arcswapsign/internal/address"
	"github.com/arcswapsign/arcswapsign/internal/asyncsign"
	"github.com/arcswapsign/arcswapsign/internal/attestation"
	"github.com/arcswapsign/arcswapsign/internal/cliutil"
	"github.com/arcswapsign/arcswapsign/internal/config"
	"github.com/arcswapsign/arcswapsign/internal/exportbridge"
	"github.com/arcswapsign/arcswapsign/internal/log"
	"github.com/arcswapsign/arcswapsign/internal/secp256k1"
	"github.com/arcswapsign/arcswapsign/internal/swapfile"
)

const version = "0.1.0"

func main() {
	if cliutil.IsDashboard() {
		runDashboard()
		return
	}
	runInteractive()
}

func runInteractive() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "probe":
		cmdProbe(os.Args[2:])
	case "sign":
		cmdSign(os.Args[2:])
	case "derive-address":
		cmdDeriveAddress(os.Args[2:])
	case "export":
		cmdExport(os.Args[2:])
	case "version":
		fmt.Printf("arcswapsign v%s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("arcswapsign - legacy wallet-swap signing utility")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  arcswapsign probe --swap-file <path>")
	fmt.Println("  arcswapsign sign --swap-file <path> --recipient <addr> --message {assets|pillar}")
	fmt.Println("  arcswapsign derive-address --wif <wif>")
	fmt.Println("  arcswapsign export --wallet <path>")
	fmt.Println()
	fmt.Println("Set ARCSWAPSIGN_MODE=dashboard for non-interactive JSON-over-stdout mode.")
}

func readPassphrase(logger *zap.Logger) string {
	fmt.Fprint(os.Stderr, "Passphrase: ")
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		logger.Fatal("failed to read passphrase", zap.Error(err))
	}
	return string(b)
}

func deriveAddressString(pub *secp256k1.PublicKey) string {
	return address.FromPublicKey(pub)
}

func loadEntry(swapFilePath string) (*attestation.Entry, error) {
	f, err := swapfile.Load(swapFilePath)
	if err != nil {
		return nil, err
	}
	if len(f.Entries) == 0 {
		return nil, fmt.Errorf("swap file contains no entries")
	}
	return attestation.New(f.Entries[0]), nil
}

func cmdProbe(args []string) {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	swapFile := fs.String("swap-file", "", "path to the .swp file")
	fs.Parse(args)

	logger, _ := log.New(false)
	defer logger.Sync()

	entry, err := loadEntry(*swapFile)
	if err != nil {
		logger.Fatal("failed to load swap file", zap.Error(err))
	}
	passphrase := readPassphrase(logger)

	if err := entry.CanDecryptWith(passphrase); err != nil {
		fmt.Println("passphrase does not decrypt this entry")
		os.Exit(1)
	}
	fmt.Println("passphrase OK")
}

func cmdSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	swapFile := fs.String("swap-file", "", "path to the .swp file")
	recipient := fs.String("recipient", "", "recipient address on the successor chain")
	msgKind := fs.String("message", "assets", "message family: assets|pillar")
	fs.Parse(args)

	logger, _ := log.New(false)
	defer logger.Sync()

	entry, err := loadEntry(*swapFile)
	if err != nil {
		logger.Fatal("failed to load swap file", zap.Error(err))
	}
	passphrase := readPassphrase(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sigB64, err := asyncsign.Run(ctx, func() (string, error) {
		switch *msgKind {
		case "pillar":
			return entry.SignLegacyPillar(passphrase, *recipient)
		default:
			return entry.SignAssets(passphrase, *recipient)
		}
	})
	if err != nil {
		logger.Error("signing failed", zap.Error(err))
		os.Exit(1)
	}

	fmt.Println(sigB64)
	fmt.Println(entry.Record().DerivedPubKeyB64)
}

func cmdDeriveAddress(args []string) {
	fs := flag.NewFlagSet("derive-address", flag.ExitOnError)
	wif := fs.String("wif", "", "WIF-encoded private key")
	fs.Parse(args)

	logger, _ := log.New(false)
	defer logger.Sync()

	priv, err := secp256k1.ParseWIF(*wif)
	if err != nil {
		logger.Fatal("invalid WIF", zap.Error(err))
	}
	defer priv.Zero()

	fmt.Println(deriveAddressString(priv.PublicKey()))
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	wallet := fs.String("wallet", "", "path to the legacy wallet file")
	fs.Parse(args)

	logger, _ := log.New(false)
	defer logger.Sync()

	_ = config.Load("", "", false)

	bridge, err := exportbridge.Locate()
	if err != nil {
		logger.Fatal("export bridge unavailable", zap.Error(err))
	}
	passphrase := readPassphrase(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	status, err := bridge.ExportSwapFile(ctx, *wallet, passphrase)
	if err != nil {
		logger.Error("export failed", zap.Error(err))
		os.Exit(1)
	}
	if status != "" {
		fmt.Fprintln(os.Stderr, status)
		os.Exit(1)
	}
	fmt.Println("export OK")
}

func runDashboard() {
	logger, _ := log.New(true)
	defer logger.Sync()

	command := os.Getenv("ARCSWAPSIGN_COMMAND")
	logger.Info("dashboard mode", zap.String("command", command))

	switch command {
	case "sign":
		dashboardSign(logger)
	case "derive_address":
		dashboardDeriveAddress(logger)
	default:
		cliutil.WriteJSON(cliutil.Failed(fmt.Errorf("unknown or missing ARCSWAPSIGN_COMMAND: %q", command)))
		os.Exit(1)
	}
}

func dashboardSign(logger *zap.Logger) {
	swapFile := os.Getenv("ARCSWAPSIGN_SWAP_FILE")
	passphrase := os.Getenv("ARCSWAPSIGN_PASSPHRASE")
	recipient := os.Getenv("ARCSWAPSIGN_RECIPIENT")
	msgKind := os.Getenv("ARCSWAPSIGN_MESSAGE")

	entry, err := loadEntry(swapFile)
	if err != nil {
		cliutil.WriteJSON(cliutil.Failed(err))
		os.Exit(1)
	}

	var sigB64 string
	if msgKind == "pillar" {
		sigB64, err = entry.SignLegacyPillar(passphrase, recipient)
	} else {
		sigB64, err = entry.SignAssets(passphrase, recipient)
	}
	if err != nil {
		cliutil.WriteJSON(cliutil.Failed(err))
		os.Exit(1)
	}

	cliutil.WriteJSON(cliutil.OK(map[string]string{
		"signature":        sigB64,
		"derivedPubKeyB64": entry.Record().DerivedPubKeyB64,
		"legacyAddress":    entry.Record().LegacyAddress,
	}))
}

func dashboardDeriveAddress(logger *zap.Logger) {
	wif := os.Getenv("ARCSWAPSIGN_WIF")
	priv, err := secp256k1.ParseWIF(wif)
	if err != nil {
		cliutil.WriteJSON(cliutil.Failed(err))
		os.Exit(1)
	}
	defer priv.Zero()

	cliutil.WriteJSON(cliutil.OK(map[string]string{
		"address": deriveAddressString(priv.PublicKey()),
	}))
}
