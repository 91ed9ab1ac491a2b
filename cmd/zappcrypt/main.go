package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	storeDir   string
	passphrase string
	log        Logger

	rootCmd = &cobra.Command{
		Use:   "zappcrypt",
		Short: "zappcrypt - seal and open encrypted envelopes between paired devices.",
		Long: `zappcrypt manages a local device identity and the public keys of paired
devices, and seals/opens the hybrid encrypted envelopes Zapp devices exchange.

Available Commands:
  keygen       Generate the local device identity
  fingerprint  Show the local or a peer's fingerprint
  peer         Manage paired devices
  seal         Encrypt and sign content for a paired device
  open         Verify and decrypt an envelope from a paired device

Environment (also read from .env):
  ZAPPCRYPT_HOME        keystore directory (default ~/.zappcrypt)
  ZAPPCRYPT_PASSPHRASE  passphrase sealing the stored identity
`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = Logger{Verbose: verbose}
		},
	}
)

func init() {
	// .env is optional; real env vars win over it.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&storeDir, "keystore", defaultStoreDir(), "keystore directory")
	rootCmd.PersistentFlags().StringVar(&passphrase, "passphrase", os.Getenv("ZAPPCRYPT_PASSPHRASE"), "identity passphrase")

	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(fingerprintCmd)
	rootCmd.AddCommand(peerCmd)
	rootCmd.AddCommand(sealCmd)
	rootCmd.AddCommand(openCmd)
}

func defaultStoreDir() string {
	if dir := os.Getenv("ZAPPCRYPT_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zappcrypt"
	}
	return filepath.Join(home, ".zappcrypt")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
