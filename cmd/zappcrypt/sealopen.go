package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	zappcrypto "github.com/zapp-share/crypto-go"
)

var (
	sealTo  string
	sealIn  string
	sealOut string

	sealCmd = &cobra.Command{
		Use:   "seal",
		Short: "Encrypt and sign content for a paired device",
		Long: `Seals content into an envelope for a paired device: the content is
encrypted under a fresh AES-256-GCM key, the key is RSA-OAEP-wrapped to the
recipient, and the result is signed with the local identity.

Reads from stdin and writes to stdout unless --in/--out are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			kp, err := store.LoadKeyPair()
			if err != nil {
				return err
			}
			if kp == nil {
				return fmt.Errorf("no identity yet; run 'zappcrypt keygen' first")
			}

			recipient, err := findPeerByName(store, sealTo)
			if err != nil {
				return err
			}

			plaintext, err := readInput(sealIn)
			if err != nil {
				return err
			}

			env, err := zappcrypto.Seal(plaintext, recipient.PublicKey, kp)
			if err != nil {
				return err
			}

			wire, err := env.EncodeJSON()
			if err != nil {
				return err
			}

			log.Infof("sealed %d bytes for %s", len(plaintext), recipient.Name)
			return writeOutput(sealOut, append(wire, '\n'))
		},
	}

	openFrom string
	openIn   string
	openOut  string

	openCmd = &cobra.Command{
		Use:   "open",
		Short: "Verify and decrypt an envelope from a paired device",
		Long: `Opens an envelope: verifies the sender's signature, unwraps the
ephemeral key with the local identity, and decrypts the content. A failed
signature check aborts before any decryption happens.

Reads from stdin and writes to stdout unless --in/--out are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			kp, err := store.LoadKeyPair()
			if err != nil {
				return err
			}
			if kp == nil {
				return fmt.Errorf("no identity yet; run 'zappcrypt keygen' first")
			}

			sender, err := findPeerByName(store, openFrom)
			if err != nil {
				return err
			}

			wire, err := readInput(openIn)
			if err != nil {
				return err
			}

			plaintext, err := zappcrypto.OpenJSON(wire, kp, sender.PublicKey)
			if err != nil {
				return err
			}

			log.Infof("opened %d bytes from %s", len(plaintext), sender.Name)
			return writeOutput(openOut, plaintext)
		},
	}
)

func init() {
	sealCmd.Flags().StringVar(&sealTo, "to", "", "recipient peer name or fingerprint")
	sealCmd.Flags().StringVar(&sealIn, "in", "", "input file (default stdin)")
	sealCmd.Flags().StringVar(&sealOut, "out", "", "output file (default stdout)")
	_ = sealCmd.MarkFlagRequired("to")

	openCmd.Flags().StringVar(&openFrom, "from", "", "expected sender peer name or fingerprint")
	openCmd.Flags().StringVar(&openIn, "in", "", "input file (default stdin)")
	openCmd.Flags().StringVar(&openOut, "out", "", "output file (default stdout)")
	_ = openCmd.MarkFlagRequired("from")
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
