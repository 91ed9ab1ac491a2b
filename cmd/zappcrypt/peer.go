package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	zappcrypto "github.com/zapp-share/crypto-go"
	"github.com/zapp-share/crypto-go/keystore"
)

var (
	peerCmd = &cobra.Command{
		Use:   "peer",
		Short: "Manage paired devices",
		Long: `Manage the public keys of paired devices.

Examples:
  # Register a peer from its serialized public key
  zappcrypt peer add laptop laptop.zpub

  # List all paired devices
  zappcrypt peer list

  # Remove a peer by fingerprint
  zappcrypt peer remove AB:CD:...`,
	}

	peerAddCmd = &cobra.Command{
		Use:   "add NAME KEYFILE",
		Short: "Register a paired device's public key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, keyFile := args[0], args[1]

			data, err := os.ReadFile(keyFile)
			if err != nil {
				return err
			}

			blob := strings.TrimSpace(string(data))
			if zappcrypto.IsPrivateKeyBlob(blob) {
				return fmt.Errorf("%s contains a private key; peers are registered by public key only", keyFile)
			}

			pub, err := zappcrypto.ParsePublicKey(blob)
			if err != nil {
				return err
			}

			fp, err := zappcrypto.Fingerprint(pub)
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			if err := store.SavePeer(keystore.Peer{Fingerprint: fp, Name: name, PublicKey: pub}); err != nil {
				return err
			}

			log.Infof("registered %s", name)
			fmt.Println(fp)
			return nil
		},
	}

	peerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List all paired devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			peers, err := store.Peers()
			if err != nil {
				return err
			}
			if len(peers) == 0 {
				log.Warnf("no paired devices")
				return nil
			}

			for _, p := range peers {
				fmt.Printf("%s  %s\n", p.Fingerprint, p.Name)
			}
			return nil
		},
	}

	peerRemoveCmd = &cobra.Command{
		Use:   "remove FINGERPRINT",
		Short: "Remove a paired device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			return store.RemovePeer(args[0])
		},
	}
)

func init() {
	peerCmd.AddCommand(peerAddCmd)
	peerCmd.AddCommand(peerListCmd)
	peerCmd.AddCommand(peerRemoveCmd)
}
