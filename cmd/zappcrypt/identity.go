package main

import (
	"fmt"

	"github.com/spf13/cobra"
	zappcrypto "github.com/zapp-share/crypto-go"
	"github.com/zapp-share/crypto-go/keystore"
)

var (
	keygenBits  int
	keygenForce bool

	keygenCmd = &cobra.Command{
		Use:   "keygen",
		Short: "Generate the local device identity",
		Long: `Generates the device's RSA key pair and saves it to the keystore.
The resulting fingerprint is what you compare with a peer when pairing.

By default keygen refuses to overwrite an existing identity; pass --force to
replace it. Replacing the identity breaks all existing pairings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			if !keygenForce {
				existing, err := store.LoadKeyPair()
				if err != nil {
					return err
				}
				if existing != nil {
					return fmt.Errorf("identity already exists (fingerprint %s); use --force to replace it", existing.Fingerprint)
				}
			}

			log.Infof("generating %d-bit RSA key pair (%s)", keygenBits, zappcrypto.Ciphersuite)
			kp, err := zappcrypto.GenerateKeyPair(keygenBits)
			if err != nil {
				return err
			}
			if err := store.SaveKeyPair(kp); err != nil {
				return err
			}

			fmt.Println(kp.Fingerprint)
			return nil
		},
	}

	fingerprintPeer string

	fingerprintCmd = &cobra.Command{
		Use:   "fingerprint",
		Short: "Show the local or a peer's fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			if fingerprintPeer != "" {
				peer, err := findPeerByName(store, fingerprintPeer)
				if err != nil {
					return err
				}
				fmt.Println(peer.Fingerprint)
				return nil
			}

			kp, err := store.LoadKeyPair()
			if err != nil {
				return err
			}
			if kp == nil {
				return fmt.Errorf("no identity yet; run 'zappcrypt keygen' first")
			}

			fmt.Println(kp.Fingerprint)
			return nil
		},
	}
)

func init() {
	keygenCmd.Flags().IntVar(&keygenBits, "bits", zappcrypto.DefaultKeyBits, "RSA modulus size in bits")
	keygenCmd.Flags().BoolVar(&keygenForce, "force", false, "replace an existing identity")

	fingerprintCmd.Flags().StringVar(&fingerprintPeer, "peer", "", "show a paired device's fingerprint instead")
}

func openStore() (*keystore.FileStore, error) {
	var opts []keystore.FileStoreOption
	if passphrase != "" {
		opts = append(opts, keystore.WithPassphrase(passphrase))
	}
	return keystore.NewFileStore(storeDir, opts...)
}

func findPeerByName(store keystore.Store, name string) (*keystore.Peer, error) {
	peers, err := store.Peers()
	if err != nil {
		return nil, err
	}

	for i := range peers {
		if peers[i].Name == name || peers[i].Fingerprint == name {
			return &peers[i], nil
		}
	}

	return nil, fmt.Errorf("no paired device named %q", name)
}
