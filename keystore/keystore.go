package keystore

import (
	"crypto/rsa"

	zappcrypto "github.com/zapp-share/crypto-go"
)

// Peer is a paired remote device: its display name and public key, indexed
// by the key's fingerprint.
type Peer struct {
	// Fingerprint is the identity string of the peer's public key.
	Fingerprint string
	// Name is the user-facing display name chosen at pairing time.
	Name string
	// PublicKey is the peer's RSA public key.
	PublicKey *rsa.PublicKey
}

// Store is the Key Store collaborator contract. It persists the local key
// pair and the public keys of paired peers; the envelope core requires
// nothing else from persistence.
//
// A missing key pair or an unknown peer is an expected condition, not an
// error: LoadKeyPair returns (nil, nil) on first run and Peer returns
// (nil, nil) for unknown fingerprints.
type Store interface {
	// SaveKeyPair persists the local device identity.
	SaveKeyPair(kp *zappcrypto.KeyPair) error

	// LoadKeyPair returns the local device identity, or (nil, nil) if none
	// has been saved yet.
	LoadKeyPair() (*zappcrypto.KeyPair, error)

	// SavePeer persists a paired device's public key under its fingerprint.
	// Saving an existing fingerprint overwrites the record.
	SavePeer(p Peer) error

	// Peer returns the paired device with the given fingerprint, or
	// (nil, nil) if no such peer is known.
	Peer(fingerprint string) (*Peer, error)

	// Peers returns all paired devices.
	Peers() ([]Peer, error)

	// RemovePeer deletes the peer with the given fingerprint. Removing an
	// unknown fingerprint is a no-op.
	RemovePeer(fingerprint string) error
}

// LoadOrCreate returns the store's key pair, generating and saving a fresh
// one on first run. The second return value reports whether a new identity
// was created.
func LoadOrCreate(s Store, bits int) (*zappcrypto.KeyPair, bool, error) {
	kp, err := s.LoadKeyPair()
	if err != nil {
		return nil, false, err
	}
	if kp != nil {
		return kp, false, nil
	}

	kp, err = zappcrypto.GenerateKeyPair(bits)
	if err != nil {
		return nil, false, err
	}

	if err := s.SaveKeyPair(kp); err != nil {
		return nil, false, err
	}

	return kp, true, nil
}
