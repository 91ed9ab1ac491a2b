package zappcrypto

import (
	"crypto/rsa"

	"github.com/zapp-share/crypto-go/internal/crypto"
)

const (
	// DefaultKeyBits is the RSA modulus size used for device identities.
	DefaultKeyBits = crypto.DefaultRSABits

	// PublicExponent is the fixed RSA public exponent for all device keys.
	PublicExponent = crypto.PublicExponent

	// Ciphersuite names the fixed algorithm suite. There is no negotiation;
	// every envelope and key this package produces uses exactly this suite.
	Ciphersuite = crypto.AlgsCiphersuite
)

// KeyPair is a device's RSA identity: the private key plus the fingerprint
// derived from its public half. A device generates exactly one pair at setup;
// the private half never leaves the local Key Store.
type KeyPair struct {
	// Private is the RSA private key (the public key is embedded).
	Private *rsa.PrivateKey
	// Fingerprint is the device identity string derived from the public key.
	Fingerprint string
}

// Public returns the public half of the key pair.
func (kp *KeyPair) Public() *rsa.PublicKey {
	return &kp.Private.PublicKey
}

// GenerateKeyPair creates a new RSA key pair with public exponent 65537.
// Randomness is drawn from crypto/rand. bits must be at least
// DefaultKeyBits; pass DefaultKeyBits unless a policy demands larger keys.
//
// Generation is CPU-bound and can take a noticeable fraction of a second;
// run it off any latency-sensitive path. The call is safe for concurrent
// use.
func GenerateKeyPair(bits int) (*KeyPair, error) {
	priv, err := crypto.GenerateRSAKeyPair(bits)
	if err != nil {
		return nil, wrapError(err)
	}

	return newKeyPair(priv)
}

func newKeyPair(priv *rsa.PrivateKey) (*KeyPair, error) {
	fp, err := crypto.Fingerprint(&priv.PublicKey)
	if err != nil {
		return nil, wrapError(err)
	}

	return &KeyPair{Private: priv, Fingerprint: fp}, nil
}
