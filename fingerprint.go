package zappcrypto

import (
	"crypto/rsa"

	"github.com/zapp-share/crypto-go/internal/crypto"
)

// Fingerprint derives the stable identity string for a public key: the
// SHA-256 digest of the serialized key, rendered as upper-case hex with a
// colon every two characters. Identical keys always yield the same
// fingerprint; collision resistance is inherited from SHA-256.
//
// Fingerprints are what users compare when pairing devices and what the Key
// Store indexes peers by.
func Fingerprint(pub *rsa.PublicKey) (string, error) {
	fp, err := crypto.Fingerprint(pub)
	if err != nil {
		return "", wrapError(err)
	}
	return fp, nil
}
