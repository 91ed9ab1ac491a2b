package crypto

import (
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"strings"
)

// Fingerprint derives the device identity string for a public key:
// SHA-256 over the serialized key, upper-case hex, a colon every two
// characters. Identical keys always produce identical fingerprints.
func Fingerprint(pub *rsa.PublicKey) (string, error) {
	blob, err := MarshalPublicKey(pub)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256([]byte(blob))

	var b strings.Builder
	b.Grow(len(sum)*3 - 1)
	for i, octet := range sum {
		if i > 0 {
			b.WriteByte(':')
		}
		fmt.Fprintf(&b, "%02X", octet)
	}

	return b.String(), nil
}
