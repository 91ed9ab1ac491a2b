package zappcrypto

import (
	"crypto/rsa"

	"github.com/zapp-share/crypto-go/internal/crypto"
)

// MarshalPublicKey serializes a public key to its portable string form:
// base64(JSON{modulus, exponent, keyType, version}) with decimal-string
// numeric fields. This is the format peers exchange during pairing and the
// Key Store persists.
func MarshalPublicKey(pub *rsa.PublicKey) (string, error) {
	blob, err := crypto.MarshalPublicKey(pub)
	if err != nil {
		return "", wrapError(err)
	}
	return blob, nil
}

// ParsePublicKey deserializes a public key blob. Blobs whose keyType is not
// "RSA" or whose numeric fields are not decimal integers are rejected with
// a FormatError. ParsePublicKey(MarshalPublicKey(k)) reconstructs k exactly.
func ParsePublicKey(blob string) (*rsa.PublicKey, error) {
	pub, err := crypto.ParsePublicKey(blob)
	if err != nil {
		return nil, wrapError(err)
	}
	return pub, nil
}

// MarshalKeyPair serializes the private half of a key pair:
// base64(JSON{modulus, privateExponent, p, q, keyType, version}). CRT
// parameters are not stored; they are recomputed on load.
func MarshalKeyPair(kp *KeyPair) (string, error) {
	blob, err := crypto.MarshalPrivateKey(kp.Private)
	if err != nil {
		return "", wrapError(err)
	}
	return blob, nil
}

// ParseKeyPair deserializes a private key blob into a KeyPair, validating
// the key's internal consistency (n = p*q, e*d congruent to 1) and restoring
// the fingerprint.
func ParseKeyPair(blob string) (*KeyPair, error) {
	priv, err := crypto.ParsePrivateKey(blob)
	if err != nil {
		return nil, wrapError(err)
	}
	return newKeyPair(priv)
}

// IsPrivateKeyBlob reports whether a serialized key carries private
// material, distinguished by the presence of the privateExponent field.
func IsPrivateKeyBlob(blob string) bool {
	return crypto.IsPrivateKeyBlob(blob)
}
