package crypto

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"io"
)

// randReader is the random source used for key generation and OAEP padding.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func reader() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// GenerateRSAKeyPair creates a new RSA key pair with the fixed public
// exponent 65537. bits must be at least MinRSABits.
func GenerateRSAKeyPair(bits int) (*rsa.PrivateKey, error) {
	if bits < MinRSABits {
		return nil, fmt.Errorf("%w: got %d, want >= %d", ErrInvalidKeyBits, bits, MinRSABits)
	}

	priv, err := rsa.GenerateKey(reader(), bits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGenerationFailed, err)
	}

	return priv, nil
}

// WrapKey encrypts an ephemeral symmetric key to the recipient using
// RSA-OAEP with SHA-256. Only the key is ever wrapped, never content.
func WrapKey(rng io.Reader, recipient *rsa.PublicKey, key []byte) ([]byte, error) {
	if rng == nil {
		rng = reader()
	}

	wrapped, err := rsa.EncryptOAEP(sha256.New(), rng, recipient, key, nil)
	if err != nil {
		return nil, fmt.Errorf("wrap ephemeral key: %w", err)
	}

	return wrapped, nil
}

// UnwrapKey recovers an ephemeral symmetric key with the local private key.
// OAEP gives no detail on why padding failed; any failure maps to
// ErrKeyUnwrapFailed.
func UnwrapKey(local *rsa.PrivateKey, wrapped []byte) ([]byte, error) {
	key, err := rsa.DecryptOAEP(sha256.New(), nil, local, wrapped, nil)
	if err != nil {
		return nil, ErrKeyUnwrapFailed
	}

	return key, nil
}

// SignEnvelope signs the transcript ciphertext || iv || wrappedKey with
// SHA-256 and RSA PKCS#1 v1.5. Signing the already-encrypted artifacts binds
// sender authenticity to the exact bytes that go on the wire.
func SignEnvelope(rng io.Reader, sender *rsa.PrivateKey, ciphertext, iv, wrappedKey []byte) ([]byte, error) {
	if rng == nil {
		rng = reader()
	}

	digest := sha256.Sum256(signingInput(ciphertext, iv, wrappedKey))

	sig, err := rsa.SignPKCS1v15(rng, sender, crypto.SHA256, digest[:])
	if err != nil {
		return nil, fmt.Errorf("sign envelope: %w", err)
	}

	return sig, nil
}

// VerifyEnvelope verifies the envelope signature against the expected
// sender's public key. The transcript is rebuilt in the exact byte order the
// sender used: ciphertext || iv || wrappedKey.
func VerifyEnvelope(sender *rsa.PublicKey, ciphertext, iv, wrappedKey, sig []byte) error {
	digest := sha256.Sum256(signingInput(ciphertext, iv, wrappedKey))

	if err := rsa.VerifyPKCS1v15(sender, crypto.SHA256, digest[:], sig); err != nil {
		return ErrSignatureVerificationFailed
	}

	return nil
}

func signingInput(ciphertext, iv, wrappedKey []byte) []byte {
	input := make([]byte, 0, len(ciphertext)+len(iv)+len(wrappedKey))
	input = append(input, ciphertext...)
	input = append(input, iv...)
	input = append(input, wrappedKey...)
	return input
}
