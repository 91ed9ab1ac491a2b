package crypto

import "errors"

var (
	// ErrKeyGenerationFailed is returned when RSA key generation cannot complete.
	ErrKeyGenerationFailed = errors.New("key generation failed")

	// ErrInvalidKeyBits is returned when a requested modulus size is below the minimum.
	ErrInvalidKeyBits = errors.New("invalid key size in bits")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce/IV size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrSignatureVerificationFailed is returned when the envelope signature
	// does not verify against the expected sender's public key.
	ErrSignatureVerificationFailed = errors.New("signature verification failed")

	// ErrKeyUnwrapFailed is returned when RSA-OAEP unwrap of the ephemeral
	// key fails (wrong private key or corrupted wrapped key).
	ErrKeyUnwrapFailed = errors.New("ephemeral key unwrap failed")

	// ErrDecryptionFailed is returned when the AES-GCM authentication tag
	// does not verify. No plaintext is released.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrMalformedEnvelope is returned when the envelope structure is invalid.
	// This includes malformed JSON, unknown or missing fields, and invalid
	// base64 encoding.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrUnsupportedVersion is returned when the envelope version is not "1.0".
	ErrUnsupportedVersion = errors.New("unsupported envelope version")

	// ErrMalformedKeyBlob is returned when a serialized key cannot be decoded.
	ErrMalformedKeyBlob = errors.New("malformed key blob")

	// ErrUnsupportedKeyType is returned when a serialized key declares a
	// keyType other than "RSA".
	ErrUnsupportedKeyType = errors.New("unsupported key type")
)
