package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// EncryptAESGCM encrypts data using AES-256-GCM.
// Returns: ciphertext || tag (16 bytes). The nonce is NOT prepended; the
// envelope carries it as a separate field.
func EncryptAESGCM(key, nonce, plaintext, aad []byte) ([]byte, error) {
	aesGCM, err := newGCM(key, nonce)
	if err != nil {
		return nil, err
	}

	return aesGCM.Seal(nil, nonce, plaintext, aad), nil
}

// DecryptAESGCM decrypts ciphertext || tag using AES-256-GCM.
// Tag verification is all-or-nothing: on mismatch no plaintext bytes are
// released and ErrDecryptionFailed is returned.
func DecryptAESGCM(key, nonce, ciphertext, aad []byte) ([]byte, error) {
	aesGCM, err := newGCM(key, nonce)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

func newGCM(key, nonce []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}

	if len(nonce) != AESNonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), AESNonceSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}

// Zero overwrites b with zero bytes. Used to scrub ephemeral key material
// once an envelope has been sealed or opened.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
