package keystore

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	sealVersion  = 1
	sealSaltSize = 16
	sealPrefix   = "ZAPPKS1\n"

	argonTime     = 2
	argonMemoryKB = 64 * 1024
	argonThreads  = 1
)

var (
	// ErrSealAuthFailed is returned when the passphrase is wrong or the
	// sealed blob has been tampered with.
	ErrSealAuthFailed = errors.New("keystore seal authentication failed")

	// ErrSealInvalid is returned when a sealed blob is structurally invalid.
	ErrSealInvalid = errors.New("keystore seal envelope is invalid")
)

// sealEnvelope is the at-rest format wrapped around the identity blob when a
// passphrase is configured. The KDF parameters are stored alongside the salt
// so they can be raised later without breaking existing files.
type sealEnvelope struct {
	Version     uint32 `json:"version"`
	KDF         string `json:"kdf"`
	KDFTime     uint32 `json:"kdf_time"`
	KDFMemoryKB uint32 `json:"kdf_memory_kb"`
	KDFThreads  uint8  `json:"kdf_threads"`
	Salt        []byte `json:"salt"`
	Nonce       []byte `json:"nonce"`
	Ciphertext  []byte `json:"ciphertext"`
}

func isSealed(data []byte) bool {
	return bytes.HasPrefix(data, []byte(sealPrefix))
}

func seal(passphrase string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, sealSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	key := deriveSealKey(passphrase, salt, argonTime, argonMemoryKB, argonThreads)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	env := sealEnvelope{
		Version:     sealVersion,
		KDF:         "argon2id",
		KDFTime:     argonTime,
		KDFMemoryKB: argonMemoryKB,
		KDFThreads:  argonThreads,
		Salt:        salt,
		Nonce:       nonce,
		Ciphertext:  aead.Seal(nil, nonce, plaintext, nil),
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}

	return append([]byte(sealPrefix), raw...), nil
}

func open(passphrase string, data []byte) ([]byte, error) {
	if !isSealed(data) {
		return nil, ErrSealInvalid
	}

	var env sealEnvelope
	if err := json.Unmarshal(data[len(sealPrefix):], &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSealInvalid, err)
	}
	if env.Version != sealVersion || env.KDF != "argon2id" {
		return nil, ErrSealInvalid
	}
	if len(env.Salt) != sealSaltSize || len(env.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, ErrSealInvalid
	}

	key := deriveSealKey(passphrase, env.Salt, env.KDFTime, env.KDFMemoryKB, env.KDFThreads)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return nil, ErrSealAuthFailed
	}

	return plaintext, nil
}

func deriveSealKey(passphrase string, salt []byte, time, memoryKB uint32, threads uint8) []byte {
	return argon2.IDKey([]byte(passphrase), salt, time, memoryKB, threads, chacha20poly1305.KeySize)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
