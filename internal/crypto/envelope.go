package crypto

import (
	"bytes"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Envelope is the decoded form of one sealed message: the RSA-wrapped
// ephemeral key, the AES-GCM ciphertext (with trailing tag), the IV, and the
// sender's signature over ciphertext || iv || wrappedKey. An envelope is
// immutable once built and is consumed exactly once by Open.
type Envelope struct {
	WrappedKey []byte
	Ciphertext []byte
	IV         []byte
	Signature  []byte
	Version    string
}

// wireEnvelope is the exact JSON object exchanged between devices. Field
// names are load-bearing; both sides reject anything outside this set.
type wireEnvelope struct {
	EncryptedAESKey  string `json:"encryptedAesKey"`
	EncryptedContent string `json:"encryptedContent"`
	IV               string `json:"iv"`
	Signature        string `json:"signature"`
	Version          string `json:"version"`
}

// Seal builds a sealed envelope for the recipient, signed by the sender.
//
// A fresh 32-byte key and 12-byte IV are drawn from rng for every call and
// scrubbed before returning; the key/IV pair is never reused, which is the
// invariant GCM's security rests on. rng may be nil to use the package
// default (crypto/rand).
func Seal(rng io.Reader, plaintext []byte, recipient *rsa.PublicKey, sender *rsa.PrivateKey) (*Envelope, error) {
	if rng == nil {
		rng = reader()
	}

	key := make([]byte, AESKeySize)
	if _, err := io.ReadFull(rng, key); err != nil {
		return nil, fmt.Errorf("%w: ephemeral key: %v", ErrKeyGenerationFailed, err)
	}
	defer Zero(key)

	iv := make([]byte, AESNonceSize)
	if _, err := io.ReadFull(rng, iv); err != nil {
		return nil, fmt.Errorf("%w: iv: %v", ErrKeyGenerationFailed, err)
	}

	ciphertext, err := EncryptAESGCM(key, iv, plaintext, nil)
	if err != nil {
		return nil, err
	}

	wrappedKey, err := WrapKey(rng, recipient, key)
	if err != nil {
		return nil, err
	}

	signature, err := SignEnvelope(rng, sender, ciphertext, iv, wrappedKey)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		WrappedKey: wrappedKey,
		Ciphertext: ciphertext,
		IV:         iv,
		Signature:  signature,
		Version:    EnvelopeVersion,
	}, nil
}

// Open verifies and opens a sealed envelope. The stages run in a fixed
// order and any failure is terminal:
//
//	parsed -> signature verified -> key unwrapped -> decrypted
//
// The signature check runs strictly before the OAEP unwrap and the GCM
// decrypt so that unauthenticated input never reaches either primitive;
// a padding or tag oracle against attacker-controlled bytes is otherwise
// possible. No partial plaintext is released on any failure path.
func Open(env *Envelope, local *rsa.PrivateKey, sender *rsa.PublicKey) ([]byte, error) {
	if env == nil {
		return nil, fmt.Errorf("%w: nil envelope", ErrMalformedEnvelope)
	}
	if env.Version != EnvelopeVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, env.Version)
	}

	if err := VerifyEnvelope(sender, env.Ciphertext, env.IV, env.WrappedKey, env.Signature); err != nil {
		return nil, err
	}

	key, err := UnwrapKey(local, env.WrappedKey)
	if err != nil {
		return nil, err
	}
	defer Zero(key)

	return DecryptAESGCM(key, env.IV, env.Ciphertext, nil)
}

// EncodeJSON renders the envelope in the wire format: a JSON object with
// exactly encryptedAesKey, encryptedContent, iv, signature (standard base64)
// and version.
func (e *Envelope) EncodeJSON() ([]byte, error) {
	if len(e.WrappedKey) == 0 || len(e.Ciphertext) == 0 || len(e.IV) == 0 || len(e.Signature) == 0 {
		return nil, fmt.Errorf("%w: empty field", ErrMalformedEnvelope)
	}

	return json.Marshal(wireEnvelope{
		EncryptedAESKey:  ToBase64(e.WrappedKey),
		EncryptedContent: ToBase64(e.Ciphertext),
		IV:               ToBase64(e.IV),
		Signature:        ToBase64(e.Signature),
		Version:          e.Version,
	})
}

// DecodeEnvelope parses wire-format JSON into an Envelope. The parse is
// strict: unknown fields, missing fields, trailing data and invalid base64
// all reject with ErrMalformedEnvelope; a well-formed envelope with an
// unrecognized version rejects with ErrUnsupportedVersion before any
// cryptographic processing.
func DecodeEnvelope(raw []byte) (*Envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var w wireEnvelope
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedEnvelope)
	}

	for field, value := range map[string]string{
		"encryptedAesKey":  w.EncryptedAESKey,
		"encryptedContent": w.EncryptedContent,
		"iv":               w.IV,
		"signature":        w.Signature,
		"version":          w.Version,
	} {
		if value == "" {
			return nil, fmt.Errorf("%w: missing field %q", ErrMalformedEnvelope, field)
		}
	}

	if w.Version != EnvelopeVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, w.Version)
	}

	env := &Envelope{Version: w.Version}
	var err error
	if env.WrappedKey, err = FromBase64(w.EncryptedAESKey); err != nil {
		return nil, fmt.Errorf("%w: decode encryptedAesKey: %v", ErrMalformedEnvelope, err)
	}
	if env.Ciphertext, err = FromBase64(w.EncryptedContent); err != nil {
		return nil, fmt.Errorf("%w: decode encryptedContent: %v", ErrMalformedEnvelope, err)
	}
	if env.IV, err = FromBase64(w.IV); err != nil {
		return nil, fmt.Errorf("%w: decode iv: %v", ErrMalformedEnvelope, err)
	}
	if env.Signature, err = FromBase64(w.Signature); err != nil {
		return nil, fmt.Errorf("%w: decode signature: %v", ErrMalformedEnvelope, err)
	}

	return env, nil
}
