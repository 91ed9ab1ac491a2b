package zappcrypto

import (
	"crypto/rsa"

	"github.com/zapp-share/crypto-go/internal/crypto"
)

// EnvelopeVersion is the wire-format version this package emits and accepts.
const EnvelopeVersion = crypto.EnvelopeVersion

// Envelope is one sealed message: the RSA-OAEP-wrapped ephemeral key, the
// AES-256-GCM ciphertext (with trailing 16-byte tag), the IV, and the
// sender's signature over ciphertext || iv || wrappedKey. Envelopes are
// immutable once built; consume them exactly once with Open.
type Envelope struct {
	WrappedKey []byte
	Ciphertext []byte
	IV         []byte
	Signature  []byte
	Version    string
}

// Seal builds a sealed, signed envelope carrying plaintext to the recipient.
//
// A fresh ephemeral AES key and IV are generated per call and scrubbed
// before returning, so key/IV pairs never repeat across envelopes. Seal
// holds no shared mutable state and is safe for concurrent use.
func Seal(plaintext []byte, recipient *rsa.PublicKey, sender *KeyPair, opts ...SealOption) (*Envelope, error) {
	cfg := newSealConfig(opts)

	env, err := crypto.Seal(cfg.random, plaintext, recipient, sender.Private)
	if err != nil {
		return nil, wrapError(err)
	}

	return fromInternal(env), nil
}

// Open verifies and opens a sealed envelope, returning the plaintext.
//
// Stages run in a fixed order and any failure is terminal for the envelope:
//
//  1. structural checks, version pin -> FormatError / VersionError
//  2. signature over ciphertext || iv || wrappedKey, checked against the
//     expected sender -> AuthenticityError
//  3. RSA-OAEP unwrap of the ephemeral key -> KeyUnwrapError
//  4. AES-GCM decrypt -> AuthenticationError
//
// The signature check always runs before the unwrap and decrypt stages, so a
// forged or tampered envelope never reaches the RSA or AES primitives. No
// partial plaintext is ever returned.
func Open(env *Envelope, local *KeyPair, sender *rsa.PublicKey) ([]byte, error) {
	if env == nil {
		return nil, &FormatError{Message: "nil envelope"}
	}
	if env.Version != EnvelopeVersion {
		return nil, &VersionError{Version: env.Version}
	}

	plaintext, err := crypto.Open(toInternal(env), local.Private, sender)
	if err != nil {
		return nil, wrapError(err)
	}

	return plaintext, nil
}

// OpenJSON decodes wire-format JSON and opens the resulting envelope. This
// is the receive path for bytes arriving from a paired device.
func OpenJSON(raw []byte, local *KeyPair, sender *rsa.PublicKey) ([]byte, error) {
	env, err := DecodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	return Open(env, local, sender)
}

// EncodeJSON renders the envelope as the wire-format JSON object with
// exactly the fields encryptedAesKey, encryptedContent, iv, signature
// (standard base64) and version. This is the only artifact exchanged
// between devices for content transport.
func (e *Envelope) EncodeJSON() ([]byte, error) {
	raw, err := toInternal(e).EncodeJSON()
	if err != nil {
		return nil, wrapError(err)
	}
	return raw, nil
}

// DecodeEnvelope parses wire-format JSON. The parse is strict: unknown
// fields, missing fields, and invalid base64 are rejected with FormatError;
// an unsupported version is rejected with VersionError before any
// cryptographic processing happens.
func DecodeEnvelope(raw []byte) (*Envelope, error) {
	env, err := crypto.DecodeEnvelope(raw)
	if err != nil {
		return nil, wrapError(err)
	}
	return fromInternal(env), nil
}

func toInternal(e *Envelope) *crypto.Envelope {
	return &crypto.Envelope{
		WrappedKey: e.WrappedKey,
		Ciphertext: e.Ciphertext,
		IV:         e.IV,
		Signature:  e.Signature,
		Version:    e.Version,
	}
}

func fromInternal(e *crypto.Envelope) *Envelope {
	return &Envelope{
		WrappedKey: e.WrappedKey,
		Ciphertext: e.Ciphertext,
		IV:         e.IV,
		Signature:  e.Signature,
		Version:    e.Version,
	}
}
