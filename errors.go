package zappcrypto

import (
	"errors"
	"fmt"

	"github.com/zapp-share/crypto-go/internal/crypto"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrKeyGeneration is returned when RSA key generation cannot complete.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrFormat is returned when a serialized key or envelope is malformed.
	ErrFormat = errors.New("malformed key or envelope")

	// ErrVersion is returned when an envelope declares an unsupported version.
	ErrVersion = errors.New("unsupported envelope version")

	// ErrAuthenticity is returned when the envelope signature does not verify
	// against the expected sender. The envelope must be discarded.
	ErrAuthenticity = errors.New("signature verification failed")

	// ErrKeyUnwrap is returned when RSA-OAEP unwrap of the ephemeral key fails.
	ErrKeyUnwrap = errors.New("ephemeral key unwrap failed")

	// ErrAuthentication is returned when the AES-GCM tag does not verify.
	ErrAuthentication = errors.New("content authentication failed")
)

// ZappError is implemented by all errors this package returns. All of them
// are terminal for the operation in progress; none are retried.
type ZappError interface {
	error
	ZappError() // marker method
}

// KeyGenerationError reports a failure to generate a key pair.
type KeyGenerationError struct {
	Err error
}

func (e *KeyGenerationError) Error() string {
	return fmt.Sprintf("key generation failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *KeyGenerationError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *KeyGenerationError) Is(target error) bool { return target == ErrKeyGeneration }

// ZappError implements the ZappError interface.
func (e *KeyGenerationError) ZappError() {}

// FormatError reports a malformed serialized key or envelope: bad base64,
// bad JSON, unknown or missing fields, or non-numeric key material.
type FormatError struct {
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("format error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("format error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// ZappError implements the ZappError interface.
func (e *FormatError) ZappError() {}

// VersionError reports an envelope whose version field is not supported.
type VersionError struct {
	Version string
}

func (e *VersionError) Error() string {
	if e.Version == "" {
		return fmt.Sprintf("unsupported envelope version (want %q)", EnvelopeVersion)
	}
	return fmt.Sprintf("unsupported envelope version %q (want %q)", e.Version, EnvelopeVersion)
}

// Is implements errors.Is for sentinel error matching.
func (e *VersionError) Is(target error) bool { return target == ErrVersion }

// ZappError implements the ZappError interface.
func (e *VersionError) ZappError() {}

// AuthenticityError indicates the envelope signature failed to verify:
// either tampering or a sender other than the expected one. Processing stops
// before the wrapped key or ciphertext is touched.
type AuthenticityError struct{}

func (e *AuthenticityError) Error() string {
	return "envelope signature verification failed"
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthenticityError) Is(target error) bool { return target == ErrAuthenticity }

// ZappError implements the ZappError interface.
func (e *AuthenticityError) ZappError() {}

// KeyUnwrapError indicates the RSA-OAEP unwrap of the ephemeral key failed,
// typically because the envelope was wrapped for a different key pair.
type KeyUnwrapError struct{}

func (e *KeyUnwrapError) Error() string {
	return "ephemeral key unwrap failed"
}

// Is implements errors.Is for sentinel error matching.
func (e *KeyUnwrapError) Is(target error) bool { return target == ErrKeyUnwrap }

// ZappError implements the ZappError interface.
func (e *KeyUnwrapError) ZappError() {}

// AuthenticationError indicates the AES-GCM authentication tag did not
// verify. No plaintext bytes are released.
type AuthenticationError struct{}

func (e *AuthenticationError) Error() string {
	return "content authentication failed"
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthenticationError) Is(target error) bool { return target == ErrAuthentication }

// ZappError implements the ZappError interface.
func (e *AuthenticationError) ZappError() {}

// wrapError converts internal crypto errors to the public taxonomy.
// This ensures errors.Is() checks work with the public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, crypto.ErrKeyGenerationFailed), errors.Is(err, crypto.ErrInvalidKeyBits):
		return &KeyGenerationError{Err: err}
	case errors.Is(err, crypto.ErrUnsupportedVersion):
		return &VersionError{}
	case errors.Is(err, crypto.ErrSignatureVerificationFailed):
		return &AuthenticityError{}
	case errors.Is(err, crypto.ErrKeyUnwrapFailed):
		return &KeyUnwrapError{}
	case errors.Is(err, crypto.ErrDecryptionFailed):
		return &AuthenticationError{}
	case errors.Is(err, crypto.ErrMalformedEnvelope),
		errors.Is(err, crypto.ErrMalformedKeyBlob),
		errors.Is(err, crypto.ErrUnsupportedKeyType):
		return &FormatError{Message: err.Error()}
	}

	return err
}
