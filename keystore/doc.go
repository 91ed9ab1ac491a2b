// Package keystore defines the Key Store collaborator contract for
// zappcrypto and provides a file-backed reference implementation.
//
// A store owns the local device's key pair and the public keys of paired
// peers, indexed by fingerprint. The core envelope scheme only requires the
// operations in [Store]; any persistence mechanism can satisfy them.
//
// [FileStore] keeps the identity as a serialized key blob and peers in a
// JSON registry under a single directory. With [WithPassphrase] the identity
// blob is additionally sealed at rest using argon2id key derivation and
// XChaCha20-Poly1305.
package keystore
