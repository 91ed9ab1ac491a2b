// Package crypto provides the cryptographic primitives for the Zapp content
// transport. It implements hybrid public-key envelopes combining RSA key
// wrapping, authenticated symmetric encryption, and digital signatures.
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - RSA-2048 (public exponent 65537): device identity key pairs used for
//     key wrapping and signing.
//
//   - RSA-OAEP with SHA-256: wraps the ephemeral AES key to the recipient.
//     Only the key is wrapped; content never touches RSA directly.
//
//   - RSA PKCS#1 v1.5 with SHA-256: signs the transcript
//     ciphertext || iv || wrappedKey, binding the sender's identity to the
//     exact bytes transmitted.
//
//   - AES-256-GCM: authenticated encryption of the content with a 128-bit
//     tag. Provides confidentiality and integrity in one pass.
//
// # Security Model
//
// The envelope scheme provides:
//
//   - Confidentiality: only the holder of the recipient's private key can
//     recover the ephemeral key and therefore the content.
//   - Authenticity: the signature proves the envelope came from the paired
//     sender device.
//   - Integrity: flipping any bit of the ciphertext, IV, wrapped key, or
//     signature causes Open to fail without releasing plaintext.
//
// It does NOT provide forward secrecy, key rotation, or multi-recipient
// delivery.
//
// # Critical Security Notes
//
// Signature verification MUST run before the OAEP unwrap and the GCM
// decrypt. [Open] enforces this ordering internally; code that composes the
// primitives directly must preserve it, or unauthenticated input becomes a
// padding/tag oracle.
//
// Ephemeral key/IV pairs MUST be unique per envelope. [Seal] draws fresh
// material from a CSPRNG on every call and scrubs it before returning; the
// material is never persisted or reused.
//
// # Key Serialization
//
// Keys serialize to base64(JSON) with decimal-string numeric fields. Public
// blobs carry (modulus, exponent); private blobs carry
// (modulus, privateExponent, p, q). CRT parameters are not stored;
// [ParsePrivateKey] recomputes them on load.
package crypto
