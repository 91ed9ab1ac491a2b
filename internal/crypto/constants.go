package crypto

const (
	// DefaultRSABits is the default RSA modulus size in bits.
	DefaultRSABits = 2048
	// MinRSABits is the smallest modulus size accepted for key generation.
	MinRSABits = 2048
	// PublicExponent is the fixed RSA public exponent.
	PublicExponent = 65537

	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce/IV in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16

	// EnvelopeVersion is the wire-format version emitted and accepted
	// for sealed envelopes.
	EnvelopeVersion = "1.0"

	// KeyFormatVersion is the version recorded in serialized key blobs.
	KeyFormatVersion = "1.0"
	// KeyTypeRSA is the only key type the codec accepts.
	KeyTypeRSA = "RSA"

	// AlgsCiphersuite is the canonical string naming the fixed algorithm
	// suite: key generation, key wrap, signature, content cipher.
	AlgsCiphersuite = "RSA-2048:RSA-OAEP-SHA-256:RSA-SHA-256:AES-256-GCM"
)
