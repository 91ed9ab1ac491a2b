package zappcrypto

import "io"

// sealConfig holds configuration for envelope sealing.
type sealConfig struct {
	random io.Reader
}

// SealOption configures envelope sealing.
type SealOption func(*sealConfig)

// WithRandom substitutes the random source used for the ephemeral key, IV,
// OAEP padding, and signing. The default is crypto/rand; the reader must be
// cryptographically secure in production. Intended for deterministic tests.
func WithRandom(r io.Reader) SealOption {
	return func(c *sealConfig) {
		c.random = r
	}
}

func newSealConfig(opts []SealOption) *sealConfig {
	cfg := &sealConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
