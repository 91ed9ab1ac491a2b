package crypto

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"math/big"
)

// publicKeyBlob is the JSON surface of a serialized public key. All numeric
// fields are decimal strings so the format survives JSON number precision
// limits on any platform.
type publicKeyBlob struct {
	Modulus  string `json:"modulus"`
	Exponent string `json:"exponent"`
	KeyType  string `json:"keyType"`
	Version  string `json:"version"`
}

// privateKeyBlob is the JSON surface of a serialized private key. CRT
// parameters are intentionally absent; they are recomputed on load.
type privateKeyBlob struct {
	Modulus         string `json:"modulus"`
	PrivateExponent string `json:"privateExponent"`
	P               string `json:"p"`
	Q               string `json:"q"`
	KeyType         string `json:"keyType"`
	Version         string `json:"version"`
}

// MarshalPublicKey serializes a public key to base64(JSON).
func MarshalPublicKey(pub *rsa.PublicKey) (string, error) {
	if pub == nil || pub.N == nil {
		return "", fmt.Errorf("%w: nil public key", ErrMalformedKeyBlob)
	}

	raw, err := json.Marshal(publicKeyBlob{
		Modulus:  pub.N.String(),
		Exponent: fmt.Sprintf("%d", pub.E),
		KeyType:  KeyTypeRSA,
		Version:  KeyFormatVersion,
	})
	if err != nil {
		return "", err
	}

	return ToBase64(raw), nil
}

// MarshalPrivateKey serializes a private key to base64(JSON). The format
// stores (n, d, p, q); the public exponent is fixed at 65537 and keys with
// any other exponent are not representable.
func MarshalPrivateKey(priv *rsa.PrivateKey) (string, error) {
	if priv == nil || priv.N == nil || priv.D == nil {
		return "", fmt.Errorf("%w: nil private key", ErrMalformedKeyBlob)
	}
	if len(priv.Primes) != 2 {
		return "", fmt.Errorf("%w: want exactly 2 primes, got %d", ErrMalformedKeyBlob, len(priv.Primes))
	}
	if priv.E != PublicExponent {
		return "", fmt.Errorf("%w: public exponent %d is not representable", ErrUnsupportedKeyType, priv.E)
	}

	raw, err := json.Marshal(privateKeyBlob{
		Modulus:         priv.N.String(),
		PrivateExponent: priv.D.String(),
		P:               priv.Primes[0].String(),
		Q:               priv.Primes[1].String(),
		KeyType:         KeyTypeRSA,
		Version:         KeyFormatVersion,
	})
	if err != nil {
		return "", err
	}

	return ToBase64(raw), nil
}

// ParsePublicKey deserializes a public key produced by MarshalPublicKey.
// ParsePublicKey(MarshalPublicKey(k)) is numerically identical to k.
func ParsePublicKey(blob string) (*rsa.PublicKey, error) {
	var b publicKeyBlob
	if err := decodeKeyBlob(blob, &b); err != nil {
		return nil, err
	}
	if err := checkKeyType(b.KeyType); err != nil {
		return nil, err
	}

	n, err := parseDecimal("modulus", b.Modulus)
	if err != nil {
		return nil, err
	}

	e, err := parseDecimal("exponent", b.Exponent)
	if err != nil {
		return nil, err
	}
	if !e.IsInt64() || e.Int64() > 1<<31-1 {
		return nil, fmt.Errorf("%w: exponent out of range", ErrMalformedKeyBlob)
	}

	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

// ParsePrivateKey deserializes a private key produced by MarshalPrivateKey.
// The key is validated (n = p*q, e*d = 1 mod lambda(n)) and CRT values are
// precomputed so OAEP unwrap and signing run at full speed. The serialized
// format is unchanged by the precomputation.
func ParsePrivateKey(blob string) (*rsa.PrivateKey, error) {
	var b privateKeyBlob
	if err := decodeKeyBlob(blob, &b); err != nil {
		return nil, err
	}
	if err := checkKeyType(b.KeyType); err != nil {
		return nil, err
	}

	n, err := parseDecimal("modulus", b.Modulus)
	if err != nil {
		return nil, err
	}
	d, err := parseDecimal("privateExponent", b.PrivateExponent)
	if err != nil {
		return nil, err
	}
	p, err := parseDecimal("p", b.P)
	if err != nil {
		return nil, err
	}
	q, err := parseDecimal("q", b.Q)
	if err != nil {
		return nil, err
	}

	priv := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{N: n, E: PublicExponent},
		D:         d,
		Primes:    []*big.Int{p, q},
	}

	if err := priv.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKeyBlob, err)
	}
	priv.Precompute()

	return priv, nil
}

// IsPrivateKeyBlob reports whether a serialized key carries private material.
// Private blobs are distinguished by the presence of privateExponent.
func IsPrivateKeyBlob(blob string) bool {
	raw, err := FromBase64(blob)
	if err != nil {
		return false
	}

	var probe struct {
		PrivateExponent string `json:"privateExponent"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}

	return probe.PrivateExponent != ""
}

func decodeKeyBlob(blob string, v any) error {
	raw, err := FromBase64(blob)
	if err != nil {
		return fmt.Errorf("%w: invalid base64: %v", ErrMalformedKeyBlob, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrMalformedKeyBlob, err)
	}

	return nil
}

func checkKeyType(keyType string) error {
	if keyType != KeyTypeRSA {
		return fmt.Errorf("%w: %q", ErrUnsupportedKeyType, keyType)
	}
	return nil
}

func parseDecimal(field, s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedKeyBlob, field)
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a decimal integer", ErrMalformedKeyBlob, field)
	}
	if v.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive", ErrMalformedKeyBlob, field)
	}

	return v, nil
}
