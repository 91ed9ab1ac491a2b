package crypto

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestPublicKeyRoundTrip(t *testing.T) {
	sender, _ := testKeys(t)
	pub := &sender.PublicKey

	blob, err := MarshalPublicKey(pub)
	if err != nil {
		t.Fatalf("MarshalPublicKey() error = %v", err)
	}

	got, err := ParsePublicKey(blob)
	if err != nil {
		t.Fatalf("ParsePublicKey() error = %v", err)
	}

	if got.N.Cmp(pub.N) != 0 {
		t.Error("modulus changed across round trip")
	}
	if got.E != pub.E {
		t.Errorf("exponent = %d, want %d", got.E, pub.E)
	}
}

func TestPrivateKeyRoundTrip(t *testing.T) {
	sender, _ := testKeys(t)

	blob, err := MarshalPrivateKey(sender)
	if err != nil {
		t.Fatalf("MarshalPrivateKey() error = %v", err)
	}

	got, err := ParsePrivateKey(blob)
	if err != nil {
		t.Fatalf("ParsePrivateKey() error = %v", err)
	}

	if got.N.Cmp(sender.N) != 0 {
		t.Error("modulus changed across round trip")
	}
	if got.D.Cmp(sender.D) != 0 {
		t.Error("private exponent changed across round trip")
	}
	if got.Primes[0].Cmp(sender.Primes[0]) != 0 || got.Primes[1].Cmp(sender.Primes[1]) != 0 {
		t.Error("primes changed across round trip")
	}
	if got.E != PublicExponent {
		t.Errorf("exponent = %d, want %d", got.E, PublicExponent)
	}

	// CRT values must be restored even though the blob does not carry them.
	if got.Precomputed.Dp == nil || got.Precomputed.Dq == nil {
		t.Error("CRT parameters not precomputed on load")
	}
}

func TestPrivateKeyBlob_NoCRTFields(t *testing.T) {
	sender, _ := testKeys(t)

	blob, err := MarshalPrivateKey(sender)
	if err != nil {
		t.Fatal(err)
	}

	raw, err := FromBase64(blob)
	if err != nil {
		t.Fatal(err)
	}

	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatal(err)
	}

	want := []string{"modulus", "privateExponent", "p", "q", "keyType", "version"}
	if len(fields) != len(want) {
		t.Errorf("blob has %d fields, want %d: %v", len(fields), len(want), fields)
	}
	for _, f := range want {
		if _, ok := fields[f]; !ok {
			t.Errorf("blob missing field %q", f)
		}
	}
	if fields["keyType"] != KeyTypeRSA {
		t.Errorf("keyType = %q, want %q", fields["keyType"], KeyTypeRSA)
	}
}

func TestParsePublicKey_Rejections(t *testing.T) {
	t.Parallel()

	mkBlob := func(modulus, exponent, keyType string) string {
		raw, _ := json.Marshal(map[string]string{
			"modulus":  modulus,
			"exponent": exponent,
			"keyType":  keyType,
			"version":  KeyFormatVersion,
		})
		return ToBase64(raw)
	}

	tests := []struct {
		name    string
		blob    string
		wantErr error
	}{
		{"not base64", "!!!not-base64!!!", ErrMalformedKeyBlob},
		{"not json", ToBase64([]byte("not json")), ErrMalformedKeyBlob},
		{"wrong key type", mkBlob("12345", "65537", "EC"), ErrUnsupportedKeyType},
		{"empty key type", mkBlob("12345", "65537", ""), ErrUnsupportedKeyType},
		{"non-numeric modulus", mkBlob("0xCAFE", "65537", KeyTypeRSA), ErrMalformedKeyBlob},
		{"non-numeric exponent", mkBlob("12345", "sixty-five", KeyTypeRSA), ErrMalformedKeyBlob},
		{"missing modulus", mkBlob("", "65537", KeyTypeRSA), ErrMalformedKeyBlob},
		{"negative modulus", mkBlob("-5", "65537", KeyTypeRSA), ErrMalformedKeyBlob},
		{"huge exponent", mkBlob("12345", "123456789012345678901", KeyTypeRSA), ErrMalformedKeyBlob},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePublicKey(tt.blob); !errors.Is(err, tt.wantErr) {
				t.Errorf("ParsePublicKey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParsePrivateKey_Rejections(t *testing.T) {
	sender, _ := testKeys(t)

	valid := map[string]string{
		"modulus":         sender.N.String(),
		"privateExponent": sender.D.String(),
		"p":               sender.Primes[0].String(),
		"q":               sender.Primes[1].String(),
		"keyType":         KeyTypeRSA,
		"version":         KeyFormatVersion,
	}

	mkBlob := func(mutate func(map[string]string)) string {
		fields := make(map[string]string, len(valid))
		for k, v := range valid {
			fields[k] = v
		}
		mutate(fields)
		raw, _ := json.Marshal(fields)
		return ToBase64(raw)
	}

	tests := []struct {
		name    string
		blob    string
		wantErr error
	}{
		{"wrong key type", mkBlob(func(f map[string]string) { f["keyType"] = "DSA" }), ErrUnsupportedKeyType},
		{"missing p", mkBlob(func(f map[string]string) { delete(f, "p") }), ErrMalformedKeyBlob},
		{"non-numeric d", mkBlob(func(f map[string]string) { f["privateExponent"] = "abc" }), ErrMalformedKeyBlob},
		// n != p*q: swap the modulus for a small number
		{"inconsistent key", mkBlob(func(f map[string]string) { f["modulus"] = "15" }), ErrMalformedKeyBlob},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePrivateKey(tt.blob); !errors.Is(err, tt.wantErr) {
				t.Errorf("ParsePrivateKey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsPrivateKeyBlob(t *testing.T) {
	sender, _ := testKeys(t)

	pubBlob, err := MarshalPublicKey(&sender.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	privBlob, err := MarshalPrivateKey(sender)
	if err != nil {
		t.Fatal(err)
	}

	if IsPrivateKeyBlob(pubBlob) {
		t.Error("public blob reported as private")
	}
	if !IsPrivateKeyBlob(privBlob) {
		t.Error("private blob not reported as private")
	}
	if IsPrivateKeyBlob("garbage") {
		t.Error("garbage reported as private")
	}
}
