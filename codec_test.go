package zappcrypto

import (
	"errors"
	"strings"
	"testing"
)

func TestKeyPair_Fingerprint(t *testing.T) {
	sender, recipient := testPairs(t)

	// The precomputed fingerprint matches a fresh derivation.
	fp, err := Fingerprint(sender.Public())
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if fp != sender.Fingerprint {
		t.Errorf("Fingerprint() = %q, KeyPair.Fingerprint = %q", fp, sender.Fingerprint)
	}

	if sender.Fingerprint == recipient.Fingerprint {
		t.Error("independent key pairs share a fingerprint")
	}

	if got := strings.Count(sender.Fingerprint, ":"); got != 31 {
		t.Errorf("fingerprint has %d colons, want 31", got)
	}
	if sender.Fingerprint != strings.ToUpper(sender.Fingerprint) {
		t.Error("fingerprint is not upper-case")
	}
}

func TestPublicKeyCodec_RoundTrip(t *testing.T) {
	sender, _ := testPairs(t)

	blob, err := MarshalPublicKey(sender.Public())
	if err != nil {
		t.Fatalf("MarshalPublicKey() error = %v", err)
	}

	pub, err := ParsePublicKey(blob)
	if err != nil {
		t.Fatalf("ParsePublicKey() error = %v", err)
	}

	if pub.N.Cmp(sender.Public().N) != 0 || pub.E != sender.Public().E {
		t.Error("public key changed across round trip")
	}
}

func TestKeyPairCodec_RoundTrip(t *testing.T) {
	sender, recipient := testPairs(t)

	blob, err := MarshalKeyPair(sender)
	if err != nil {
		t.Fatalf("MarshalKeyPair() error = %v", err)
	}

	kp, err := ParseKeyPair(blob)
	if err != nil {
		t.Fatalf("ParseKeyPair() error = %v", err)
	}

	if kp.Private.N.Cmp(sender.Private.N) != 0 || kp.Private.D.Cmp(sender.Private.D) != 0 {
		t.Error("private key changed across round trip")
	}
	if kp.Fingerprint != sender.Fingerprint {
		t.Errorf("fingerprint = %q, want %q", kp.Fingerprint, sender.Fingerprint)
	}

	// The reloaded pair is fully usable.
	env, err := Seal([]byte("reloaded key"), recipient.Public(), kp)
	if err != nil {
		t.Fatal(err)
	}
	plaintext, err := Open(env, recipient, kp.Public())
	if err != nil {
		t.Fatal(err)
	}
	if string(plaintext) != "reloaded key" {
		t.Errorf("round trip with reloaded key = %q", plaintext)
	}
}

func TestParsePublicKey_Errors(t *testing.T) {
	t.Parallel()

	for _, blob := range []string{"", "!!!", "bm90IGpzb24="} {
		_, err := ParsePublicKey(blob)
		if !errors.Is(err, ErrFormat) {
			t.Errorf("ParsePublicKey(%q) error = %v, want ErrFormat", blob, err)
		}
		var ferr *FormatError
		if !errors.As(err, &ferr) {
			t.Errorf("ParsePublicKey(%q) error type = %T, want *FormatError", blob, err)
		}
	}
}

func TestGenerateKeyPair_InvalidBits(t *testing.T) {
	t.Parallel()

	_, err := GenerateKeyPair(1024)
	if !errors.Is(err, ErrKeyGeneration) {
		t.Errorf("GenerateKeyPair(1024) error = %v, want ErrKeyGeneration", err)
	}

	var kerr *KeyGenerationError
	if !errors.As(err, &kerr) {
		t.Errorf("error type = %T, want *KeyGenerationError", err)
	}
}

func TestCiphersuite(t *testing.T) {
	t.Parallel()

	want := "RSA-2048:RSA-OAEP-SHA-256:RSA-SHA-256:AES-256-GCM"
	if Ciphersuite != want {
		t.Errorf("Ciphersuite = %q, want %q", Ciphersuite, want)
	}
}

func TestIsPrivateKeyBlob_Detection(t *testing.T) {
	sender, _ := testPairs(t)

	pubBlob, err := MarshalPublicKey(sender.Public())
	if err != nil {
		t.Fatal(err)
	}
	privBlob, err := MarshalKeyPair(sender)
	if err != nil {
		t.Fatal(err)
	}

	if IsPrivateKeyBlob(pubBlob) {
		t.Error("public blob detected as private")
	}
	if !IsPrivateKeyBlob(privBlob) {
		t.Error("private blob not detected as private")
	}
}
