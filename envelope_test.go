package zappcrypto

import (
	"bytes"
	"errors"
	"sync"
	"testing"
)

var (
	pairOnce      sync.Once
	senderPair    *KeyPair
	recipientPair *KeyPair
)

func testPairs(t *testing.T) (sender, recipient *KeyPair) {
	t.Helper()
	pairOnce.Do(func() {
		var err error
		if senderPair, err = GenerateKeyPair(DefaultKeyBits); err != nil {
			t.Fatalf("GenerateKeyPair() error = %v", err)
		}
		if recipientPair, err = GenerateKeyPair(DefaultKeyBits); err != nil {
			t.Fatalf("GenerateKeyPair() error = %v", err)
		}
	})
	return senderPair, recipientPair
}

// The full send/receive scenario: generate both identities, seal the test
// message, check the wire version, open on the receiving side.
func TestScenario_SealAndOpen(t *testing.T) {
	sender, recipient := testPairs(t)

	message := "Hello from Zapp! This is a test encrypted message."

	env, err := Seal([]byte(message), recipient.Public(), sender)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if env.Version != "1.0" {
		t.Errorf("version = %q, want \"1.0\"", env.Version)
	}

	wire, err := env.EncodeJSON()
	if err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}

	plaintext, err := OpenJSON(wire, recipient, sender.Public())
	if err != nil {
		t.Fatalf("OpenJSON() error = %v", err)
	}
	if string(plaintext) != message {
		t.Errorf("plaintext = %q, want %q", plaintext, message)
	}
}

// Corrupting the wrapped key must surface as an authenticity failure, not a
// key-unwrap failure: the wrapped key is inside the signed transcript and
// the signature check runs first.
func TestScenario_CorruptWrappedKeyOrdering(t *testing.T) {
	sender, recipient := testPairs(t)

	env, err := Seal([]byte("ordering"), recipient.Public(), sender)
	if err != nil {
		t.Fatal(err)
	}
	env.WrappedKey[0] ^= 0x01

	_, err = Open(env, recipient, sender.Public())
	if errors.Is(err, ErrKeyUnwrap) {
		t.Fatal("Open() reached key unwrap on a tampered envelope")
	}
	if !errors.Is(err, ErrAuthenticity) {
		t.Errorf("Open() error = %v, want ErrAuthenticity", err)
	}

	var authErr *AuthenticityError
	if !errors.As(err, &authErr) {
		t.Errorf("Open() error type = %T, want *AuthenticityError", err)
	}
}

func TestOpen_ErrorTaxonomy(t *testing.T) {
	sender, recipient := testPairs(t)

	tests := []struct {
		name    string
		mutate  func(*Envelope) *Envelope
		local   *KeyPair
		sender  *KeyPair
		wantErr error
	}{
		{
			name:    "tampered ciphertext",
			mutate:  func(e *Envelope) *Envelope { e.Ciphertext[0] ^= 0x01; return e },
			local:   recipient,
			sender:  sender,
			wantErr: ErrAuthenticity,
		},
		{
			name:    "unsupported version",
			mutate:  func(e *Envelope) *Envelope { e.Version = "3.0"; return e },
			local:   recipient,
			sender:  sender,
			wantErr: ErrVersion,
		},
		{
			name:    "wrong recipient",
			mutate:  func(e *Envelope) *Envelope { return e },
			local:   sender,
			sender:  sender,
			wantErr: ErrKeyUnwrap,
		},
		{
			name:    "wrong sender",
			mutate:  func(e *Envelope) *Envelope { return e },
			local:   recipient,
			sender:  recipient,
			wantErr: ErrAuthenticity,
		},
		{
			name:    "nil envelope",
			mutate:  func(e *Envelope) *Envelope { return nil },
			local:   recipient,
			sender:  sender,
			wantErr: ErrFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Seal([]byte("taxonomy"), recipient.Public(), sender)
			if err != nil {
				t.Fatal(err)
			}

			plaintext, err := Open(tt.mutate(env), tt.local, tt.sender.Public())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Open() error = %v, want %v", err, tt.wantErr)
			}
			if plaintext != nil {
				t.Error("plaintext released on failure path")
			}

			var zerr ZappError
			if !errors.As(err, &zerr) {
				t.Errorf("Open() error %T does not implement ZappError", err)
			}
		})
	}
}

func TestOpenJSON_MalformedWire(t *testing.T) {
	sender, recipient := testPairs(t)

	tests := []struct {
		name    string
		raw     []byte
		wantErr error
	}{
		{"garbage", []byte("garbage"), ErrFormat},
		{"extra field", []byte(`{"encryptedAesKey":"QQ==","encryptedContent":"QQ==","iv":"QQ==","signature":"QQ==","version":"1.0","padding":"x"}`), ErrFormat},
		{"old version", []byte(`{"encryptedAesKey":"QQ==","encryptedContent":"QQ==","iv":"QQ==","signature":"QQ==","version":"0.1"}`), ErrVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := OpenJSON(tt.raw, recipient, sender.Public()); !errors.Is(err, tt.wantErr) {
				t.Errorf("OpenJSON() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSeal_WithRandom(t *testing.T) {
	sender, recipient := testPairs(t)

	if _, err := Seal([]byte("x"), recipient.Public(), sender, WithRandom(failingReader{})); !errors.Is(err, ErrKeyGeneration) {
		t.Errorf("Seal() with failing rng error = %v, want ErrKeyGeneration", err)
	}
}

// Seal and Open hold no shared mutable state; hammer them from several
// goroutines to catch accidental sharing.
func TestSealOpen_Concurrent(t *testing.T) {
	sender, recipient := testPairs(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			msg := bytes.Repeat([]byte{byte(n)}, 128)
			env, err := Seal(msg, recipient.Public(), sender)
			if err != nil {
				errs <- err
				return
			}
			plaintext, err := Open(env, recipient, sender.Public())
			if err != nil {
				errs <- err
				return
			}
			if !bytes.Equal(plaintext, msg) {
				errs <- errors.New("round trip mismatch")
			}
		}(i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}
