// Package zappcrypto implements the hybrid encryption envelope used by Zapp
// to exchange content between paired devices, combining RSA key wrapping,
// AES-256-GCM authenticated encryption, and RSA signatures.
//
// Each device holds one RSA-2048 key pair. To send, the sender encrypts the
// content under a fresh ephemeral AES key, wraps that key to the recipient
// with RSA-OAEP, and signs the encrypted artifacts. To receive, the recipient
// verifies the signature against the expected sender before any decryption
// is attempted.
//
// Basic usage:
//
//	sender, err := zappcrypto.GenerateKeyPair(zappcrypto.DefaultKeyBits)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	recipient, err := zappcrypto.GenerateKeyPair(zappcrypto.DefaultKeyBits)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	env, err := zappcrypto.Seal([]byte("hello"), recipient.Public(), sender)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	wire, _ := env.EncodeJSON() // what actually travels between devices
//
//	received, err := zappcrypto.OpenJSON(wire, recipient, sender.Public())
//	if err != nil {
//	    log.Fatal(err) // AuthenticityError, KeyUnwrapError, ...
//	}
//	fmt.Println(string(received))
//
// Failures are reported through the typed errors in this package; match them
// with errors.Is against the Err* sentinels. Every failure is terminal for
// the envelope in question. A rejected envelope must be discarded, never
// retried with relaxed checks.
package zappcrypto
