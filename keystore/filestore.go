package keystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	zappcrypto "github.com/zapp-share/crypto-go"
)

const (
	identityFile = "identity.zkey"
	peersFile    = "peers.json"
)

var (
	// ErrSealedIdentity is returned when the stored identity is sealed but
	// the store was opened without a passphrase.
	ErrSealedIdentity = errors.New("identity is sealed; passphrase required")

	// ErrPlaintextIdentity is returned when the store was opened with a
	// passphrase but the stored identity is not sealed.
	ErrPlaintextIdentity = errors.New("identity is stored in plaintext; refusing passphrase open")
)

// FileStore is a directory-backed Store. The identity lives in
// identity.zkey (the serialized key blob, optionally sealed) and peers in
// peers.json. Writes are atomic (tmp file + rename) and files are created
// with owner-only permissions.
type FileStore struct {
	dir        string
	passphrase string
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithPassphrase seals the identity blob at rest with a key derived from
// the passphrase (argon2id + XChaCha20-Poly1305). Peers' public keys are
// not secret and stay unsealed.
func WithPassphrase(passphrase string) FileStoreOption {
	return func(s *FileStore) {
		s.passphrase = passphrase
	}
}

// NewFileStore opens (creating if needed) a file-backed store rooted at dir.
func NewFileStore(dir string, opts ...FileStoreOption) (*FileStore, error) {
	s := &FileStore{dir: dir}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create keystore dir: %w", err)
	}

	return s, nil
}

// SaveKeyPair persists the local device identity.
func (s *FileStore) SaveKeyPair(kp *zappcrypto.KeyPair) error {
	blob, err := zappcrypto.MarshalKeyPair(kp)
	if err != nil {
		return err
	}

	data := []byte(blob)
	if s.passphrase != "" {
		data, err = seal(s.passphrase, data)
		if err != nil {
			return err
		}
	}

	return s.writeFile(identityFile, data)
}

// LoadKeyPair returns the local device identity, or (nil, nil) on first run.
func (s *FileStore) LoadKeyPair() (*zappcrypto.KeyPair, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, identityFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read identity: %w", err)
	}

	sealed := isSealed(data)
	switch {
	case sealed && s.passphrase == "":
		return nil, ErrSealedIdentity
	case !sealed && s.passphrase != "":
		return nil, ErrPlaintextIdentity
	case sealed:
		if data, err = open(s.passphrase, data); err != nil {
			return nil, err
		}
	}

	return zappcrypto.ParseKeyPair(string(data))
}

// SavePeer persists a paired device's public key under its fingerprint.
func (s *FileStore) SavePeer(p Peer) error {
	if p.Fingerprint == "" {
		return fmt.Errorf("peer has no fingerprint")
	}

	blob, err := zappcrypto.MarshalPublicKey(p.PublicKey)
	if err != nil {
		return err
	}

	peers, err := s.readPeers()
	if err != nil {
		return err
	}

	peers[p.Fingerprint] = peerRecord{Name: p.Name, PublicKey: blob}
	return s.writePeers(peers)
}

// Peer returns the paired device with the given fingerprint, or (nil, nil)
// if unknown.
func (s *FileStore) Peer(fingerprint string) (*Peer, error) {
	peers, err := s.readPeers()
	if err != nil {
		return nil, err
	}

	rec, ok := peers[fingerprint]
	if !ok {
		return nil, nil
	}

	return rec.toPeer(fingerprint)
}

// Peers returns all paired devices, ordered by name.
func (s *FileStore) Peers() ([]Peer, error) {
	records, err := s.readPeers()
	if err != nil {
		return nil, err
	}

	peers := make([]Peer, 0, len(records))
	for fp, rec := range records {
		p, err := rec.toPeer(fp)
		if err != nil {
			return nil, err
		}
		peers = append(peers, *p)
	}

	sort.Slice(peers, func(i, j int) bool {
		if peers[i].Name != peers[j].Name {
			return peers[i].Name < peers[j].Name
		}
		return peers[i].Fingerprint < peers[j].Fingerprint
	})

	return peers, nil
}

// RemovePeer deletes the peer with the given fingerprint.
func (s *FileStore) RemovePeer(fingerprint string) error {
	peers, err := s.readPeers()
	if err != nil {
		return err
	}

	if _, ok := peers[fingerprint]; !ok {
		return nil
	}

	delete(peers, fingerprint)
	return s.writePeers(peers)
}

// peerRecord is the on-disk form of one peer entry.
type peerRecord struct {
	Name      string `json:"name"`
	PublicKey string `json:"publicKey"`
}

func (r peerRecord) toPeer(fingerprint string) (*Peer, error) {
	pub, err := zappcrypto.ParsePublicKey(r.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("peer %s: %w", fingerprint, err)
	}

	return &Peer{Fingerprint: fingerprint, Name: r.Name, PublicKey: pub}, nil
}

func (s *FileStore) readPeers() (map[string]peerRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, peersFile))
	if errors.Is(err, os.ErrNotExist) {
		return map[string]peerRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read peers: %w", err)
	}

	var peers map[string]peerRecord
	if err := json.Unmarshal(data, &peers); err != nil {
		return nil, fmt.Errorf("parse peers: %w", err)
	}

	return peers, nil
}

func (s *FileStore) writePeers(peers map[string]peerRecord) error {
	data, err := json.MarshalIndent(peers, "", "  ")
	if err != nil {
		return err
	}

	return s.writeFile(peersFile, data)
}

func (s *FileStore) writeFile(name string, data []byte) error {
	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	return nil
}
