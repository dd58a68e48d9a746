package credstore

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32
)

// scrypt parameters; interactive-login grade, per the x/crypto docs.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// FileStore is a Store persisted to a single encrypted file. The whole
// document is sealed with a secretbox key derived from the passphrase;
// writes are atomic (write temp, rename). A watcher reloads the
// document when another process rewrites it, so a logout elsewhere
// invalidates this process's copy too.
type FileStore struct {
	mu         sync.RWMutex
	path       string
	passphrase []byte
	data       map[string]string
	watcher    *fsnotify.Watcher
	done       chan struct{}
}

type fileEnvelope struct {
	Salt  []byte `json:"salt"`
	Nonce []byte `json:"nonce"`
	Box   []byte `json:"box"`
}

// OpenFileStore opens or creates the encrypted store at path.
func OpenFileStore(path, passphrase string) (*FileStore, error) {
	s := &FileStore{
		path:       path,
		passphrase: []byte(passphrase),
		data:       make(map[string]string),
		done:       make(chan struct{}),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	if err := s.watch(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves a value.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores a value and persists the document.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.persist()
}

// Delete removes a value and persists the document.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.persist()
}

// Close stops the watcher.
func (s *FileStore) Close() error {
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

func (s *FileStore) load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var env fileEnvelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("credential store corrupted: %w", err)
	}
	if len(env.Salt) != saltSize || len(env.Nonce) != nonceSize {
		return fmt.Errorf("credential store corrupted: bad envelope")
	}

	key, err := s.deriveKey(env.Salt)
	if err != nil {
		return err
	}

	var nonce [nonceSize]byte
	copy(nonce[:], env.Nonce)
	plain, ok := secretbox.Open(nil, env.Box, &nonce, key)
	if !ok {
		return fmt.Errorf("credential store: wrong passphrase or corrupted file")
	}

	data := make(map[string]string)
	if err := sonic.Unmarshal(plain, &data); err != nil {
		return fmt.Errorf("credential store corrupted: %w", err)
	}
	s.data = data
	return nil
}

// persist writes the sealed document atomically. Callers hold the lock.
func (s *FileStore) persist() error {
	plain, err := sonic.Marshal(s.data)
	if err != nil {
		return err
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return err
	}

	key, err := s.deriveKey(salt)
	if err != nil {
		return err
	}

	env := fileEnvelope{
		Salt:  salt,
		Nonce: nonce[:],
		Box:   secretbox.Seal(nil, plain, &nonce, key),
	}
	raw, err := sonic.Marshal(env)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) deriveKey(salt []byte) (*[keySize]byte, error) {
	derived, err := scrypt.Key(s.passphrase, salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, err
	}
	var key [keySize]byte
	copy(key[:], derived)
	return &key, nil
}

// watch reloads the document when another process rewrites the file.
func (s *FileStore) watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = w

	if err := w.Add(filepath.Dir(s.path)); err != nil {
		_ = w.Close()
		s.watcher = nil
		return err
	}

	go func() {
		for {
			select {
			case <-s.done:
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name != s.path {
					continue
				}
				if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
					s.mu.Lock()
					_ = s.load()
					s.mu.Unlock()
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}
