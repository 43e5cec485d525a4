package credentials

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/example/gymsched/internal/brp"
)

// Load reads login credentials from path. With a nil key the file is plain
// JSON; with a 32-byte key it is a base64 AEAD envelope produced by Save.
// Any read, decode, or decrypt failure is fatal for the run.
func Load(path string, key []byte) (brp.Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return brp.Credentials{}, fmt.Errorf("read credentials: %w", err)
	}
	if key != nil {
		if b, err = open(key, b); err != nil {
			return brp.Credentials{}, fmt.Errorf("decrypt credentials %s: %w", path, err)
		}
	}
	var creds brp.Credentials
	if err := json.Unmarshal(b, &creds); err != nil {
		return brp.Credentials{}, fmt.Errorf("parse credentials %s: %w", path, err)
	}
	if creds.Username == "" || creds.Password == "" {
		return brp.Credentials{}, fmt.Errorf("credentials %s: username and password required", path)
	}
	return creds, nil
}

// Save writes credentials to path, encrypted when key is non-nil. The file
// is created user-readable only.
func Save(path string, creds brp.Credentials, key []byte) error {
	b, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	if key != nil {
		if b, err = seal(key, b); err != nil {
			return fmt.Errorf("encrypt credentials: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// NewKey returns a fresh base64-encoded AEAD key.
func NewKey() (string, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// seal produces base64(nonce || ciphertext).
func seal(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	ct := aead.Seal(nonce, nonce, plaintext, nil)
	return []byte(base64.StdEncoding.EncodeToString(ct)), nil
}

func open(key, envelope []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	buf, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(envelope)))
	if err != nil {
		return nil, err
	}
	ns := aead.NonceSize()
	if len(buf) < ns {
		return nil, fmt.Errorf("ciphertext too short")
	}
	return aead.Open(nil, buf[:ns], buf[ns:], nil)
}
