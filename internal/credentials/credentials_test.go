package credentials

import (
	"encoding/base64"
	"path/filepath"
	"testing"

	"github.com/example/gymsched/internal/brp"
)

var creds = brp.Credentials{Username: "u123", Password: "hunter2"}

func TestSaveLoad_Plaintext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := Save(path, creds, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != creds {
		t.Errorf("got %+v, want %+v", got, creds)
	}
}

func TestSaveLoad_Encrypted(t *testing.T) {
	keyB64, err := NewKey()
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	key, err := base64.StdEncoding.DecodeString(keyB64)
	if err != nil {
		t.Fatalf("decode key: %v", err)
	}

	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := Save(path, creds, key); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path, key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != creds {
		t.Errorf("got %+v, want %+v", got, creds)
	}

	// The ciphertext must not parse as plain JSON credentials.
	if plain, err := Load(path, nil); err == nil {
		t.Errorf("plaintext load of encrypted file succeeded: %+v", plain)
	}
}

func TestLoad_WrongKey(t *testing.T) {
	key := make([]byte, 32)
	wrong := make([]byte, 32)
	wrong[0] = 1

	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := Save(path, creds, key); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := Load(path, wrong); err == nil {
		t.Error("load with wrong key succeeded")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json"), nil); err == nil {
		t.Error("load of missing file succeeded")
	}
}

func TestLoad_EmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := Save(path, brp.Credentials{Username: "u123"}, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := Load(path, nil); err == nil {
		t.Error("credentials without password accepted")
	}
}
