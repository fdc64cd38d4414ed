package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestTokenStore_Keyring(t *testing.T) {
	keyring.MockInit()
	t.Setenv("CI", "")
	t.Setenv("CODESPACES", "")

	s := &TokenStore{}
	if s.Backend() != "keyring" {
		t.Fatalf("Backend = %q, want keyring", s.Backend())
	}

	if _, err := s.Load(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Load on empty store = %v, want ErrNoToken", err)
	}
	if err := s.Save(" secret-token "); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := s.Load()
	if err != nil || got != "secret-token" {
		t.Fatalf("Load = %q, %v", got, err)
	}
	if err := s.Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
}

func TestTokenStore_File(t *testing.T) {
	dir := t.TempDir()
	s := &TokenStore{Dir: dir, ForceFile: true}

	if err := s.Save("file-token"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, TokenKey))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want 600", perm)
	}

	got, err := s.Load()
	if err != nil || got != "file-token" {
		t.Fatalf("Load = %q, %v", got, err)
	}

	if err := s.Delete(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Load after Delete = %v, want ErrNoToken", err)
	}
}

func TestTokenStore_SaveEmpty(t *testing.T) {
	s := &TokenStore{Dir: t.TempDir(), ForceFile: true}
	if err := s.Save("  "); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestMask(t *testing.T) {
	if got := Mask("abcdefgh"); got != "****efgh" {
		t.Errorf("Mask = %q", got)
	}
	if got := Mask("abc"); got != "***" {
		t.Errorf("Mask = %q", got)
	}
}
