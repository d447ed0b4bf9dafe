package keys

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/config"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/files"
)

var (
	key16 = bytes.Repeat([]byte{0x11}, 16)
	key32 = bytes.Repeat([]byte{0xab}, 32)
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr error
	}{
		{"hex 32", hex.EncodeToString(key32), key32, nil},
		{"hex 16 with newline", hex.EncodeToString(key16) + "\n", key16, nil},
		{"base64 std", base64.StdEncoding.EncodeToString(key32), key32, nil},
		{"base64 raw url", base64.RawURLEncoding.EncodeToString(key32), key32, nil},
		{"empty", "  ", nil, files.ErrNoKey},
		{"wrong length", hex.EncodeToString([]byte{1, 2, 3}), nil, ErrInvalidKey},
		{"garbage", "not a key!", nil, ErrInvalidKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Decode() = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestEnvProvider(t *testing.T) {
	t.Setenv("TEST_SIMDXF_KEY", hex.EncodeToString(key32))

	p := NewEnvProvider("TEST_SIMDXF_KEY")
	got, err := p.Key()
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	if !bytes.Equal(got, key32) {
		t.Errorf("Key() = %x, want %x", got, key32)
	}
	if p.Provider() != "env" {
		t.Errorf("Provider() = %q", p.Provider())
	}

	t.Setenv("TEST_SIMDXF_KEY", "short")
	if _, err := p.Key(); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Key() error = %v, want ErrInvalidKey", err)
	}
}

func TestEnvProvider_Missing(t *testing.T) {
	p := NewEnvProvider("TEST_SIMDXF_KEY_UNSET_12345")
	if _, err := p.Key(); err == nil {
		t.Error("Key() expected error for unset variable")
	}
	if NewEnvProvider("").Var != DefaultEnvVar {
		t.Error("empty name should default to DefaultEnvVar")
	}
}

func writeKeyFile(t *testing.T, dir string, key []byte, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, "user.key")
	if err := os.WriteFile(path, []byte(hex.EncodeToString(key)+"\n"), perm); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, perm); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileProvider_Key(t *testing.T) {
	path := writeKeyFile(t, t.TempDir(), key32, 0o600)

	p, err := NewFileProvider(path, false, quiet())
	if err != nil {
		t.Fatalf("NewFileProvider() error = %v", err)
	}
	defer p.Close()

	got, err := p.Key()
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	if !bytes.Equal(got, key32) {
		t.Errorf("Key() = %x, want %x", got, key32)
	}

	// Cached until refreshed.
	writeKeyFile(t, filepath.Dir(path), key16, 0o600)
	got, _ = p.Key()
	if !bytes.Equal(got, key32) {
		t.Error("Key() should return the cached key before Refresh")
	}
	p.Refresh()
	got, _ = p.Key()
	if !bytes.Equal(got, key16) {
		t.Error("Key() should return the new key after Refresh")
	}
}

func TestFileProvider_Permissions(t *testing.T) {
	tests := []struct {
		perm    os.FileMode
		wantErr bool
	}{
		{0o600, false},
		{0o400, false},
		{0o644, true},
		{0o640, true},
	}
	for _, tt := range tests {
		t.Run(tt.perm.String(), func(t *testing.T) {
			path := writeKeyFile(t, t.TempDir(), key16, tt.perm)
			p, err := NewFileProvider(path, false, quiet())
			if err != nil {
				t.Fatal(err)
			}
			defer p.Close()
			if _, err := p.Key(); (err != nil) != tt.wantErr {
				t.Errorf("Key() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFileProvider_MissingFile(t *testing.T) {
	if _, err := NewFileProvider(filepath.Join(t.TempDir(), "none.key"), false, quiet()); err == nil {
		t.Error("NewFileProvider() expected error for missing file")
	}
}

func TestFileProvider_WatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeKeyFile(t, dir, key32, 0o600)

	p, err := NewFileProvider(path, true, quiet())
	if err != nil {
		t.Fatalf("NewFileProvider() error = %v", err)
	}
	defer p.Close()

	if _, err := p.Key(); err != nil {
		t.Fatal(err)
	}
	writeKeyFile(t, dir, key16, 0o600)

	deadline := time.Now().Add(3 * time.Second)
	for {
		got, err := p.Key()
		if err == nil && bytes.Equal(got, key16) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("key not reloaded after file change: %x, %v", got, err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestNew(t *testing.T) {
	path := writeKeyFile(t, t.TempDir(), key16, 0o600)

	tests := []struct {
		name    string
		cfg     config.KeysConfig
		want    string
		wantErr bool
	}{
		{"default env", config.KeysConfig{}, "env", false},
		{"env", config.KeysConfig{Provider: "env", EnvVar: "X"}, "env", false},
		{"file", config.KeysConfig{Provider: "file", File: path}, "file", false},
		{"missing file", config.KeysConfig{Provider: "file", File: path + ".nope"}, "", true},
		{"unknown", config.KeysConfig{Provider: "vault"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.cfg, quiet())
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer p.Close()
			if p.Provider() != tt.want {
				t.Errorf("Provider() = %q, want %q", p.Provider(), tt.want)
			}
		})
	}
}

func TestProvider_DecryptsUserFile(t *testing.T) {
	t.Setenv("TEST_SIMDXF_ROUNDTRIP_KEY", base64.StdEncoding.EncodeToString(key32))
	p := NewEnvProvider("TEST_SIMDXF_ROUNDTRIP_KEY")

	var buf bytes.Buffer
	if err := files.Users.Write(&buf, &files.UserData{}, files.WriteOptions{Keys: p, Logger: quiet()}); err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}
	if _, err := files.Users.Read(&buf, files.ReadOptions{Keys: p, Logger: quiet()}); err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
}

func TestLazy(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "later.key")
	p := Lazy(config.KeysConfig{Provider: "file", File: missing}, quiet())
	if p.Provider() != "file" {
		t.Errorf("Provider() = %q, want file", p.Provider())
	}
	if _, err := p.Key(); err == nil {
		t.Fatal("Key() expected error for missing file")
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	t.Setenv("TEST_SIMDXF_LAZY_KEY", hex.EncodeToString(key16))
	env := Lazy(config.KeysConfig{EnvVar: "TEST_SIMDXF_LAZY_KEY"}, quiet())
	got, err := env.Key()
	if err != nil || !bytes.Equal(got, key16) {
		t.Errorf("Key() = %x, %v", got, err)
	}
}
