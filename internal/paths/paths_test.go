package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stating dir: %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir did not create a directory")
	}

	// Idempotent
	if err := EnsureDir(dir, 0); err != nil {
		t.Errorf("second EnsureDir() error = %v", err)
	}
}

func TestEnsureDir_CustomPerm(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "restricted")

	if err := EnsureDir(dir, 0o700); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o700 {
		t.Errorf("permissions = %o, want 0700", perm)
	}
}

func TestConfDir(t *testing.T) {
	dir := ConfDir()
	if dir == "" {
		t.Fatal("ConfDir() returned empty path")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfDir() = %q, want absolute path", dir)
	}
}

func TestSaveDir(t *testing.T) {
	dir := SaveDir()
	if !filepath.IsAbs(dir) {
		t.Errorf("SaveDir() = %q, want absolute path", dir)
	}
	if !strings.Contains(dir, AppName) {
		t.Errorf("SaveDir() = %q, want it to contain %q", dir, AppName)
	}
}

func TestConfigHome(t *testing.T) {
	dir := ConfigHome()
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigHome() = %q, want absolute path", dir)
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("ConfigHome() = %q, want it to end in %q", dir, AppName)
	}
}
