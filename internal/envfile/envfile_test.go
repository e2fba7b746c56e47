package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEnv(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// unset clears key for the duration of the test.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	_ = os.Unsetenv(key) //nolint:errcheck
}

func TestLoad_NonexistentFile(t *testing.T) {
	if err := Load("/nonexistent/.env"); err != nil {
		t.Fatalf("expected nil for nonexistent file, got %v", err)
	}
}

func TestLoad_SetsUnsetVars(t *testing.T) {
	path := writeEnv(t, ".env.local", "VPROJECT=/games/hl2\n# comment\nexport GAMEROOT_MODULE='vphysics'\n")
	unset(t, "VPROJECT")
	unset(t, "GAMEROOT_MODULE")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("VPROJECT"); got != "/games/hl2" {
		t.Errorf("VPROJECT = %q, want %q", got, "/games/hl2")
	}
	if got := os.Getenv("GAMEROOT_MODULE"); got != "vphysics" {
		t.Errorf("GAMEROOT_MODULE = %q, want %q", got, "vphysics")
	}
}

func TestLoad_DoesNotOverrideExisting(t *testing.T) {
	path := writeEnv(t, ".env", "VPROJECT=/from/file\n")
	t.Setenv("VPROJECT", "/from/env")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("VPROJECT"); got != "/from/env" {
		t.Errorf("VPROJECT = %q, want %q (env should take precedence)", got, "/from/env")
	}
}

func TestLoadAll_FirstFileWins(t *testing.T) {
	local := writeEnv(t, ".env.local", "VPROJECT=/local\n")
	shared := writeEnv(t, ".env", "VPROJECT=/shared\nGAMEROOT_LAYOUT=/shared/layout.yaml\n")
	unset(t, "VPROJECT")
	unset(t, "GAMEROOT_LAYOUT")

	if err := LoadAll(local, "", shared, "/nonexistent/env"); err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}

	if got := os.Getenv("VPROJECT"); got != "/local" {
		t.Errorf("VPROJECT = %q, want /local", got)
	}
	if got := os.Getenv("GAMEROOT_LAYOUT"); got != "/shared/layout.yaml" {
		t.Errorf("GAMEROOT_LAYOUT = %q, want /shared/layout.yaml", got)
	}
}
