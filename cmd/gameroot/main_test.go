package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gorewood/gameroot/internal/cmdline"
	"github.com/gorewood/gameroot/internal/output"
)

// isolateEnv clears every variable gameroot reads and points the config
// directory at an empty temp dir.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VPROJECT", "")
	t.Setenv("GAMEROOT_LAYOUT", "")
	t.Setenv("GAMEROOT_MODULE", "")
	t.Setenv("GAMEROOT_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
}

// executeCmd runs the root command with args and returns stdout and
// stderr separately.
func executeCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// makeGame creates <tmp>/hl2/gameinfo.txt and <tmp>/hl2/models and returns
// the normalized game directory.
func makeGame(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}
	game := filepath.Join(t.TempDir(), "hl2")
	if err := os.MkdirAll(filepath.Join(game, "models"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, filepath.Join(game, "gameinfo.txt"), "\"GameInfo\" {}\n")
	return game + "/"
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func decodeJSON(t *testing.T, data string) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, data)
	}
	return result
}

func TestRootCommand_Version(t *testing.T) {
	isolateEnv(t)
	version = "1.2.3"
	t.Cleanup(func() { version = "dev" })

	out, _, err := executeCmd(t, "", "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "1.2.3") || !strings.Contains(out, "gameroot") {
		t.Errorf("--version output = %q", out)
	}
}

func TestRootCommand_Help(t *testing.T) {
	isolateEnv(t)

	out, _, err := executeCmd(t, "", "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"gameroot", "Usage:", "--json", "--game", "resolve", "module"} {
		if !strings.Contains(out, want) {
			t.Errorf("--help output should contain %q", want)
		}
	}
}

func TestRootCommand_JSONFlag_NoSubcommand(t *testing.T) {
	isolateEnv(t)

	out, _, err := executeCmd(t, "", "--json")
	if err == nil {
		t.Fatal("Expected error when running with --json but no subcommand")
	}
	result := decodeJSON(t, out)
	if _, ok := result["error"]; !ok {
		t.Errorf("JSON output should have 'error' field: %v", result)
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
}

func TestRun_LegacyGameFlag(t *testing.T) {
	isolateEnv(t)
	game := makeGame(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(cmdline.Normalize([]string{"-game", game, "roots", "--json"}))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out.String())
	}

	result := decodeJSON(t, out.String())
	if result["game_root"] != game || result["source"] != "flag" {
		t.Errorf("got %v, want game_root %s from flag", result, game)
	}
}

func TestLoadEnvFiles_ConfigDir(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	t.Setenv("GAMEROOT_CONFIG_HOME", dir)
	writeTestFile(t, filepath.Join(dir, "env"), "GAMEROOT_TEST_VALUE=from-file\n")
	t.Setenv("GAMEROOT_TEST_VALUE", "")
	os.Unsetenv("GAMEROOT_TEST_VALUE")

	if err := loadEnvFiles(); err != nil {
		t.Fatalf("loadEnvFiles() error = %v", err)
	}
	if got := os.Getenv("GAMEROOT_TEST_VALUE"); got != "from-file" {
		t.Errorf("GAMEROOT_TEST_VALUE = %q, want from-file", got)
	}
}

func TestBuildVersion(t *testing.T) {
	version, commit, date = "1.0.0", "abcdef1234", "2026-01-02"
	t.Cleanup(func() { version, commit, date = "dev", "none", "unknown" })

	if got := buildVersion(); got != "1.0.0 (abcdef1, 2026-01-02)" {
		t.Errorf("buildVersion() = %q", got)
	}
}
