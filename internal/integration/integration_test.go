//go:build integration

// Package integration runs the gameroot binary against real directory
// trees, with the real dynamic loader.
//
// Run with: go test -tags=integration ./internal/integration/...
package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testTree is a scratch install: <root>/hl2 is a game directory holding
// gameinfo.txt, <root> is its parent.
type testTree struct {
	t      *testing.T
	root   string
	game   string
	binary string
	env    []string
}

// newTestTree builds the gameroot binary and lays out an empty game.
func newTestTree(t *testing.T) *testTree {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}

	root := t.TempDir()
	binary := filepath.Join(t.TempDir(), "gameroot")
	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/gameroot")
	buildCmd.Dir = findProjectRoot(t)
	buildCmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build gameroot: %v\n%s", err, output)
	}

	tree := &testTree{
		t:      t,
		root:   root,
		game:   filepath.Join(root, "hl2") + "/",
		binary: binary,
		env: []string{
			"PATH=" + os.Getenv("PATH"),
			"HOME=" + root,
			"GAMEROOT_CONFIG_HOME=" + filepath.Join(root, "config"),
			"NO_COLOR=1",
		},
	}
	tree.createFile("hl2/gameinfo.txt", "\"GameInfo\" { game \"Half-Life 2\" }\n")
	return tree
}

// findProjectRoot locates the project root by finding go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// createFile writes content to a path relative to the tree root.
func (r *testTree) createFile(name, content string) string {
	r.t.Helper()

	path := filepath.Join(r.root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("failed to write file %s: %v", name, err)
	}
	return path
}

// setenv adds a variable to the child environment.
func (r *testTree) setenv(key, value string) {
	r.env = append(r.env, key+"="+value)
}

// run runs gameroot in dir (relative to the tree root) with stdin.
// Returns stdout, stderr and the exit code.
func (r *testTree) run(dir, stdin string, args ...string) (string, string, int) {
	r.t.Helper()

	cmd := exec.Command(r.binary, args...)
	cmd.Dir = filepath.Join(r.root, dir)
	cmd.Env = r.env
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return stdout.String(), stderr.String(), 0
	case errors.As(err, &exitErr):
		return stdout.String(), stderr.String(), exitErr.ExitCode()
	default:
		r.t.Fatalf("gameroot %v did not run: %v", args, err)
		return "", "", -1
	}
}

// runOK runs gameroot from the tree root and expects success.
func (r *testTree) runOK(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.run("", "", args...)
	if code != 0 {
		r.t.Fatalf("gameroot %v exited %d\nstdout: %s\nstderr: %s", args, code, stdout, stderr)
	}
	return stdout
}

// runJSON runs gameroot with --json and decodes the result.
func (r *testTree) runJSON(args ...string) map[string]any {
	r.t.Helper()

	stdout := r.runOK(append(args, "--json")...)
	var result map[string]any
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		r.t.Fatalf("failed to parse JSON: %v\n%s", err, stdout)
	}
	return result
}
