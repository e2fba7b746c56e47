package roots

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// setProber answers Exists from a fixed set of paths.
type setProber map[string]bool

func (p setProber) Exists(path string) bool {
	return p[path]
}

// diskProber checks the real filesystem.
type diskProber struct{}

func (diskProber) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

const sep = string(os.PathSeparator)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestInit_MarkerAboveProject(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}
	probe := setProber{"/proj/gameinfo.txt": true}

	res := Init(Options{Input: "/proj/src/model.src"}, probe)

	if got := res.ProjectRoot(); got != "/proj/src/" {
		t.Errorf("ProjectRoot() = %q, want /proj/src/", got)
	}
	if got := res.GameRoot(); got != "/proj/" {
		t.Errorf("GameRoot() = %q, want /proj/", got)
	}
	if got := res.Source(); got != SourceMarker {
		t.Errorf("Source() = %q, want %q", got, SourceMarker)
	}
}

func TestInit_Precedence(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}
	probe := setProber{"/proj/gameinfo.txt": true}

	tests := []struct {
		name       string
		opts       Options
		wantGame   string
		wantSource Source
	}{
		{
			name:       "flag beats env and marker",
			opts:       Options{Input: "/proj/src/a.qc", GameFlag: "/flag/game", EnvProject: "/env/game"},
			wantGame:   "/flag/game/",
			wantSource: SourceFlag,
		},
		{
			name:       "env beats marker",
			opts:       Options{Input: "/proj/src/a.qc", EnvProject: "/env/game/"},
			wantGame:   "/env/game/",
			wantSource: SourceEnv,
		},
		{
			name:       "marker search",
			opts:       Options{Input: "/proj/src/a.qc"},
			wantGame:   "/proj/",
			wantSource: SourceMarker,
		},
		{
			name:       "fallback to project root",
			opts:       Options{Input: "/elsewhere/deep/a.qc"},
			wantGame:   "/elsewhere/deep/",
			wantSource: SourceFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Init(tt.opts, probe)
			if got := res.GameRoot(); got != tt.wantGame {
				t.Errorf("GameRoot() = %q, want %q", got, tt.wantGame)
			}
			if got := res.Source(); got != tt.wantSource {
				t.Errorf("Source() = %q, want %q", got, tt.wantSource)
			}
		})
	}
}

func TestInit_SecondaryMarker(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mod", "gameinfo.gi"))
	input := filepath.Join(root, "mod", "models", "props", "crate.qc")

	res := Init(Options{Input: input}, diskProber{})

	want := NormalizeDir(filepath.Join(root, "mod"))
	if got := res.GameRoot(); got != want {
		t.Errorf("GameRoot() = %q, want %q", got, want)
	}
}

func TestInit_RelativeFlagMadeAbsolute(t *testing.T) {
	res := Init(Options{GameFlag: "hl2"}, setProber{})

	got := res.GameRoot()
	if !filepath.IsAbs(got) {
		t.Errorf("GameRoot() = %q, want absolute", got)
	}
	if !strings.HasSuffix(got, sep+"hl2"+sep) {
		t.Errorf("GameRoot() = %q, want suffix %q", got, sep+"hl2"+sep)
	}
}

func TestInit_EmptyInputUsesWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	res := Init(Options{}, setProber{})

	if got := res.ProjectRoot(); got != NormalizeDir(wd) {
		t.Errorf("ProjectRoot() = %q, want %q", got, NormalizeDir(wd))
	}
}

func TestFindGameDir_AnyDepth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "game", "gameinfo.txt"))
	want := NormalizeDir(filepath.Join(root, "game"))

	start := filepath.Join(root, "game")
	for depth := 0; depth < 6; depth++ {
		got, ok := FindGameDir(start, DefaultMarkers, diskProber{})
		if !ok || got != want {
			t.Errorf("depth %d: FindGameDir() = %q, %v; want %q, true", depth, got, ok, want)
		}
		start = filepath.Join(start, "sub")
	}
}

func TestFindGameDir_NoMarker(t *testing.T) {
	start := filepath.Join(t.TempDir(), "a", "b", "c")

	got, ok := FindGameDir(start, []string{"no-such-marker-7f3a.txt"}, diskProber{})
	if ok {
		t.Errorf("FindGameDir() = %q, true; want not found", got)
	}
}

func TestFindGameDir_ChecksFilesystemRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}
	got, ok := FindGameDir("/a/b", DefaultMarkers, setProber{"/gameinfo.gi": true})
	if !ok || got != "/" {
		t.Errorf("FindGameDir() = %q, %v; want /, true", got, ok)
	}
}

func TestFindGameDir_PrimaryMarkerFirst(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}
	var probed []string
	probe := recordingProber{seen: &probed, hit: "/g/gameinfo.txt"}

	if _, ok := FindGameDir("/g", DefaultMarkers, probe); !ok {
		t.Fatal("FindGameDir() found nothing")
	}
	if len(probed) != 1 || probed[0] != "/g/gameinfo.txt" {
		t.Errorf("probed %v, want only /g/gameinfo.txt", probed)
	}
}

type recordingProber struct {
	seen *[]string
	hit  string
}

func (p recordingProber) Exists(path string) bool {
	*p.seen = append(*p.seen, path)
	return path == p.hit
}

func TestSetGameRoot(t *testing.T) {
	res := Init(Options{GameFlag: t.TempDir()}, setProber{})
	before := res.GameRoot()

	if err := res.SetGameRoot(""); !errors.Is(err, ErrEmptyDir) {
		t.Errorf("SetGameRoot(\"\") error = %v, want ErrEmptyDir", err)
	}
	if got := res.GameRoot(); got != before {
		t.Errorf("GameRoot() changed to %q after a failed SetGameRoot", got)
	}

	mod := t.TempDir()
	if err := res.SetGameRoot(mod); err != nil {
		t.Fatalf("SetGameRoot() error: %v", err)
	}
	if got := res.GameRoot(); got != NormalizeDir(mod) {
		t.Errorf("GameRoot() = %q, want %q", got, NormalizeDir(mod))
	}
	if got := res.Source(); got != SourceSet {
		t.Errorf("Source() = %q, want %q", got, SourceSet)
	}
}

func TestNormalizeDir(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "a" + sep},
		{"a/", "a" + sep},
		{"a//", "a" + sep},
		{"a\\b\\", "a" + sep + "b" + sep},
		{"/", sep},
	}
	for _, tt := range tests {
		if got := NormalizeDir(tt.in); got != tt.want {
			t.Errorf("NormalizeDir(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
