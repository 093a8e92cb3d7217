package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePath(t *testing.T) {
	tempRoot := os.TempDir()
	inside := filepath.Join(t.TempDir(), "store")

	tests := []struct {
		name      string
		path      string
		forceTemp bool
		want      string
	}{
		{"No Sandbox", "/srv/notes", false, "/srv/notes"},
		{"No Sandbox Empty", "", false, "."},
		{"Inside Temp Is Trusted", inside, true, inside},
		{"Outside Temp Is Re-rooted", "/srv/notes", true, filepath.Join(tempRoot, DevDirName, "notes")},
		{"Empty Uses Default", "", true, filepath.Join(tempRoot, DevDirName, "default")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePath(tt.path, tt.forceTemp); got != tt.want {
				t.Errorf("ResolvePath(%q, %v) = %q, want %q", tt.path, tt.forceTemp, got, tt.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	tests := map[string]string{
		"~":              home,
		"~/.notes":       filepath.Join(home, ".notes"),
		"/abs/path":      "/abs/path",
		"relative/~/dir": "relative/~/dir",
		"~user/notes":    "~user/notes",
	}
	for in, want := range tests {
		got, err := ExpandHome(in)
		if err != nil {
			t.Fatalf("ExpandHome(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ExpandHome(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsDevRun(t *testing.T) {
	// Test binaries end in .test.
	if !IsDevRun() {
		t.Error("IsDevRun() = false inside go test")
	}
}
