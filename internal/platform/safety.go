package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevDirName is the namespace of sandboxed stores under the system temp dir.
const DevDirName = "notes-dev"

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	tempDir := os.TempDir()
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(tempDir)) {
		return true
	}

	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolvePath determines the actual storage directory.
// With forceTemp, paths outside the system temp dir are re-rooted into
// <tmp>/notes-dev/<base> so dev runs never touch the user's notes.
func ResolvePath(userPath string, forceTemp bool) string {
	if !forceTemp {
		if userPath == "" {
			return "."
		}
		return userPath
	}

	clean := filepath.Clean(userPath)
	tempRoot := os.TempDir()

	// Already inside the temp dir (e.g. t.TempDir()).
	if rel, err := filepath.Rel(tempRoot, clean); err == nil && !strings.HasPrefix(rel, "..") {
		return clean
	}

	sub := filepath.Base(clean)
	if userPath == "" || sub == "." || sub == string(os.PathSeparator) {
		sub = "default"
	}
	return filepath.Join(tempRoot, DevDirName, sub)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
