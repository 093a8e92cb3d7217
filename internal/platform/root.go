package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// StoreDirName is the directory name of a project-local notes store.
const StoreDirName = ".notes"

// ErrNoStore is returned by FindStore when no ancestor holds a store.
var ErrNoStore = errors.New("no notes store found")

// FindStore looks upwards from startDir for a directory containing a
// ".notes" store and returns the absolute path of that store.
func FindStore(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, StoreDirName)
		if isDir(candidate) {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrNoStore
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
