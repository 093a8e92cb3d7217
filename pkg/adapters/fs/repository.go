package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/notes/pkg/core"
)

// NoteExt is the extension of every note file.
const NoteExt = ".json"

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Repository implements core.Repository with one JSON file per note.
// It keeps no index: every List re-reads the directory. Concurrent writers
// from several processes are last-writer-wins.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastScan      *time.Time
	lastSkipped   int
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	MustExist bool
	Logger    *slog.Logger
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Repository{
		Path:   config.Path,
		config: config,
	}
}

// Initialize creates the note directory, or checks it exists when MustExist is set.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return core.IOError("open", r.Path, fmt.Errorf("note directory does not exist"))
		}
		if err != nil {
			return core.IOError("open", r.Path, err)
		}
		if !info.IsDir() {
			return core.IOError("open", r.Path, fmt.Errorf("not a directory"))
		}
		return nil
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return core.IOError("mkdir", r.Path, err)
	}
	return nil
}

func (r *Repository) filename(id string) string {
	return filepath.Join(r.Path, id+NoteExt)
}

// Save writes the whole note to <id>.json through a temp file and a rename,
// so readers never observe a truncated file.
func (r *Repository) Save(ctx context.Context, n core.Note) error {
	if !validID.MatchString(n.ID) {
		return core.InvalidInput("note id %q is not a valid file name", n.ID)
	}

	path := r.filename(n.ID)
	if err := writeNoteFile(path, n); err != nil {
		var jsonErr *json.UnsupportedValueError
		if errors.As(err, &jsonErr) {
			return core.SerializationError(n.ID, err)
		}
		return core.IOError("save", path, err)
	}

	r.config.Logger.Debug("note saved", "id", n.ID, "path", path)
	return nil
}

// Get reads and decodes a single note.
func (r *Repository) Get(ctx context.Context, id string) (core.Note, error) {
	if !validID.MatchString(id) {
		return core.Note{}, core.NotFound(id)
	}

	path := r.filename(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.Note{}, core.NotFound(id)
		}
		return core.Note{}, core.IOError("read", path, err)
	}

	n, err := decode(data, id)
	if err != nil {
		return core.Note{}, core.SerializationError(path, err)
	}
	return n, nil
}

// Delete removes the file of a note.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if !validID.MatchString(id) {
		return core.NotFound(id)
	}

	path := r.filename(id)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.NotFound(id)
		}
		return core.IOError("delete", path, err)
	}

	r.config.Logger.Debug("note deleted", "id", id, "path", path)
	return nil
}

// List decodes every note file, newest-created first. Files that cannot be
// read or parsed are logged and skipped instead of failing the listing.
func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	names, err := r.noteFiles()
	if err != nil {
		return nil, err
	}

	notes := make([]core.Note, 0, len(names))
	skipped := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(r.Path, name)
		data, err := os.ReadFile(path)
		if err != nil {
			r.config.Logger.Warn("failed to read note file", "path", path, "error", err)
			skipped++
			continue
		}
		n, err := decode(data, strings.TrimSuffix(name, NoteExt))
		if err != nil {
			r.config.Logger.Warn("failed to parse note file", "path", path, "error", err)
			skipped++
			continue
		}
		notes = append(notes, n)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].ID < notes[j].ID
		}
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})

	r.recordScan(skipped)
	return notes, nil
}

// IDs returns the ids of all note files without decoding them.
func (r *Repository) IDs(ctx context.Context) ([]string, error) {
	names, err := r.noteFiles()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(names))
	for _, name := range names {
		ids = append(ids, strings.TrimSuffix(name, NoteExt))
	}
	return ids, nil
}

// noteFiles lists the file names that look like notes, sorted by name.
func (r *Repository) noteFiles() ([]string, error) {
	entries, err := os.ReadDir(r.Path)
	if err != nil {
		return nil, core.IOError("list", r.Path, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !isNoteFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func isNoteFile(name string) bool {
	if filepath.Ext(name) != NoteExt || strings.HasPrefix(name, TempFilePrefix) {
		return false
	}
	return validID.MatchString(strings.TrimSuffix(name, NoteExt))
}

// decode parses a note file. The stored id must match the file name id.
func decode(data []byte, id string) (core.Note, error) {
	var n core.Note
	if err := json.Unmarshal(data, &n); err != nil {
		return core.Note{}, fmt.Errorf("invalid json: %w", err)
	}
	if n.ID == "" {
		return core.Note{}, errors.New("note has no id")
	}
	if n.ID != id {
		return core.Note{}, fmt.Errorf("id %q does not match file name", n.ID)
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if n.Metadata == nil {
		n.Metadata = make(core.Metadata)
	}
	return n, nil
}
