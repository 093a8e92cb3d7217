package notes

import (
	"context"
	"log/slog"

	"github.com/aretw0/notes/internal/platform"
	"github.com/aretw0/notes/pkg/core"
)

// --- Configuration ---

// Option defines a functional option for opening a notes store.
type Option = platform.Option

// Config is the file and environment configuration of the notes CLI.
type Config = platform.Config

// WithLogger sets the logger for the store and the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithMustExist ensures the notes directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the store into a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox applied to `go run` invocations.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New opens the notes store at dir and returns the service.
func New(ctx context.Context, dir string, opts ...Option) (*core.Service, error) {
	return platform.New(ctx, dir, opts...)
}

// Init opens the store at dir and returns the bare repository.
func Init(ctx context.Context, dir string, opts ...Option) (core.Repository, error) {
	return platform.Init(ctx, dir, opts...)
}

// LoadConfig reads the config file at path (or the default location) and
// the NOTES_* environment.
func LoadConfig(path string) (*Config, error) {
	return platform.LoadConfig(path)
}

// --- Safety & Utils ---

// ResolvePath determines the actual store path based on safety rules.
func ResolvePath(userPath string, forceTemp bool) string {
	return platform.ResolvePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindStore looks upwards from startDir for a .notes directory.
func FindStore(startDir string) (string, error) {
	return platform.FindStore(startDir)
}
