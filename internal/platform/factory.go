package platform

import (
	"context"
	"log/slog"

	"github.com/aretw0/notes/pkg/adapters/fs"
	"github.com/aretw0/notes/pkg/core"
)

// New opens the notes store at dir and returns the domain service.
//
//	svc, err := platform.New(ctx, "~/.notes", platform.WithLogger(logger))
func New(ctx context.Context, dir string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	repo, err := initRepository(ctx, dir, o)
	if err != nil {
		return nil, err
	}

	return core.NewService(repo, core.WithLogger(o.logger)), nil
}

// Init opens and initializes the repository at dir without building a service.
func Init(ctx context.Context, dir string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initRepository(ctx, dir, o)
}

func initRepository(ctx context.Context, dir string, o *options) (core.Repository, error) {
	if o.logger == nil {
		o.logger = slog.Default()
	}

	if o.repository != nil {
		return o.repository, nil
	}

	expanded, err := ExpandHome(dir)
	if err != nil {
		return nil, core.IOError("resolve", dir, err)
	}

	useTemp := o.forceTemp || (o.devSafety && IsDevRun())
	resolved := ResolvePath(expanded, useTemp)
	if resolved != expanded {
		o.logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", expanded, "resolved_path", resolved)
	}

	repo := fs.NewRepository(fs.Config{
		Path:      resolved,
		MustExist: o.mustExist,
		Logger:    o.logger,
	})

	if err := repo.Initialize(ctx); err != nil {
		return nil, err
	}

	o.logger.Debug("notes store ready", "path", resolved)
	return repo, nil
}
