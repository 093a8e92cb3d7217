package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/internal/platform"
	"github.com/aretw0/notes/internal/render"
	"github.com/aretw0/notes/pkg/core"
)

// app carries the global flags and the lazily opened service of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	dir        string
	configPath string
	verbose    bool
	jsonOutput bool

	cfg    *platform.Config
	logger *slog.Logger
	svc    *core.Service
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "notes",
		Short: "A command-line note-taking tool",
		Long: `notes keeps titled, tagged notes as JSON files in a directory.
Create, list, search, tag, archive, export and import them from the terminal.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := platform.LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := slog.LevelInfo
			if a.verbose || cfg.Verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			a.logger = slog.New(slog.NewTextHandler(a.stderr, opts))
			slog.SetDefault(a.logger)
			return nil
		},
	}

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return core.InvalidInput("%v", err)
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.dir, "dir", "", "Notes directory (default $NOTES_DIR, a .notes store above the working directory, or ~/.notes)")
	flags.StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/notes/config.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(
		newCreateCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newSearchCmd(a),
		newTagCmd(a),
		newArchiveCmd(a, true),
		newArchiveCmd(a, false),
		newMetaCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newStatsCmd(a),
		newWatchCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// service opens the notes store on first use.
func (a *app) service(cmd *cobra.Command) (*core.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	dir, err := a.cfg.ResolveDir(a.dir)
	if err != nil {
		return nil, err
	}

	svc, err := platform.New(cmd.Context(), dir, platform.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	a.svc = svc
	return svc, nil
}

func (a *app) printer() *render.Printer {
	return render.New(a.stdout)
}

// emit writes v as JSON when --json is set, otherwise calls human.
func (a *app) emit(v any, human func(p *render.Printer)) error {
	if a.jsonOutput {
		return render.JSON(a.stdout, v)
	}
	human(a.printer())
	return nil
}

// limitFlag returns --limit, or the configured default when the flag is absent.
func (a *app) limitFlag(cmd *cobra.Command, limit int) int {
	if cmd.Flags().Changed("limit") {
		return limit
	}
	return a.cfg.DefaultLimit
}

// exactArgs is cobra.ExactArgs reporting InvalidInput.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return core.InvalidInput("%v", err)
		}
		return nil
	}
}

// minArgs is cobra.MinimumNArgs reporting InvalidInput.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return core.InvalidInput("%v", err)
		}
		return nil
	}
}

// maxArgs is cobra.MaximumNArgs reporting InvalidInput.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return core.InvalidInput("%v", err)
		}
		return nil
	}
}

func boolPtr(b bool) *bool {
	return &b
}

// archivedFilter turns --archived / --active into a filter.
func archivedFilter(archived, active bool) *bool {
	switch {
	case archived:
		return boolPtr(true)
	case active:
		return boolPtr(false)
	default:
		return nil
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of notes",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonOutput {
				return render.JSON(a.stdout, map[string]string{"version": Version})
			}
			fmt.Fprintf(a.stdout, "notes version %s\n", Version)
			return nil
		},
	}
}
