package main

import (
	"errors"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/notes/internal/render"
	"github.com/aretw0/notes/pkg/core"
	"github.com/aretw0/notes/pkg/format"
)

func newImportCmd(a *app) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "import <file|glob>...",
		Short: "Import notes from JSON, YAML or Markdown files",
		Long: `Create one note per record of each file. Every record of a file is
validated before anything is written, so an invalid record aborts that file.
Arguments may be globs such as "archive/**/*.md"; "-" reads standard input
and requires --format.`,
		Example: "  notes import backup.json\n  notes import 'vault/**/*.md'",
		Args:    minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandImportArgs(args)
			if err != nil {
				return err
			}

			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			var created []core.Note
			for _, file := range files {
				res, err := a.importFile(cmd, svc, file, formatName)
				if err != nil {
					return err
				}
				created = append(created, res.Notes...)
				if !a.jsonOutput {
					a.printer().Imported(file, res)
				}
			}

			if a.jsonOutput {
				if created == nil {
					created = []core.Note{}
				}
				return render.JSON(a.stdout, created)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "", "Input format: json, yaml, markdown (md); inferred from the extension by default")
	return cmd
}

func (a *app) importFile(cmd *cobra.Command, svc *core.Service, file, formatName string) (core.ImportResult, error) {
	var (
		f   format.Format
		err error
	)
	switch {
	case formatName != "":
		f, err = format.Parse(formatName)
	case file == "-":
		err = core.InvalidInput("--format is required when reading standard input")
	default:
		f, err = format.FromExtension(file)
	}
	if err != nil {
		return core.ImportResult{}, err
	}

	dec, err := format.DecoderFor(f)
	if err != nil {
		return core.ImportResult{}, err
	}

	if file == "-" {
		return svc.Import(cmd.Context(), dec, a.stdin)
	}

	fh, err := os.Open(file)
	if err != nil {
		return core.ImportResult{}, core.IOError("open", file, err)
	}
	defer fh.Close()

	a.logger.Debug("importing", "file", file, "format", f)
	res, err := svc.Import(cmd.Context(), dec, fh)
	if err != nil {
		var e *core.Error
		if errors.As(err, &e) && e.Kind == core.KindSerialization && e.Path == "" {
			e.Path = file
		}
		return res, err
	}
	return res, nil
}

// expandImportArgs resolves glob arguments. Arguments without glob syntax
// are kept as given so a missing file is reported by name.
func expandImportArgs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		if arg == "-" || !hasMeta(arg) {
			files = append(files, arg)
			continue
		}
		if !doublestar.ValidatePattern(arg) {
			return nil, core.InvalidInput("invalid glob pattern %q", arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, core.IOError("glob", arg, err)
		}
		if len(matches) == 0 {
			return nil, core.InvalidInput("no files match %q", arg)
		}
		files = append(files, matches...)
	}
	return files, nil
}

func hasMeta(path string) bool {
	for _, c := range path {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
