package main

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/pkg/core"
	"github.com/aretw0/notes/pkg/format"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		formatName string
		output     string
		tag        string
		archived   bool
		active     bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export notes as JSON, YAML, Markdown, text or HTML",
		Long: `Export notes to standard output or to a file.
Without --format the format is taken from the --output extension, then from
the export_format setting (markdown by default).`,
		Example: "  notes export -f md -t home\n  notes export -o backup.json",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.exportFormat(cmd, formatName, output)
			if err != nil {
				return err
			}
			enc, err := format.EncoderFor(f)
			if err != nil {
				return err
			}

			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			opts := core.ExportOptions{Tag: tag, Archived: archivedFilter(archived, active)}
			if output == "" || output == "-" {
				_, err := svc.Export(cmd.Context(), opts, enc, a.stdout)
				return err
			}

			var buf bytes.Buffer
			count, err := svc.Export(cmd.Context(), opts, enc, &buf)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
				return core.IOError("write", output, err)
			}
			a.logger.Debug("export written", "path", output, "notes", count, "format", f)
			a.printer().Exported(count, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "", "Output format: json, yaml, markdown (md), text (txt), html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of standard output")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Only notes with this tag")
	cmd.Flags().BoolVar(&archived, "archived", false, "Only archived notes")
	cmd.Flags().BoolVar(&active, "active", false, "Only notes that are not archived")
	cmd.MarkFlagsMutuallyExclusive("archived", "active")
	return cmd
}

func (a *app) exportFormat(cmd *cobra.Command, name, output string) (format.Format, error) {
	if cmd.Flags().Changed("format") {
		return format.Parse(name)
	}
	if output != "" && output != "-" {
		if f, err := format.FromExtension(output); err == nil {
			return f, nil
		}
	}
	return format.Parse(a.cfg.ExportFormat)
}
