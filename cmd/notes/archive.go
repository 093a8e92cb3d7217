package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/notes/internal/render"
)

// newArchiveCmd builds "archive" or, when archived is false, "unarchive".
func newArchiveCmd(a *app, archived bool) *cobra.Command {
	use, short := "archive <id>", "Archive a note"
	if !archived {
		use, short = "unarchive <id>", "Restore an archived note"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			res, err := svc.Archive(cmd.Context(), args[0], archived)
			if err != nil {
				return err
			}
			return a.emit(res.Note, func(p *render.Printer) { p.Archived(res, archived) })
		},
	}
}
