package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/notes/internal/render"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		Aliases: []string{"view"},
		Short:   "Show a specific note",
		Long:    "Show a note by id or by a unique id prefix of at least 4 characters.",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			n, err := svc.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(n, func(p *render.Printer) { p.NoteDetail(n) })
		},
	}
}
