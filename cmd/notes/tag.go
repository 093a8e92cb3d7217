package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/notes/internal/render"
)

func newTagCmd(a *app) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:     "tag <id> <tag>...",
		Short:   "Add or remove tags on a note",
		Example: "  notes tag 3f2a urgent work\n  notes tag 3f2a work --remove",
		Args:    minArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			res, err := svc.Tag(cmd.Context(), args[0], args[1:], remove)
			if err != nil {
				return err
			}
			return a.emit(res.Note, func(p *render.Printer) { p.Tagged(res) })
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the tags instead of adding them")
	return cmd
}
