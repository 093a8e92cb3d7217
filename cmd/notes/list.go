package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/notes/internal/render"
	"github.com/aretw0/notes/pkg/core"
)

func newListCmd(a *app) *cobra.Command {
	var (
		tag      string
		limit    int
		archived bool
		active   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, newest first",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			notes, err := svc.List(cmd.Context(), core.ListOptions{
				Tag:      tag,
				Limit:    a.limitFlag(cmd, limit),
				Archived: archivedFilter(archived, active),
			})
			if err != nil {
				return err
			}
			return a.emit(notes, func(p *render.Printer) { p.NoteList(notes) })
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Filter by tag")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Limit number of results (0 for all)")
	cmd.Flags().BoolVar(&archived, "archived", false, "Only archived notes")
	cmd.Flags().BoolVar(&active, "active", false, "Only notes that are not archived")
	cmd.MarkFlagsMutuallyExclusive("archived", "active")
	return cmd
}
