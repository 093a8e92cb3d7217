package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/internal/render"
	"github.com/aretw0/notes/pkg/core"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		inContent bool
		tag       string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search notes by title, content or tag",
		Long: `Case-insensitive substring search over titles, content and tags.
With --in-content only the content is searched. Results keep the list order.`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			notes, err := svc.Search(cmd.Context(), core.SearchOptions{
				Query:     strings.Join(args, " "),
				InContent: inContent,
				Tag:       tag,
				Limit:     a.limitFlag(cmd, limit),
			})
			if err != nil {
				return err
			}
			return a.emit(notes, func(p *render.Printer) { p.NoteList(notes) })
		},
	}

	cmd.Flags().BoolVar(&inContent, "in-content", false, "Search only in note content")
	cmd.Flags().StringVar(&tag, "tag", "", "Only notes with this tag")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Limit number of results (0 for all)")
	return cmd
}
