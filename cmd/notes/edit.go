package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/notes/internal/render"
	"github.com/aretw0/notes/pkg/core"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		title   string
		content string
		tags    []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing note",
		Long: `Edit the title, content or tags of a note.
--tags replaces the whole tag list and may be repeated; pass --tags "" to clear it.
Nothing is written when every field already has the given value.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in core.UpdateInput
			if cmd.Flags().Changed("title") {
				in.Title = &title
			}
			if cmd.Flags().Changed("content") {
				in.Content = &content
			}
			if cmd.Flags().Changed("tags") {
				kept := make([]string, 0, len(tags))
				for _, t := range tags {
					if t != "" {
						kept = append(kept, t)
					}
				}
				in.Tags = &kept
			}

			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			res, err := svc.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return a.emit(res.Note, func(p *render.Printer) { p.Updated(res) })
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title for the note")
	cmd.Flags().StringVarP(&content, "content", "c", "", "New content for the note")
	cmd.Flags().StringArrayVar(&tags, "tags", nil, "New tag (repeatable, replaces existing)")
	return cmd
}
