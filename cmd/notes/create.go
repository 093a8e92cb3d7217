package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/internal/render"
	"github.com/aretw0/notes/pkg/core"
)

func newCreateCmd(a *app) *cobra.Command {
	var (
		content string
		tags    []string
	)

	cmd := &cobra.Command{
		Use:     "create <title>",
		Aliases: []string{"new", "add"},
		Short:   "Create a new note",
		Long: `Create a new note with a title, optional content and tags.
Pass "-c -" to read the content from standard input.`,
		Example: `  notes create "Groceries" -c "milk, eggs" -t home -t errand`,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if content == "-" {
				data, err := io.ReadAll(a.stdin)
				if err != nil {
					return core.IOError("read", "stdin", err)
				}
				content = strings.TrimRight(string(data), "\n")
			}

			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			n, err := svc.Create(cmd.Context(), core.CreateInput{
				Title:   args[0],
				Content: content,
				Tags:    tags,
			})
			if err != nil {
				return err
			}
			return a.emit(n, func(p *render.Printer) { p.Created(n) })
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "Content of the note")
	cmd.Flags().StringArrayVarP(&tags, "tags", "t", nil, "Tag for the note (repeatable)")
	return cmd
}
