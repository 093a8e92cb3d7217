package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/internal/render"
	"github.com/aretw0/notes/pkg/core"
)

func newMetaCmd(a *app) *cobra.Command {
	var unset []string

	cmd := &cobra.Command{
		Use:   "meta <id> [key=value...]",
		Short: "Show or change the metadata of a note",
		Long: `Without assignments, print the metadata of a note.
Each key=value argument sets a key; --unset removes one (repeatable).`,
		Example: "  notes meta 3f2a source=book author=\"A. Writer\" --unset draft",
		Args:    minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			if len(set) == 0 && len(unset) == 0 {
				n, err := svc.Show(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.emit(n.Metadata, func(p *render.Printer) { p.NoteDetail(n) })
			}

			res, err := svc.SetMetadata(cmd.Context(), args[0], set, unset)
			if err != nil {
				return err
			}
			return a.emit(res.Note, func(p *render.Printer) { p.MetadataChanged(res) })
		},
	}

	cmd.Flags().StringArrayVar(&unset, "unset", nil, "Metadata key to remove (repeatable)")
	return cmd
}

// parseAssignments reads key=value pairs. The value may contain '='.
func parseAssignments(args []string) (map[string]string, error) {
	set := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, core.InvalidInput("expected key=value, got %q", arg)
		}
		if err := core.ValidateMetadataKey(key); err != nil {
			return nil, err
		}
		set[key] = value
	}
	return set, nil
}
