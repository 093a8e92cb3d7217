package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/internal/render"
	"github.com/aretw0/notes/pkg/core"
)

func newDeleteCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Long:    "Delete a note. Asks for confirmation unless --force is given.",
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

			if !force {
				ok, err := a.confirm(fmt.Sprintf("Delete note [%s] %q? [y/N]: ", render.ShortID(n.ID), n.Title))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(a.stderr, "Deletion cancelled.")
					return nil
				}
			}

			deleted, err := svc.Delete(cmd.Context(), n.ID)
			if err != nil {
				return err
			}
			return a.emit(deleted, func(p *render.Printer) { p.Deleted(deleted) })
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without asking for confirmation")
	return cmd
}

// confirm asks a yes/no question on stderr and reads the answer from stdin,
// keeping stdout for the command result. End of input counts as "no".
func (a *app) confirm(prompt string) (bool, error) {
	fmt.Fprint(a.stderr, prompt)

	reader := bufio.NewReader(a.stdin)
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(a.stderr)
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	case "", "n", "no":
		return false, nil
	default:
		return false, core.InvalidInput("unrecognized answer %q", strings.TrimSpace(answer))
	}
}
