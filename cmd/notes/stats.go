package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/notes/internal/render"
)

func newStatsCmd(a *app) *cobra.Command {
	var state bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise the stored notes",
		Long: `Count notes, archived notes, words and tag usage.
--state prints the internal state of the service and storage as JSON.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			st, err := svc.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if state {
				return render.JSON(a.stdout, map[string]any{
					"component": svc.ComponentType(),
					"state":     svc.State(),
				})
			}
			return a.emit(st, func(p *render.Printer) { p.Stats(st) })
		},
	}

	cmd.Flags().BoolVar(&state, "state", false, "Print service and storage state as JSON")
	return cmd
}
