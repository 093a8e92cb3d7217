package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	notelifecycle "github.com/aretw0/notes/pkg/adapters/lifecycle"
	"github.com/aretw0/notes/pkg/core"
)

func newWatchCmd(a *app) *cobra.Command {
	var types []string

	cmd := &cobra.Command{
		Use:   "watch [pattern]",
		Short: "Print changes to the notes directory as they happen",
		Long: `Watch the notes directory and print one line per created, modified or
deleted note until interrupted. The optional pattern is a glob matched
against note ids (default "*").`,
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := "*"
			if len(args) == 1 {
				pattern = args[0]
			}

			filter, err := parseEventTypes(types)
			if err != nil {
				return err
			}

			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			events, err := svc.Watch(ctx, pattern)
			if err != nil {
				return err
			}

			src := notelifecycle.NewSource(events, filter...)
			if err := src.Start(ctx); err != nil {
				return err
			}
			a.logger.Info("watching for changes", "pattern", pattern)

			enc := json.NewEncoder(a.stdout)
			p := a.printer()
			for ev := range src.Events() {
				e, ok := ev.(core.Event)
				if !ok {
					continue
				}
				if a.jsonOutput {
					if err := enc.Encode(e); err != nil {
						return err
					}
					continue
				}
				p.Event(e)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&types, "type", nil, "Only report these event types (create, modify, delete)")
	return cmd
}

func parseEventTypes(names []string) ([]core.EventType, error) {
	var types []core.EventType
	for _, name := range names {
		t := core.EventType(strings.ToUpper(strings.TrimSpace(name)))
		switch t {
		case core.EventCreate, core.EventModify, core.EventDelete:
			types = append(types, t)
		default:
			return nil, core.InvalidInput("unknown event type %q", name)
		}
	}
	return types, nil
}
