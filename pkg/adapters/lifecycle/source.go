// Package lifecycle exposes note change events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notes/pkg/core"
)

type eventSource struct {
	events <-chan core.Event
	types  map[core.EventType]bool
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that forwards note events.
// When types are given, only events of those types are forwarded.
func NewSource(events <-chan core.Event, types ...core.EventType) lifecycle.Source {
	s := &eventSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	if len(types) > 0 {
		s.types = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			s.types[t] = true
		}
	}
	return s
}

func (s *eventSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start runs the bridge until ctx is done or the upstream channel closes.
// The Events channel is closed when it stops.
func (s *eventSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if s.types != nil && !s.types[e.Type] {
					continue
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
