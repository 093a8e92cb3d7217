package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	RepositoryType string `json:"repository_type"`
	LastOperation  string `json:"last_operation,omitempty"`
	Watchable      bool   `json:"watchable"`
	Repository     any    `json:"repository,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repoType := "unknown"
	var repoState any
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
		if in, ok := s.repo.(introspection.Introspectable); ok {
			repoState = in.State()
		}
	}
	_, watchable := s.repo.(Watchable)

	return ServiceState{
		RepositoryType: repoType,
		LastOperation:  s.lastOp,
		Watchable:      watchable,
		Repository:     repoState,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
