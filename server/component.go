package server

import (
	"context"
	"fmt"

	"github.com/kbukum/pronounce/component"
)

var (
	_ component.Component   = (*Server)(nil)
	_ component.Describable = (*Server)(nil)
)

// Name implements component.Component.
func (s *Server) Name() string { return "http-server" }

// Health reports healthy once the listener is bound.
func (s *Server) Health(context.Context) component.Health {
	s.mu.Lock()
	bound := s.listener != nil
	s.mu.Unlock()
	if !bound {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "not listening"}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

// Describe implements component.Describable.
func (s *Server) Describe() component.Description {
	return component.Description{
		Type:    "server",
		Details: fmt.Sprintf("%s, %d routes, body limit %s", s.config.Addr(), len(s.engine.Routes()), s.config.MaxBodySize),
	}
}
