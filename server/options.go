package server

import (
	"log/slog"

	"github.com/smartransfer/routes/advisor"
	"github.com/smartransfer/routes/engine"
	"github.com/smartransfer/routes/server/config"
)

type Option func(s *Server)

// WithLogger specifies the logger for the server
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithConfig specifies the config for the server
func WithConfig(c *config.Config) Option {
	return func(s *Server) {
		s.config = c
	}
}

// WithCatalog specifies the provider catalog used for evaluations
func WithCatalog(providers []*engine.Provider) Option {
	return func(s *Server) {
		s.catalog = providers
	}
}

// WithAdvisor specifies the route review advisor
func WithAdvisor(a *advisor.Advisor) Option {
	return func(s *Server) {
		s.advisor = a
	}
}
