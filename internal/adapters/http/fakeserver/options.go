package fakeserver

import (
	"github.com/okian/sideline/pkg/logger"
	"github.com/okian/sideline/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Server.
type Option func(*Server)

// WithStore serves an existing store instead of a freshly seeded one.
func WithStore(st *Store) Option {
	return func(s *Server) {
		if st != nil {
			s.store = st
		}
	}
}

// WithToken requires "Authorization: Bearer <token>" on every API route.
// Requests without it get the logout code.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the manager recording per-route metrics and the gatherer
// served on /metrics.
func WithMetrics(m *metrics.Manager, g prometheus.Gatherer) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
		if g != nil {
			s.gatherer = g
		}
	}
}
