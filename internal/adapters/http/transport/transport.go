// Package transport performs the HTTP round trips behind the endpoint
// bindings: URL resolution, body and query encoding, authentication, the
// backend response envelope, logging and metrics.
package transport

import (
	"context"

	"github.com/okian/sideline/internal/domain/binding"
)

// Requester executes one invocation and decodes the backend payload into out.
// out may be nil when the caller does not need the payload.
type Requester interface {
	Request(ctx context.Context, inv binding.Invocation, out any) error
}

// RequesterFunc adapts a function to Requester.
type RequesterFunc func(ctx context.Context, inv binding.Invocation, out any) error

// Request calls f.
func (f RequesterFunc) Request(ctx context.Context, inv binding.Invocation, out any) error {
	return f(ctx, inv, out)
}
