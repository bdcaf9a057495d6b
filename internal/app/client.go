// Package app exposes the zodiac admin operations as typed methods. Each
// method builds one invocation from the binding table and hands it to the
// injected Requester; results and errors come back exactly as the requester
// produced them.
package app

import (
	"context"

	"github.com/okian/sideline/internal/adapters/http/transport"
	"github.com/okian/sideline/internal/domain/binding"
)

// Client is the endpoint binding surface. It holds no mutable state and is
// safe for concurrent use when its Requester is.
type Client struct {
	r transport.Requester
}

// New binds the operations to r.
func New(r transport.Requester) *Client {
	return &Client{r: r}
}

func call[T any](ctx context.Context, r transport.Requester, inv binding.Invocation) (T, error) {
	var out T
	err := r.Request(ctx, inv, &out)
	return out, err
}

func callByID[T any](ctx context.Context, r transport.Requester, b binding.Binding, id int64) (T, error) {
	inv, err := b.ByID(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return call[T](ctx, r, inv)
}
