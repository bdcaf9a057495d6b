package app

import (
	"context"

	"github.com/okian/sideline/internal/domain/binding"
	"github.com/okian/sideline/internal/domain/types"
)

// AddNumber assigns a number to a zodiac and returns its id.
func (c *Client) AddNumber(ctx context.Context, params types.AddNumberParams) (int64, error) {
	return call[int64](ctx, c.r, binding.NumberAdd.Body(params))
}

// DeleteNumber removes a number.
func (c *Client) DeleteNumber(ctx context.Context, id int64) (bool, error) {
	return callByID[bool](ctx, c.r, binding.NumberDelete, id)
}

// UpdateNumber rewrites a number.
func (c *Client) UpdateNumber(ctx context.Context, params types.UpdateNumberParams) (bool, error) {
	return call[bool](ctx, c.r, binding.NumberUpdate.Body(params))
}

// GetNumberDetail fetches a single number.
func (c *Client) GetNumberDetail(ctx context.Context, id int64) (types.NumberDetail, error) {
	return callByID[types.NumberDetail](ctx, c.r, binding.NumberDetail, id)
}
