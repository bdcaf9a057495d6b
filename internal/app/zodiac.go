package app

import (
	"context"

	"github.com/okian/sideline/internal/domain/binding"
	"github.com/okian/sideline/internal/domain/types"
)

// GetZodiacList lists every zodiac with its numbers.
func (c *Client) GetZodiacList(ctx context.Context) ([]types.ZodiacList, error) {
	return call[[]types.ZodiacList](ctx, c.r, binding.ZodiacList.Bare())
}

// AddZodiac creates a zodiac and returns its id.
func (c *Client) AddZodiac(ctx context.Context, params types.AddZodiacParams) (int64, error) {
	return call[int64](ctx, c.r, binding.ZodiacAdd.Body(params))
}

// UpdateZodiac rewrites a zodiac and returns its id.
func (c *Client) UpdateZodiac(ctx context.Context, params types.UpdateZodiacParams) (int64, error) {
	return call[int64](ctx, c.r, binding.ZodiacUpdate.Body(params))
}

// DeleteZodiac removes a zodiac.
func (c *Client) DeleteZodiac(ctx context.Context, id int64) (bool, error) {
	return callByID[bool](ctx, c.r, binding.ZodiacDelete, id)
}

// GetZodiacHomeType lists the home-type options.
func (c *Client) GetZodiacHomeType(ctx context.Context) ([]types.HomeType, error) {
	return call[[]types.HomeType](ctx, c.r, binding.ZodiacHomeType.Bare())
}
