package app

import (
	"context"

	"github.com/okian/sideline/internal/domain/binding"
	"github.com/okian/sideline/internal/domain/types"
)

// GetAmountList returns one page of amount records.
func (c *Client) GetAmountList(ctx context.Context, params types.AmountListParams) (types.AmountListResponse, error) {
	return call[types.AmountListResponse](ctx, c.r, binding.AmountList.Body(params))
}

// AddAmountByNum stakes an amount on each listed number and returns the record id.
func (c *Client) AddAmountByNum(ctx context.Context, params types.AddAmountByNumParams) (int64, error) {
	return call[int64](ctx, c.r, binding.AmountAddByNum.Body(params))
}

// AddAmountByZodiac stakes an amount on each number of the listed zodiacs.
func (c *Client) AddAmountByZodiac(ctx context.Context, params types.AddAmountByZodiacParams) (int64, error) {
	return call[int64](ctx, c.r, binding.AmountAddByZodiac.Body(params))
}

// AddAmountCustom stakes a per-number amount.
func (c *Client) AddAmountCustom(ctx context.Context, params types.AddAmountCustomParams) (int64, error) {
	return call[int64](ctx, c.r, binding.AmountAddCustom.Body(params))
}

// DeleteAmount removes an amount record.
func (c *Client) DeleteAmount(ctx context.Context, id int64) (bool, error) {
	return callByID[bool](ctx, c.r, binding.AmountDelete, id)
}
