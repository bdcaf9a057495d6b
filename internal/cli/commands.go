package cli

import (
	"context"
	"encoding/json"

	"github.com/okian/sideline/internal/adapters/batch"
	"github.com/okian/sideline/internal/app"
	"github.com/okian/sideline/internal/domain/binding"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ErrUsage marks errors in how the command was invoked.
var ErrUsage = errors.New("usage")

// input is everything an operation may consume besides the client.
type input struct {
	data []byte
	ids  []int64
	pool *batch.Pool
}

type runner func(ctx context.Context, c *app.Client, in input) (any, error)

// idResult is the printed outcome of one id in a multi-id run.
type idResult struct {
	ID    int64  `json:"id"`
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

var commands = map[string]runner{
	binding.AmountList.Name:        body((*app.Client).GetAmountList),
	binding.AmountAddByNum.Name:    body((*app.Client).AddAmountByNum),
	binding.AmountAddByZodiac.Name: body((*app.Client).AddAmountByZodiac),
	binding.AmountAddCustom.Name:   body((*app.Client).AddAmountCustom),
	binding.AmountDelete.Name:      byID((*app.Client).DeleteAmount),

	binding.NumberAdd.Name:    body((*app.Client).AddNumber),
	binding.NumberDelete.Name: byID((*app.Client).DeleteNumber),
	binding.NumberUpdate.Name: body((*app.Client).UpdateNumber),
	binding.NumberDetail.Name: byID((*app.Client).GetNumberDetail),

	binding.ZodiacList.Name:     bare((*app.Client).GetZodiacList),
	binding.ZodiacAdd.Name:      body((*app.Client).AddZodiac),
	binding.ZodiacUpdate.Name:   body((*app.Client).UpdateZodiac),
	binding.ZodiacDelete.Name:   byID((*app.Client).DeleteZodiac),
	binding.ZodiacHomeType.Name: bare((*app.Client).GetZodiacHomeType),
}

// body decodes --data into the operation's params. No data means zero params.
func body[T, R any](fn func(*app.Client, context.Context, T) (R, error)) runner {
	return func(ctx context.Context, c *app.Client, in input) (any, error) {
		if len(in.ids) > 0 {
			return nil, errors.Wrap(ErrUsage, "operation takes --data, not ids")
		}
		var params T
		if len(in.data) > 0 {
			if !gjson.ValidBytes(in.data) {
				return nil, errors.Wrap(ErrUsage, "--data is not valid JSON")
			}
			if err := json.Unmarshal(in.data, &params); err != nil {
				return nil, errors.Wrapf(ErrUsage, "--data: %v", err)
			}
		}
		return fn(c, ctx, params)
	}
}

// byID runs the operation once per id. A single id prints its result as is;
// several ids print one entry per id and fail if any id failed.
func byID[R any](fn func(*app.Client, context.Context, int64) (R, error)) runner {
	return func(ctx context.Context, c *app.Client, in input) (any, error) {
		if len(in.data) > 0 {
			return nil, errors.Wrap(ErrUsage, "operation takes ids, not --data")
		}
		switch len(in.ids) {
		case 0:
			return nil, errors.Wrap(ErrUsage, "operation needs at least one id")
		case 1:
			return fn(c, ctx, in.ids[0])
		}

		results := in.pool.Run(ctx, in.ids, func(ctx context.Context, id int64) (any, error) {
			return fn(c, ctx, id)
		})
		out := make([]idResult, len(results))
		for i, r := range results {
			out[i] = idResult{ID: r.ID, Value: r.Value}
			if r.Err != nil {
				out[i] = idResult{ID: r.ID, Error: r.Err.Error()}
			}
		}
		return out, batch.Errors(results)
	}
}

func bare[R any](fn func(*app.Client, context.Context) (R, error)) runner {
	return func(ctx context.Context, c *app.Client, in input) (any, error) {
		if len(in.ids) > 0 || len(in.data) > 0 {
			return nil, errors.Wrap(ErrUsage, "operation takes no input")
		}
		return fn(c, ctx)
	}
}
