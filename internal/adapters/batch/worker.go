package batch

import (
	"context"

	"github.com/okian/sideline/pkg/logger"
	"github.com/okian/sideline/pkg/metrics"
)

type worker struct {
	name    string
	fn      Func
	logger  logger.Logger
	metrics *metrics.Manager
}

// run drains jobs until the channel is empty. After cancellation the
// remaining jobs are marked with ctx.Err() instead of being executed.
func (w *worker) run(ctx context.Context, jobs <-chan job, results []Result) {
	for j := range jobs {
		if err := ctx.Err(); err != nil {
			results[j.index].Err = err
			w.metrics.RecordBatchJob(metrics.OutcomeFailure)
			continue
		}

		value, err := w.fn(ctx, j.id)
		results[j.index].Value = value
		results[j.index].Err = err

		if err != nil {
			w.metrics.RecordBatchJob(metrics.OutcomeFailure)
			w.logger.Warn(ctx, "job failed",
				logger.String("worker", w.name),
				logger.Int64("id", j.id),
				logger.Error(err),
			)
			continue
		}
		w.metrics.RecordBatchJob(metrics.OutcomeSuccess)
		w.logger.Debug(ctx, "job done", logger.String("worker", w.name), logger.Int64("id", j.id))
	}
}
