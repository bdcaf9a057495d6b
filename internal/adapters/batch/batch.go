// Package batch fans a list of ids out over a fixed number of workers and
// collects one result per id in input order.
package batch

import (
	"context"
	"errors"
	"runtime"
	"strconv"
	"sync"

	"github.com/okian/sideline/pkg/logger"
	"github.com/okian/sideline/pkg/metrics"
)

// Func handles one id.
type Func func(ctx context.Context, id int64) (any, error)

// Result is the outcome for one id.
type Result struct {
	ID    int64 `json:"id"`
	Value any   `json:"value,omitempty"`
	Err   error `json:"-"`
}

// job is one id and the slot its result goes to.
type job struct {
	index int
	id    int64
}

// Pool runs Funcs concurrently. A Pool holds no per-run state and may be
// reused and shared.
type Pool struct {
	workers int
	logger  logger.Logger
	metrics *metrics.Manager
}

// NewPool creates a pool of workerCount workers. Non-positive counts fall
// back to runtime.NumCPU().
func NewPool(workerCount int, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		workers: workerCount,
		logger:  logger.Nop(),
		metrics: metrics.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("batch")
	return p
}

// Workers returns the configured worker count.
func (p *Pool) Workers() int { return p.workers }

// Run calls fn once per id and returns the results in the order of ids.
// A failing id does not stop the others. Ids not yet started when ctx is
// canceled get ctx.Err().
func (p *Pool) Run(ctx context.Context, ids []int64, fn Func) []Result {
	results := make([]Result, len(ids))
	if len(ids) == 0 {
		return results
	}

	n := p.workers
	if n > len(ids) {
		n = len(ids)
	}
	p.metrics.UpdateBatchWorkers(n)
	defer p.metrics.UpdateBatchWorkers(0)

	jobs := make(chan job, len(ids))
	for i, id := range ids {
		results[i].ID = id
		jobs <- job{index: i, id: id}
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		w := &worker{name: "worker-" + strconv.Itoa(i), fn: fn, logger: p.logger, metrics: p.metrics}
		go func() {
			defer wg.Done()
			w.run(ctx, jobs, results)
		}()
	}
	wg.Wait()

	return results
}

// Errors joins the per-id errors of results, or returns nil when all
// succeeded.
func Errors(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, &IDError{ID: r.ID, Err: r.Err})
		}
	}
	return errors.Join(errs...)
}

// IDError ties an error to the id that produced it.
type IDError struct {
	ID  int64
	Err error
}

func (e *IDError) Error() string {
	return "id " + strconv.FormatInt(e.ID, 10) + ": " + e.Err.Error()
}

func (e *IDError) Unwrap() error { return e.Err }
