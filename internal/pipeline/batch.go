package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/keagan/overcut/internal/overlays"
)

// Job is one named request in a batch.
type Job struct {
	ID      string
	Request overlays.Request
}

// Result records the outcome of one batch job.
type Result struct {
	ID         string
	OutputPath string
	Err        error
}

// Failed reports whether the job ended in an error.
func (r Result) Failed() bool { return r.Err != nil }

// Batch runs jobs through a bounded worker pool. Requests are isolated:
// a failed job is recorded in its result and the batch continues.
func (e *Engine) Batch(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))

	g := new(errgroup.Group)
	g.SetLimit(e.concurrency)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			id := job.ID
			if id == "" {
				id = uuid.NewString()
			}

			logger := e.logger.With().Str("job", id).Logger()
			logger.Info().Str("output", job.Request.OutputPath).Msg("starting batch job")

			err := e.Apply(ctx, job.Request)
			if err != nil {
				logger.Error().Err(err).Msg("batch job failed")
			}

			results[i] = Result{
				ID:         id,
				OutputPath: job.Request.OutputPath,
				Err:        err,
			}
			return nil
		})
	}

	_ = g.Wait()

	failed := lo.CountBy(results, Result.Failed)
	e.logger.Info().
		Int("jobs", len(jobs)).
		Int("failed", failed).
		Msg("batch complete")

	return results
}
