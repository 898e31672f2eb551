package img2ascii

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Job is one input and output file pair for ConvertBatch.
type Job struct {
	Input  string
	Output string
}

// JobResult reports the outcome of one Job.
type JobResult struct {
	Job      Job
	Result   *Result
	Err      error
	Duration time.Duration
}

// ConvertBatch converts every job, running up to the configured number
// of workers at once. A failed job never stops the others; each result
// carries its own error. Once ctx is done no further jobs are started
// and the remaining results report ctx.Err(). Results are in job order.
func (c *Converter) ConvertBatch(ctx context.Context, jobs []Job, threshold float64) []JobResult {
	results := make([]JobResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(c.workers)
	for i, job := range jobs {
		results[i].Job = job
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			// Go may have waited for a free slot.
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			start := time.Now()
			res, err := c.ConvertFile(job.Input, job.Output, threshold)
			results[i].Result = res
			results[i].Err = err
			results[i].Duration = time.Since(start)
			if err != nil {
				c.logger.Warn("job failed", "input", job.Input, "kind", KindOf(err), "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Failed returns the results that carry an error.
func Failed(results []JobResult) []JobResult {
	var failed []JobResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
