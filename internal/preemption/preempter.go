package preemption

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/armadaproject/lookout-preempt/internal/common/armadacontext"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
	"github.com/armadaproject/lookout-preempt/internal/preemption/metrics"
	"github.com/armadaproject/lookout-preempt/pkg/client"
)

type SubmitClient interface {
	PreemptJobs(ctx context.Context, request *client.JobPreemptRequest) error
}

// Preempter sends preempt requests to Armada, one per batch of jobs.
type Preempter struct {
	submitClient SubmitClient
	config       Config
	metrics      *metrics.Metrics
}

type batchResult struct {
	batch *JobBatch
	err   error
}

func NewPreempter(submitClient SubmitClient, config Config, metrics *metrics.Metrics) *Preempter {
	return &Preempter{
		submitClient: submitClient,
		config:       config,
		metrics:      metrics,
	}
}

// PreemptJobs requests preemption of every job in jobs. A failed request marks all jobs of its batch as failed but
// never stops the other batches, so the returned error is only set when no request could be attempted at all.
func (p *Preempter) PreemptJobs(ctx *armadacontext.Context, jobs []*model.Job, reason string) (*Outcome, error) {
	if p.config.MaxConcurrentBatches < 1 {
		return nil, errors.Errorf("max concurrent batches must be at least 1, got %d", p.config.MaxConcurrentBatches)
	}
	batches, err := CreateJobBatches(jobs, p.config.MaxBatchSize)
	if err != nil {
		return nil, errors.WithMessage(err, "error batching jobs for preemption")
	}
	outcome := &Outcome{}
	if len(batches) == 0 {
		return outcome, nil
	}
	ctx.Log.Infof("Preempting %d jobs in %d batches", len(jobs), len(batches))

	results := make(chan batchResult, len(batches))
	g, groupCtx := armadacontext.ErrGroup(ctx)
	g.SetLimit(p.config.MaxConcurrentBatches)
	for _, batch := range batches {
		batch := batch
		g.Go(func() error {
			results <- p.preemptBatch(groupCtx, batch, reason)
			return nil
		})
	}
	// No goroutine returns an error, so Wait only waits.
	_ = g.Wait()
	close(results)

	for result := range results {
		if result.err == nil {
			outcome.addSuccess(result.batch)
		} else {
			outcome.addFailure(result.batch, ErrorMessage(result.err))
		}
	}
	ctx.Log.Infof("Preemption requested for %d jobs, %d failed", len(outcome.SuccessfulJobIds), len(outcome.FailedJobs))
	return outcome, nil
}

func (p *Preempter) preemptBatch(ctx *armadacontext.Context, batch *JobBatch, reason string) batchResult {
	ctx = armadacontext.WithLogFields(ctx, logrus.Fields{
		"queue":   batch.Queue,
		"jobSet":  batch.JobSet,
		"numJobs": len(batch.Jobs),
	})
	start := time.Now()
	err := p.submitClient.PreemptJobs(ctx, &client.JobPreemptRequest{
		JobIds:   batch.JobIds(),
		JobSetId: batch.JobSet,
		Queue:    batch.Queue,
		Reason:   reason,
	})
	p.metrics.RecordBatch(err, len(batch.Jobs), time.Since(start))
	if err != nil {
		ctx.Log.WithError(err).Warn("Failed to preempt batch")
		return batchResult{batch: batch, err: err}
	}
	ctx.Log.Debug("Preempted batch")
	return batchResult{batch: batch}
}
