package preemption

import (
	"github.com/pkg/errors"

	"github.com/armadaproject/lookout-preempt/internal/common/database/lookout"
	"github.com/armadaproject/lookout-preempt/internal/common/slices"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
)

// JobBatch is a set of jobs sharing a queue and job set, small enough to be preempted with one request.
type JobBatch struct {
	Queue  string
	JobSet string
	Jobs   []*model.Job
}

func (b *JobBatch) JobIds() []string {
	return slices.Map(b.Jobs, func(job *model.Job) string { return job.JobId })
}

// CreateJobBatches splits jobs into batches of at most maxBatchSize jobs each, where all jobs in a batch share a
// queue and job set. Batches are ordered by queue, then by job set within the queue, each in the order first seen.
// Jobs keep their input order within a batch.
func CreateJobBatches(jobs []*model.Job, maxBatchSize int) ([]*JobBatch, error) {
	if maxBatchSize < 1 {
		return nil, errors.Errorf("max batch size must be at least 1, got %d", maxBatchSize)
	}
	queues, jobsByQueue := slices.GroupByFuncOrdered(jobs, func(job *model.Job) string { return job.Queue })
	var batches []*JobBatch
	for _, queue := range queues {
		jobSets, jobsByJobSet := slices.GroupByFuncOrdered(jobsByQueue[queue], func(job *model.Job) string { return job.JobSet })
		for _, jobSet := range jobSets {
			var current *JobBatch
			for _, job := range jobsByJobSet[jobSet] {
				if current == nil || len(current.Jobs) >= maxBatchSize {
					current = &JobBatch{Queue: queue, JobSet: jobSet}
					batches = append(batches, current)
				}
				current.Jobs = append(current.Jobs, job)
			}
		}
	}
	return batches, nil
}

// FilterPreemptible splits jobs into those that can still be preempted and those already in a terminal state.
func FilterPreemptible(jobs []*model.Job) (preemptible []*model.Job, terminated []*model.Job) {
	for _, job := range jobs {
		if lookout.IsTerminated(lookout.JobState(job.State)) {
			terminated = append(terminated, job)
		} else {
			preemptible = append(preemptible, job)
		}
	}
	return preemptible, terminated
}
