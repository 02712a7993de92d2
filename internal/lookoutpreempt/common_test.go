package lookoutpreempt

import (
	"context"
	"sync"
	"time"

	"github.com/armadaproject/lookout-preempt/internal/common/armadacontext"
	"github.com/armadaproject/lookout-preempt/internal/common/database/lookout"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/repository"
	"github.com/armadaproject/lookout-preempt/internal/preemption"
	"github.com/armadaproject/lookout-preempt/internal/preemption/metrics"
	"github.com/armadaproject/lookout-preempt/pkg/client"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testJob(jobId, queue, jobSet string, state lookout.JobState) *model.Job {
	return &model.Job{
		JobId:              jobId,
		Queue:              queue,
		JobSet:             jobSet,
		Owner:              "user",
		State:              string(state),
		Submitted:          baseTime,
		LastTransitionTime: baseTime,
	}
}

// fakeJobsRepository supports exact queue and anyOf jobId filters, which is all the service sends on its own.
type fakeJobsRepository struct {
	jobs []*model.Job
	err  error

	mu      sync.Mutex
	filters [][]*model.Filter
}

func (r *fakeJobsRepository) GetJobs(_ *armadacontext.Context, filters []*model.Filter, _ *model.Order, skip int, take int) (*repository.GetJobsResult, error) {
	r.mu.Lock()
	r.filters = append(r.filters, filters)
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var matched []*model.Job
	for _, job := range r.jobs {
		if matches(job, filters) {
			matched = append(matched, job)
		}
	}
	if skip >= len(matched) {
		return &repository.GetJobsResult{Jobs: []*model.Job{}}, nil
	}
	end := skip + take
	if end > len(matched) {
		end = len(matched)
	}
	return &repository.GetJobsResult{Jobs: matched[skip:end]}, nil
}

func matches(job *model.Job, filters []*model.Filter) bool {
	for _, filter := range filters {
		switch filter.Field {
		case "queue":
			if job.Queue != filter.Value {
				return false
			}
		case "jobId":
			if !containsJobId(filter.Value, job.JobId) {
				return false
			}
		}
	}
	return true
}

func containsJobId(value interface{}, jobId string) bool {
	switch ids := value.(type) {
	case []string:
		for _, id := range ids {
			if id == jobId {
				return true
			}
		}
	case []interface{}:
		for _, id := range ids {
			if id == jobId {
				return true
			}
		}
	case string:
		return ids == jobId
	}
	return false
}

type fakeSubmitClient struct {
	// job set -> error returned for requests on that job set
	failures map[string]error

	mu       sync.Mutex
	requests []*client.JobPreemptRequest
}

func (c *fakeSubmitClient) PreemptJobs(ctx context.Context, request *client.JobPreemptRequest) error {
	// Like the REST client, a request on a cancelled context never reaches Armada.
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, request)
	return c.failures[request.JobSetId]
}

func testPreemptionConfig() preemption.Config {
	config := preemption.DefaultConfig()
	config.MaxBatchSize = 2
	config.FetchPageSize = 2
	return config
}

func newTestService(repo repository.GetJobsRepository, submitClient preemption.SubmitClient, m *metrics.Metrics) *PreemptService {
	config := testPreemptionConfig()
	return NewPreemptService(repo, preemption.NewPreempter(submitClient, config, m), config)
}
