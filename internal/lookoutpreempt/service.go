package lookoutpreempt

import (
	"context"

	"github.com/pkg/errors"

	"github.com/armadaproject/lookout-preempt/internal/common/armadacontext"
	"github.com/armadaproject/lookout-preempt/internal/common/slices"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/repository"
	"github.com/armadaproject/lookout-preempt/internal/preemption"
)

const noPreemptibleJobsMessage = "None of the selected jobs can be preempted."

// SelectedJobs are the jobs a request selected, split by whether they can still be preempted.
type SelectedJobs struct {
	Preemptible []*model.Job
	Terminated  []*model.Job
	// Set when more jobs matched than the service is configured to consider.
	Truncated bool
}

type PreemptResult struct {
	Selected *SelectedJobs
	Outcome  *preemption.Outcome
}

// Summary returns the severity and message to show the operator.
func (r *PreemptResult) Summary() (preemption.Severity, string) {
	if len(r.Selected.Preemptible) == 0 {
		return preemption.SeverityWarning, noPreemptibleJobsMessage
	}
	return r.Outcome.Summary()
}

// PreemptService selects jobs from the Lookout database and preempts them through Armada.
type PreemptService struct {
	jobsRepository repository.GetJobsRepository
	preempter      *preemption.Preempter
	config         preemption.Config
}

func NewPreemptService(jobsRepository repository.GetJobsRepository, preempter *preemption.Preempter, config preemption.Config) *PreemptService {
	return &PreemptService{
		jobsRepository: jobsRepository,
		preempter:      preempter,
		config:         config,
	}
}

// SelectJobs returns the jobs matching every filter and, when jobIds is not empty, having one of the given ids.
func (s *PreemptService) SelectJobs(ctx *armadacontext.Context, filters []*model.Filter, jobIds []string) (*SelectedJobs, error) {
	allFilters := slices.Filter(filters, func(f *model.Filter) bool { return f != nil })
	if len(jobIds) > 0 {
		allFilters = append(allFilters, &model.Filter{Field: "jobId", Match: model.MatchAnyOf, Value: slices.Unique(jobIds)})
	}
	jobs, truncated, err := repository.GetAllJobs(ctx, s.jobsRepository, allFilters, model.DefaultOrder(), s.config.FetchPageSize, s.config.MaxJobsToFetch)
	if err != nil {
		return nil, errors.WithMessage(err, "error selecting jobs")
	}
	preemptible, terminated := preemption.FilterPreemptible(jobs)
	return &SelectedJobs{Preemptible: preemptible, Terminated: terminated, Truncated: truncated}, nil
}

// Preempt preempts every selected job that has not terminated yet.
func (s *PreemptService) Preempt(ctx *armadacontext.Context, filters []*model.Filter, jobIds []string, reason string) (*PreemptResult, error) {
	ctx = armadacontext.WithLogField(ctx, "reason", reason)
	selected, err := s.SelectJobs(ctx, filters, jobIds)
	if err != nil {
		return nil, err
	}
	if len(selected.Terminated) > 0 {
		ctx.Log.Infof("Skipping %d jobs that have already terminated", len(selected.Terminated))
	}
	// Once requests start going out, the caller going away must not turn the remaining batches into failures.
	preemptCtx := armadacontext.New(context.WithoutCancel(ctx), ctx.Log)
	outcome, err := s.preempter.PreemptJobs(preemptCtx, selected.Preemptible, reason)
	if err != nil {
		return nil, err
	}
	return &PreemptResult{Selected: selected, Outcome: outcome}, nil
}
