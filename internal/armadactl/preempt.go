package armadactl

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/armadaproject/lookout-preempt/internal/common/armadacontext"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/repository"
	"github.com/armadaproject/lookout-preempt/internal/preemption"
)

type PreemptArgs struct {
	Filters JobFilterArgs
	Reason  string
	// Only print the jobs that would be preempted.
	DryRun bool
}

// PreemptJobs preempts every job matching args.Filters that has not yet terminated, then prints the state of those
// jobs once Armada has had RefetchDelay to act on the request.
func (a *App) PreemptJobs(args *PreemptArgs) error {
	if args.Filters.IsEmpty() {
		return errors.New("refusing to preempt without any filter: select jobs by queue, job set, job id, state, owner or annotation")
	}
	filters, err := args.Filters.Filters()
	if err != nil {
		return errors.WithMessage(err, "invalid job filter")
	}
	config := a.Params.Preemption
	ctx := armadacontext.Background()

	jobsSource, err := a.Params.JobsSource(a.Params.ApiConnectionDetails)
	if err != nil {
		return errors.WithMessage(err, "error connecting to lookout")
	}
	jobs, truncated, err := repository.GetAllJobs(ctx, jobsSource, filters, model.DefaultOrder(), config.FetchPageSize, config.MaxJobsToFetch)
	if err != nil {
		return errors.WithMessage(err, "error fetching jobs to preempt")
	}
	if truncated {
		fmt.Fprintf(a.Out, "More than %d jobs match the filters; only the first %d will be considered\n", config.MaxJobsToFetch, config.MaxJobsToFetch)
	}

	preemptible, terminated := preemption.FilterPreemptible(jobs)
	if len(terminated) > 0 {
		fmt.Fprintf(a.Out, "%d of the selected jobs are already in a terminated state and will be skipped\n", len(terminated))
	}
	if len(preemptible) == 0 {
		fmt.Fprintf(a.Out, "No selected jobs can be preempted\n")
		return nil
	}

	fmt.Fprintf(a.Out, "The following %d jobs will be preempted:\n", len(preemptible))
	fmt.Fprint(a.Out, jobsTable(preemptible, nil))
	if args.DryRun {
		fmt.Fprintf(a.Out, "Dry run: no jobs were preempted\n")
		return nil
	}

	submitClient, err := a.Params.SubmitClient(a.Params.ApiConnectionDetails)
	if err != nil {
		return errors.WithMessage(err, "error connecting to armada")
	}
	outcome, err := preemption.NewPreempter(submitClient, config, nil).PreemptJobs(ctx, preemptible, args.Reason)
	if err != nil {
		return errors.WithMessage(err, "error preempting jobs")
	}

	fmt.Fprintf(a.Out, "\nPreemption requests:\n")
	fmt.Fprint(a.Out, jobsTable(preemptible, outcome.StatusByJobId()))
	_, message := outcome.Summary()
	fmt.Fprintf(a.Out, "%s\n", message)

	a.printRefetchedJobs(ctx, jobsSource, preemptible, config)

	if len(outcome.FailedJobs) == 0 {
		return nil
	}
	var result *multierror.Error
	for _, reason := range outcome.ErrorReasons() {
		result = multierror.Append(result, errors.New(reason))
	}
	return errors.WithMessagef(result.ErrorOrNil(), "%d of %d jobs failed to preempt", len(outcome.FailedJobs), outcome.NumJobs())
}

// printRefetchedJobs waits for RefetchDelay and prints the current state of jobs. Failing to read the jobs again
// doesn't change the outcome of the preemption, so errors are only logged.
func (a *App) printRefetchedJobs(ctx *armadacontext.Context, jobsSource repository.GetJobsRepository, jobs []*model.Job, config preemption.Config) {
	if config.RefetchDelay > 0 {
		a.Clock.Sleep(config.RefetchDelay)
	}
	jobIds := (&preemption.JobBatch{Jobs: jobs}).JobIds()
	filters := []*model.Filter{{Field: "jobId", Match: model.MatchAnyOf, Value: jobIds}}
	refetched, _, err := repository.GetAllJobs(ctx, jobsSource, filters, model.DefaultOrder(), config.FetchPageSize, len(jobIds))
	if err != nil {
		ctx.Log.WithError(err).Warn("Failed to fetch job states after preemption")
		return
	}
	fmt.Fprintf(a.Out, "\nJob states after %s:\n", config.RefetchDelay.Round(time.Millisecond))
	fmt.Fprint(a.Out, jobsTable(refetched, nil))
}
