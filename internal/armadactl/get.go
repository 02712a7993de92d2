package armadactl

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/armadaproject/lookout-preempt/internal/common/armadacontext"
	"github.com/armadaproject/lookout-preempt/internal/common/util"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/repository"
)

// GetJobs prints the jobs matching filters, up to MaxJobsToFetch of them.
func (a *App) GetJobs(filters *JobFilterArgs) error {
	lookoutFilters, err := filters.Filters()
	if err != nil {
		return errors.WithMessage(err, "invalid job filter")
	}
	config := a.Params.Preemption
	jobsSource, err := a.Params.JobsSource(a.Params.ApiConnectionDetails)
	if err != nil {
		return errors.WithMessage(err, "error connecting to lookout")
	}
	jobs, truncated, err := repository.GetAllJobs(armadacontext.Background(), jobsSource, lookoutFilters, model.DefaultOrder(), config.FetchPageSize, config.MaxJobsToFetch)
	if err != nil {
		return errors.WithMessage(err, "error fetching jobs")
	}
	if len(jobs) == 0 {
		fmt.Fprintf(a.Out, "No jobs match the filters\n")
		return nil
	}
	fmt.Fprint(a.Out, jobsTable(jobs, nil))
	if truncated {
		fmt.Fprintf(a.Out, "Showing the first %d matching jobs\n", len(jobs))
	}
	return nil
}

// jobsTable renders jobs as a table. When statuses is set, each row also shows the status recorded for the job.
func jobsTable(jobs []*model.Job, statuses map[string]string) string {
	table := util.NewTableBuilder()
	header := []string{"JOB ID", "QUEUE", "JOB SET", "STATE", "SUBMITTED"}
	if statuses != nil {
		header = append(header, "PREEMPTION")
	}
	table.WriteRow(header...)
	for _, job := range jobs {
		row := []string{job.JobId, job.Queue, job.JobSet, job.State, formatTime(job.Submitted)}
		if statuses != nil {
			row = append(row, statuses[job.JobId])
		}
		table.WriteRow(row...)
	}
	return table.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
