package repository

import (
	"github.com/pkg/errors"

	"github.com/armadaproject/lookout-preempt/internal/common/armadacontext"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
)

// GetAllJobs pages through repo until every job matching filters has been read, or maxJobs have been read.
// The boolean result reports whether the result was cut short by maxJobs.
func GetAllJobs(
	ctx *armadacontext.Context,
	repo GetJobsRepository,
	filters []*model.Filter,
	order *model.Order,
	pageSize int,
	maxJobs int,
) ([]*model.Job, bool, error) {
	if pageSize <= 0 {
		return nil, false, errors.Errorf("page size must be greater than zero, got %d", pageSize)
	}
	if maxJobs <= 0 {
		return nil, false, errors.Errorf("max jobs must be greater than zero, got %d", maxJobs)
	}
	var jobs []*model.Job
	for {
		take := pageSize
		if remaining := maxJobs - len(jobs); remaining < take {
			take = remaining + 1
		}
		result, err := repo.GetJobs(ctx, filters, order, len(jobs), take)
		if err != nil {
			return nil, false, errors.WithMessagef(err, "error fetching jobs from offset %d", len(jobs))
		}
		jobs = append(jobs, result.Jobs...)
		if len(jobs) > maxJobs {
			return jobs[:maxJobs], true, nil
		}
		if len(result.Jobs) < take {
			return jobs, false, nil
		}
	}
}
