package preemption

import (
	"github.com/armadaproject/lookout-preempt/internal/common/database/lookout"
	"github.com/armadaproject/lookout-preempt/internal/common/util"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
)

func testJobs(queue string, jobSet string, n int) []*model.Job {
	jobs := make([]*model.Job, n)
	for i, jobId := range util.NewULIDs(n) {
		jobs[i] = &model.Job{
			JobId:  jobId,
			Queue:  queue,
			JobSet: jobSet,
			State:  string(lookout.JobRunning),
		}
	}
	return jobs
}

func concat(jobLists ...[]*model.Job) []*model.Job {
	var jobs []*model.Job
	for _, list := range jobLists {
		jobs = append(jobs, list...)
	}
	return jobs
}
