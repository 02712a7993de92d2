package lookout

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/armadaproject/lookout-preempt/internal/common/util"
)

type JobState string

const (
	JobQueued    JobState = "QUEUED"
	JobLeased    JobState = "LEASED"
	JobPending   JobState = "PENDING"
	JobRunning   JobState = "RUNNING"
	JobSucceeded JobState = "SUCCEEDED"
	JobFailed    JobState = "FAILED"
	JobCancelled JobState = "CANCELLED"
	JobPreempted JobState = "PREEMPTED"
	JobRejected  JobState = "REJECTED"

	JobQueuedOrdinal    = 1
	JobPendingOrdinal   = 2
	JobRunningOrdinal   = 3
	JobSucceededOrdinal = 4
	JobFailedOrdinal    = 5
	JobCancelledOrdinal = 6
	JobPreemptedOrdinal = 7
	JobLeasedOrdinal    = 8
	JobRejectedOrdinal  = 9
)

var (
	// JobStateMap maps the ordinal stored in the job.state column to its name
	JobStateMap = map[int]JobState{
		JobQueuedOrdinal:    JobQueued,
		JobLeasedOrdinal:    JobLeased,
		JobPendingOrdinal:   JobPending,
		JobRunningOrdinal:   JobRunning,
		JobSucceededOrdinal: JobSucceeded,
		JobFailedOrdinal:    JobFailed,
		JobCancelledOrdinal: JobCancelled,
		JobPreemptedOrdinal: JobPreempted,
		JobRejectedOrdinal:  JobRejected,
	}

	JobStateOrdinalMap = util.InverseMap(JobStateMap)

	terminatedJobStates = map[JobState]bool{
		JobSucceeded: true,
		JobFailed:    true,
		JobCancelled: true,
		JobPreempted: true,
		JobRejected:  true,
	}
)

// IsTerminated returns true if a job in this state can no longer be scheduled, run or preempted.
func IsTerminated(state JobState) bool {
	return terminatedJobStates[state]
}

// ParseJobState converts a case-insensitive state name into a JobState.
func ParseJobState(s string) (JobState, error) {
	state := JobState(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := JobStateOrdinalMap[state]; !ok {
		return "", errors.Errorf("unknown job state %q", s)
	}
	return state, nil
}
