package preemption

import "time"

type Config struct {
	// Maximum number of job ids sent in a single preempt request.
	MaxBatchSize int `validate:"gte=1"`
	// Maximum number of preempt requests in flight at once.
	MaxConcurrentBatches int `validate:"gte=1"`
	// How long to wait after preempting before reading job states again.
	RefetchDelay time.Duration `validate:"gte=0"`
	// Upper bound on the number of jobs a single preemption may select by filter.
	MaxJobsToFetch int `validate:"gte=1"`
	// Page size used when reading jobs from Lookout.
	FetchPageSize int `validate:"gte=1"`
}

func DefaultConfig() Config {
	return Config{
		MaxBatchSize:         10000,
		MaxConcurrentBatches: 10,
		RefetchDelay:         500 * time.Millisecond,
		MaxJobsToFetch:       10000,
		FetchPageSize:        1000,
	}
}
