package preemption

import (
	"github.com/pkg/errors"

	"github.com/armadaproject/lookout-preempt/internal/common/util"
	"github.com/armadaproject/lookout-preempt/pkg/client"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"

	StatusSuccess = "Success"

	successMessage        = "Successfully began preemption. Jobs may take some time to be preempted."
	partialFailureMessage = "Some jobs failed to preempt. See table for job statuses."
	totalFailureMessage   = "All jobs failed to preempt. See table for error responses."
)

type FailedJob struct {
	JobId       string `json:"jobId"`
	ErrorReason string `json:"errorReason"`
}

// Outcome records the result of preempting a set of jobs. Every job passed in appears in exactly one of the lists.
type Outcome struct {
	SuccessfulJobIds []string
	FailedJobs       []FailedJob
}

func (o *Outcome) NumJobs() int {
	return len(o.SuccessfulJobIds) + len(o.FailedJobs)
}

// Summary returns the message an operator should see once preemption has been requested.
func (o *Outcome) Summary() (Severity, string) {
	switch {
	case len(o.FailedJobs) == 0:
		return SeveritySuccess, successMessage
	case len(o.SuccessfulJobIds) == 0:
		return SeverityError, totalFailureMessage
	default:
		return SeverityWarning, partialFailureMessage
	}
}

// StatusByJobId maps each job id to "Success" or to the reason its preemption failed.
func (o *Outcome) StatusByJobId() map[string]string {
	statuses := make(map[string]string, o.NumJobs())
	for _, jobId := range o.SuccessfulJobIds {
		statuses[jobId] = StatusSuccess
	}
	for _, failed := range o.FailedJobs {
		statuses[failed.JobId] = failed.ErrorReason
	}
	return statuses
}

// ErrorReasons returns the distinct failure reasons, in the order they were first seen.
func (o *Outcome) ErrorReasons() []string {
	var reasons []string
	seen := make(map[string]bool)
	for _, failed := range o.FailedJobs {
		if !seen[failed.ErrorReason] {
			seen[failed.ErrorReason] = true
			reasons = append(reasons, failed.ErrorReason)
		}
	}
	return reasons
}

func (o *Outcome) addSuccess(batch *JobBatch) {
	o.SuccessfulJobIds = append(o.SuccessfulJobIds, batch.JobIds()...)
}

func (o *Outcome) addFailure(batch *JobBatch, reason string) {
	for _, jobId := range batch.JobIds() {
		o.FailedJobs = append(o.FailedJobs, FailedJob{JobId: jobId, ErrorReason: reason})
	}
}

// ErrorMessage converts err into a message fit to show next to a job. Errors returned by the Armada API are reduced
// to the message the server sent.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	message := err.Error()
	var apiErr *client.ApiError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = apiErr.Message
	}
	if message == "" {
		message = "unknown error"
	}
	return util.Truncate(message, util.MaxMessageLength)
}
