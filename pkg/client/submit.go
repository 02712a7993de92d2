package client

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/armadaproject/lookout-preempt/internal/common/requestid"
)

const (
	preemptJobsPath = "/v1/job/preempt"
	RequestIdHeader = requestid.HeaderKey
)

type JobPreemptRequest struct {
	JobIds   []string `json:"jobIds"`
	JobSetId string   `json:"jobSetId"`
	Queue    string   `json:"queue"`
	Reason   string   `json:"reason,omitempty"`
}

// RestSubmitClient talks to the Armada submit API through its REST gateway.
type RestSubmitClient struct {
	client *resty.Client
}

func NewRestSubmitClient(apiConnectionDetails *ApiConnectionDetails) *RestSubmitClient {
	return &RestSubmitClient{client: CreateRestClient(apiConnectionDetails, apiConnectionDetails.ArmadaUrl)}
}

// PreemptJobs asks Armada to preempt every job in request. The jobs must all belong to request.Queue and request.JobSetId.
// The request id carried by ctx is forwarded, so that Armada logs can be matched to the caller.
func (c *RestSubmitClient) PreemptJobs(ctx context.Context, request *JobPreemptRequest) error {
	id, ok := requestid.FromContext(ctx)
	if !ok {
		id = uuid.NewString()
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(RequestIdHeader, id).
		SetBody(request).
		Post(preemptJobsPath)
	if err != nil {
		return errors.Wrapf(err, "error sending preempt request for job set %s in queue %s", request.JobSetId, request.Queue)
	}
	if !resp.IsSuccess() {
		return ApiErrorFromResponse(resp)
	}
	return nil
}
