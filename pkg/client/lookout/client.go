package lookout

import (
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/armadaproject/lookout-preempt/internal/common/armadacontext"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/repository"
	"github.com/armadaproject/lookout-preempt/pkg/client"
)

const getJobsPath = "/api/v1/jobs"

type getJobsRequest struct {
	Filters []*model.Filter `json:"filters"`
	Order   *model.Order    `json:"order,omitempty"`
	Skip    int             `json:"skip"`
	Take    int             `json:"take"`
}

type getJobsResponse struct {
	Jobs []*model.Job `json:"jobs"`
}

// Client reads jobs from the Lookout API.
type Client struct {
	client *resty.Client
}

func New(apiConnectionDetails *client.ApiConnectionDetails) (*Client, error) {
	if apiConnectionDetails == nil || apiConnectionDetails.LookoutUrl == "" {
		return nil, errors.New("no Lookout url configured")
	}
	return &Client{client: client.CreateRestClient(apiConnectionDetails, apiConnectionDetails.LookoutUrl)}, nil
}

var _ repository.GetJobsRepository = &Client{}

func (c *Client) GetJobs(ctx *armadacontext.Context, filters []*model.Filter, order *model.Order, skip int, take int) (*repository.GetJobsResult, error) {
	if filters == nil {
		filters = []*model.Filter{}
	}
	requestId := uuid.NewString()
	ctx.Log.WithField("requestId", requestId).Debugf("fetching jobs from lookout, skip %d take %d", skip, take)

	response := &getJobsResponse{}
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(client.RequestIdHeader, requestId).
		SetBody(&getJobsRequest{Filters: filters, Order: order, Skip: skip, Take: take}).
		SetResult(response).
		Post(getJobsPath)
	if err != nil {
		return nil, errors.Wrap(err, "error fetching jobs from lookout")
	}
	if !resp.IsSuccess() {
		return nil, errors.WithMessage(client.ApiErrorFromResponse(resp), "error fetching jobs from lookout")
	}
	return &repository.GetJobsResult{Jobs: response.Jobs}, nil
}
