package armadactl

import (
	"io"
	"os"

	"k8s.io/utils/clock"

	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/repository"
	"github.com/armadaproject/lookout-preempt/internal/preemption"
	"github.com/armadaproject/lookout-preempt/pkg/client"
	"github.com/armadaproject/lookout-preempt/pkg/client/lookout"
)

// App is the preemptctl application. Commands are methods on App and write their output to Out.
type App struct {
	Params *Params
	Out    io.Writer
	Clock  clock.Clock
}

// Params holds everything App needs to reach Armada and Lookout.
// The constructors are fields so that tests can swap in fakes.
type Params struct {
	ApiConnectionDetails *client.ApiConnectionDetails
	Preemption           preemption.Config

	JobsSource   func(*client.ApiConnectionDetails) (repository.GetJobsRepository, error)
	SubmitClient func(*client.ApiConnectionDetails) (preemption.SubmitClient, error)
}

// New instantiates an App with default parameters, talking to the real Armada and Lookout APIs.
func New() *App {
	return &App{
		Params: &Params{
			ApiConnectionDetails: &client.ApiConnectionDetails{},
			Preemption:           preemption.DefaultConfig(),
			JobsSource:           lookoutJobsSource,
			SubmitClient:         armadaSubmitClient,
		},
		Out:   os.Stdout,
		Clock: clock.RealClock{},
	}
}

func lookoutJobsSource(details *client.ApiConnectionDetails) (repository.GetJobsRepository, error) {
	return lookout.New(details)
}

func armadaSubmitClient(details *client.ApiConnectionDetails) (preemption.SubmitClient, error) {
	var submitClient preemption.SubmitClient
	err := client.WithSubmitClient(details, func(c *client.RestSubmitClient) error {
		submitClient = c
		return nil
	})
	return submitClient, err
}
