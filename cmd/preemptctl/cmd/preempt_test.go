package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armadaproject/lookout-preempt/internal/armadactl"
	"github.com/armadaproject/lookout-preempt/internal/common/armadacontext"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/repository"
	"github.com/armadaproject/lookout-preempt/internal/preemption"
	"github.com/armadaproject/lookout-preempt/pkg/client"
)

type staticJobsSource struct {
	jobs    []*model.Job
	filters []*model.Filter
}

func (s *staticJobsSource) GetJobs(_ *armadacontext.Context, filters []*model.Filter, _ *model.Order, skip int, _ int) (*repository.GetJobsResult, error) {
	s.filters = filters
	if skip > 0 {
		return &repository.GetJobsResult{}, nil
	}
	return &repository.GetJobsResult{Jobs: s.jobs}, nil
}

func testRootCmd(a *armadactl.App) *cobra.Command {
	root := &cobra.Command{Use: "preemptctl", SilenceUsage: true}
	root.PersistentFlags().String("config", "", "")
	client.AddArmadaApiConnectionCommandlineArgs(root)
	root.AddCommand(preemptCmdWithApp(a))
	return root
}

func TestPreemptCmd_DryRun(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfgFile := filepath.Join(t.TempDir(), "preemptctl.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
lookoutUrl: lookout.example.com
preemption:
  maxConcurrentBatches: 4
  refetchDelay: 2s
`), 0o600))

	jobsSource := &staticJobsSource{jobs: []*model.Job{{JobId: "job-1", Queue: "queue-a", JobSet: "set-1", State: "RUNNING"}}}
	out := &bytes.Buffer{}
	a := armadactl.New()
	a.Out = out
	a.Params.JobsSource = func(*client.ApiConnectionDetails) (repository.GetJobsRepository, error) {
		return jobsSource, nil
	}
	a.Params.SubmitClient = func(*client.ApiConnectionDetails) (preemption.SubmitClient, error) {
		t.Fatal("a dry run must not connect to armada")
		return nil, nil
	}

	root := testRootCmd(a)
	root.SetArgs([]string{
		"preempt",
		"--config", cfgFile,
		"--armadaUrl", "armada.example.com:443",
		"--queue", "queue-a",
		"--states", "running,pending",
		"--annotations", "team=infra",
		"--batch-size", "5",
		"--dry-run",
	})
	require.NoError(t, root.Execute())

	assert.Equal(t, "armada.example.com:443", a.Params.ApiConnectionDetails.ArmadaUrl)
	assert.Equal(t, "lookout.example.com", a.Params.ApiConnectionDetails.LookoutUrl)
	assert.Equal(t, 5, a.Params.Preemption.MaxBatchSize)
	assert.Equal(t, 4, a.Params.Preemption.MaxConcurrentBatches)
	assert.Equal(t, 2*time.Second, a.Params.Preemption.RefetchDelay)
	assert.Equal(t, preemption.DefaultConfig().MaxJobsToFetch, a.Params.Preemption.MaxJobsToFetch)

	assert.Equal(t, []*model.Filter{
		{Field: "queue", Match: model.MatchExact, Value: "queue-a"},
		{Field: "state", Match: model.MatchAnyOf, Value: []string{"RUNNING", "PENDING"}},
		{Field: "team", Match: model.MatchExact, Value: "infra", IsAnnotation: true},
	}, jobsSource.filters)
	assert.Contains(t, out.String(), "job-1")
	assert.Contains(t, out.String(), "Dry run: no jobs were preempted")
}

func TestPreemptCmd_FromFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	selectionFile := filepath.Join(t.TempDir(), "selection.yaml")
	require.NoError(t, os.WriteFile(selectionFile, []byte(`
queue: queue-b
jobIds:
  - job-1
  - job-2
`), 0o600))

	jobsSource := &staticJobsSource{}
	a := armadactl.New()
	a.Out = &bytes.Buffer{}
	a.Params.JobsSource = func(*client.ApiConnectionDetails) (repository.GetJobsRepository, error) {
		return jobsSource, nil
	}

	root := testRootCmd(a)
	root.SetArgs([]string{
		"preempt",
		"--config", writeEmptyConfig(t),
		"--lookoutUrl", "lookout.example.com",
		"-f", selectionFile,
		"--queue", "queue-a",
		"--dry-run",
	})
	require.NoError(t, root.Execute())

	assert.Equal(t, []*model.Filter{
		{Field: "queue", Match: model.MatchExact, Value: "queue-a"},
		{Field: "jobId", Match: model.MatchAnyOf, Value: []string{"job-1", "job-2"}},
	}, jobsSource.filters)
}

func TestPreemptCmd_InvalidBatchSize(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	a := armadactl.New()
	a.Out = &bytes.Buffer{}
	root := testRootCmd(a)
	root.SetArgs([]string{"preempt", "--config", writeEmptyConfig(t), "--queue", "queue-a", "--batch-size", "0"})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}

func TestPreemptCmd_RejectsArguments(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	a := armadactl.New()
	root := testRootCmd(a)
	root.SetArgs([]string{"preempt", "job-1"})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}

func writeEmptyConfig(t *testing.T) string {
	cfgFile := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("{}\n"), 0o600))
	return cfgFile
}
