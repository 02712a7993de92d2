package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/armadaproject/lookout-preempt/internal/armadactl"
	"github.com/armadaproject/lookout-preempt/internal/common/config"
)

func preemptCmd() *cobra.Command {
	return preemptCmdWithApp(armadactl.New())
}

func preemptCmdWithApp(a *armadactl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preempt",
		Short: "Preempt the Armada jobs matching the given filters.",
		Long: `Preempt the Armada jobs matching the given filters.

Jobs are looked up in Lookout. Jobs that have already terminated are skipped, the rest are
preempted in batches of at most --batch-size jobs sharing a queue and job set.`,
		Args: cobra.ExactArgs(0),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initParams(cmd, a.Params); err != nil {
				return err
			}
			return preemptionConfigFromFlags(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := jobFilterArgsFromFlags(cmd)
			if err != nil {
				return err
			}
			reason, err := cmd.Flags().GetString("reason")
			if err != nil {
				return errors.WithMessage(err, "error reading reason")
			}
			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				return errors.WithMessage(err, "error reading dry-run")
			}
			return a.PreemptJobs(&armadactl.PreemptArgs{
				Filters: *filters,
				Reason:  reason,
				DryRun:  dryRun,
			})
		},
	}
	addJobFilterFlags(cmd)
	cmd.Flags().String("reason", "", "Reason for preemption")
	cmd.Flags().Bool("dry-run", false, "Print the jobs that would be preempted without preempting them")
	cmd.Flags().Int("batch-size", 0, "Maximum number of jobs per preempt request")
	cmd.Flags().Int("max-concurrent-batches", 0, "Maximum number of preempt requests in flight")
	cmd.Flags().Duration("refetch-delay", 0, "How long to wait before showing job states after preempting")
	cmd.Flags().Int("max-jobs", 0, "Maximum number of jobs to select")
	return cmd
}

// preemptionConfigFromFlags overrides the preemption config with any flag the user set.
func preemptionConfigFromFlags(cmd *cobra.Command, a *armadactl.App) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("batch-size") {
		if a.Params.Preemption.MaxBatchSize, err = flags.GetInt("batch-size"); err != nil {
			return err
		}
	}
	if flags.Changed("max-concurrent-batches") {
		if a.Params.Preemption.MaxConcurrentBatches, err = flags.GetInt("max-concurrent-batches"); err != nil {
			return err
		}
	}
	if flags.Changed("refetch-delay") {
		if a.Params.Preemption.RefetchDelay, err = flags.GetDuration("refetch-delay"); err != nil {
			return err
		}
	}
	if flags.Changed("max-jobs") {
		if a.Params.Preemption.MaxJobsToFetch, err = flags.GetInt("max-jobs"); err != nil {
			return err
		}
	}
	return config.Validate(a.Params.Preemption)
}
