package cmd

import (
	"github.com/spf13/cobra"

	"github.com/armadaproject/lookout-preempt/internal/armadactl"
)

func getCmd() *cobra.Command {
	a := armadactl.New()
	cmd := &cobra.Command{
		Use:   "get",
		Short: "List the jobs matching the given filters.",
		Args:  cobra.ExactArgs(0),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := jobFilterArgsFromFlags(cmd)
			if err != nil {
				return err
			}
			return a.GetJobs(filters)
		},
	}
	addJobFilterFlags(cmd)
	return cmd
}
