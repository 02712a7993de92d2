package cmd

import (
	"github.com/spf13/cobra"

	"github.com/armadaproject/lookout-preempt/internal/armadactl"
)

func versionCmd() *cobra.Command {
	a := armadactl.New()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print client version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Version()
		},
	}
	return cmd
}
