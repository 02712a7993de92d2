package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/armadaproject/lookout-preempt/internal/armadactl"
	"github.com/armadaproject/lookout-preempt/internal/common/config"
	"github.com/armadaproject/lookout-preempt/pkg/client"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preemptctl",
		Short: "preemptctl preempts Armada jobs selected through Lookout.",
		Long: `preemptctl preempts Armada jobs selected through Lookout.

Persistent config can be saved in a config file so it doesn't have to be specified every command.

Example structure:
armadaUrl: armada.example.com:443
lookoutUrl: lookout.example.com:443
basicAuth:
  username: user1
  password: password123
preemption:
  maxBatchSize: 5000
  refetchDelay: 1s

The location of this file can be passed in using the --config argument.
If not provided, $HOME/.preemptctl.yaml is used.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "config file (default is $HOME/.preemptctl.yaml)")
	client.AddArmadaApiConnectionCommandlineArgs(cmd)

	cmd.AddCommand(
		preemptCmd(),
		getCmd(),
		versionCmd(),
	)

	return cmd
}

func initParams(cmd *cobra.Command, params *armadactl.Params) error {
	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return errors.WithMessage(err, "error reading config flag")
	}
	if err := client.LoadCommandlineArgsFromConfigFile(cfgFile); err != nil {
		return err
	}
	params.ApiConnectionDetails, err = client.ExtractCommandlineArmadaApiConnectionDetails()
	if err != nil {
		return err
	}
	if viper.IsSet("preemption") {
		if err := viper.UnmarshalKey("preemption", &params.Preemption, config.CustomHooks...); err != nil {
			return errors.Wrap(err, "error decoding preemption config")
		}
	}
	return nil
}
