package client

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func AddArmadaApiConnectionCommandlineArgs(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("armadaUrl", "localhost:8080", "specify armada server REST url")
	viper.BindPFlag("armadaUrl", rootCmd.PersistentFlags().Lookup("armadaUrl"))
	rootCmd.PersistentFlags().String("lookoutUrl", "localhost:10000", "specify lookout server url")
	viper.BindPFlag("lookoutUrl", rootCmd.PersistentFlags().Lookup("lookoutUrl"))
	rootCmd.PersistentFlags().Bool("forceNoTls", false, "use plain http even for non-local servers")
	viper.BindPFlag("forceNoTls", rootCmd.PersistentFlags().Lookup("forceNoTls"))
}

func LoadCommandlineArgsFromConfigFile(cfgFile string) error {
	exePath, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "error finding executable path")
	}
	viper.SetConfigFile(filepath.Join(filepath.Dir(exePath), "preemptctl-defaults.yaml"))
	if err := viper.ReadInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError, *os.PathError:
			// No default config is fine
		default:
			return errors.Wrapf(err, "error reading config file %s", viper.ConfigFileUsed())
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return errors.Wrap(err, "error getting user home directory")
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".preemptctl")
	}

	viper.AutomaticEnv()

	if err := viper.MergeInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// Only returned when looking for ~/.preemptctl, which users don't have to create
		default:
			return errors.Wrapf(err, "error reading config file %s", viper.ConfigFileUsed())
		}
	}
	return nil
}

func ExtractCommandlineArmadaApiConnectionDetails() (*ApiConnectionDetails, error) {
	apiConnectionDetails := &ApiConnectionDetails{}
	if err := viper.Unmarshal(apiConnectionDetails); err != nil {
		return nil, errors.Wrap(err, "error decoding api connection details")
	}
	return apiConnectionDetails, nil
}
