package config

import (
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindCommandlineArguments binds the parsed command line flags into the global viper instance.
func BindCommandlineArguments() error {
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return errors.WithMessage(err, "error binding command line flags")
	}
	return nil
}

// LoadConfig reads the default config.yaml from defaultPath, merges each of overrideConfigs on top of it in order,
// applies environment variables with the given prefix, and decodes the result into config.
func LoadConfig(config interface{}, defaultPath string, overrideConfigs []string, envPrefix string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(defaultPath)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "error reading base config from %s", defaultPath)
	}
	log.Infof("Read base config from %s", v.ConfigFileUsed())

	for _, configPath := range overrideConfigs {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			return errors.Wrapf(err, "error reading config from %s", configPath)
		}
		log.Infof("Read config from %s", v.ConfigFileUsed())
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.Unmarshal(config, CustomHooks...); err != nil {
		return errors.Wrap(err, "error decoding config")
	}
	return nil
}
