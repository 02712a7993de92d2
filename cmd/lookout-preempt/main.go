package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/armadaproject/lookout-preempt/internal/common/app"
	"github.com/armadaproject/lookout-preempt/internal/common/config"
	"github.com/armadaproject/lookout-preempt/internal/common/logging"
	"github.com/armadaproject/lookout-preempt/internal/lookoutpreempt"
)

const CustomConfigLocation string = "config"

func init() {
	pflag.StringSlice(
		CustomConfigLocation,
		[]string{},
		"Fully qualified path to application configuration file (for multiple config files repeat this arg or separate paths with commas)",
	)
	pflag.Parse()
}

func main() {
	logging.ConfigureCliLogging()
	if err := config.BindCommandlineArguments(); err != nil {
		log.Fatal(err)
	}

	var cfg lookoutpreempt.LookoutPreemptConfig
	userSpecifiedConfigs := viper.GetStringSlice(CustomConfigLocation)
	if err := config.LoadConfig(&cfg, "./config/lookout-preempt", userSpecifiedConfigs, "LOOKOUT_PREEMPT"); err != nil {
		log.Fatal(err)
	}
	if err := config.Validate(cfg); err != nil {
		os.Exit(1)
	}

	ctx, cleanup := app.CreateContextWithShutdown()
	defer cleanup()

	if err := lookoutpreempt.Serve(ctx, cfg); err != nil {
		logging.WithStacktrace(ctx.Log, err).Error("Lookout preempt service failed")
		cleanup()
		os.Exit(1)
	}
}
