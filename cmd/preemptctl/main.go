package main

import (
	"os"

	"github.com/armadaproject/lookout-preempt/cmd/preemptctl/cmd"
	"github.com/armadaproject/lookout-preempt/internal/common/logging"
)

func main() {
	logging.ConfigureCliLogging()
	if err := cmd.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
