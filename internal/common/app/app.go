package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/armadaproject/lookout-preempt/internal/common/armadacontext"
)

// CreateContextWithShutdown returns a context that is cancelled on SIGINT or SIGTERM, and a func that stops
// listening for signals and cancels the context.
func CreateContextWithShutdown() (*armadacontext.Context, func()) {
	ctx, cancel := armadacontext.WithCancel(armadacontext.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-c:
			ctx.Log.Infof("Received %s, shutting down", sig)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(c)
		cancel()
	}
}
