package lookoutpreempt

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/armadaproject/lookout-preempt/internal/common/armadacontext"
	"github.com/armadaproject/lookout-preempt/internal/common/database"
	"github.com/armadaproject/lookout-preempt/internal/common/health"
	"github.com/armadaproject/lookout-preempt/internal/common/logging"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/repository"
	"github.com/armadaproject/lookout-preempt/internal/preemption"
	"github.com/armadaproject/lookout-preempt/internal/preemption/metrics"
	"github.com/armadaproject/lookout-preempt/pkg/client"
)

// Serve runs the preemption API until ctx is cancelled.
func Serve(ctx *armadacontext.Context, config LookoutPreemptConfig) error {
	if err := logging.ConfigureApplicationLogging(config.Logging); err != nil {
		return err
	}

	db, err := database.OpenPostgres(config.Postgres)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			ctx.Log.WithError(err).Warn("Failed to close database")
		}
	}()
	if err := waitForDatabase(ctx, db, config.DbConnectAttempts, config.DbConnectDelay); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	preemptionMetrics := metrics.New()
	registry.MustRegister(
		preemptionMetrics,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	jobsRepository := repository.NewSqlGetJobsRepository(database.NewGoquPostgres(db))
	preempter := preemption.NewPreempter(client.NewRestSubmitClient(&config.Armada), config.Preemption, preemptionMetrics)
	service := NewPreemptService(jobsRepository, preempter, config.Preemption)
	checker := health.NewMultiChecker(health.NewPingChecker("postgres", db, config.HealthCheckTimeout))

	var apiGatherer prometheus.Gatherer
	if config.MetricsPort == 0 {
		apiGatherer = registry
	}
	servers := []*http.Server{{
		Addr:    fmt.Sprintf(":%d", config.ApiPort),
		Handler: NewRouter(service, checker, apiGatherer, config.CorsAllowedOrigins),
	}}
	if config.MetricsPort != 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		servers = append(servers, &http.Server{Addr: fmt.Sprintf(":%d", config.MetricsPort), Handler: mux})
	}

	g, gctx := armadacontext.ErrGroup(ctx)
	for _, server := range servers {
		server := server
		g.Go(func() error {
			ctx.Log.Infof("Listening on %s", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.Wrapf(err, "error serving on %s", server.Addr)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := armadacontext.WithTimeout(armadacontext.Background(), config.ShutdownTimeout)
		defer cancel()
		var shutdownErr error
		for _, server := range servers {
			if err := server.Shutdown(shutdownCtx); err != nil {
				ctx.Log.WithError(err).Errorf("Failed to shut down server on %s", server.Addr)
				shutdownErr = err
			}
		}
		return shutdownErr
	})
	return g.Wait()
}

func waitForDatabase(ctx *armadacontext.Context, db *sql.DB, attempts uint, delay time.Duration) error {
	err := retry.Do(
		func() error {
			return db.PingContext(ctx)
		},
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			ctx.Log.WithError(err).Warnf("Database not reachable (attempt %d of %d)", n+1, attempts)
		}),
	)
	return errors.WithMessage(err, "error connecting to database")
}
