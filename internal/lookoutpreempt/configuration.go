package lookoutpreempt

import (
	"time"

	"github.com/armadaproject/lookout-preempt/internal/common/database"
	"github.com/armadaproject/lookout-preempt/internal/common/logging"
	"github.com/armadaproject/lookout-preempt/internal/preemption"
	"github.com/armadaproject/lookout-preempt/pkg/client"
)

type LookoutPreemptConfig struct {
	ApiPort     int `validate:"gt=0,lte=65535"`
	MetricsPort int `validate:"gte=0,lte=65535"`

	CorsAllowedOrigins []string

	Postgres database.PostgresConfig
	// How many times to try reaching Postgres at startup, and how long to wait between attempts.
	DbConnectAttempts uint          `validate:"gte=1"`
	DbConnectDelay    time.Duration `validate:"gte=0"`
	// Time allowed for the database ping behind /health.
	HealthCheckTimeout time.Duration `validate:"gt=0"`
	// Time allowed for the HTTP server to finish in-flight requests on shutdown.
	ShutdownTimeout time.Duration `validate:"gt=0"`

	Armada     client.ApiConnectionDetails
	Preemption preemption.Config
	Logging    logging.Config
}
