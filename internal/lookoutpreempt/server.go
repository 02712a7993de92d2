package lookoutpreempt

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/armadaproject/lookout-preempt/internal/common/armadacontext"
	"github.com/armadaproject/lookout-preempt/internal/common/armadaerrors"
	"github.com/armadaproject/lookout-preempt/internal/common/health"
	"github.com/armadaproject/lookout-preempt/internal/common/requestid"
	"github.com/armadaproject/lookout-preempt/internal/common/slices"
	"github.com/armadaproject/lookout-preempt/internal/common/util"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
	"github.com/armadaproject/lookout-preempt/internal/preemption"
)

// JobsRequest selects jobs by Lookout filters, by id, or both.
type JobsRequest struct {
	Filters []*model.Filter `json:"filters" binding:"required_without=JobIds,dive,required"`
	JobIds  []string        `json:"jobIds" binding:"required_without=Filters,dive,required"`
}

type PreemptRequest struct {
	JobsRequest
	Reason string `json:"reason" binding:"max=2048"`
}

type PreemptResponse struct {
	SuccessfulJobIds []string               `json:"successfulJobIds"`
	FailedJobIds     []preemption.FailedJob `json:"failedJobIds"`
	SkippedJobIds    []string               `json:"skippedJobIds"`
	Truncated        bool                   `json:"truncated"`
	Message          string                 `json:"message"`
	Severity         preemption.Severity    `json:"severity"`
}

type PreemptibleResponse struct {
	Jobs             []*model.Job `json:"jobs"`
	TerminatedJobIds []string     `json:"terminatedJobIds"`
	Truncated        bool         `json:"truncated"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter returns the HTTP API of the service. Metrics are served from the same router when gatherer is non-nil.
func NewRouter(service *PreemptService, checker health.Checker, gatherer prometheus.Gatherer, corsAllowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware(false))
	router.Use(loggerMiddleware())
	router.Use(corsMiddleware(corsAllowedOrigins))

	health.RegisterRoute(router, checker)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	handler := &jobsHandler{service: service}
	v1 := router.Group("/api/v1")
	{
		jobs := v1.Group("/jobs")
		jobs.POST("/preempt", handler.preemptJobs)
		jobs.POST("/preemptible", handler.preemptibleJobs)
	}
	return router
}

type jobsHandler struct {
	service *PreemptService
}

func (h *jobsHandler) preemptJobs(c *gin.Context) {
	var req PreemptRequest
	if !bindJobsRequest(c, &req, &req.JobsRequest) {
		return
	}
	ctx := requestContext(c)
	result, err := h.service.Preempt(ctx, req.Filters, req.JobIds, req.Reason)
	if err != nil {
		writeError(c, ctx, err)
		return
	}

	severity, message := result.Summary()
	response := PreemptResponse{
		SuccessfulJobIds: []string{},
		FailedJobIds:     []preemption.FailedJob{},
		SkippedJobIds:    slices.Map(result.Selected.Terminated, jobId),
		Truncated:        result.Selected.Truncated,
		Message:          message,
		Severity:         severity,
	}
	response.SuccessfulJobIds = append(response.SuccessfulJobIds, result.Outcome.SuccessfulJobIds...)
	response.FailedJobIds = append(response.FailedJobIds, result.Outcome.FailedJobs...)
	c.JSON(http.StatusOK, response)
}

func (h *jobsHandler) preemptibleJobs(c *gin.Context) {
	var req JobsRequest
	if !bindJobsRequest(c, &req, &req) {
		return
	}
	ctx := requestContext(c)
	selected, err := h.service.SelectJobs(ctx, req.Filters, req.JobIds)
	if err != nil {
		writeError(c, ctx, err)
		return
	}
	jobs := selected.Preemptible
	if jobs == nil {
		jobs = []*model.Job{}
	}
	c.JSON(http.StatusOK, PreemptibleResponse{
		Jobs:             jobs,
		TerminatedJobIds: slices.Map(selected.Terminated, jobId),
		Truncated:        selected.Truncated,
	})
}

// bindJobsRequest decodes the body into req and checks that it selects some jobs, answering 400 if not.
func bindJobsRequest(c *gin.Context, req interface{}, jobs *JobsRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: util.Truncate("invalid request body: "+err.Error(), util.MaxMessageLength)})
		return false
	}
	if len(jobs.Filters) == 0 && len(jobs.JobIds) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "at least one filter or job id is required"})
		return false
	}
	return true
}

func requestContext(c *gin.Context) *armadacontext.Context {
	return armadacontext.WithLogFields(armadacontext.FromContext(c.Request.Context()), log.Fields{
		"requestId": requestid.FromContextOrMissing(c.Request.Context()),
		"path":      c.FullPath(),
	})
}

func writeError(c *gin.Context, ctx *armadacontext.Context, err error) {
	status := armadaerrors.HttpStatusFromError(err)
	if status >= http.StatusInternalServerError {
		ctx.Log.WithError(err).Error("Request failed")
	} else {
		ctx.Log.WithError(err).Info("Rejected request")
	}
	c.JSON(status, errorResponse{Error: util.Truncate(err.Error(), util.MaxMessageLength)})
}

func jobId(job *model.Job) string {
	return job.JobId
}

func loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"requestId": requestid.FromContextOrMissing(c.Request.Context()),
			"status":    c.Writer.Status(),
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"latency":   time.Since(start),
		}).Debug("HTTP request")
	}
}

// corsMiddleware allows browsers on the given origins, e.g. the Lookout UI, to call the API.
// Origins must match exactly; there is no wildcard since credentials are allowed.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && util.ContainsString(allowedOrigins, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
