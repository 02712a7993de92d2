package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type funcChecker func(ctx context.Context) error

func (f funcChecker) Check(ctx context.Context) error { return f(ctx) }

type fakePinger struct {
	err   error
	delay time.Duration
}

func (p *fakePinger) PingContext(ctx context.Context) error {
	select {
	case <-time.After(p.delay):
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestPingChecker(t *testing.T) {
	assert.NoError(t, NewPingChecker("db", &fakePinger{}, time.Second).Check(context.Background()))

	err := NewPingChecker("db", &fakePinger{err: errors.New("connection refused")}, time.Second).Check(context.Background())
	assert.EqualError(t, err, "db is unreachable: connection refused")

	err = NewPingChecker("db", &fakePinger{delay: time.Second}, 10*time.Millisecond).Check(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMultiChecker(t *testing.T) {
	healthy := funcChecker(func(context.Context) error { return nil })
	assert.NoError(t, NewMultiChecker().Check(context.Background()))
	assert.NoError(t, NewMultiChecker(healthy, healthy).Check(context.Background()))

	mc := NewMultiChecker(healthy)
	mc.Add(funcChecker(func(context.Context) error { return errors.New("db down") }))
	mc.Add(funcChecker(func(context.Context) error { return errors.New("armada down") }))
	err := mc.Check(context.Background())
	assert.ErrorContains(t, err, "db down")
	assert.ErrorContains(t, err, "armada down")
}

func TestRegisterRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := map[string]struct {
		err          error
		expectedCode int
		expectedBody string
	}{
		"healthy":   {expectedCode: http.StatusNoContent},
		"unhealthy": {err: errors.New("db down"), expectedCode: http.StatusServiceUnavailable, expectedBody: "db down"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			router := gin.New()
			RegisterRoute(router, funcChecker(func(context.Context) error { return tc.err }))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tc.expectedCode, w.Code)
			assert.Equal(t, tc.expectedBody, w.Body.String())
		})
	}
}
