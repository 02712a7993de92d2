package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armadaproject/lookout-preempt/internal/common/requestid"
)

func TestRestSubmitClient_PreemptJobs(t *testing.T) {
	var received JobPreemptRequest
	var requestId, authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/job/preempt", r.URL.Path)
		requestId = r.Header.Get(RequestIdHeader)
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	}))
	defer server.Close()

	c := NewRestSubmitClient(&ApiConnectionDetails{ArmadaUrl: server.URL, BearerToken: "token"})
	err := c.PreemptJobs(context.Background(), &JobPreemptRequest{
		JobIds:   []string{"a", "b"},
		JobSetId: "set",
		Queue:    "queue",
		Reason:   "make room",
	})
	require.NoError(t, err)

	assert.Equal(t, JobPreemptRequest{JobIds: []string{"a", "b"}, JobSetId: "set", Queue: "queue", Reason: "make room"}, received)
	_, err = uuid.Parse(requestId)
	assert.NoError(t, err)
	assert.Equal(t, "Bearer token", authHeader)
}

func TestRestSubmitClient_PreemptJobs_ForwardsRequestId(t *testing.T) {
	var requestId string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId = r.Header.Get(RequestIdHeader)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewRestSubmitClient(&ApiConnectionDetails{ArmadaUrl: server.URL})
	ctx := requestid.AddToContext(context.Background(), "abc123")
	require.NoError(t, c.PreemptJobs(ctx, &JobPreemptRequest{JobIds: []string{"a"}, JobSetId: "set", Queue: "queue"}))

	assert.Equal(t, "abc123", requestId)
}

func TestRestSubmitClient_PreemptJobs_BasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || username != "user" || password != "pass" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewRestSubmitClient(&ApiConnectionDetails{
		ArmadaUrl:   server.URL,
		BasicAuth:   LoginCredentials{Username: "user", Password: "pass"},
		BearerToken: "ignored",
	})
	assert.NoError(t, c.PreemptJobs(context.Background(), &JobPreemptRequest{JobIds: []string{"a"}, JobSetId: "set", Queue: "queue"}))
}

func TestRestSubmitClient_PreemptJobs_Errors(t *testing.T) {
	tests := map[string]struct {
		status          int
		contentType     string
		body            string
		expectedMessage string
	}{
		"gateway error body": {
			status:          http.StatusForbidden,
			contentType:     "application/json",
			body:            `{"code":7,"message":"user alice cannot preempt jobs in queue queue","details":[]}`,
			expectedMessage: "user alice cannot preempt jobs in queue queue",
		},
		"plain text body": {
			status:          http.StatusBadGateway,
			contentType:     "text/plain",
			body:            "upstream connect error\n",
			expectedMessage: "upstream connect error",
		},
		"empty body": {
			status:          http.StatusServiceUnavailable,
			expectedMessage: "503 Service Unavailable",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.contentType != "" {
					w.Header().Set("Content-Type", tc.contentType)
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			c := NewRestSubmitClient(&ApiConnectionDetails{ArmadaUrl: server.URL})
			err := c.PreemptJobs(context.Background(), &JobPreemptRequest{JobIds: []string{"a"}, JobSetId: "set", Queue: "queue"})
			require.Error(t, err)

			var apiErr *ApiError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.expectedMessage, apiErr.Message)
		})
	}
}

func TestRestSubmitClient_PreemptJobs_Timeout(t *testing.T) {
	done := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(done)

	c := NewRestSubmitClient(&ApiConnectionDetails{ArmadaUrl: server.URL, Timeout: 50 * time.Millisecond})
	err := c.PreemptJobs(context.Background(), &JobPreemptRequest{JobIds: []string{"a"}, JobSetId: "set", Queue: "queue"})
	require.Error(t, err)
	var apiErr *ApiError
	assert.False(t, errors.As(err, &apiErr))
}

func TestCreateRestClient_Timeout(t *testing.T) {
	tests := map[string]struct {
		timeout  time.Duration
		expected time.Duration
	}{
		"unset":      {timeout: 0, expected: 0},
		"configured": {timeout: 5 * time.Second, expected: 5 * time.Second},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := CreateRestClient(&ApiConnectionDetails{ArmadaUrl: "localhost:8080", Timeout: tc.timeout}, "localhost:8080")
			assert.Equal(t, tc.expected, c.GetClient().Timeout)
		})
	}
}

func TestWithSubmitClient(t *testing.T) {
	called := false
	err := WithSubmitClient(&ApiConnectionDetails{ArmadaUrl: "localhost:8080"}, func(c *RestSubmitClient) error {
		called = true
		assert.Equal(t, "http://localhost:8080", c.client.BaseURL)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	err = WithSubmitClient(&ApiConnectionDetails{}, func(c *RestSubmitClient) error {
		t.Fatal("action must not be called without an Armada url")
		return nil
	})
	assert.Error(t, err)
}

func TestBaseUrl(t *testing.T) {
	tests := map[string]struct {
		url        string
		forceNoTls bool
		expected   string
	}{
		"scheme kept":           {url: "https://armada.example.com/", expected: "https://armada.example.com"},
		"localhost is plain":    {url: "localhost:8080", expected: "http://localhost:8080"},
		"remote defaults tls":   {url: "armada.example.com:443", expected: "https://armada.example.com:443"},
		"tls can be disabled":   {url: "armada.example.com:80", forceNoTls: true, expected: "http://armada.example.com:80"},
		"explicit http is kept": {url: "http://armada.example.com", expected: "http://armada.example.com"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, baseUrl(&ApiConnectionDetails{ForceNoTls: tc.forceNoTls}, tc.url))
		})
	}
}
