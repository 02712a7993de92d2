package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "missing", FromContextOrMissing(context.Background()))

	ctx := AddToContext(context.Background(), "foo")
	id, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "foo", id)
	assert.Equal(t, "foo", FromContextOrMissing(ctx))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := map[string]struct {
		header  string
		replace bool
		// Empty means a new id must have been generated.
		expected string
	}{
		"existing id kept":     {header: "abc", expected: "abc"},
		"missing id generated": {},
		"existing id replaced": {header: "abc", replace: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var seen string
			router := gin.New()
			router.Use(Middleware(tc.replace))
			router.GET("/", func(c *gin.Context) {
				seen = FromContextOrMissing(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(HeaderKey, tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if tc.expected != "" {
				assert.Equal(t, tc.expected, seen)
			} else {
				assert.NotEqual(t, "missing", seen)
				assert.NotEqual(t, tc.header, seen)
				assert.NotEmpty(t, seen)
			}
			assert.Equal(t, seen, w.Header().Get(HeaderKey))
		})
	}
}
