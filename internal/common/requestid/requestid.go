package requestid

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/renstrom/shortuuid"
)

// Request IDs are embedded in HTTP headers using this key.
// This is the standard key used for request Ids. For example, opentelemetry uses the same one.
const HeaderKey = "X-Request-Id"

type contextKey struct{}

// FromContext returns the request Id stored in ctx, if one is available.
// The second return value is true if the operation was successful.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// FromContextOrMissing returns the request Id stored in ctx, if one is available.
// If none is available, the string "missing" is returned.
func FromContextOrMissing(ctx context.Context) string {
	if id, ok := FromContext(ctx); ok {
		return id
	}
	return "missing"
}

// AddToContext returns a new context derived from ctx that is annotated with id.
func AddToContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// Middleware annotates incoming requests with an Id, taken from the X-Request-Id header when present and
// generated with github.com/renstrom/shortuuid otherwise. If replace is true an Id is always generated.
// The Id is echoed back in the response headers.
func Middleware(replace bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderKey)
		if id == "" || replace {
			id = shortuuid.New()
		}
		c.Request = c.Request.WithContext(AddToContext(c.Request.Context(), id))
		c.Header(HeaderKey, id)
		c.Next()
	}
}
