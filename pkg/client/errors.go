package client

import (
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ApiError is returned when the server answers with a non-2xx status.
type ApiError struct {
	StatusCode int
	Message    string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// gatewayError is the JSON body grpc-gateway writes for failed calls.
type gatewayError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ApiErrorFromResponse builds an ApiError from a failed response. The message is taken from the
// gateway error body if there is one, otherwise from the raw body, otherwise from the HTTP status.
func ApiErrorFromResponse(resp *resty.Response) *ApiError {
	apiErr := &ApiError{StatusCode: resp.StatusCode()}
	if gwErr, ok := resp.Error().(*gatewayError); ok && gwErr != nil && gwErr.Message != "" {
		apiErr.Message = gwErr.Message
	} else if body := strings.TrimSpace(resp.String()); body != "" {
		apiErr.Message = body
	} else if resp.Status() != "" {
		apiErr.Message = resp.Status()
	} else {
		apiErr.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode())
	}
	return apiErr
}
