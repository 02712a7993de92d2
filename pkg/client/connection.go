package client

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type LoginCredentials struct {
	Username string
	Password string
}

type ApiConnectionDetails struct {
	ArmadaUrl   string `validate:"required"`
	LookoutUrl  string
	BasicAuth   LoginCredentials
	BearerToken string
	ForceNoTls  bool
	// Timeout applies to each individual request. Zero leaves the transport's defaults in place.
	Timeout time.Duration
}

type ConnectionDetails func() *ApiConnectionDetails

// CreateRestClient returns a resty client for the server at url, authenticated with the credentials in config.
func CreateRestClient(config *ApiConnectionDetails, url string) *resty.Client {
	c := resty.New().
		SetBaseURL(baseUrl(config, url)).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetError(&gatewayError{})
	if config.Timeout > 0 {
		c.SetTimeout(config.Timeout)
	}

	if config.BasicAuth.Username != "" {
		c.SetBasicAuth(config.BasicAuth.Username, config.BasicAuth.Password)
	} else if config.BearerToken != "" {
		c.SetAuthToken(config.BearerToken)
	}
	return c
}

// baseUrl adds a scheme to url when it has none, using plain http for localhost or when TLS is disabled.
func baseUrl(config *ApiConnectionDetails, url string) string {
	url = strings.TrimSuffix(url, "/")
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if config.ForceNoTls || strings.Contains(url, "localhost") {
		return "http://" + url
	}
	return "https://" + url
}
