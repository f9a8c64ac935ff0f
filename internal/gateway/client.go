// Package gateway is the HTTP client for the remote persistence service:
// row CRUD over its REST surface and recording blobs over its storage
// surface. It maps remote failures onto the store's sentinel errors so
// callers never inspect HTTP status codes.
package gateway

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rbright/mull/internal/config"
)

const (
	restPrefix    = "/rest/v1"
	storagePrefix = "/storage/v1/object"

	requestTimeout = 15 * time.Second
)

// Client talks to one gateway instance. It is safe for concurrent use.
type Client struct {
	http   *resty.Client
	base   string
	bucket string
}

// New builds a client from validated gateway configuration.
func New(cfg config.GatewayConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.URL).
		SetHeader("apikey", cfg.APIKey).
		SetAuthToken(cfg.APIKey).
		SetTimeout(requestTimeout)

	return &Client{
		http:   http,
		base:   strings.TrimRight(cfg.URL, "/"),
		bucket: cfg.Bucket,
	}
}

// apiError reports a non-2xx response. The body is included because the
// gateway puts its diagnostic message there, not in the status line.
func apiError(resp *resty.Response) error {
	body := strings.TrimSpace(string(resp.Body()))
	if len(body) > 200 {
		body = body[:200]
	}
	if body == "" {
		return fmt.Errorf("gateway: %s %s: %s",
			resp.Request.Method, resp.Request.RawRequest.URL.Path, resp.Status())
	}
	return fmt.Errorf("gateway: %s %s: %s: %s",
		resp.Request.Method, resp.Request.RawRequest.URL.Path, resp.Status(), body)
}

func eq(value string) string {
	return "eq." + value
}
