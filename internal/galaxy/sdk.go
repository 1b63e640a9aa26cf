package galaxy

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	"github.com/openmined/libsync/internal/library"
	"github.com/openmined/libsync/internal/utils"
	"github.com/openmined/libsync/internal/version"
)

const (
	defaultRetries       = 3
	defaultRetryInterval = 1 * time.Second
)

// Client talks to the Galaxy data library API. It implements library.Store.
type Client struct {
	client  *req.Client
	baseURL string
}

var _ library.Store = (*Client)(nil)

// New creates a new Galaxy client
func New(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := utils.NormalizeServerURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	// req joins the base url and request paths as strings
	baseURL = strings.TrimSuffix(baseURL, "/")

	retries := cfg.Retries
	if retries == 0 {
		retries = defaultRetries
	} else if retries < 0 {
		retries = 0
	}

	client := req.C().
		SetBaseURL(baseURL).
		SetUserAgent(version.UserAgent()).
		SetCommonHeader(HeaderAPIKey, cfg.APIKey).
		SetCommonRetryCount(retries).
		SetCommonRetryFixedInterval(defaultRetryInterval).
		SetCommonRetryCondition(retryCondition).
		SetCommonErrorResult(&APIError{}).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal)

	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Client{
		client:  client,
		baseURL: baseURL,
	}, nil
}

// BaseURL returns the server url without the trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// retryCondition retries transport failures and server side errors.
// Mutating requests opt out entirely with SetRetryCount(0).
func retryCondition(resp *req.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	return resp != nil && resp.StatusCode >= 500
}
