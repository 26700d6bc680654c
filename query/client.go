// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bureau-foundation/novaadmin/lib/clock"
	"github.com/bureau-foundation/novaadmin/lib/netutil"
	"github.com/bureau-foundation/novaadmin/lib/version"
	"github.com/bureau-foundation/novaadmin/lib/xmlrecord"
)

// DefaultAPIVersion is sent as the Version parameter when
// ClientConfig.APIVersion is empty.
const DefaultAPIVersion = "nova"

// errorMessageLimit bounds the raw body quoted in a TransportError when
// the server's error response is not an error document.
const errorMessageLimit = 512

// Transport performs one query round trip. The caller closes the
// returned body.
type Transport interface {
	Call(ctx context.Context, action string, params Params) (io.ReadCloser, error)
}

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// Endpoint is the service to query. Host is required.
	Endpoint Endpoint
	// Credentials sign every request. The Client takes ownership of
	// SecretKey.
	Credentials Credentials
	// APIVersion is the Version parameter. Defaults to
	// DefaultAPIVersion.
	APIVersion string
	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client
	// Clock supplies request timestamps. If nil, clock.Real() is used.
	Clock clock.Clock
	// Logger is used for structured logging. If nil, slog.Default() is
	// used.
	Logger *slog.Logger
}

// Client is the HTTP Transport. It holds only immutable configuration
// and is safe for concurrent use.
type Client struct {
	endpoint    Endpoint
	credentials Credentials
	apiVersion  string
	httpClient  *http.Client
	clock       clock.Clock
	logger      *slog.Logger
}

var _ Transport = (*Client)(nil)

// NewClient validates config and creates a Client.
func NewClient(config ClientConfig) (*Client, error) {
	if err := config.Endpoint.Validate(); err != nil {
		return nil, err
	}
	if config.Credentials.AccessKey == "" {
		return nil, fmt.Errorf("query: access key is required")
	}
	if config.Credentials.SecretKey == nil {
		return nil, fmt.Errorf("query: secret key is required")
	}

	apiVersion := config.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		endpoint:    config.Endpoint,
		credentials: config.Credentials,
		apiVersion:  apiVersion,
		httpClient:  httpClient,
		clock:       clk,
		logger:      logger.With("endpoint", config.Endpoint.URL()),
	}, nil
}

// Endpoint returns the endpoint the client queries.
func (c *Client) Endpoint() Endpoint { return c.endpoint }

// AccessKey returns the access key requests are signed with.
func (c *Client) AccessKey() string { return c.credentials.AccessKey }

// Close releases the secret key.
func (c *Client) Close() error {
	return c.credentials.SecretKey.Close()
}

// Call signs and sends one query. On a 2xx response it returns the
// body, bounded by netutil.MaxResponseSize; every other outcome is a
// *TransportError. params is not modified.
func (c *Client) Call(ctx context.Context, action string, params Params) (io.ReadCloser, error) {
	endpointURL := c.endpoint.URL()
	fail := func(err error) error {
		return &TransportError{Action: action, Endpoint: endpointURL, Err: err}
	}

	body := signedBody(c.endpoint, c.credentials, action, c.apiVersion, c.clock.Now(), params.Clone())

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, strings.NewReader(body))
	if err != nil {
		return nil, fail(fmt.Errorf("building request: %w", err))
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	request.Header.Set("User-Agent", version.UserAgent())

	c.logger.Debug("query request", "action", action)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fail(err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return netutil.LimitBody(response.Body), nil
	}
	defer response.Body.Close()

	transportErr := &TransportError{
		Action:     action,
		Endpoint:   endpointURL,
		StatusCode: response.StatusCode,
	}
	responseBody, readErr := netutil.ReadResponse(response.Body)
	if document, decodeErr := xmlrecord.DecodeSingle[errorDocument](bytes.NewReader(responseBody)); decodeErr == nil && document.Code != "" {
		transportErr.Code = document.Code
		transportErr.Message = document.Message
	} else if readErr == nil {
		transportErr.Message = netutil.Truncate(responseBody, errorMessageLimit)
	}

	c.logger.Warn("query failed",
		"action", action,
		"status_code", response.StatusCode,
		"error_code", transportErr.Code,
	)
	return nil, transportErr
}

// errorDocument is the EC2-style error body:
//
//	<Response><Errors><Error><Code/><Message/></Error></Errors></Response>
//
// Only the first Error is kept.
type errorDocument struct {
	Code    string
	Message string
	seen    bool
}

func (d *errorDocument) EndElement(tag, text string) error {
	if d.seen {
		return nil
	}
	switch tag {
	case "Code":
		d.Code = text
	case "Message":
		d.Message = text
		d.seen = d.Code != ""
	}
	return nil
}
