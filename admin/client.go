// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bureau-foundation/novaadmin/lib/clock"
	"github.com/bureau-foundation/novaadmin/lib/secret"
	"github.com/bureau-foundation/novaadmin/lib/xmlrecord"
	"github.com/bureau-foundation/novaadmin/query"
)

// DefaultCloudAPIVersion is the Version parameter sent on derived
// cloud connections.
const DefaultCloudAPIVersion = "2009-11-30"

// itemTag marks each record in a list response.
const itemTag = "item"

// Config holds configuration for creating a Client.
type Config struct {
	// Endpoint addresses the controller. Path defaults to
	// query.AdminPath. Host, Port, Region, and Secure are reused for
	// derived cloud connections.
	Endpoint query.Endpoint
	// Credentials are the administrator's key pair. The Client takes
	// ownership of the secret key. When Transport is set the key is
	// unused and NewClient closes it.
	Credentials query.Credentials
	// APIVersion is sent on admin requests. Defaults to
	// query.DefaultAPIVersion.
	APIVersion string
	// CloudAPIVersion is sent on derived cloud connections. Defaults to
	// DefaultCloudAPIVersion.
	CloudAPIVersion string
	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client
	// Clock supplies request timestamps. If nil, clock.Real() is used.
	Clock clock.Clock
	// Logger is used for structured logging. If nil, slog.Default() is
	// used.
	Logger *slog.Logger
	// Transport replaces the HTTP transport built from Endpoint and
	// Credentials.
	Transport query.Transport
}

// Client issues admin operations. It holds only immutable
// configuration; every method is one request and one decode, so a
// Client is safe for concurrent use.
type Client struct {
	transport       query.Transport
	owned           *query.Client
	endpoint        query.Endpoint
	cloudAPIVersion string
	httpClient      *http.Client
	clock           clock.Clock
	logger          *slog.Logger
}

// NewClient creates a Client.
func NewClient(config Config) (*Client, error) {
	endpoint := config.Endpoint
	if endpoint.Path == "" {
		endpoint.Path = query.AdminPath
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cloudAPIVersion := config.CloudAPIVersion
	if cloudAPIVersion == "" {
		cloudAPIVersion = DefaultCloudAPIVersion
	}

	client := &Client{
		transport:       config.Transport,
		endpoint:        endpoint,
		cloudAPIVersion: cloudAPIVersion,
		httpClient:      config.HTTPClient,
		clock:           config.Clock,
		logger:          logger,
	}

	if client.transport != nil {
		if config.Credentials.SecretKey != nil {
			config.Credentials.SecretKey.Close()
		}
		return client, nil
	}

	transport, err := query.NewClient(query.ClientConfig{
		Endpoint:    endpoint,
		Credentials: config.Credentials,
		APIVersion:  config.APIVersion,
		HTTPClient:  config.HTTPClient,
		Clock:       config.Clock,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("admin: %w", err)
	}
	client.transport = transport
	client.owned = transport
	return client, nil
}

// Endpoint returns the admin endpoint.
func (c *Client) Endpoint() query.Endpoint { return c.endpoint }

// Close releases the transport the client built. A caller-supplied
// Transport is left alone.
func (c *Client) Close() error {
	if c.owned != nil {
		return c.owned.Close()
	}
	return nil
}

func (c *Client) call(ctx context.Context, action string, params query.Params, decode func(io.Reader) error) error {
	body, err := c.transport.Call(ctx, action, params)
	if err != nil {
		return fmt.Errorf("admin: %s: %w", action, err)
	}
	defer body.Close()
	if err := decode(body); err != nil {
		return fmt.Errorf("admin: %s: %w", action, err)
	}
	return nil
}

// single performs action and decodes one record.
func single[T any, P record[T]](ctx context.Context, c *Client, action string, params query.Params) (*T, error) {
	var result *T
	err := c.call(ctx, action, params, func(body io.Reader) error {
		decoded, err := xmlrecord.DecodeSingle[T, P](body)
		if err != nil {
			return err
		}
		P(decoded).bind(c)
		result = decoded
		return nil
	})
	return result, err
}

// list performs action and decodes one record per item element.
func list[T any, P record[T]](ctx context.Context, c *Client, action string, params query.Params) ([]*T, error) {
	var result []*T
	err := c.call(ctx, action, params, func(body io.Reader) error {
		decoded, err := xmlrecord.DecodeList[T, P](body, itemTag)
		if err != nil {
			return err
		}
		for _, item := range decoded {
			P(item).bind(c)
		}
		result = decoded
		return nil
	})
	return result, err
}

// status performs action and decodes its boolean result.
func (c *Client) status(ctx context.Context, action string, params query.Params) (bool, error) {
	var result bool
	err := c.call(ctx, action, params, func(body io.Reader) error {
		decoded, err := xmlrecord.DecodeStatus(body)
		result = decoded
		return err
	})
	return result, err
}

func newSecret(value string) (*secret.Buffer, error) {
	buffer, err := secret.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("admin: protecting secret key: %w", err)
	}
	return buffer, nil
}
