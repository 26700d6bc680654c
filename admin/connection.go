// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/novaadmin/query"
)

// ResolveCredentials fetches the key pair of username. It fails with
// ErrUnknownUser when the user does not exist. The caller owns the
// returned secret key.
func (c *Client) ResolveCredentials(ctx context.Context, username string) (query.Credentials, error) {
	user, err := c.User(ctx, username)
	if err != nil {
		return query.Credentials{}, err
	}
	if user == nil {
		return query.Credentials{}, fmt.Errorf("%w: %q", ErrUnknownUser, username)
	}
	return user.Credentials()
}

// CloudEndpoint returns the cloud service on the same controller as
// the admin endpoint.
func (c *Client) CloudEndpoint() query.Endpoint {
	return c.endpoint.WithPath(query.CloudPath)
}

// NewCloudConnection builds a transport for the cloud service signed
// with credentials. It sends nothing. The returned client owns the
// secret key; on error the key is released here.
func (c *Client) NewCloudConnection(credentials query.Credentials) (*query.Client, error) {
	connection, err := query.NewClient(query.ClientConfig{
		Endpoint:    c.CloudEndpoint(),
		Credentials: credentials,
		APIVersion:  c.cloudAPIVersion,
		HTTPClient:  c.httpClient,
		Clock:       c.clock,
		Logger:      c.logger,
	})
	if err != nil {
		if credentials.SecretKey != nil {
			credentials.SecretKey.Close()
		}
		return nil, fmt.Errorf("admin: cloud connection: %w", err)
	}
	return connection, nil
}

// ConnectionFor resolves username and builds its cloud connection.
func (c *Client) ConnectionFor(ctx context.Context, username string) (*query.Client, error) {
	credentials, err := c.ResolveCredentials(ctx, username)
	if err != nil {
		return nil, err
	}
	connection, err := c.NewCloudConnection(credentials)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("derived cloud connection",
		"user", username,
		"endpoint", connection.Endpoint().URL(),
	)
	return connection, nil
}
