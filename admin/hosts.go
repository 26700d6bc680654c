// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import "context"

// Hosts lists every compute host with whatever fields the service
// reports for it.
func (c *Client) Hosts(ctx context.Context) ([]*HostInfo, error) {
	return list[HostInfo](ctx, c, "DescribeHosts", nil)
}
