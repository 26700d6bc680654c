// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/novaadmin/query"
)

// Users lists every user.
func (c *Client) Users(ctx context.Context) ([]*UserInfo, error) {
	return list[UserInfo](ctx, c, "DescribeUsers", nil)
}

// User looks up one user. It returns (nil, nil) when the service
// reports no username for name.
func (c *Client) User(ctx context.Context, name string) (*UserInfo, error) {
	user, err := single[UserInfo](ctx, c, "DescribeUser", query.Params{"Name": name})
	if err != nil {
		return nil, err
	}
	if user.Username == "" {
		return nil, nil
	}
	return user, nil
}

// HasUser reports whether User finds name.
func (c *Client) HasUser(ctx context.Context, name string) (bool, error) {
	user, err := c.User(ctx, name)
	return user != nil, err
}

// CreateUser registers a user and returns the record with its new key
// pair.
func (c *Client) CreateUser(ctx context.Context, name string) (*UserInfo, error) {
	return single[UserInfo](ctx, c, "RegisterUser", query.Params{"Name": name})
}

// DeleteUser deregisters a user and returns whatever record the
// service sends back.
func (c *Client) DeleteUser(ctx context.Context, name string) (*UserInfo, error) {
	return single[UserInfo](ctx, c, "DeregisterUser", query.Params{"Name": name})
}

// AddUserRole grants role to user, globally when project is empty.
func (c *Client) AddUserRole(ctx context.Context, user, role, project string) (bool, error) {
	return c.ModifyUserRole(ctx, user, role, project, OperationAdd)
}

// RemoveUserRole revokes role from user, globally when project is
// empty.
func (c *Client) RemoveUserRole(ctx context.Context, user, role, project string) (bool, error) {
	return c.ModifyUserRole(ctx, user, role, project, OperationRemove)
}

// ModifyUserRole grants or revokes role. An empty project is omitted
// from the request.
func (c *Client) ModifyUserRole(ctx context.Context, user, role, project string, operation Operation) (bool, error) {
	if !operation.valid() {
		return false, fmt.Errorf("admin: ModifyUserRole: invalid %v", operation)
	}
	params := query.Params{
		"User":      user,
		"Role":      role,
		"Operation": operation.String(),
	}
	params.SetOptional("Project", project)
	return c.status(ctx, "ModifyUserRole", params)
}

// CredentialBundle returns the zip of rc file and X.509 credentials
// generated for name. Only the bundle is returned; nil means the
// response carried none.
func (c *Client) CredentialBundle(ctx context.Context, name string) ([]byte, error) {
	user, err := single[UserInfo](ctx, c, "GenerateX509ForUser", query.Params{"Name": name})
	if err != nil {
		return nil, err
	}
	return user.File, nil
}
