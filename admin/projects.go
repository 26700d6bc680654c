// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/novaadmin/query"
)

// Projects lists every project.
func (c *Client) Projects(ctx context.Context) ([]*ProjectInfo, error) {
	return list[ProjectInfo](ctx, c, "DescribeProjects", nil)
}

// Project looks up one project. It returns (nil, nil) when the service
// reports no project name.
func (c *Client) Project(ctx context.Context, name string) (*ProjectInfo, error) {
	project, err := single[ProjectInfo](ctx, c, "DescribeProject", query.Params{"Name": name})
	if err != nil {
		return nil, err
	}
	if project.ProjectName == "" {
		return nil, nil
	}
	return project, nil
}

// HasProject reports whether Project finds name.
func (c *Client) HasProject(ctx context.Context, name string) (bool, error) {
	project, err := c.Project(ctx, name)
	return project != nil, err
}

// CreateProject registers a project managed by manager. An empty
// description is omitted; members are sent as MemberUsers.1, .2, ...
func (c *Client) CreateProject(ctx context.Context, name, manager, description string, members []string) (*ProjectInfo, error) {
	params := query.Params{
		"Name":        name,
		"ManagerUser": manager,
	}
	params.SetOptional("Description", description)
	params.SetList("MemberUsers", members)
	return single[ProjectInfo](ctx, c, "RegisterProject", params)
}

// DeleteProject permanently deregisters a project.
func (c *Client) DeleteProject(ctx context.Context, name string) (*ProjectInfo, error) {
	return single[ProjectInfo](ctx, c, "DeregisterProject", query.Params{"Name": name})
}

// AddProjectMember adds user to project.
func (c *Client) AddProjectMember(ctx context.Context, user, project string) (bool, error) {
	return c.ModifyProjectUser(ctx, user, project, OperationAdd)
}

// RemoveProjectMember removes user from project.
func (c *Client) RemoveProjectMember(ctx context.Context, user, project string) (bool, error) {
	return c.ModifyProjectUser(ctx, user, project, OperationRemove)
}

// ModifyProjectUser adds or removes a project member.
func (c *Client) ModifyProjectUser(ctx context.Context, user, project string, operation Operation) (bool, error) {
	if !operation.valid() {
		return false, fmt.Errorf("admin: ModifyProjectUser: invalid %v", operation)
	}
	return c.status(ctx, "ModifyProjectUser", query.Params{
		"User":      user,
		"Project":   project,
		"Operation": operation.String(),
	})
}
