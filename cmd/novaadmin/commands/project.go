// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/novaadmin/admin"
	"github.com/bureau-foundation/novaadmin/cmd/novaadmin/cli"
)

// projectView is the JSON shape of a project.
type projectView struct {
	Name        string   `json:"name"`
	Manager     string   `json:"manager,omitempty"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members"`
	Attributes  any      `json:"attributes"`
}

func viewProject(project *admin.ProjectInfo) projectView {
	members := project.MemberIDs()
	if members == nil {
		members = []string{}
	}
	return projectView{
		Name:        project.ProjectName,
		Manager:     project.ManagerUser(),
		Description: project.Description(),
		Members:     members,
		Attributes:  project.Extra,
	}
}

func (a *app) projectCommand() *cli.Command {
	return &cli.Command{
		Name:    "project",
		Summary: "Manage projects",
		Subcommands: []*cli.Command{
			a.projectListCommand(),
			a.projectShowCommand(),
			a.projectCreateCommand(),
			a.projectDeleteCommand(),
			a.projectMemberCommand("add-member", "Add a user to a project", admin.OperationAdd),
			a.projectMemberCommand("remove-member", "Remove a user from a project", admin.OperationRemove),
		},
	}
}

func (a *app) projectListCommand() *cli.Command {
	var params struct{ cli.JSONOutput }
	return &cli.Command{
		Name:    "list",
		Summary: "List projects",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("list", &params) },
		Run: func(ctx context.Context, _ []string) error {
			return a.withClient(ctx, func(client *admin.Client) error {
				projects, err := client.Projects(ctx)
				if err != nil {
					return err
				}
				views := make([]projectView, 0, len(projects))
				for _, project := range projects {
					views = append(views, viewProject(project))
				}
				if done, err := params.EmitJSON(a.stdout, views); done {
					return err
				}
				writer := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
				fmt.Fprintln(writer, "PROJECT\tMANAGER\tMEMBERS\tDESCRIPTION")
				for _, view := range views {
					fmt.Fprintf(writer, "%s\t%s\t%d\t%s\n", view.Name, view.Manager, len(view.Members), view.Description)
				}
				return writer.Flush()
			})
		},
	}
}

func (a *app) projectShowCommand() *cli.Command {
	var params struct{ cli.JSONOutput }
	command := &cli.Command{
		Name:    "show",
		Summary: "Show one project",
		Usage:   "novaadmin project show <project> [--json]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("show", &params) },
	}
	command.Run = func(ctx context.Context, args []string) error {
		if err := command.ExactArgs(args, 1); err != nil {
			return err
		}
		return a.withClient(ctx, func(client *admin.Client) error {
			project, err := client.Project(ctx, args[0])
			if err != nil {
				return err
			}
			if project == nil {
				return a.notFound("project", args[0])
			}
			view := viewProject(project)
			if done, err := params.EmitJSON(a.stdout, view); done {
				return err
			}
			writer := tabwriter.NewWriter(a.stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintf(writer, "Project:\t%s\n", view.Name)
			fmt.Fprintf(writer, "Manager:\t%s\n", view.Manager)
			fmt.Fprintf(writer, "Description:\t%s\n", view.Description)
			fmt.Fprintf(writer, "Members:\t%s\n", strings.Join(view.Members, ", "))
			return writer.Flush()
		})
	}
	return command
}

func (a *app) projectCreateCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
		Manager     string   `flag:"manager,m" desc:"project manager (required)"`
		Description string   `flag:"description,d" desc:"project description"`
		Members     []string `flag:"member" desc:"initial member; repeatable or comma-separated"`
	}
	command := &cli.Command{
		Name:    "create",
		Summary: "Register a project",
		Usage:   "novaadmin project create <project> --manager user [--description text] [--member user,...]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("create", &params) },
	}
	command.Run = func(ctx context.Context, args []string) error {
		if err := command.ExactArgs(args, 1); err != nil {
			return err
		}
		if params.Manager == "" {
			return command.UsageError("--manager is required")
		}
		return a.withClient(ctx, func(client *admin.Client) error {
			project, err := client.CreateProject(ctx, args[0], params.Manager, params.Description, params.Members)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(a.stdout, viewProject(project)); done {
				return err
			}
			fmt.Fprintf(a.stdout, "created project %s\n", project.ProjectName)
			return nil
		})
	}
	return command
}

func (a *app) projectDeleteCommand() *cli.Command {
	command := &cli.Command{
		Name:    "delete",
		Summary: "Deregister a project",
		Usage:   "novaadmin project delete <project>",
	}
	command.Run = func(ctx context.Context, args []string) error {
		if err := command.ExactArgs(args, 1); err != nil {
			return err
		}
		return a.withClient(ctx, func(client *admin.Client) error {
			if _, err := client.DeleteProject(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "deleted project %s\n", args[0])
			return nil
		})
	}
	return command
}

func (a *app) projectMemberCommand(name, summary string, operation admin.Operation) *cli.Command {
	command := &cli.Command{
		Name:    name,
		Summary: summary,
		Usage:   "novaadmin project " + name + " <username> <project>",
	}
	command.Run = func(ctx context.Context, args []string) error {
		if err := command.ExactArgs(args, 2); err != nil {
			return err
		}
		user, project := args[0], args[1]
		return a.withClient(ctx, func(client *admin.Client) error {
			ok, err := client.ModifyProjectUser(ctx, user, project, operation)
			if err != nil {
				return err
			}
			description := fmt.Sprintf("%s %s in project %s", operation, user, project)
			if !ok {
				return a.declined(description)
			}
			fmt.Fprintln(a.stdout, description)
			return nil
		})
	}
	return command
}
