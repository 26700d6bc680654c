// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "novaadmin",
		Subcommands: []*Command{
			{
				Name: "user",
				Subcommands: []*Command{
					{
						Name: "show",
						Run: func(_ context.Context, args []string) error {
							called = "user show"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"user", "show", "alice"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if called != "user show" {
		t.Errorf("dispatched to %q, want %q", called, "user show")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "alice" {
		t.Errorf("args = %v, want [alice]", receivedArgs)
	}
}

func TestCommand_Execute_ParentFlagsBeforeSubcommand(t *testing.T) {
	var configPath, project string

	show := &Command{
		Name: "show",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flagSet.StringVar(&project, "project", "", "project")
			return flagSet
		},
		Run: func(context.Context, []string) error { return nil },
	}
	root := &Command{
		Name: "novaadmin",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("novaadmin", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file")
			return flagSet
		},
		Subcommands: []*Command{show},
	}

	err := root.Execute(context.Background(), []string{"--config", "lab.yaml", "show", "--project", "ops"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if configPath != "lab.yaml" {
		t.Errorf("config = %q, want lab.yaml", configPath)
	}
	if project != "ops" {
		t.Errorf("project = %q, want ops", project)
	}
}

func TestCommand_Execute_ContextReachesRun(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "marker")

	var got any
	root := &Command{
		Name: "novaadmin",
		Subcommands: []*Command{{
			Name: "version",
			Run: func(ctx context.Context, _ []string) error {
				got = ctx.Value(key{})
				return nil
			},
		}},
	}
	if err := root.Execute(ctx, []string{"version"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != "marker" {
		t.Errorf("context value = %v, want marker", got)
	}
}

func TestCommand_Execute_Errors(t *testing.T) {
	newRoot := func() *Command {
		return &Command{
			Name: "novaadmin",
			Subcommands: []*Command{
				{Name: "project", Run: func(context.Context, []string) error { return nil }},
				{
					Name: "host",
					Flags: func() *pflag.FlagSet {
						flagSet := pflag.NewFlagSet("host", pflag.ContinueOnError)
						flagSet.Bool("json", false, "json")
						return flagSet
					},
					Run: func(context.Context, []string) error { return nil },
				},
			},
		}
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"suggests command", []string{"projet"}, []string{`unknown command "projet"`, `did you mean "project"`}},
		{"no suggestion", []string{"zzzzzzzz"}, []string{`unknown command "zzzzzzzz"`, "novaadmin --help"}},
		{"suggests flag", []string{"host", "--jsn"}, []string{"unknown flag: --jsn", "did you mean --json"}},
		{"subcommand required", nil, []string{"subcommand required"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := newRoot().Execute(context.Background(), test.args)
			if err == nil {
				t.Fatal("Execute succeeded, want error")
			}
			for _, want := range test.want {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q missing %q", err, want)
				}
			}
		})
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	var configPath string
	root := &Command{
		Name:        "novaadmin",
		Description: "Administer a compute control plane.",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("novaadmin", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "configuration file")
			return flagSet
		},
		Subcommands: []*Command{
			{Name: "user", Summary: "Manage users"},
			{Name: "host", Summary: "List compute hosts"},
		},
		Examples: []Example{{Description: "List users", Command: "novaadmin user list"}},
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	help := buffer.String()
	for _, want := range []string{
		"Administer a compute control plane.",
		"novaadmin [flags] <command>",
		"user   Manage users",
		"--config",
		"# List users",
		"novaadmin user list",
		"Run 'novaadmin <command> --help'",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
}

func TestCommand_UsageError(t *testing.T) {
	root := &Command{Name: "novaadmin"}
	show := &Command{Name: "show", parent: root}

	err := show.ExactArgs([]string{"a", "b"}, 1)
	if err == nil {
		t.Fatal("ExactArgs accepted two arguments")
	}
	if !strings.Contains(err.Error(), "expected 1 argument(s), got 2") ||
		!strings.Contains(err.Error(), "novaadmin show --help") {
		t.Errorf("error = %q", err)
	}
	if err := show.ExactArgs([]string{"a"}, 1); err != nil {
		t.Errorf("ExactArgs: %v", err)
	}
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 3}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok || coder.ExitCode() != 3 {
		t.Fatalf("ExitError does not report code 3")
	}
	if err.Error() != "exit code 3" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestJSONOutput(t *testing.T) {
	var params JSONOutput
	var buffer bytes.Buffer

	done, err := params.EmitJSON(&buffer, []string{"a"})
	if done || err != nil || buffer.Len() != 0 {
		t.Fatalf("EmitJSON without --json = %v, %v, wrote %q", done, err, buffer.String())
	}

	params.OutputJSON = true
	var empty []string
	done, err = params.EmitJSON(&buffer, empty)
	if !done || err != nil {
		t.Fatalf("EmitJSON = %v, %v", done, err)
	}
	if strings.TrimSpace(buffer.String()) != "[]" {
		t.Errorf("nil slice encoded as %q, want []", buffer.String())
	}
}

func TestNewLogger(t *testing.T) {
	var buffer bytes.Buffer
	newLogger(&buffer, false, false).Debug("hidden")
	newLogger(&buffer, false, false).Info("shown", "action", "DescribeUser")
	if strings.Contains(buffer.String(), "hidden") {
		t.Error("debug line logged without verbose")
	}
	if !strings.Contains(buffer.String(), `"action":"DescribeUser"`) {
		t.Errorf("JSON handler output = %q", buffer.String())
	}

	buffer.Reset()
	newLogger(&buffer, true, true).Debug("detail", "host", "node-1")
	if !strings.Contains(buffer.String(), "host=node-1") {
		t.Errorf("text handler output = %q", buffer.String())
	}
}
