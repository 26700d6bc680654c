// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for novaadmin.
//
// A [Command] is a node in the command tree: a name, an optional
// [pflag.FlagSet] factory, and either Subcommands or a Run function.
// [Command.Execute] parses flags, routes to subcommands and prints help.
// Flags declared on a command that has subcommands are parsed before
// the subcommand name, so "novaadmin --config lab.yaml user list" works.
//
// Unknown subcommands and flags get a "did you mean" suggestion when a
// known name is within edit distance 3.
//
// Parameter structs bind their flags from struct tags with
// [FlagsFromParams]; embedding [JSONOutput] adds --json.
package cli
