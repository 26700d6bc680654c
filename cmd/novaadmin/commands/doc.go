// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the novaadmin command tree.
//
// Every command that talks to the control plane loads configuration
// through lib/config (--config, else NOVAADMIN_CONFIG, else defaults),
// reads the admin secret key from admin.secret_key_file and issues
// one or more admin.Client calls. Read commands accept --json.
package commands
