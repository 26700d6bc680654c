// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads novaadmin configuration.
//
// Configuration comes from a single file: the path given by --config,
// else the NOVAADMIN_CONFIG environment variable. There is no search
// path. [Resolve] falls back to [Default] when neither is set, which
// targets a local control plane at 127.0.0.1:8773 as user "admin".
//
// Files ending in .json or .jsonc are read as JSON with comments and
// trailing commas (github.com/tidwall/jsonc); anything else is YAML.
//
// The file may contain environment sections (development, staging,
// production) whose non-empty values override the base values when
// [Config].Environment matches. After overrides, ${VAR} and
// ${VAR:-default} are expanded in path fields from the process
// environment. No other environment variables override config values.
//
//   - [Config] with [AdminConfig] and [ManagerConfig] sections
//   - [Default], [Load], [LoadFile], [Resolve]
//   - [Config.Validate] reports every problem at once via errors.Join
package config
