// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package admin is the administrative client for the control plane.
//
// Each operation picks an action name and parameters, sends them
// through a [query.Transport] to the admin service path, and decodes
// the XML response with lib/xmlrecord into one of three shapes: a
// single record, a list of records, or a boolean status.
//
//	client, err := admin.NewClient(admin.Config{
//	    Endpoint:    query.Endpoint{Host: "10.0.0.1", Region: "nova"},
//	    Credentials: query.Credentials{AccessKey: "admin", SecretKey: secretKey},
//	})
//	defer client.Close()
//
//	user, err := client.User(ctx, "alice")
//	if user == nil { ... } // not found
//
// Lookups by name ([Client.User], [Client.Project]) report a record
// whose identifying field came back empty as (nil, nil). The service
// answers an unknown name with an empty record rather than an error, so
// this also hides a record from which the service merely omitted the
// field.
//
// A user's own cloud connection is derived in two steps:
// [Client.ResolveCredentials] fetches the user's key pair, and
// [Client.NewCloudConnection] builds a transport for the cloud service
// path from it. [Client.ConnectionFor] composes the two and fails with
// [ErrUnknownUser] without contacting the cloud service when the user
// does not exist.
package admin
