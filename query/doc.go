// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package query sends signed requests to the control plane's query API
// and hands back the raw XML response.
//
// A request is an Action name plus string parameters, POSTed as a form
// to an endpoint path such as /services/Admin and signed with signature
// version 2 (HMAC-SHA256 over the method, host, path, and the sorted,
// percent-encoded parameters). The response body is returned unread so
// a streaming decoder (lib/xmlrecord) can consume it:
//
//	client, err := query.NewClient(query.ClientConfig{
//	    Endpoint:    query.Endpoint{Host: "10.0.0.1", Path: query.AdminPath},
//	    Credentials: query.Credentials{AccessKey: "admin", SecretKey: secretKey},
//	})
//	body, err := client.Call(ctx, "DescribeUsers", nil)
//	defer body.Close()
//
// Every failure before a 2xx response is a [*TransportError]. Requests
// are never retried.
package query
