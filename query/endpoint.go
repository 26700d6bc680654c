// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"fmt"
	"net"
	"strconv"
)

// DefaultPort is the control plane's query API port.
const DefaultPort = 8773

// Service paths on the control plane.
const (
	AdminPath = "/services/Admin"
	CloudPath = "/services/Cloud"
)

// Endpoint addresses one query service.
type Endpoint struct {
	// Host is the controller's address, without port.
	Host string
	// Region is informational; it names the region the endpoint serves.
	Region string
	// Port defaults to DefaultPort.
	Port int
	// Path is the service path, for example AdminPath.
	Path string
	// Secure selects https.
	Secure bool
}

// WithPath returns a copy of e addressing a different service on the
// same controller.
func (e Endpoint) WithPath(path string) Endpoint {
	e.Path = path
	return e
}

// Address returns "host:port" with the default port applied. This is
// also the host component of the signed string.
func (e Endpoint) Address() string {
	port := e.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(e.Host, strconv.Itoa(port))
}

// URL returns the full request URL.
func (e Endpoint) URL() string {
	scheme := "http"
	if e.Secure {
		scheme = "https"
	}
	return scheme + "://" + e.Address() + e.path()
}

// String returns the URL.
func (e Endpoint) String() string { return e.URL() }

func (e Endpoint) path() string {
	if e.Path == "" {
		return "/"
	}
	return e.Path
}

// Validate reports a missing host, a port outside 1-65535, or a path
// without a leading slash.
func (e Endpoint) Validate() error {
	if e.Host == "" {
		return fmt.Errorf("query: endpoint host is required")
	}
	if e.Port < 0 || e.Port > 65535 {
		return fmt.Errorf("query: endpoint port %d out of range", e.Port)
	}
	if e.Path != "" && e.Path[0] != '/' {
		return fmt.Errorf("query: endpoint path %q must start with /", e.Path)
	}
	return nil
}
