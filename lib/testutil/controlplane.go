// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
)

// Request is one query received by a ControlPlane.
type Request struct {
	Method string
	Path   string
	Action string
	Form   url.Values
	Header http.Header
}

type cannedResponse struct {
	status int
	body   string
}

// ControlPlane is a fake query endpoint.
type ControlPlane struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]cannedResponse
	requests  []Request
}

// NewControlPlane starts a fake control plane that is shut down when
// the test ends.
func NewControlPlane(t *testing.T) *ControlPlane {
	t.Helper()
	plane := &ControlPlane{responses: make(map[string]cannedResponse)}
	plane.server = httptest.NewServer(http.HandlerFunc(plane.serve))
	t.Cleanup(plane.server.Close)
	return plane
}

// Respond registers a 200 response body for action.
func (c *ControlPlane) Respond(action, body string) {
	c.RespondStatus(action, http.StatusOK, body)
}

// RespondStatus registers a response with an explicit HTTP status.
func (c *ControlPlane) RespondStatus(action string, status int, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[action] = cannedResponse{status: status, body: body}
}

// Requests returns a copy of every request received so far.
func (c *ControlPlane) Requests() []Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Request(nil), c.requests...)
}

// URL returns the server's base URL.
func (c *ControlPlane) URL() string { return c.server.URL }

// HostPort returns the server's host and port.
func (c *ControlPlane) HostPort(t *testing.T) (string, int) {
	t.Helper()
	parsed, err := url.Parse(c.server.URL)
	if err != nil {
		t.Fatalf("parsing control plane URL: %v", err)
	}
	host, portText, err := net.SplitHostPort(parsed.Host)
	if err != nil {
		t.Fatalf("splitting control plane address: %v", err)
	}
	port, err := strconv.Atoi(portText)
	if err != nil {
		t.Fatalf("parsing control plane port: %v", err)
	}
	return host, port
}

func (c *ControlPlane) serve(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}
	action := request.Form.Get("Action")

	c.mu.Lock()
	c.requests = append(c.requests, Request{
		Method: request.Method,
		Path:   request.URL.Path,
		Action: action,
		Form:   request.PostForm,
		Header: request.Header.Clone(),
	})
	response, ok := c.responses[action]
	c.mu.Unlock()

	if !ok {
		response = cannedResponse{
			status: http.StatusBadRequest,
			body:   ErrorDocument("InvalidAction", fmt.Sprintf("unknown action %q", action)),
		}
	}

	writer.Header().Set("Content-Type", "text/xml")
	writer.WriteHeader(response.status)
	fmt.Fprint(writer, response.body)
}

// ErrorDocument renders an EC2-style error response body.
func ErrorDocument(code, message string) string {
	return fmt.Sprintf(`<?xml version="1.0"?>
<Response><Errors><Error><Code>%s</Code><Message>%s</Message></Error></Errors><RequestID>req-error</RequestID></Response>`,
		code, message)
}
