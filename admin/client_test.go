// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin_test

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/novaadmin/admin"
	"github.com/bureau-foundation/novaadmin/lib/clock"
	"github.com/bureau-foundation/novaadmin/lib/secret"
	"github.com/bureau-foundation/novaadmin/lib/testutil"
	"github.com/bureau-foundation/novaadmin/lib/xmlrecord"
	"github.com/bureau-foundation/novaadmin/query"
)

func newClient(t *testing.T, plane *testutil.ControlPlane) *admin.Client {
	t.Helper()
	host, port := plane.HostPort(t)
	secretKey, err := secret.NewFromString("admin-secret")
	if err != nil {
		t.Fatalf("secret.NewFromString: %v", err)
	}
	client, err := admin.NewClient(admin.Config{
		Endpoint:    query.Endpoint{Host: host, Port: port, Region: "nova"},
		Credentials: query.Credentials{AccessKey: "admin", SecretKey: secretKey},
		Clock:       clock.Fake(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)),
		Logger:      slog.New(slog.DiscardHandler),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func formOf(request testutil.Request, names ...string) map[string]string {
	form := make(map[string]string, len(names))
	for _, name := range names {
		if values, ok := request.Form[name]; ok {
			form[name] = values[0]
		}
	}
	return form
}

func lastRequest(t *testing.T, plane *testutil.ControlPlane) testutil.Request {
	t.Helper()
	requests := plane.Requests()
	if len(requests) == 0 {
		t.Fatal("no requests received")
	}
	return requests[len(requests)-1]
}

const aliceResponse = `<?xml version="1.0"?>
<DescribeUserResponse xmlns="http://ec2.amazonaws.com/doc/nova/">
  <requestId>req-1</requestId>
  <username>alice</username>
  <accesskey>alice-access</accesskey>
  <secretkey>alice-secret</secretkey>
</DescribeUserResponse>`

func TestUser(t *testing.T) {
	plane := testutil.NewControlPlane(t)
	plane.Respond("DescribeUser", aliceResponse)
	client := newClient(t, plane)

	user, err := client.User(context.Background(), "alice")
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if user == nil {
		t.Fatal("User returned nil for existing user")
	}
	if user.Username != "alice" || user.AccessKey != "alice-access" || user.SecretKey != "alice-secret" {
		t.Errorf("user = %+v", user)
	}
	if user.File != nil {
		t.Errorf("File = %v, want nil", user.File)
	}
	if value := user.Extra.Value("requestId"); value != "req-1" {
		t.Errorf("requestId = %q", value)
	}

	request := lastRequest(t, plane)
	if request.Path != query.AdminPath {
		t.Errorf("path = %q, want %q", request.Path, query.AdminPath)
	}
	if diff := cmp.Diff(map[string]string{"Action": "DescribeUser", "Name": "alice", "Version": "nova"},
		formOf(request, "Action", "Name", "Version")); diff != "" {
		t.Errorf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestUserNotFound(t *testing.T) {
	responses := map[string]string{
		"no username element":    `<DescribeUserResponse><requestId>r</requestId></DescribeUserResponse>`,
		"empty username element": `<DescribeUserResponse><username></username><accesskey>k</accesskey></DescribeUserResponse>`,
	}
	for name, response := range responses {
		t.Run(name, func(t *testing.T) {
			plane := testutil.NewControlPlane(t)
			plane.Respond("DescribeUser", response)
			client := newClient(t, plane)

			user, err := client.User(context.Background(), "ghost")
			if err != nil {
				t.Fatalf("User: %v", err)
			}
			if user != nil {
				t.Errorf("User = %+v, want nil", user)
			}

			exists, err := client.HasUser(context.Background(), "ghost")
			if err != nil || exists {
				t.Errorf("HasUser = %v, %v; want false, nil", exists, err)
			}
		})
	}
}

func TestUsers(t *testing.T) {
	plane := testutil.NewControlPlane(t)
	plane.Respond("DescribeUsers", `<DescribeUsersResponse>
  <requestId>r</requestId>
  <userSet>
    <item><username>alice</username><accesskey>a</accesskey><secretkey>as</secretkey></item>
    <item><username>bob</username><accesskey>b</accesskey><secretkey>bs</secretkey></item>
  </userSet>
</DescribeUsersResponse>`)
	client := newClient(t, plane)

	users, err := client.Users(context.Background())
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	var names []string
	for _, user := range users {
		names = append(names, user.Username)
		if user.Extra.Len() != 0 {
			t.Errorf("%s picked up fields from outside its item: %v", user.Username, user.Extra.Keys())
		}
	}
	if diff := cmp.Diff([]string{"alice", "bob"}, names); diff != "" {
		t.Errorf("usernames mismatch (-want +got):\n%s", diff)
	}
}

func TestUsersEmpty(t *testing.T) {
	plane := testutil.NewControlPlane(t)
	plane.Respond("DescribeUsers", `<DescribeUsersResponse><userSet/></DescribeUsersResponse>`)
	client := newClient(t, plane)

	users, err := client.Users(context.Background())
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Errorf("Users = %v, want empty non-nil", users)
	}
}

func TestCreateAndDeleteUser(t *testing.T) {
	plane := testutil.NewControlPlane(t)
	plane.Respond("RegisterUser", `<RegisterUserResponse><username>carol</username><accesskey>ck</accesskey><secretkey>cs</secretkey></RegisterUserResponse>`)
	plane.Respond("DeregisterUser", `<DeregisterUserResponse><return>true</return></DeregisterUserResponse>`)
	client := newClient(t, plane)

	created, err := client.CreateUser(context.Background(), "carol")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.Username != "carol" || created.SecretKey != "cs" {
		t.Errorf("created = %+v", created)
	}

	// Deregister answers with a record lacking a username; it is
	// returned as-is, not treated as absent.
	deleted, err := client.DeleteUser(context.Background(), "carol")
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if deleted == nil {
		t.Fatal("DeleteUser returned nil record")
	}
	if value := deleted.Extra.Value("return"); value != "true" {
		t.Errorf("return = %q", value)
	}
	if name := formOf(lastRequest(t, plane), "Name")["Name"]; name != "carol" {
		t.Errorf("Name = %q", name)
	}
}

func TestModifyUserRole(t *testing.T) {
	tests := []struct {
		name     string
		call     func(*admin.Client) (bool, error)
		response string
		want     bool
		wantForm map[string]string
	}{
		{
			name:     "add global role",
			call:     func(c *admin.Client) (bool, error) { return c.AddUserRole(context.Background(), "alice", "cloudadmin", "") },
			response: `<ModifyUserRoleResponse><return>true</return></ModifyUserRoleResponse>`,
			want:     true,
			wantForm: map[string]string{"User": "alice", "Role": "cloudadmin", "Operation": "add"},
		},
		{
			name:     "remove project role",
			call:     func(c *admin.Client) (bool, error) { return c.RemoveUserRole(context.Background(), "alice", "netadmin", "proj") },
			response: `<ModifyUserRoleResponse><return>TRUE</return></ModifyUserRoleResponse>`,
			want:     true,
			wantForm: map[string]string{"User": "alice", "Role": "netadmin", "Project": "proj", "Operation": "remove"},
		},
		{
			name: "refused",
			call: func(c *admin.Client) (bool, error) {
				return c.ModifyUserRole(context.Background(), "alice", "sysadmin", "", admin.OperationAdd)
			},
			response: `<ModifyUserRoleResponse><return>false</return></ModifyUserRoleResponse>`,
			want:     false,
			wantForm: map[string]string{"User": "alice", "Role": "sysadmin", "Operation": "add"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			plane := testutil.NewControlPlane(t)
			plane.Respond("ModifyUserRole", test.response)
			client := newClient(t, plane)

			got, err := test.call(client)
			if err != nil {
				t.Fatalf("call: %v", err)
			}
			if got != test.want {
				t.Errorf("status = %v, want %v", got, test.want)
			}
			form := formOf(lastRequest(t, plane), "User", "Role", "Project", "Operation")
			if diff := cmp.Diff(test.wantForm, form); diff != "" {
				t.Errorf("form mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStatusMissing(t *testing.T) {
	plane := testutil.NewControlPlane(t)
	plane.Respond("ModifyProjectUser", `<ModifyProjectUserResponse><requestId>r</requestId></ModifyProjectUserResponse>`)
	client := newClient(t, plane)

	_, err := client.AddProjectMember(context.Background(), "alice", "proj")
	if !errors.Is(err, xmlrecord.ErrMissingStatus) {
		t.Fatalf("error = %v, want ErrMissingStatus", err)
	}
}

func TestInvalidOperationRejectedLocally(t *testing.T) {
	plane := testutil.NewControlPlane(t)
	client := newClient(t, plane)

	if _, err := client.ModifyUserRole(context.Background(), "a", "r", "", admin.Operation(9)); err == nil {
		t.Error("ModifyUserRole accepted invalid operation")
	}
	if _, err := client.ModifyProjectUser(context.Background(), "a", "p", admin.Operation(-1)); err == nil {
		t.Error("ModifyProjectUser accepted invalid operation")
	}
	if len(plane.Requests()) != 0 {
		t.Error("invalid operation reached the server")
	}
}

func TestCredentialBundle(t *testing.T) {
	bundle := []byte("PK\x03\x04\x14\x00novarc\x00\xff\xfe")
	plane := testutil.NewControlPlane(t)
	plane.Respond("GenerateX509ForUser", `<GenerateX509ForUserResponse><username>alice</username><file>`+
		base64.StdEncoding.EncodeToString(bundle)+`</file></GenerateX509ForUserResponse>`)
	client := newClient(t, plane)

	got, err := client.CredentialBundle(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CredentialBundle: %v", err)
	}
	if diff := cmp.Diff(bundle, got); diff != "" {
		t.Errorf("bundle mismatch (-want +got):\n%s", diff)
	}
}

func TestCredentialBundleInvalidBase64(t *testing.T) {
	plane := testutil.NewControlPlane(t)
	plane.Respond("GenerateX509ForUser", `<GenerateX509ForUserResponse><file>%%%</file></GenerateX509ForUserResponse>`)
	client := newClient(t, plane)

	got, err := client.CredentialBundle(context.Background(), "alice")
	if got != nil {
		t.Errorf("bundle = %v, want nil", got)
	}
	if !xmlrecord.IsMalformedResponse(err) {
		t.Fatalf("error = %v, want malformed response", err)
	}
}

func TestMalformedResponse(t *testing.T) {
	plane := testutil.NewControlPlane(t)
	plane.Respond("DescribeUser", `<DescribeUserResponse><username>alice</username>`)
	client := newClient(t, plane)

	user, err := client.User(context.Background(), "alice")
	if user != nil {
		t.Errorf("User = %+v, want nil", user)
	}
	if !xmlrecord.IsMalformedResponse(err) {
		t.Fatalf("error = %v, want malformed response", err)
	}
}

func TestTransportErrorPassesThrough(t *testing.T) {
	plane := testutil.NewControlPlane(t)
	plane.RespondStatus("DescribeHosts", http.StatusUnauthorized, testutil.ErrorDocument("AuthFailure", "bad signature"))
	client := newClient(t, plane)

	hosts, err := client.Hosts(context.Background())
	if hosts != nil {
		t.Errorf("Hosts = %v, want nil", hosts)
	}
	if !query.IsErrorCode(err, "AuthFailure") {
		t.Fatalf("error = %v, want AuthFailure transport error", err)
	}
}

func TestOperationString(t *testing.T) {
	for _, operation := range []admin.Operation{admin.OperationAdd, admin.OperationRemove} {
		parsed, err := admin.ParseOperation(operation.String())
		if err != nil || parsed != operation {
			t.Errorf("ParseOperation(%q) = %v, %v", operation.String(), parsed, err)
		}
	}
	if _, err := admin.ParseOperation("grant"); err == nil {
		t.Error("ParseOperation accepted grant")
	}
}

// cannedTransport answers every action with the same body.
type cannedTransport struct {
	body    string
	actions []string
}

func (c *cannedTransport) Call(_ context.Context, action string, _ query.Params) (io.ReadCloser, error) {
	c.actions = append(c.actions, action)
	return io.NopCloser(strings.NewReader(c.body)), nil
}

func TestCallerSuppliedTransport(t *testing.T) {
	transport := &cannedTransport{body: `<r><return>true</return></r>`}
	client, err := admin.NewClient(admin.Config{
		Endpoint:  query.Endpoint{Host: "controller"},
		Transport: transport,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	ok, err := client.AddUserRole(context.Background(), "alice", "netadmin", "")
	if err != nil || !ok {
		t.Fatalf("AddUserRole = %v, %v", ok, err)
	}
	if diff := cmp.Diff([]string{"ModifyUserRole"}, transport.actions); diff != "" {
		t.Errorf("actions mismatch (-want +got):\n%s", diff)
	}
	if client.Endpoint().Path != query.AdminPath {
		t.Errorf("default path = %q", client.Endpoint().Path)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestCallerSuppliedTransportReleasesSecretKey(t *testing.T) {
	secretKey, err := secret.NewFromString("admin-secret")
	if err != nil {
		t.Fatalf("secret.NewFromString: %v", err)
	}
	client, err := admin.NewClient(admin.Config{
		Endpoint:    query.Endpoint{Host: "controller"},
		Credentials: query.Credentials{AccessKey: "admin", SecretKey: secretKey},
		Transport:   &cannedTransport{body: `<r><return>true</return></r>`},
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	if secretKey.Len() != 0 {
		t.Errorf("secret key still holds %d bytes, want it released", secretKey.Len())
	}
}
