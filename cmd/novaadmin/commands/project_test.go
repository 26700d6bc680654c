// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const researchResponse = `<DescribeProjectResponse>
  <projectname>research</projectname>
  <description>Research cluster</description>
  <projectManagerId>alice</projectManagerId>
  <memberIds><item>alice</item><item>bob</item></memberIds>
</DescribeProjectResponse>`

func TestProjectList(t *testing.T) {
	h := newHarness(t)
	h.plane.Respond("DescribeProjects", `<DescribeProjectsResponse><projectSet>
  <item><projectname>research</projectname><projectManagerId>alice</projectManagerId><memberIds><item>alice</item><item>bob</item></memberIds></item>
  <item><projectname>ops</projectname><projectManagerId>carol</projectManagerId><description>Operations</description></item>
</projectSet></DescribeProjectsResponse>`)

	got := h.run("project", "list")
	if got.err != nil {
		t.Fatalf("project list: %v", got.err)
	}
	lines := strings.Split(strings.TrimSpace(got.stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header and 2 rows:\n%s", len(lines), got.stdout)
	}
	if fields := strings.Fields(lines[1]); len(fields) != 3 || fields[0] != "research" || fields[2] != "2" {
		t.Errorf("research row = %q", lines[1])
	}
	if fields := strings.Fields(lines[2]); len(fields) != 4 || fields[3] != "Operations" {
		t.Errorf("ops row = %q", lines[2])
	}
}

func TestProjectShow_JSON(t *testing.T) {
	h := newHarness(t)
	h.plane.Respond("DescribeProject", researchResponse)

	got := h.run("project", "show", "research", "--json")
	if got.err != nil {
		t.Fatalf("project show: %v", got.err)
	}
	var view struct {
		Name        string   `json:"name"`
		Manager     string   `json:"manager"`
		Description string   `json:"description"`
		Members     []string `json:"members"`
	}
	if err := json.Unmarshal([]byte(got.stdout), &view); err != nil {
		t.Fatalf("decoding JSON: %v\n%s", err, got.stdout)
	}
	if view.Name != "research" || view.Manager != "alice" || view.Description != "Research cluster" {
		t.Errorf("view = %+v", view)
	}
	if diff := cmp.Diff([]string{"alice", "bob"}, view.Members); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectShow_NotFound(t *testing.T) {
	h := newHarness(t)
	h.plane.Respond("DescribeProject", `<DescribeProjectResponse><requestId>r</requestId></DescribeProjectResponse>`)

	got := h.run("project", "show", "nowhere")
	requireExitCode(t, got.err, 1)
	if !strings.Contains(got.stderr, `project "nowhere" not found`) {
		t.Errorf("stderr = %q", got.stderr)
	}
}

func TestProjectCreate(t *testing.T) {
	h := newHarness(t)
	h.plane.Respond("RegisterProject", `<RegisterProjectResponse><projectname>research</projectname></RegisterProjectResponse>`)

	got := h.run("project", "create", "research", "--manager", "alice", "--member", "alice,bob", "--description", "Research cluster")
	if got.err != nil {
		t.Fatalf("project create: %v", got.err)
	}
	if !strings.Contains(got.stdout, "created project research") {
		t.Errorf("stdout = %q", got.stdout)
	}
	want := map[string]string{
		"Action":        "RegisterProject",
		"Name":          "research",
		"ManagerUser":   "alice",
		"Description":   "Research cluster",
		"MemberUsers.1": "alice",
		"MemberUsers.2": "bob",
	}
	if diff := cmp.Diff(want, h.lastForm(t, "Action", "Name", "ManagerUser", "Description", "MemberUsers.1", "MemberUsers.2")); diff != "" {
		t.Errorf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectCreate_RequiresManager(t *testing.T) {
	h := newHarness(t)
	got := h.run("project", "create", "research")
	if got.err == nil || !strings.Contains(got.err.Error(), "--manager is required") {
		t.Errorf("error = %v", got.err)
	}
	if len(h.plane.Requests()) != 0 {
		t.Error("request sent without a manager")
	}
}

func TestProjectMembership(t *testing.T) {
	h := newHarness(t)
	h.plane.Respond("ModifyProjectUser", `<ModifyProjectUserResponse><return>true</return></ModifyProjectUserResponse>`)
	h.plane.Respond("DeregisterProject", `<DeregisterProjectResponse><return>true</return></DeregisterProjectResponse>`)

	got := h.run("project", "remove-member", "bob", "research")
	if got.err != nil {
		t.Fatalf("remove-member: %v", got.err)
	}
	if diff := cmp.Diff(map[string]string{"User": "bob", "Project": "research", "Operation": "remove"},
		h.lastForm(t, "User", "Project", "Operation")); diff != "" {
		t.Errorf("form mismatch (-want +got):\n%s", diff)
	}

	got = h.run("project", "delete", "research")
	if got.err != nil {
		t.Fatalf("delete: %v", got.err)
	}
	if !strings.Contains(got.stdout, "deleted project research") {
		t.Errorf("stdout = %q", got.stdout)
	}
}
