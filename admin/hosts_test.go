// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/bureau-foundation/novaadmin/lib/testutil"
)

func TestHosts(t *testing.T) {
	plane := testutil.NewControlPlane(t)
	plane.Respond("DescribeHosts", `<DescribeHostsResponse>
  <hostSet>
    <item><hostname>compute-1</hostname><memory_mb>65536</memory_mb><vcpus>16</vcpus></item>
    <item><hostname>compute-2</hostname><bridge>br100</bridge></item>
  </hostSet>
</DescribeHostsResponse>`)
	client := newClient(t, plane)

	hosts, err := client.Hosts(context.Background())
	if err != nil {
		t.Fatalf("Hosts: %v", err)
	}
	if len(hosts) != 2 {
		t.Fatalf("len = %d, want 2", len(hosts))
	}
	if hosts[0].Hostname() != "compute-1" || hosts[1].Hostname() != "compute-2" {
		t.Errorf("hostnames = %q, %q", hosts[0].Hostname(), hosts[1].Hostname())
	}
	if hosts[0].String() != "Host:compute-1" {
		t.Errorf("String() = %q", hosts[0].String())
	}
	if _, ok := hosts[1].Extra.Get("vcpus"); ok {
		t.Error("second host received a field from the first")
	}

	encoded, err := json.Marshal(hosts[0])
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	want := `{"attributes":{"hostname":"compute-1","memory_mb":"65536","vcpus":"16"}}`
	if string(encoded) != want {
		t.Errorf("JSON = %s, want %s", encoded, want)
	}
}
