// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"encoding/hex"
	"time"

	"github.com/bureau-foundation/novaadmin/admin"
)

// Host is one host as stored in a snapshot.
type Host struct {
	Hostname   string            `cbor:"hostname" json:"hostname"`
	Attributes map[string]string `cbor:"attributes,omitempty" json:"attributes,omitempty"`
}

// Summary describes a stored snapshot without its hosts.
type Summary struct {
	ID        int64     `json:"id"`
	TakenAt   time.Time `json:"taken_at"`
	HostCount int       `json:"host_count"`
	Digest    []byte    `json:"-"`
}

// DigestHex returns the snapshot digest as lowercase hex.
func (s Summary) DigestHex() string { return hex.EncodeToString(s.Digest) }

// Snapshot is a stored snapshot with its hosts.
type Snapshot struct {
	Summary
	Hosts []Host `json:"hosts"`
}

// hostsFrom converts admin records into stored hosts, keeping the
// service's order.
func hostsFrom(records []*admin.HostInfo) []Host {
	hosts := make([]Host, 0, len(records))
	for _, record := range records {
		host := Host{Hostname: record.Hostname()}
		if record.Extra.Len() > 0 {
			host.Attributes = record.Extra.Map()
		}
		hosts = append(hosts, host)
	}
	return hosts
}
