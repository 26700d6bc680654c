// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParamsSetters(t *testing.T) {
	params := Params{}
	params.Set("Name", "alice")
	params.SetOptional("Project", "")
	params.SetOptional("Role", "netadmin")
	params.SetList("MemberUsers", []string{"alice", "bob"})
	params.SetList("Empty", nil)

	want := Params{
		"Name":          "alice",
		"Role":          "netadmin",
		"MemberUsers.1": "alice",
		"MemberUsers.2": "bob",
	}
	if diff := cmp.Diff(want, params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestParamsClone(t *testing.T) {
	var empty Params
	if clone := empty.Clone(); clone == nil || len(clone) != 0 {
		t.Errorf("nil Clone = %v, want empty non-nil", clone)
	}

	original := Params{"Name": "alice"}
	clone := original.Clone()
	clone.Set("Name", "bob")
	if original["Name"] != "alice" {
		t.Error("Clone shares storage with original")
	}
}

func TestCanonical(t *testing.T) {
	params := Params{
		"Timestamp":   "2026-01-01T00:00:00Z",
		"Action":      "DescribeUser",
		"Name":        "a b+c/~d",
		"Description": "ünïcode",
	}
	want := "Action=DescribeUser" +
		"&Description=%C3%BCn%C3%AFcode" +
		"&Name=a%20b%2Bc%2F~d" +
		"&Timestamp=2026-01-01T00%3A00%3A00Z"
	if got := params.canonical(); got != want {
		t.Errorf("canonical =\n  %s\nwant\n  %s", got, want)
	}
}

func TestCanonicalSortsByteOrder(t *testing.T) {
	// Upper case sorts before lower case.
	params := Params{"b": "1", "B": "2", "a": "3", "A.10": "4", "A.2": "5"}
	want := "A.10=4&A.2=5&B=2&a=3&b=1"
	if got := params.canonical(); got != want {
		t.Errorf("canonical = %s, want %s", got, want)
	}
}

func TestPercentEncode(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"AZaz09-_.~":      "AZaz09-_.~",
		" ":               "%20",
		"=&+*":            "%3D%26%2B%2A",
		"\x00\xff":        "%00%FF",
		"/services/Admin": "%2Fservices%2FAdmin",
	}
	for input, want := range tests {
		if got := percentEncode(input); got != want {
			t.Errorf("percentEncode(%q) = %q, want %q", input, got, want)
		}
	}
}
