// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/novaadmin/lib/xmlrecord"
	"github.com/bureau-foundation/novaadmin/query"
)

// record is the constraint for decoded admin records: a pointer that
// receives elements and can be bound to its producing client.
type record[T any] interface {
	*T
	xmlrecord.Record
	bind(*Client)
}

// UserInfo describes a user. File holds a credential bundle and is set
// only by operations that return one.
type UserInfo struct {
	Username  string          `json:"username"`
	AccessKey string          `json:"accesskey,omitempty"`
	SecretKey string          `json:"-"`
	File      []byte          `json:"file,omitempty"`
	Extra     xmlrecord.Extra `json:"attributes"`

	client *Client
}

func (u *UserInfo) EndElement(tag, text string) error {
	return xmlrecord.Fields{
		"username":  xmlrecord.Text(&u.Username),
		"accesskey": xmlrecord.Text(&u.AccessKey),
		"secretkey": xmlrecord.Text(&u.SecretKey),
		"file":      xmlrecord.Binary(&u.File),
	}.Assign(tag, text, &u.Extra)
}

func (u *UserInfo) bind(client *Client) { u.client = client }

func (u *UserInfo) String() string { return "UserInfo:" + u.Username }

// Credentials returns the user's key pair. The caller owns the
// returned secret key buffer.
func (u *UserInfo) Credentials() (query.Credentials, error) {
	if u.AccessKey == "" || u.SecretKey == "" {
		return query.Credentials{}, fmt.Errorf("admin: user %q has no key pair", u.Username)
	}
	secretKey, err := newSecret(u.SecretKey)
	if err != nil {
		return query.Credentials{}, err
	}
	return query.Credentials{AccessKey: u.AccessKey, SecretKey: secretKey}, nil
}

// Connection builds a cloud connection with this user's key pair,
// using the client that produced the record.
func (u *UserInfo) Connection() (*query.Client, error) {
	if u.client == nil {
		return nil, ErrDetached
	}
	credentials, err := u.Credentials()
	if err != nil {
		return nil, err
	}
	return u.client.NewCloudConnection(credentials)
}

// ProjectInfo describes a project. Only the name is mapped; everything
// else the service reports lands in Extra.
//
// Project members arrive as a nested list (<memberIds><item>alice</item>
// ...</memberIds>); the nested item leaves are collected into Members.
type ProjectInfo struct {
	ProjectName string          `json:"projectname"`
	Members     []string        `json:"members,omitempty"`
	Extra       xmlrecord.Extra `json:"attributes"`

	client *Client
}

func (p *ProjectInfo) EndElement(tag, text string) error {
	switch tag {
	case "projectname":
		p.ProjectName = text
	case "item":
		p.Members = append(p.Members, text)
	default:
		p.Extra.Set(tag, text)
	}
	return nil
}

func (p *ProjectInfo) bind(client *Client) { p.client = client }

func (p *ProjectInfo) String() string { return "ProjectInfo:" + p.ProjectName }

// Description returns the project description.
func (p *ProjectInfo) Description() string { return p.Extra.Value("description") }

// ManagerUser returns the name of the project manager.
func (p *ProjectInfo) ManagerUser() string { return p.Extra.Value("projectManagerId") }

// MemberIDs returns the project members: the nested list when present,
// otherwise a flat comma- or space-separated memberIds field.
func (p *ProjectInfo) MemberIDs() []string {
	if len(p.Members) > 0 {
		return append([]string(nil), p.Members...)
	}
	return strings.FieldsFunc(p.Extra.Value("memberIds"), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// HostInfo describes a compute host. It has no fixed schema: every
// field the service reports (disk, memory, CPU, network, firewall,
// bridge) is kept in Extra.
type HostInfo struct {
	Extra xmlrecord.Extra `json:"attributes"`

	client *Client
}

func (h *HostInfo) EndElement(tag, text string) error {
	h.Extra.Set(tag, text)
	return nil
}

func (h *HostInfo) bind(client *Client) { h.client = client }

func (h *HostInfo) String() string { return "Host:" + h.Hostname() }

// Hostname returns the reported host name, or "" if absent.
func (h *HostInfo) Hostname() string { return h.Extra.Value("hostname") }
