// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"sort"
	"strconv"
	"strings"
)

// Params holds the request parameters of one action. The signing
// parameters (Action, AWSAccessKeyId, Signature*, Timestamp, Version)
// are added by the Client and overwrite same-named entries.
type Params map[string]string

// Set stores value under name.
func (p Params) Set(name, value string) {
	p[name] = value
}

// SetOptional stores value under name unless value is empty. An absent
// optional argument is omitted from the request rather than sent empty.
func (p Params) SetOptional(name, value string) {
	if value != "" {
		p[name] = value
	}
}

// SetList stores values as name.1, name.2, ... in order.
func (p Params) SetList(name string, values []string) {
	for index, value := range values {
		p[name+"."+strconv.Itoa(index+1)] = value
	}
}

// Clone returns a copy of p. Cloning nil returns an empty map.
func (p Params) Clone() Params {
	clone := make(Params, len(p))
	for name, value := range p {
		clone[name] = value
	}
	return clone
}

// canonical renders the parameters sorted by name in byte order, each
// name and value percent-encoded, joined with "&". This is both the
// signed string and the request body (minus the Signature).
func (p Params) canonical() string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	for index, name := range names {
		if index > 0 {
			builder.WriteByte('&')
		}
		builder.WriteString(percentEncode(name))
		builder.WriteByte('=')
		builder.WriteString(percentEncode(p[name]))
	}
	return builder.String()
}

// percentEncode escapes everything outside the RFC 3986 unreserved set
// (A-Z a-z 0-9 - _ . ~) as %XX with upper-case hex. The server
// recomputes the signature over this exact form; url.QueryEscape writes
// spaces as "+" and would not match.
func percentEncode(value string) string {
	const hex = "0123456789ABCDEF"

	var builder strings.Builder
	builder.Grow(len(value))
	for index := 0; index < len(value); index++ {
		character := value[index]
		if isUnreserved(character) {
			builder.WriteByte(character)
			continue
		}
		builder.WriteByte('%')
		builder.WriteByte(hex[character>>4])
		builder.WriteByte(hex[character&0x0f])
	}
	return builder.String()
}

func isUnreserved(character byte) bool {
	switch {
	case 'A' <= character && character <= 'Z',
		'a' <= character && character <= 'z',
		'0' <= character && character <= '9':
		return true
	}
	return character == '-' || character == '_' || character == '.' || character == '~'
}
