// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package xmlrecord

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"
)

// Record receives the decoded leaf elements of one response object.
// EndElement is called in document order with the element's local
// name and its character data. A returned error aborts the decode.
type Record interface {
	EndElement(tag, text string) error
}

// Setter assigns the text of one element to a typed attribute.
type Setter func(text string) error

// Fields maps element local names to the setters of one record
// instance. Build it per receiver so the setters write into that
// record; a map literal guarantees each tag appears once.
type Fields map[string]Setter

// Assign routes one element to its mapped setter, or stores the raw
// text in extra under the tag name when the tag is not mapped. A nil
// extra drops unmapped tags.
func (f Fields) Assign(tag, text string, extra *Extra) error {
	if setter, ok := f[tag]; ok {
		if err := setter(text); err != nil {
			return fmt.Errorf("field %q: %w", tag, err)
		}
		return nil
	}
	if extra != nil {
		extra.Set(tag, text)
	}
	return nil
}

// Text returns a Setter that stores the element text unchanged.
func Text(target *string) Setter {
	return func(text string) error {
		*target = text
		return nil
	}
}

// Binary returns a Setter that base64-decodes the element text. White
// space inside the text (line-wrapped encoders) is ignored. Empty text
// decodes to an empty, non-nil slice.
func Binary(target *[]byte) Setter {
	return func(text string) error {
		compact := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, text)

		decoded, err := base64.StdEncoding.DecodeString(compact)
		if err != nil {
			return fmt.Errorf("invalid base64: %w", err)
		}
		*target = decoded
		return nil
	}
}
