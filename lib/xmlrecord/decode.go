// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package xmlrecord

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// StatusTag is the element whose text carries the result of a
// status-shaped operation.
const StatusTag = "return"

// Pointer constrains the type arguments of the generic decoders: *T
// must implement Record. Callers name only T:
//
//	user, err := xmlrecord.DecodeSingle[UserInfo](body)
type Pointer[T any] interface {
	*T
	Record
}

// DecodeSingle decodes the whole document into one fresh *T. Every leaf
// element in the document is routed to it, wrapper elements included.
func DecodeSingle[T any, P Pointer[T]](reader io.Reader) (*T, error) {
	value := new(T)
	record := P(value)

	err := walk(reader, nil, func(end elementEnd) error {
		if !end.leaf {
			return nil
		}
		return deliver(record, end)
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// DecodeList decodes one *T per element named itemTag. An item element
// opens a record only when no record is already open; nested elements
// with the same name belong to the enclosing record. Leaf elements
// outside any item are ignored. A document without items yields an
// empty, non-nil slice.
func DecodeList[T any, P Pointer[T]](reader io.Reader, itemTag string) ([]*T, error) {
	records := make([]*T, 0)

	var (
		current      *T
		currentDepth int
	)

	onStart := func(name string, depth int) {
		if current == nil && name == itemTag {
			current = new(T)
			currentDepth = depth
		}
	}

	onEnd := func(end elementEnd) error {
		if current == nil {
			return nil
		}
		if end.depth == currentDepth {
			records = append(records, current)
			current = nil
			return nil
		}
		if !end.leaf {
			return nil
		}
		return deliver(P(current), end)
	}

	if err := walk(reader, onStart, onEnd); err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeStatus returns the boolean carried by the first leaf "return"
// element: true when its trimmed text equals "true" in any letter case,
// false otherwise. Returns ErrMissingStatus when the document has no
// such element.
func DecodeStatus(reader io.Reader) (bool, error) {
	var found, status bool

	err := walk(reader, nil, func(end elementEnd) error {
		if found || !end.leaf || end.name != StatusTag {
			return nil
		}
		found = true
		status = strings.EqualFold(strings.TrimSpace(end.text), "true")
		return nil
	})
	if err != nil {
		return false, err
	}
	if !found {
		return false, ErrMissingStatus
	}
	return status, nil
}

// xmlSpace is the white space allowed around the root element, plus a
// leading byte order mark.
const xmlSpace = "\ufeff \t\r\n"

// elementEnd describes one closed element.
type elementEnd struct {
	name string
	// text is the character data accumulated since the most recent
	// start or end token. For a leaf this is its full content.
	text string
	// leaf is true when the element had no child elements.
	leaf bool
	// depth is 1 for the root element.
	depth int
}

// deliver passes one leaf to a record, converting record failures into
// malformed-response errors.
func deliver(record Record, end elementEnd) error {
	if err := record.EndElement(end.name, end.text); err != nil {
		var malformed *MalformedResponseError
		if errors.As(err, &malformed) {
			return err
		}
		return &MalformedResponseError{Element: end.name, Err: err}
	}
	return nil
}

// walk streams the document, calling onStart for every start element
// and onEnd for every end element. onStart may be nil. Syntax errors,
// unclosed elements at end of stream, an empty stream, and content
// outside the single root element are reported as
// *MalformedResponseError. Errors returned by onEnd stop the walk and
// are returned unchanged. Declared non-UTF-8 encodings are transcoded.
func walk(reader io.Reader, onStart func(name string, depth int), onEnd func(elementEnd) error) error {
	decoder := xml.NewDecoder(reader)
	decoder.CharsetReader = charset.NewReaderLabel

	type frame struct {
		hasChild bool
	}
	var stack []frame
	var text strings.Builder
	sawElement := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &MalformedResponseError{Err: err}
		}

		switch token := token.(type) {
		case xml.StartElement:
			if sawElement && len(stack) == 0 {
				return &MalformedResponseError{Element: token.Name.Local, Err: errSecondRoot}
			}
			if len(stack) > 0 {
				stack[len(stack)-1].hasChild = true
			}
			stack = append(stack, frame{})
			sawElement = true
			text.Reset()
			if onStart != nil {
				onStart(token.Name.Local, len(stack))
			}

		case xml.EndElement:
			// The decoder rejects unbalanced end tags, so the stack is
			// never empty here.
			top := stack[len(stack)-1]
			depth := len(stack)
			stack = stack[:len(stack)-1]

			end := elementEnd{
				name:  token.Name.Local,
				text:  text.String(),
				leaf:  !top.hasChild,
				depth: depth,
			}
			text.Reset()
			if err := onEnd(end); err != nil {
				return err
			}

		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.Trim(token, xmlSpace)) > 0 {
					return &MalformedResponseError{Err: errTextOutsideRoot}
				}
				continue
			}
			text.Write(token)
		}
	}

	if !sawElement {
		return &MalformedResponseError{Err: errNoRootElement}
	}
	return nil
}
