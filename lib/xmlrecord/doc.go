// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package xmlrecord decodes the flat XML documents returned by the
// control plane's query API into typed records, in a single streaming
// pass over encoding/xml tokens. No parse tree is built: responses are
// small and flat, and each record is populated element by element as the
// stream is consumed.
//
// A record type implements [Record]. The decoder calls EndElement once
// per leaf element (an element with no child elements) with the
// element's local name and its exact character data. Container elements
// (response wrappers, result sets, the item elements themselves) carry
// no value and are not routed.
//
// Record types usually implement EndElement by delegating to a [Fields]
// table bound to the receiver:
//
//	func (u *UserInfo) EndElement(tag, text string) error {
//	    return xmlrecord.Fields{
//	        "username": xmlrecord.Text(&u.Username),
//	        "file":     xmlrecord.Binary(&u.File),
//	    }.Assign(tag, text, &u.Extra)
//	}
//
// Tags without an explicit mapping are stored in the record's [Extra]
// bag under the tag name, so additive schema changes on the server side
// never fail a decode. The cost is that type mismatches are invisible:
// a value that does not fit a typed field simply stays raw text.
//
// Three result shapes are supported:
//
//   - [DecodeSingle]: the whole document populates one record.
//   - [DecodeList]: each element named by the item tag (outside any
//     record) opens a fresh record; output preserves document order.
//   - [DecodeStatus]: the text of the first "return" element, compared
//     case-insensitively with "true". A document without one is an
//     error ([ErrMissingStatus]), never a silent false.
//
// Documents that are not well-formed XML fail with
// [*MalformedResponseError], including a second root element and text
// outside the root. No partially populated record is returned. A
// declared encoding other than UTF-8 (ISO-8859-1, windows-1252, ...) is
// transcoded through golang.org/x/net/html/charset before decoding.
package xmlrecord
