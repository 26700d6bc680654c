// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package xmlrecord

import (
	"bytes"
	"encoding/json"
)

// Extra is an ordered bag of string attributes for tags a record does
// not map explicitly. Keys keep the order in which they were first
// seen; setting an existing key replaces its value in place.
//
// The zero value is an empty bag ready to use.
type Extra struct {
	keys   []string
	values map[string]string
}

// Set stores value under tag.
func (e *Extra) Set(tag, value string) {
	if e.values == nil {
		e.values = make(map[string]string)
	}
	if _, exists := e.values[tag]; !exists {
		e.keys = append(e.keys, tag)
	}
	e.values[tag] = value
}

// Get returns the value stored under tag and whether it was present.
func (e *Extra) Get(tag string) (string, bool) {
	value, ok := e.values[tag]
	return value, ok
}

// Value returns the value stored under tag, or "" if absent.
func (e *Extra) Value(tag string) string {
	return e.values[tag]
}

// Keys returns the stored tags in first-seen order. The returned slice
// is a copy.
func (e *Extra) Keys() []string {
	keys := make([]string, len(e.keys))
	copy(keys, e.keys)
	return keys
}

// Len returns the number of stored tags.
func (e *Extra) Len() int {
	return len(e.keys)
}

// Map returns the bag as a plain map. Order is lost.
func (e *Extra) Map() map[string]string {
	result := make(map[string]string, len(e.keys))
	for _, key := range e.keys {
		result[key] = e.values[key]
	}
	return result
}

// MarshalJSON encodes the bag as a JSON object with keys in first-seen
// order.
func (e Extra) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for index, key := range e.keys {
		if index > 0 {
			buffer.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		encodedValue, err := json.Marshal(e.values[key])
		if err != nil {
			return nil, err
		}
		buffer.Write(encodedKey)
		buffer.WriteByte(':')
		buffer.Write(encodedValue)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}
