// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import "fmt"

// Operation selects whether a modify action grants or revokes.
type Operation int

const (
	OperationAdd Operation = iota
	OperationRemove
)

// String returns the wire value: "add" or "remove".
func (o Operation) String() string {
	switch o {
	case OperationAdd:
		return "add"
	case OperationRemove:
		return "remove"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// ParseOperation parses "add" or "remove".
func ParseOperation(value string) (Operation, error) {
	switch value {
	case "add":
		return OperationAdd, nil
	case "remove":
		return OperationRemove, nil
	default:
		return 0, fmt.Errorf("admin: unknown operation %q (want add or remove)", value)
	}
}

func (o Operation) valid() bool {
	return o == OperationAdd || o == OperationRemove
}
