// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// maxKeySize bounds how much ReadFromPath will load. Admin secret keys
// and age identity files are far smaller.
const maxKeySize = 64 << 10

// ReadFromPath loads the secret stored at path, or read from stdin when
// path is "-". Surrounding white space is trimmed and a key that is
// empty after trimming is rejected. The caller closes the Buffer.
func ReadFromPath(path string) (*Buffer, error) {
	if path == "-" {
		return read(os.Stdin, "stdin")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("secret: %w", err)
	}
	defer file.Close()
	return read(file, path)
}

func read(reader io.Reader, source string) (*Buffer, error) {
	raw, err := io.ReadAll(io.LimitReader(reader, maxKeySize+1))
	defer Zero(raw)
	if err != nil {
		return nil, fmt.Errorf("secret: reading %s: %w", source, err)
	}
	if len(raw) > maxKeySize {
		return nil, fmt.Errorf("secret: %s is larger than %d bytes", source, maxKeySize)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("secret: " + source + " is empty")
	}
	return NewFromBytes(trimmed)
}
