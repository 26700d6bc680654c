// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

const errClosed = "secret: buffer used after Close"

// Buffer is a fixed-size region of protected memory. Do not copy a
// Buffer after creation.
type Buffer struct {
	mu     sync.Mutex
	region []byte
}

// allocate maps size bytes of anonymous memory, locks them, and marks
// them MADV_DONTDUMP.
func allocate(size int) ([]byte, error) {
	region, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap %d bytes: %w", size, err)
	}
	if err := unix.Mlock(region); err != nil {
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: mlock: %w", err)
	}
	if err := unix.Madvise(region, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(region)
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: madvise: %w", err)
	}
	return region, nil
}

// NewFromBytes moves source into a protected Buffer: the bytes are
// copied and source is zeroed.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, errors.New("secret: empty secret")
	}
	region, err := allocate(len(source))
	if err != nil {
		return nil, err
	}
	copy(region, source)
	Zero(source)
	return &Buffer{region: region}, nil
}

// NewFromString copies value into a protected Buffer. The string
// itself stays on the heap, so prefer NewFromBytes when the secret is
// still in a mutable slice.
func NewFromString(value string) (*Buffer, error) {
	return NewFromBytes([]byte(value))
}

// Zero overwrites data with zeros.
func Zero(data []byte) {
	clear(data)
}

// Bytes returns the protected region itself. The slice is invalid
// after Close.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.region == nil {
		panic(errClosed)
	}
	return b.region
}

// String returns a heap copy of the secret.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Len returns the secret's size, or 0 after Close.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.region)
}

// Close zeroes and releases the region. Calling Close again is a no-op.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.region == nil {
		return nil
	}
	region := b.region
	b.region = nil

	Zero(region)
	return errors.Join(
		wrapErr("munlock", unix.Munlock(region)),
		wrapErr("munmap", unix.Munmap(region)),
	)
}

func wrapErr(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("secret: %s: %w", operation, err)
}
