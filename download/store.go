// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package download turns serialized documents into downloads:
// temporary blob references, file and HTTP download hosts,
// and the queue running the deferred reference revocation.
package download

import (
	"errors"
	"sync"

	"github.com/UNO-SOFT/recsheet"
	"github.com/google/uuid"
)

var ErrNoSuchRef = errors.New("no such blob reference")

// Store holds blobs under temporary "blob:<uuid>" references.
//
// The zero Store is ready to use and safe for concurrent use.
type Store struct {
	blobs map[string]recsheet.Blob
	mu    sync.Mutex
}

// CreateObjectURL stores the blob and returns a new reference to it.
func (s *Store) CreateObjectURL(b recsheet.Blob) string {
	ref := "blob:" + uuid.NewString()
	s.mu.Lock()
	if s.blobs == nil {
		s.blobs = make(map[string]recsheet.Blob)
	}
	s.blobs[ref] = b
	s.mu.Unlock()
	return ref
}

// RevokeObjectURL forgets the reference. Unknown references are ignored.
func (s *Store) RevokeObjectURL(ref string) {
	s.mu.Lock()
	delete(s.blobs, ref)
	s.mu.Unlock()
}

// Lookup returns the blob of the reference.
func (s *Store) Lookup(ref string) (recsheet.Blob, error) {
	s.mu.Lock()
	b, ok := s.blobs[ref]
	s.mu.Unlock()
	if !ok {
		return b, ErrNoSuchRef
	}
	return b, nil
}

// Len returns the number of live references.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
