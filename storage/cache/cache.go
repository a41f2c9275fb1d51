// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cache provides a read-through cache in front of a storage.LogStore.
// Only Logged records are cached: they never change once written.
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/ctfrontend/storage"
	lru "github.com/hashicorp/golang-lru"
)

// Store wraps a storage.LogStore with an LRU cache of Logged records.
type Store struct {
	backend storage.LogStore
	logged  *lru.Cache
}

// New returns a Store caching up to size Logged records from backend.
func New(backend storage.LogStore, size int) (*Store, error) {
	if backend == nil {
		return nil, errors.New("cache: nil backend")
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("lru.New(%d): %s", size, err)
	}
	return &Store{backend: backend, logged: c}, nil
}

// LookupEntry implements storage.LogStore.
func (s *Store) LookupEntry(ctx context.Context, key []byte) (storage.Status, []byte, error) {
	if v, ok := s.logged.Get(string(key)); ok {
		return storage.Logged, append([]byte(nil), v.([]byte)...), nil
	}
	status, record, err := s.backend.LookupEntry(ctx, key)
	if err == nil && status == storage.Logged {
		s.logged.Add(string(key), append([]byte(nil), record...))
	}
	return status, record, err
}

// WriteEntry implements storage.LogStore.
func (s *Store) WriteEntry(ctx context.Context, key, record []byte) (storage.Status, error) {
	if _, ok := s.logged.Get(string(key)); ok {
		return storage.Logged, nil
	}
	return s.backend.WriteEntry(ctx, key, record)
}

// MarkLogged implements storage.Finalizer if the backend does.
func (s *Store) MarkLogged(ctx context.Context, key []byte) error {
	f, ok := s.backend.(storage.Finalizer)
	if !ok {
		return fmt.Errorf("cache: backend %T cannot finalize entries", s.backend)
	}
	return f.MarkLogged(ctx, key)
}

// Len returns the number of cached records.
func (s *Store) Len() int {
	return s.logged.Len()
}
