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

// Package memory provides an in-memory implementation of the Log frontend
// storage, ordered by primary key.
package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/google/btree"
	"github.com/google/ctfrontend/storage"
)

const degree = 8

type entry struct {
	key    []byte
	status storage.Status
	record []byte
}

func (e *entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(*entry).key) < 0
}

// Store implements storage.LogStore and storage.Finalizer.  It is safe for
// concurrent use.
type Store struct {
	mu   sync.RWMutex
	tree *btree.BTree
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{tree: btree.New(degree)}
}

// LookupEntry implements storage.LogStore.
func (s *Store) LookupEntry(ctx context.Context, key []byte) (storage.Status, []byte, error) {
	if err := ctx.Err(); err != nil {
		return storage.NotFound, nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	item := s.tree.Get(&entry{key: key})
	if item == nil {
		return storage.NotFound, nil, nil
	}
	e := item.(*entry)
	return e.status, append([]byte(nil), e.record...), nil
}

// WriteEntry implements storage.LogStore.
func (s *Store) WriteEntry(ctx context.Context, key, record []byte) (storage.Status, error) {
	if err := ctx.Err(); err != nil {
		return storage.NotFound, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.tree.Get(&entry{key: key}); item != nil {
		return item.(*entry).status, nil
	}
	s.tree.ReplaceOrInsert(&entry{
		key:    append([]byte(nil), key...),
		status: storage.Pending,
		record: append([]byte(nil), record...),
	})
	return storage.New, nil
}

// MarkLogged implements storage.Finalizer.
func (s *Store) MarkLogged(ctx context.Context, key []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.tree.Get(&entry{key: key})
	if item == nil {
		return &storage.NotFoundError{Key: key}
	}
	item.(*entry).status = storage.Logged
	return nil
}

// PendingKeys returns the keys of all Pending entries, in key order.
func (s *Store) PendingKeys(ctx context.Context) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys [][]byte
	s.tree.Ascend(func(i btree.Item) bool {
		if e := i.(*entry); e.status == storage.Pending {
			keys = append(keys, append([]byte(nil), e.key...))
		}
		return true
	})
	return keys, nil
}

// Len returns the number of entries in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Len()
}
