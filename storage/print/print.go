// Copyright 2018 Google LLC
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

// Package print provides a storage.LogStore that prints every call passed to
// it before handing it on to a backend store.
//
// This package is only intended to be a handy tool used during development.
// Don't rely on it.
package print

import (
	"context"

	"github.com/golang/glog"
	"github.com/google/ctfrontend/storage"
)

// Store prints each call and its outcome, then delegates to a backend.
type Store struct {
	name    string
	backend storage.LogStore
}

// New returns a Store that prefixes its output with name.
func New(name string, backend storage.LogStore) *Store {
	return &Store{name: name, backend: backend}
}

// LookupEntry simply prints the lookup and its result.
func (s *Store) LookupEntry(ctx context.Context, key []byte) (storage.Status, []byte, error) {
	status, record, err := s.backend.LookupEntry(ctx, key)
	glog.Infof("%s: LookupEntry(%x) = %s, %d bytes, %v", s.name, key, status, len(record), err)
	return status, record, err
}

// WriteEntry simply prints the write and its result.
func (s *Store) WriteEntry(ctx context.Context, key, record []byte) (storage.Status, error) {
	status, err := s.backend.WriteEntry(ctx, key, record)
	glog.Infof("%s: WriteEntry(%x, %d bytes) = %s, %v", s.name, key, len(record), status, err)
	return status, err
}

// MarkLogged prints the call and delegates to the backend if it is a
// storage.Finalizer.
func (s *Store) MarkLogged(ctx context.Context, key []byte) error {
	f, ok := s.backend.(storage.Finalizer)
	if !ok {
		glog.Warningf("%s: MarkLogged(%x): backend %T cannot finalize entries", s.name, key, s.backend)
		return &storage.UnexpectedStatusError{Op: "MarkLogged", Status: storage.NotFound}
	}
	err := f.MarkLogged(ctx, key)
	glog.Infof("%s: MarkLogged(%x) = %v", s.name, key, err)
	return err
}
