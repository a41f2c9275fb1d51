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

// Package testonly contains fakes for use in tests that interact with storage.
package testonly

import (
	"context"
	"sync"

	"github.com/google/ctfrontend/storage"
)

// Call records one call made to a FakeLogStore.
type Call struct {
	Op     string
	Key    []byte
	Record []byte
}

// FakeLogStore returns preset values in order to fulfill the storage.LogStore
// interface, and records every call made to it.
type FakeLogStore struct {
	// LookupStatus, LookupRecord and LookupErr are returned by LookupEntry.
	LookupStatus storage.Status
	LookupRecord []byte
	LookupErr    error
	// WriteStatus and WriteErr are returned by WriteEntry.
	WriteStatus storage.Status
	WriteErr    error

	mu    sync.Mutex
	calls []Call
}

// LookupEntry returns FakeLogStore.LookupStatus, LookupRecord and LookupErr.
func (f *FakeLogStore) LookupEntry(ctx context.Context, key []byte) (storage.Status, []byte, error) {
	f.record(Call{Op: "LookupEntry", Key: key})
	return f.LookupStatus, f.LookupRecord, f.LookupErr
}

// WriteEntry returns FakeLogStore.WriteStatus and WriteErr.
func (f *FakeLogStore) WriteEntry(ctx context.Context, key, record []byte) (storage.Status, error) {
	f.record(Call{Op: "WriteEntry", Key: key, Record: record})
	return f.WriteStatus, f.WriteErr
}

// Calls returns the calls made so far, in order.
func (f *FakeLogStore) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

func (f *FakeLogStore) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}
