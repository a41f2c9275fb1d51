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

// Package storage provides the storage interfaces required by the CT Log
// frontend.
package storage

import (
	"context"
	"fmt"
)

// Status is the state of an entry in a LogStore, or the outcome of writing
// one.
type Status int

// Status values.  New is only ever returned by WriteEntry.
const (
	NotFound Status = iota
	Pending
	Logged
	New
)

func (s Status) String() string {
	switch s {
	case NotFound:
		return "NOT_FOUND"
	case Pending:
		return "PENDING"
	case Logged:
		return "LOGGED"
	case New:
		return "NEW"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// LogStore holds the records of entries submitted to a Log, keyed by their
// primary key.
type LogStore interface {
	// LookupEntry returns the status of the entry stored under key, and its
	// record if the status is Pending or Logged.
	LookupEntry(ctx context.Context, key []byte) (Status, []byte, error)

	// WriteEntry stores record under key as a Pending entry, if and only if
	// no entry is already stored under key.  It returns New if the record was
	// stored, or the status of the existing entry, which is left unchanged.
	WriteEntry(ctx context.Context, key, record []byte) (Status, error)
}

// Finalizer marks Pending entries as Logged once they have been incorporated
// into the Log's Merkle tree.
type Finalizer interface {
	// MarkLogged moves the entry under key from Pending to Logged.  Marking a
	// Logged entry is a no-op; marking a missing entry is an error.
	MarkLogged(ctx context.Context, key []byte) error
}

// UnexpectedStatusError is returned when a LogStore reports a status that the
// caller's contract does not allow at that point.
type UnexpectedStatusError struct {
	Op     string
	Status Status
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %s", e.Op, e.Status)
}

// NotFoundError is returned by Finalizer.MarkLogged for a key with no entry.
type NotFoundError struct {
	Key []byte
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no entry for key %x", e.Key)
}
