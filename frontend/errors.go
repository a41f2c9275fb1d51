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

package frontend

import (
	"fmt"

	"github.com/google/ctfrontend/storage"
)

// WriteConflictError is returned when the store reports that a key, found
// absent by the lookup, was occupied by the time the new record was written.
type WriteConflictError struct {
	Key    []byte
	Status storage.Status
}

func (e *WriteConflictError) Error() string {
	return fmt.Sprintf("WriteEntry(%x) = %s, want %s", e.Key, e.Status, storage.New)
}

// RecordParseError is returned when a record read back from the store cannot
// be decoded.
type RecordParseError struct {
	Key []byte
	Err error
}

func (e *RecordParseError) Error() string {
	return fmt.Sprintf("stored record for key %x: %s", e.Key, e.Err)
}
