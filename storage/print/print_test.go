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

package print

import (
	"context"
	"errors"
	"testing"

	"github.com/google/ctfrontend/storage"
	"github.com/google/ctfrontend/storage/memory"
	"github.com/google/ctfrontend/storage/testonly"
	"github.com/google/go-cmp/cmp"
)

var (
	_ storage.LogStore  = &Store{}
	_ storage.Finalizer = &Store{}
)

func TestPassesThrough(t *testing.T) {
	ctx := context.Background()
	s := New("test", memory.NewStore())

	if status, err := s.WriteEntry(ctx, []byte("k"), []byte("r")); err != nil || status != storage.New {
		t.Fatalf("WriteEntry() = %s, %v, want NEW, nil", status, err)
	}
	if err := s.MarkLogged(ctx, []byte("k")); err != nil {
		t.Fatalf("MarkLogged(): %v", err)
	}
	status, record, err := s.LookupEntry(ctx, []byte("k"))
	if err != nil || status != storage.Logged {
		t.Fatalf("LookupEntry() = %s, _, %v, want LOGGED, _, nil", status, err)
	}
	if diff := cmp.Diff([]byte("r"), record); diff != "" {
		t.Errorf("LookupEntry() record diff (-want +got):\n%s", diff)
	}
}

func TestPassesErrorsThrough(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	s := New("test", &testonly.FakeLogStore{LookupErr: boom, WriteErr: boom})

	if _, _, err := s.LookupEntry(ctx, []byte("k")); err != boom {
		t.Errorf("LookupEntry() error = %v, want %v", err, boom)
	}
	if _, err := s.WriteEntry(ctx, []byte("k"), nil); err != boom {
		t.Errorf("WriteEntry() error = %v, want %v", err, boom)
	}
	if err := s.MarkLogged(ctx, []byte("k")); err == nil {
		t.Errorf("MarkLogged() = nil, want error for a backend without Finalizer")
	}
}
