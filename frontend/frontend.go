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

// Package frontend queues certificate chain submissions for inclusion in a CT
// Log: it validates them, issues at most one SCT per distinct entry, and
// records each accepted entry in a storage.LogStore.
package frontend

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/golang/glog"
	ct "github.com/google/certificate-transparency-go"
	"github.com/google/ctfrontend/ctlog"
	"github.com/google/ctfrontend/storage"
	"github.com/google/ctfrontend/submission"
	"github.com/google/trillian/util/clock"
)

// SubmissionHandler validates raw submissions and builds canonical entries.
// submission.Handler is the default implementation.
type SubmissionHandler interface {
	ProcessSubmission(data []byte, entryType ct.LogEntryType) (*submission.Entry, submission.Status)
}

// SCTSigner signs SCTs over Merkle tree leaves on behalf of a Log.
// signer.LogSigner is the default implementation.
type SCTSigner interface {
	SignCertificateTimestamp(sct *ct.SignedCertificateTimestamp, leaf *ct.MerkleTreeLeaf) error
	// Log returns the Log the SCTs are issued for.
	Log() *ctlog.Log
}

// Frontend issues SCTs for submissions.  It holds no mutable state of its
// own; concurrent calls are safe as long as its collaborators are.
type Frontend struct {
	store      storage.LogStore
	signer     SCTSigner
	handler    SubmissionHandler
	timeSource clock.TimeSource
	name       string
}

// New returns a Frontend using the given collaborators, none of which it
// owns.  It panics if any of them is nil.
func New(store storage.LogStore, signer SCTSigner, handler SubmissionHandler) *Frontend {
	if store == nil || signer == nil || handler == nil {
		panic(fmt.Sprintf("frontend.New(%v, %v, %v): nil collaborator", store, signer, handler))
	}
	name := "frontend"
	if l := signer.Log(); l != nil {
		name = l.Name
	}
	return &Frontend{
		store:      store,
		signer:     signer,
		handler:    handler,
		timeSource: clock.System,
		name:       name,
	}
}

// WithTimeSource makes f take SCT timestamps from ts, and returns f.
func (f *Frontend) WithTimeSource(ts clock.TimeSource) *Frontend {
	f.timeSource = ts
	return f
}

// QueueX509Entry is QueueEntry for an X509 entry.
func (f *Frontend) QueueX509Entry(ctx context.Context, data []byte) (*ct.SignedCertificateTimestamp, SubmitResult, error) {
	return f.QueueEntry(ctx, ct.X509LogEntryType, data)
}

// QueueEntry validates data as a chain for an entry of the given type and
// returns the SCT for it.
//
// A submission whose entry is already stored gets back the SCT issued when it
// was first accepted, with result Logged or Pending.  Otherwise a new SCT is
// issued and the entry stored as Pending, with result New.  A rejected
// submission gets a nil SCT and the reason for the rejection.  The error is
// non-nil only with UnknownError, when the store fails or misbehaves.
func (f *Frontend) QueueEntry(ctx context.Context, entryType ct.LogEntryType, data []byte) (*ct.SignedCertificateTimestamp, SubmitResult, error) {
	sct, result, err := f.queueEntry(ctx, entryType, data)
	submissions.WithLabelValues(f.name, result.label()).Inc()
	return sct, result, err
}

func (f *Frontend) queueEntry(ctx context.Context, entryType ct.LogEntryType, data []byte) (*ct.SignedCertificateTimestamp, SubmitResult, error) {
	entry, status := f.handler.ProcessSubmission(data, entryType)
	if status != submission.OK {
		result := GetSubmitError(status)
		glog.V(1).Infof("%s: submission rejected: %s: %s", f.name, status, result)
		return nil, result, nil
	}
	if entry == nil {
		panic(fmt.Sprintf("%s: submission handler returned OK without an entry", f.name))
	}

	key := ComputePrimaryKey(entry)
	stored, record, err := f.store.LookupEntry(ctx, key)
	if err != nil {
		glog.Errorf("%s: LookupEntry(%x): %s", f.name, key, err)
		return nil, UnknownError, fmt.Errorf("LookupEntry(%x): %v", key, err)
	}
	switch stored {
	case storage.Logged, storage.Pending:
		r, err := ParseRecord(record)
		if err != nil {
			glog.Errorf("%s: LookupEntry(%x): %s", f.name, key, err)
			return nil, UnknownError, &RecordParseError{Key: key, Err: err}
		}
		result := Pending
		if stored == storage.Logged {
			result = Logged
		}
		glog.V(1).Infof("%s: duplicate submission %x: %s", f.name, key, result)
		return &r.SCT, result, nil
	case storage.NotFound:
	default:
		panic(fmt.Sprintf("%s: LookupEntry(%x) returned impossible status %s", f.name, key, stored))
	}

	timestamp := uint64(f.timeSource.Now().UnixNano() / int64(time.Millisecond))
	leaf := entry.MerkleTreeLeaf(timestamp)
	sct := &ct.SignedCertificateTimestamp{Timestamp: timestamp}
	if err := f.signer.SignCertificateTimestamp(sct, leaf); err != nil {
		panic(fmt.Sprintf("%s: failed to sign SCT for validated entry %x: %s", f.name, key, err))
	}

	record, err = newRecord(sct, leaf, entry).Marshal()
	if err != nil {
		glog.Errorf("%s: encoding record %x: %s", f.name, key, err)
		return nil, UnknownError, fmt.Errorf("encoding record %x: %v", key, err)
	}
	written, err := f.store.WriteEntry(ctx, key, record)
	if err != nil {
		glog.Errorf("%s: WriteEntry(%x): %s", f.name, key, err)
		return nil, UnknownError, fmt.Errorf("WriteEntry(%x): %v", key, err)
	}
	if written != storage.New {
		werr := &WriteConflictError{Key: key, Status: written}
		glog.Errorf("%s: %s", f.name, werr)
		return nil, UnknownError, werr
	}

	glog.V(1).Infof("%s: queued %v entry %x at %d", f.name, entryType, key, timestamp)
	return sct, New, nil
}

// ComputePrimaryKey returns the key an entry is stored under: the SHA-256
// hash of its LeafCertificate.
func ComputePrimaryKey(entry *submission.Entry) []byte {
	h := sha256.Sum256(entry.LeafCertificate)
	return h[:]
}
