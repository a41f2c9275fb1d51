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

// Package ctlog contains the identity and acceptance policy of the CT Log that
// the frontend issues SCTs for.
package ctlog

import (
	"crypto"
	"crypto/sha256"
	"fmt"
	"time"

	ct "github.com/google/certificate-transparency-go"
	"github.com/google/certificate-transparency-go/x509"
	"github.com/google/ctfrontend/interval"
)

// Log contains the metadata about a CT Log that goes into, or restricts, the
// SCTs it issues.
type Log struct {
	Name      string
	PublicKey crypto.PublicKey
	// LogID is the SHA-256 hash of the DER encoding of PublicKey (RFC 6962
	// s3.2).
	LogID ct.LogID

	// TemporalInterval represents the interval in which a certificate's
	// NotAfter field must fall to be accepted by the Log.  nil means any
	// NotAfter is accepted.
	// TemporalInterval.Start and TemporalInterval.End are both to second
	// precision.
	TemporalInterval *interval.Interval
}

// New creates a Log structure, populating the fields appropriately.
//
// Either both or neither of temporalStart and temporalEnd must be set.
func New(name string, pubKey crypto.PublicKey, temporalStart, temporalEnd time.Time) (*Log, error) {
	if pubKey == nil {
		return nil, fmt.Errorf("%s: no public key", name)
	}
	der, err := x509.MarshalPKIXPublicKey(pubKey)
	if err != nil {
		return nil, fmt.Errorf("%s: x509.MarshalPKIXPublicKey(): %s", name, err)
	}

	ti, err := interval.New(temporalStart, temporalEnd)
	if err != nil {
		return nil, fmt.Errorf("%s: temporal interval: %s", name, err)
	}

	return &Log{
		Name:             name,
		PublicKey:        pubKey,
		LogID:            ct.LogID{KeyID: sha256.Sum256(der)},
		TemporalInterval: ti,
	}, nil
}

// NewFromB64 is like New, but takes the public key as base64-encoded DER, the
// form used in CT log lists.
func NewFromB64(name, b64PubKey string, temporalStart, temporalEnd time.Time) (*Log, error) {
	pk, err := ct.PublicKeyFromB64(b64PubKey)
	if err != nil {
		return nil, fmt.Errorf("ct.PublicKeyFromB64(): %s", err)
	}
	return New(name, pk, temporalStart, temporalEnd)
}

// AcceptsNotAfter reports whether a certificate expiring at notAfter falls in
// the Log's temporal interval.
func (l *Log) AcceptsNotAfter(notAfter time.Time) bool {
	return l.TemporalInterval.Contains(notAfter)
}
