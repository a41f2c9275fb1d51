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

	ct "github.com/google/certificate-transparency-go"
	"github.com/google/certificate-transparency-go/tls"
	"github.com/google/ctfrontend/submission"
)

// Record is what the frontend stores for each accepted entry: the SCT it
// issued, the Merkle tree leaf the SCT covers, and what is needed to serve the
// entry once it is logged.
type Record struct {
	SCT            ct.SignedCertificateTimestamp
	Leaf           ct.MerkleTreeLeaf
	Chain          []ct.ASN1Cert `tls:"minlen:0,maxlen:16777215"`
	Precertificate []byte        `tls:"minlen:0,maxlen:16777215"`
}

func newRecord(sct *ct.SignedCertificateTimestamp, leaf *ct.MerkleTreeLeaf, entry *submission.Entry) *Record {
	r := &Record{
		SCT:            *sct,
		Leaf:           *leaf,
		Precertificate: entry.Precertificate,
	}
	for _, der := range entry.Chain {
		r.Chain = append(r.Chain, ct.ASN1Cert{Data: der})
	}
	return r
}

// Marshal returns the TLS encoding of r.
func (r *Record) Marshal() ([]byte, error) {
	b, err := tls.Marshal(*r)
	if err != nil {
		return nil, fmt.Errorf("tls.Marshal(): %s", err)
	}
	return b, nil
}

// ParseRecord decodes a Record previously produced by Record.Marshal.
func ParseRecord(b []byte) (*Record, error) {
	var r Record
	rest, err := tls.Unmarshal(b, &r)
	if err != nil {
		return nil, fmt.Errorf("tls.Unmarshal(): %s", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%d trailing bytes after record", len(rest))
	}
	return &r, nil
}
