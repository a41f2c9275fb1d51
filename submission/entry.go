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

package submission

import (
	ct "github.com/google/certificate-transparency-go"
)

// Entry is a validated, canonicalized submission, ready to be timestamped and
// signed.
type Entry struct {
	Type ct.LogEntryType
	// LeafCertificate is the DER of the leaf certificate for an X509 entry,
	// or the DER of the precertificate's TBSCertificate, with the poison
	// extension removed, for a precert entry.  Its hash is the entry's
	// primary key.
	LeafCertificate []byte
	// IssuerKeyHash is the SHA-256 hash of the SubjectPublicKeyInfo of the CA
	// that will issue the final certificate.  Only set for precert entries.
	IssuerKeyHash [32]byte
	// Precertificate is the DER of the submitted precertificate.  Only set for
	// precert entries.
	Precertificate []byte
	// Chain holds the DER of the certificates after the leaf (or
	// precertificate), ending with a trusted root.
	Chain [][]byte
}

// MerkleTreeLeaf returns the RFC 6962 Merkle tree leaf for the entry, at the
// given timestamp (milliseconds since the epoch).
func (e *Entry) MerkleTreeLeaf(timestamp uint64) *ct.MerkleTreeLeaf {
	te := &ct.TimestampedEntry{
		Timestamp:  timestamp,
		EntryType:  e.Type,
		Extensions: ct.CTExtensions{},
	}
	switch e.Type {
	case ct.X509LogEntryType:
		te.X509Entry = &ct.ASN1Cert{Data: e.LeafCertificate}
	case ct.PrecertLogEntryType:
		te.PrecertEntry = &ct.PreCert{
			IssuerKeyHash:  e.IssuerKeyHash,
			TBSCertificate: e.LeafCertificate,
		}
	}
	return &ct.MerkleTreeLeaf{
		Version:          ct.V1,
		LeafType:         ct.TimestampedEntryLeafType,
		TimestampedEntry: te,
	}
}
