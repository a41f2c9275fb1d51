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

// Package signer produces and verifies the signatures in Signed Certificate
// Timestamps.
package signer

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"fmt"
	"io/ioutil"

	ct "github.com/google/certificate-transparency-go"
	"github.com/google/certificate-transparency-go/tls"
	"github.com/google/ctfrontend/ctlog"
	tcrypto "github.com/google/trillian/crypto"
	"github.com/google/trillian/crypto/keys/pem"
)

// LogSigner signs SCTs with a Log's private key.  It is safe for concurrent
// use.
type LogSigner struct {
	log    *ctlog.Log
	signer *tcrypto.Signer
	sigAlg tls.SignatureAlgorithm
}

// New returns a LogSigner for log, signing with key.  key must be the private
// half of log.PublicKey.
func New(log *ctlog.Log, key crypto.Signer) (*LogSigner, error) {
	if log == nil || key == nil {
		return nil, errors.New("signer: log and key must be non-nil")
	}
	sigAlg, err := signatureAlgorithm(key.Public())
	if err != nil {
		return nil, err
	}
	if pub, ok := key.Public().(interface{ Equal(crypto.PublicKey) bool }); !ok || !pub.Equal(log.PublicKey) {
		return nil, fmt.Errorf("%s: private key does not match the Log's public key", log.Name)
	}
	return &LogSigner{
		log:    log,
		signer: tcrypto.NewSigner(0, key, crypto.SHA256),
		sigAlg: sigAlg,
	}, nil
}

// LoadPrivateKey reads a PEM-encoded private key from path, decrypting it with
// password if password is not empty.
func LoadPrivateKey(path, password string) (crypto.Signer, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading private key: %s", err)
	}
	key, err := pem.UnmarshalPrivateKey(string(b), password)
	if err != nil {
		return nil, fmt.Errorf("error parsing private key %s: %s", path, err)
	}
	return key, nil
}

// Log returns the Log the signer signs for.
func (s *LogSigner) Log() *ctlog.Log {
	return s.log
}

// SignCertificateTimestamp fills in the version, Log ID and signature of sct,
// which must already carry its timestamp, over the given Merkle tree leaf.
func (s *LogSigner) SignCertificateTimestamp(sct *ct.SignedCertificateTimestamp, leaf *ct.MerkleTreeLeaf) error {
	if sct == nil || leaf == nil || leaf.TimestampedEntry == nil {
		return errors.New("signer: missing SCT or leaf")
	}
	if sct.Timestamp != leaf.TimestampedEntry.Timestamp {
		return fmt.Errorf("signer: SCT timestamp %d does not match leaf timestamp %d", sct.Timestamp, leaf.TimestampedEntry.Timestamp)
	}
	sct.SCTVersion = ct.V1
	sct.LogID = s.log.LogID
	if sct.Extensions == nil {
		sct.Extensions = ct.CTExtensions{}
	}

	input, err := ct.SerializeSCTSignatureInput(*sct, ct.LogEntry{Leaf: *leaf})
	if err != nil {
		return fmt.Errorf("ct.SerializeSCTSignatureInput(): %s", err)
	}
	sig, err := s.signer.Sign(input)
	if err != nil {
		return fmt.Errorf("%s: error signing SCT: %s", s.log.Name, err)
	}
	sct.Signature = ct.DigitallySigned{
		Algorithm: tls.SignatureAndHashAlgorithm{
			Hash:      tls.SHA256,
			Signature: s.sigAlg,
		},
		Signature: sig,
	}
	return nil
}

// Verify checks that sct is a valid SCT from this signer's Log over leaf.
func (s *LogSigner) Verify(sct *ct.SignedCertificateTimestamp, leaf *ct.MerkleTreeLeaf) error {
	return Verify(s.log, sct, leaf)
}

// Verify checks that sct was issued by log over leaf.
func Verify(log *ctlog.Log, sct *ct.SignedCertificateTimestamp, leaf *ct.MerkleTreeLeaf) error {
	if sct == nil || leaf == nil {
		return errors.New("signer: missing SCT or leaf")
	}
	if sct.LogID != log.LogID {
		return fmt.Errorf("%s: SCT Log ID %x does not match", log.Name, sct.LogID.KeyID)
	}
	v, err := ct.NewSignatureVerifier(log.PublicKey)
	if err != nil {
		return fmt.Errorf("ct.NewSignatureVerifier(): %s", err)
	}
	return v.VerifySCTSignature(*sct, ct.LogEntry{Leaf: *leaf})
}

func signatureAlgorithm(pub crypto.PublicKey) (tls.SignatureAlgorithm, error) {
	switch pub.(type) {
	case *ecdsa.PublicKey:
		return tls.ECDSA, nil
	case *rsa.PublicKey:
		return tls.RSA, nil
	default:
		return tls.Anonymous, fmt.Errorf("signer: unsupported key type %T", pub)
	}
}
