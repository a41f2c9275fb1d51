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

// Package submission validates raw certificate chain submissions and turns
// them into canonical log entries.
package submission

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/golang/glog"
	ct "github.com/google/certificate-transparency-go"
	"github.com/google/certificate-transparency-go/asn1"
	"github.com/google/certificate-transparency-go/x509"
	"github.com/google/ctfrontend/cert"
	"github.com/google/ctfrontend/ctlog"
)

// DefaultMaxChainBytes is the limit on the total DER length of a submitted
// chain used when Options.MaxChainBytes is zero.
const DefaultMaxChainBytes = 256 * 1024

var pemBegin = []byte("-----BEGIN")

// Options configures a Handler.
type Options struct {
	// Roots are the trusted roots.  A chain must end in, or be issued by, one
	// of them.
	Roots *RootPool
	// MaxChainBytes limits the total DER length of a chain.
	MaxChainBytes int
	// Log, if set, restricts the accepted NotAfter values to the Log's
	// temporal interval, and names the Log in log messages.
	Log *ctlog.Log
}

// Handler is the default submission handler.  It holds no mutable state and is
// safe for concurrent use.
type Handler struct {
	roots         *RootPool
	maxChainBytes int
	log           *ctlog.Log
	name          string
}

// NewHandler returns a Handler configured by opts.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		roots:         opts.Roots,
		maxChainBytes: opts.MaxChainBytes,
		log:           opts.Log,
		name:          "submission",
	}
	if h.maxChainBytes == 0 {
		h.maxChainBytes = DefaultMaxChainBytes
	}
	if opts.Log != nil {
		h.name = opts.Log.Name
	}
	return h
}

// ProcessSubmission validates data, a PEM bundle or concatenated DER
// certificates with the leaf first, as an entry of the given type.  On success
// it returns the canonical entry and OK; otherwise it returns nil and the
// reason the submission was rejected.
func (h *Handler) ProcessSubmission(data []byte, entryType ct.LogEntryType) (*Entry, Status) {
	if len(data) == 0 {
		return nil, EmptySubmission
	}

	var chain *cert.Chain
	switch entryType {
	case ct.X509LogEntryType:
		chain = cert.NewChain("")
	case ct.PrecertLogEntryType:
		chain = cert.NewPrecertChain("")
	default:
		glog.Warningf("%s: unsupported entry type %v", h.name, entryType)
		return nil, InvalidCertificateChain
	}
	if err := parseInto(chain, data); err != nil {
		glog.V(1).Infof("%s: %s", h.name, err)
		return nil, InvalidPEMEncodedChain
	}

	if n := chain.DERLength(); n > h.maxChainBytes {
		glog.V(1).Infof("%s: chain of %d bytes exceeds limit of %d", h.name, n, h.maxChainBytes)
		return nil, SubmissionTooLong
	}

	if !chain.IsValidIssuerChain() || !chain.IsValidSignatureChain() {
		glog.V(1).Infof("%s: chain for %q does not verify", h.name, chain.LeafCert().Subject())
		return nil, InvalidCertificateChain
	}

	leaf := chain.LeafCert()
	switch entryType {
	case ct.X509LogEntryType:
		if leaf.HasExtension(cert.OIDExtensionCTPoison) {
			glog.V(1).Infof("%s: X509 submission %q carries the poison extension", h.name, leaf.Subject())
			return nil, InvalidCertificateChain
		}
	case ct.PrecertLogEntryType:
		if !chain.IsWellFormed() {
			glog.V(1).Infof("%s: precert chain for %q is not well-formed", h.name, leaf.Subject())
			return nil, PrecertChainNotWellFormed
		}
	}

	root := h.roots.Anchor(chain.LastCert())
	if root == nil {
		glog.V(1).Infof("%s: chain for %q does not end in a trusted root", h.name, leaf.Subject())
		return nil, UnknownRoot
	}

	if h.log != nil && !h.log.AcceptsNotAfter(leaf.X509().NotAfter) {
		glog.V(1).Infof("%s: NotAfter %s of %q is outside %s", h.name, leaf.X509().NotAfter, leaf.Subject(), h.log.TemporalInterval)
		return nil, InvalidCertificateChain
	}

	entry := &Entry{Type: entryType}
	certs := chain.Certs()
	for _, c := range certs[1:] {
		entry.Chain = append(entry.Chain, c.DER())
	}
	if !bytes.Equal(root.DER(), chain.LastCert().DER()) {
		entry.Chain = append(entry.Chain, root.DER())
	}

	switch entryType {
	case ct.X509LogEntryType:
		entry.LeafCertificate = leaf.DER()
	case ct.PrecertLogEntryType:
		if err := h.fillPrecert(entry, chain, root); err != nil {
			glog.Warningf("%s: precert %q: %s", h.name, leaf.Subject(), err)
			return nil, InvalidCertificateChain
		}
	}
	return entry, OK
}

// fillPrecert sets the precert fields of entry following RFC 6962 s3.2.
func (h *Handler) fillPrecert(entry *Entry, chain *cert.Chain, root *cert.Certificate) error {
	precert := chain.LeafCert()

	issuer := chain.IssuerOfPrecert()
	if issuer == nil {
		// The precert signing certificate is last in the chain, so the CA it
		// acts for is the root it chains to.
		if h.roots.Contains(chain.LastCert()) {
			return fmt.Errorf("precertificate signing certificate is itself a root")
		}
		issuer = root
	}

	var preIssuer *x509.Certificate
	if pi := chain.PrecertIssuer(); pi != nil {
		preIssuer = pi.X509()
	}
	tbs, err := x509.BuildPrecertTBS(precert.X509().RawTBSCertificate, preIssuer)
	if err != nil {
		return fmt.Errorf("x509.BuildPrecertTBS(): %s", err)
	}

	entry.LeafCertificate = tbs
	entry.IssuerKeyHash = sha256.Sum256(issuer.X509().RawSubjectPublicKeyInfo)
	entry.Precertificate = precert.DER()
	return nil
}

// parseInto appends the certificates in data to chain.  data holds either PEM
// blocks or concatenated DER certificates.
func parseInto(chain *cert.Chain, data []byte) error {
	if bytes.Contains(data, pemBegin) {
		parsed := cert.NewChain(string(data))
		if !parsed.IsLoaded() {
			return fmt.Errorf("invalid PEM chain")
		}
		for _, c := range parsed.Certs() {
			chain.AddCert(c)
		}
		return nil
	}

	for rest := data; len(rest) > 0; {
		var raw asn1.RawValue
		r, err := asn1.Unmarshal(rest, &raw)
		if err != nil {
			return fmt.Errorf("invalid DER chain: %s", err)
		}
		c := cert.LoadDER(raw.FullBytes)
		if !c.IsLoaded() {
			return fmt.Errorf("invalid DER certificate at offset %d", len(data)-len(rest))
		}
		chain.AddCert(c)
		rest = r
	}
	return nil
}
