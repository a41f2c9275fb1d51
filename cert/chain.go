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

package cert

import (
	"bytes"
	"encoding/pem"
)

// profile decides how the head of a chain is interpreted.
type profile interface {
	// prefixLength is the number of certificates at the start of a chain of
	// length n that are not intermediates.
	prefixLength(n int) int
	wellFormed(c *Chain) bool
}

// plainProfile treats index 0 as the leaf and everything after it as
// intermediates or roots.
type plainProfile struct{}

func (plainProfile) prefixLength(n int) int {
	if n < 1 {
		return n
	}
	return 1
}

func (plainProfile) wellFormed(c *Chain) bool {
	return c.IsLoaded()
}

// precertProfile treats index 0 as a precertificate and index 1 as the
// certificate that issued it.
type precertProfile struct{}

func (precertProfile) prefixLength(n int) int {
	if n < 2 {
		return n
	}
	return 2
}

func (precertProfile) wellFormed(c *Chain) bool {
	if !c.IsLoaded() || len(c.certs) < 2 {
		return false
	}
	return c.certs[0].IsCriticalExtension(OIDExtensionCTPoison) &&
		c.certs[1].HasExtendedKeyUsage(OIDExtKeyUsageCTPrecertSigning)
}

// Chain is an ordered list of certificates.  Index 0 is the leaf (or the
// precertificate) and each subsequent certificate is expected to have issued
// the one before it.
//
// A Chain is not safe for concurrent mutation.
type Chain struct {
	certs   []*Certificate
	failed  bool
	profile profile
}

// NewChain builds a chain from zero or more concatenated PEM certificate
// blocks, in document order.
func NewChain(pemBundle string) *Chain {
	return newChain(pemBundle, plainProfile{})
}

// NewPrecertChain builds a chain whose first certificate is a precertificate.
// It differs from NewChain only in IntermediateLength and IsWellFormed.
func NewPrecertChain(pemBundle string) *Chain {
	return newChain(pemBundle, precertProfile{})
}

func newChain(pemBundle string, p profile) *Chain {
	c := &Chain{profile: p}
	rest := []byte(pemBundle)
	decoded := 0
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		decoded++
		if block.Type != pemCertificateType {
			c.failed = true
			continue
		}
		c.AddCert(LoadDER(block.Bytes))
	}
	// pem.Decode skips over blocks it cannot decode, so every BEGIN marker
	// must account for one decoded block.
	if decoded < bytes.Count([]byte(pemBundle), pemBegin) {
		c.failed = true
	}
	return c
}

// NewChainFromCerts builds a plain chain holding certs in order.
func NewChainFromCerts(certs ...*Certificate) *Chain {
	c := &Chain{profile: plainProfile{}}
	for _, cert := range certs {
		c.AddCert(cert)
	}
	return c
}

// NewPrecertChainFromCerts builds a precertificate chain holding certs in
// order.
func NewPrecertChainFromCerts(certs ...*Certificate) *Chain {
	c := &Chain{profile: precertProfile{}}
	for _, cert := range certs {
		c.AddCert(cert)
	}
	return c
}

// AddCert appends cert to the end of the chain.  The chain takes ownership of
// cert; callers must not modify it afterwards.  Chain order is not checked.
// Adding a certificate that is not loaded leaves the chain unloaded.
func (c *Chain) AddCert(cert *Certificate) {
	if !cert.IsLoaded() {
		c.failed = true
		return
	}
	c.certs = append(c.certs, cert)
}

// IsLoaded reports whether the chain holds at least one certificate and every
// certificate given to it parsed successfully.
func (c *Chain) IsLoaded() bool {
	return c != nil && len(c.certs) > 0 && !c.failed
}

// Length returns the number of certificates in the chain, or 0 if the chain
// is not loaded.
func (c *Chain) Length() int {
	if !c.IsLoaded() {
		return 0
	}
	return len(c.certs)
}

// CertAt returns the certificate at index i, or nil if the chain is not
// loaded or i is out of range.
func (c *Chain) CertAt(i int) *Certificate {
	if !c.IsLoaded() || i < 0 || i >= len(c.certs) {
		return nil
	}
	return c.certs[i]
}

// LeafCert returns the first certificate in the chain.
func (c *Chain) LeafCert() *Certificate {
	return c.CertAt(0)
}

// LastCert returns the last certificate in the chain.
func (c *Chain) LastCert() *Certificate {
	return c.CertAt(c.Length() - 1)
}

// Certs returns a copy of the certificate list, or nil if the chain is not
// loaded.
func (c *Chain) Certs() []*Certificate {
	if !c.IsLoaded() {
		return nil
	}
	return append([]*Certificate(nil), c.certs...)
}

// DERLength returns the total length of the DER encodings in the chain.
func (c *Chain) DERLength() int {
	n := 0
	for _, cert := range c.certs {
		n += len(cert.DER())
	}
	return n
}

// IsValidIssuerChain reports whether each certificate's issuer name matches
// the subject name of the certificate after it.
func (c *Chain) IsValidIssuerChain() bool {
	if !c.IsLoaded() {
		return false
	}
	for i := 0; i+1 < len(c.certs); i++ {
		if !c.certs[i].IsIssuedBy(c.certs[i+1]) {
			return false
		}
	}
	return true
}

// IsValidSignatureChain reports whether each certificate is issued and signed
// by the certificate after it.
func (c *Chain) IsValidSignatureChain() bool {
	if !c.IsLoaded() {
		return false
	}
	for i := 0; i+1 < len(c.certs); i++ {
		if !c.certs[i].IsSignedBy(c.certs[i+1]) {
			return false
		}
	}
	return true
}

// IntermediateLength returns the number of certificates after the leaf, or
// after the precertificate and its issuer for a precertificate chain.
func (c *Chain) IntermediateLength() int {
	n := c.Length()
	return n - c.profile.prefixLength(n)
}

// IsWellFormed reports whether the chain has the shape its profile requires.
// For a precertificate chain that means the first certificate carries a
// critical poison extension and the second carries the CT precertificate
// signing extended key usage.  Issuer and signature validity are separate
// checks.
func (c *Chain) IsWellFormed() bool {
	return c.profile.wellFormed(c)
}

// IsPrecertChain reports whether the chain was built with the precertificate
// profile.
func (c *Chain) IsPrecertChain() bool {
	_, ok := c.profile.(precertProfile)
	return ok
}

// PrecertIssuer returns the dedicated precertificate signing certificate at
// index 1, or nil if the certificate there is a regular CA.
func (c *Chain) PrecertIssuer() *Certificate {
	issuer := c.CertAt(1)
	if issuer == nil || !issuer.HasExtendedKeyUsage(OIDExtKeyUsageCTPrecertSigning) {
		return nil
	}
	return issuer
}

// IssuerOfPrecert returns the CA certificate the precertificate is issued on
// behalf of, if it is present in the chain.  This is index 2 when a
// precertificate signing certificate sits at index 1, and index 1 otherwise.
func (c *Chain) IssuerOfPrecert() *Certificate {
	if c.PrecertIssuer() != nil {
		return c.CertAt(2)
	}
	return c.CertAt(1)
}
