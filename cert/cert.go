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

// Package cert provides the certificate and certificate chain types used to
// validate submissions to a CT Log.
//
// None of the query methods in this package return errors: a certificate that
// failed to parse is simply not loaded, and every predicate on it is false.
package cert

import (
	"bytes"
	"encoding/pem"

	"github.com/google/certificate-transparency-go/asn1"
	"github.com/google/certificate-transparency-go/x509"
)

const pemCertificateType = "CERTIFICATE"

var pemBegin = []byte("-----BEGIN")

var (
	// OIDExtensionCTPoison marks a precertificate (RFC 6962 s3.1).  It must be
	// critical, and its value is ASN.1 NULL.
	OIDExtensionCTPoison = x509.OIDExtensionCTPoison
	// OIDExtKeyUsageCTPrecertSigning is the extended key usage that authorizes
	// a certificate to sign precertificates on behalf of a CA (RFC 6962 s3.1).
	OIDExtKeyUsageCTPrecertSigning = asn1.ObjectIdentifier{1, 3, 6, 1, 4, 1, 11129, 2, 4, 4}

	OIDExtensionSubjectKeyID        = asn1.ObjectIdentifier{2, 5, 29, 14}
	OIDExtensionKeyUsage            = asn1.ObjectIdentifier{2, 5, 29, 15}
	OIDExtensionSubjectAltName      = asn1.ObjectIdentifier{2, 5, 29, 17}
	OIDExtensionBasicConstraints    = asn1.ObjectIdentifier{2, 5, 29, 19}
	OIDExtensionAuthorityKeyID      = asn1.ObjectIdentifier{2, 5, 29, 35}
	OIDExtensionExtendedKeyUsage    = asn1.ObjectIdentifier{2, 5, 29, 37}
	OIDExtKeyUsageServerAuth        = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 1}
	OIDExtKeyUsageClientAuth        = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 2}
	OIDExtensionCertificatePolicies = asn1.ObjectIdentifier{2, 5, 29, 32}
)

// Certificate is a single parsed X.509 certificate.  It is immutable once
// loaded.
type Certificate struct {
	x509Cert *x509.Certificate
}

// Load parses the first PEM block in pemText as a certificate.  If pemText is
// empty, malformed, or its first block is not a certificate, the returned
// Certificate is not loaded.
func Load(pemText string) *Certificate {
	block, _ := pem.Decode([]byte(pemText))
	if block == nil || block.Type != pemCertificateType {
		return &Certificate{}
	}
	return LoadDER(block.Bytes)
}

// LoadDER parses a single DER-encoded certificate.  If der does not hold a
// certificate, the returned Certificate is not loaded.
func LoadDER(der []byte) *Certificate {
	if len(der) == 0 {
		return &Certificate{}
	}
	c, err := x509.ParseCertificate(der)
	if x509.IsFatal(err) {
		return &Certificate{}
	}
	return &Certificate{x509Cert: c}
}

// IsLoaded reports whether the certificate was parsed successfully.
func (c *Certificate) IsLoaded() bool {
	return c != nil && c.x509Cert != nil
}

// X509 returns the parsed certificate, or nil if c is not loaded.
func (c *Certificate) X509() *x509.Certificate {
	if !c.IsLoaded() {
		return nil
	}
	return c.x509Cert
}

// DER returns the DER encoding of the certificate, or nil if c is not loaded.
func (c *Certificate) DER() []byte {
	if !c.IsLoaded() {
		return nil
	}
	return c.x509Cert.Raw
}

// PEM returns the PEM encoding of the certificate, or "" if c is not loaded.
func (c *Certificate) PEM() string {
	if !c.IsLoaded() {
		return ""
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: pemCertificateType, Bytes: c.x509Cert.Raw}))
}

// HasExtension reports whether the certificate carries the extension
// identified by oid.
func (c *Certificate) HasExtension(oid asn1.ObjectIdentifier) bool {
	_, ok := c.extension(oid)
	return ok
}

// IsCriticalExtension reports whether the certificate carries the extension
// identified by oid, marked as critical.
func (c *Certificate) IsCriticalExtension(oid asn1.ObjectIdentifier) bool {
	i, ok := c.extension(oid)
	return ok && c.x509Cert.Extensions[i].Critical
}

// HasExtendedKeyUsage reports whether the certificate's extended key usage
// extension lists the purpose identified by oid.
func (c *Certificate) HasExtendedKeyUsage(oid asn1.ObjectIdentifier) bool {
	i, ok := c.extension(OIDExtensionExtendedKeyUsage)
	if !ok {
		return false
	}
	var usages []asn1.ObjectIdentifier
	rest, err := asn1.Unmarshal(c.x509Cert.Extensions[i].Value, &usages)
	if err != nil || len(rest) > 0 {
		return false
	}
	for _, u := range usages {
		if u.Equal(oid) {
			return true
		}
	}
	return false
}

// HasBasicConstraintCA reports whether the certificate has a basic
// constraints extension with the CA flag set.
func (c *Certificate) HasBasicConstraintCA() bool {
	if !c.IsLoaded() {
		return false
	}
	return c.x509Cert.BasicConstraintsValid && c.x509Cert.IsCA
}

// IsIssuedBy reports whether the issuer name of c matches the subject name of
// issuer.  No signature is checked.
func (c *Certificate) IsIssuedBy(issuer *Certificate) bool {
	if !c.IsLoaded() || !issuer.IsLoaded() {
		return false
	}
	return bytes.Equal(c.x509Cert.RawIssuer, issuer.x509Cert.RawSubject)
}

// IsSignedBy reports whether c is issued by issuer and its signature verifies
// under issuer's public key.
func (c *Certificate) IsSignedBy(issuer *Certificate) bool {
	if !c.IsIssuedBy(issuer) {
		return false
	}
	// Signature only; CA policy on the issuer is checked by the handler.
	err := issuer.x509Cert.CheckSignature(c.x509Cert.SignatureAlgorithm, c.x509Cert.RawTBSCertificate, c.x509Cert.Signature)
	return err == nil
}

// IsSelfSigned reports whether c is issued and signed by itself.
func (c *Certificate) IsSelfSigned() bool {
	return c.IsSignedBy(c)
}

// Subject returns a printable form of the subject name.
func (c *Certificate) Subject() string {
	if !c.IsLoaded() {
		return ""
	}
	return c.x509Cert.Subject.String()
}

func (c *Certificate) extension(oid asn1.ObjectIdentifier) (int, bool) {
	if !c.IsLoaded() {
		return 0, false
	}
	for i, ext := range c.x509Cert.Extensions {
		if ext.Id.Equal(oid) {
			return i, true
		}
	}
	return 0, false
}
