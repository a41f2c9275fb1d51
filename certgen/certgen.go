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

// Package certgen generates (pre-)certificates and (pre-)certificate chains
// for exercising a CT Log frontend.
package certgen

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	crand "crypto/rand"
	"crypto/sha1"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/certificate-transparency-go/asn1"
	"github.com/google/certificate-transparency-go/x509"
	"github.com/google/certificate-transparency-go/x509/pkix"
	"github.com/google/ctfrontend/interval"
)

const (
	certValidity = time.Hour * 24
	caValidity   = time.Hour * 24 * 365 * 10
)

var timeNowUTC = func() time.Time {
	return time.Now().UTC()
}

// CertificateConfig contains details to be used to populate newly created leaf
// certificates.
type CertificateConfig struct {
	// What these are set to, including the zero values if left unset, is what
	// will appear in the leaf certificates.
	SubjectCommonName   string
	SubjectOrganization string
	SubjectCountry      string

	// DNSPrefix is a prefix that will be used in conjunction with the
	// SubjectCommonName to create a more specific DNS SAN.
	DNSPrefix string
	// NotAfterInterval specifies an interval in which the NotAfter time of a
	// certificate must fall.
	NotAfterInterval *interval.Interval
}

// CA is a Certificate Authority that issues synthetic certificates and
// certificate chains using its SigningCert and SigningKey.
type CA struct {
	SigningCert *x509.Certificate
	SigningKey  crypto.Signer
	// Chain holds the certificates from the issuer of SigningCert up to the
	// root.  It is empty for a root CA.
	Chain      []*x509.Certificate
	CertConfig CertificateConfig
}

// NewRootCA creates a self-signed root CA with a fresh ECDSA P-256 key.
func NewRootCA(commonName string, cc CertificateConfig) (*CA, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), crand.Reader)
	if err != nil {
		return nil, fmt.Errorf("error generating key pair: %s", err)
	}
	template, err := caTemplate(commonName, cc, key.Public())
	if err != nil {
		return nil, fmt.Errorf("error creating root template: %s", err)
	}
	root, err := createCertificate(template, template, key.Public(), key)
	if err != nil {
		return nil, err
	}
	return &CA{SigningCert: root, SigningKey: key, CertConfig: cc}, nil
}

// IssueIntermediateCA creates a subordinate CA whose certificate is signed by
// ca.
func (ca *CA) IssueIntermediateCA(commonName string) (*CA, error) {
	return ca.issueCA(commonName, nil)
}

// IssuePrecertSigningCA creates a CA carrying the CT precertificate signing
// extended key usage, which issues precertificates on behalf of ca (RFC 6962
// s3.1).
func (ca *CA) IssuePrecertSigningCA(commonName string) (*CA, error) {
	return ca.issueCA(commonName, []x509.ExtKeyUsage{x509.ExtKeyUsageCertificateTransparency})
}

func (ca *CA) issueCA(commonName string, eku []x509.ExtKeyUsage) (*CA, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), crand.Reader)
	if err != nil {
		return nil, fmt.Errorf("error generating key pair: %s", err)
	}
	template, err := caTemplate(commonName, ca.CertConfig, key.Public())
	if err != nil {
		return nil, fmt.Errorf("error creating CA template: %s", err)
	}
	template.ExtKeyUsage = eku
	template.MaxPathLen = 0
	template.MaxPathLenZero = true

	c, err := createCertificate(template, ca.SigningCert, key.Public(), ca.SigningKey)
	if err != nil {
		return nil, err
	}
	return &CA{
		SigningCert: c,
		SigningKey:  key,
		Chain:       append([]*x509.Certificate{ca.SigningCert}, ca.Chain...),
		CertConfig:  ca.CertConfig,
	}, nil
}

// IssueCertificate creates a new leaf certificate, issued by the CA's
// SigningCert and SigningKey, and configured using the CertConfig in the CA.
func (ca *CA) IssueCertificate() (*x509.Certificate, error) {
	return ca.issueLeaf(false)
}

// IssuePrecertificate creates a new precertificate: a leaf certificate
// carrying the critical CT poison extension.
func (ca *CA) IssuePrecertificate() (*x509.Certificate, error) {
	return ca.issueLeaf(true)
}

// IssueCertificateChain creates a new leaf certificate and returns it followed
// by the CA's certificate chain, up to and including the root.
func (ca *CA) IssueCertificateChain() ([]*x509.Certificate, error) {
	leaf, err := ca.IssueCertificate()
	if err != nil {
		return nil, err
	}
	return ca.chainFor(leaf), nil
}

// IssuePrecertificateChain is like IssueCertificateChain but issues a
// precertificate.
func (ca *CA) IssuePrecertificateChain() ([]*x509.Certificate, error) {
	precert, err := ca.IssuePrecertificate()
	if err != nil {
		return nil, err
	}
	return ca.chainFor(precert), nil
}

func (ca *CA) chainFor(leaf *x509.Certificate) []*x509.Certificate {
	chain := []*x509.Certificate{leaf, ca.SigningCert}
	return append(chain, ca.Chain...)
}

func (ca *CA) issueLeaf(poison bool) (*x509.Certificate, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), crand.Reader)
	if err != nil {
		return nil, fmt.Errorf("error generating key pair: %s", err)
	}

	template, err := leafTemplate(ca.CertConfig)
	if err != nil {
		return nil, fmt.Errorf("error creating leaf template: %s", err)
	}
	if poison {
		template.ExtraExtensions = append(template.ExtraExtensions, pkix.Extension{
			Id:       x509.OIDExtensionCTPoison,
			Critical: true,
			Value:    asn1.NullBytes,
		})
	}

	return createCertificate(template, ca.SigningCert, key.Public(), ca.SigningKey)
}

func createCertificate(template, parent *x509.Certificate, pub crypto.PublicKey, signer crypto.Signer) (*x509.Certificate, error) {
	der, err := x509.CreateCertificate(crand.Reader, template, parent, pub, signer)
	if err != nil {
		return nil, fmt.Errorf("error creating certificate: %s", err)
	}
	c, err := x509.ParseCertificate(der)
	if x509.IsFatal(err) {
		return nil, fmt.Errorf("error parsing certificate DER: %s", err)
	}
	return c, nil
}

func caTemplate(commonName string, c CertificateConfig, pub crypto.PublicKey) (*x509.Certificate, error) {
	sn, err := randSerialNumber()
	if err != nil {
		return nil, err
	}
	skid, err := subjectKeyID(pub)
	if err != nil {
		return nil, err
	}
	now := timeNowUTC()
	return &x509.Certificate{
		SerialNumber: sn,
		Subject: pkix.Name{
			Country:      []string{c.SubjectCountry},
			Organization: []string{c.SubjectOrganization},
			CommonName:   commonName,
		},
		NotBefore:          now.Add(-time.Hour),
		NotAfter:           now.Add(caValidity),
		SignatureAlgorithm: x509.ECDSAWithSHA256,

		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
		SubjectKeyId:          skid,
	}, nil
}

func leafTemplate(c CertificateConfig) (*x509.Certificate, error) {
	sn, err := randSerialNumber()
	if err != nil {
		return nil, err
	}

	notAfter := randNotAfter(c.NotAfterInterval)

	return &x509.Certificate{
		SerialNumber: sn,
		Subject: pkix.Name{
			Country:      []string{c.SubjectCountry},
			Organization: []string{c.SubjectOrganization},
			CommonName:   c.SubjectCommonName,
		},
		NotBefore:          notAfter.Add(-certValidity),
		NotAfter:           notAfter,
		SignatureAlgorithm: x509.ECDSAWithSHA256,

		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  false,
		DNSNames:              []string{c.SubjectCommonName, extendedDNSSAN(c.DNSPrefix, c.SubjectCommonName)},
	}, nil
}

// subjectKeyID follows RFC 5280 s4.2.1.2 method 1: the SHA-1 hash of the
// subjectPublicKey bit string.
func subjectKeyID(pub crypto.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("error marshalling public key: %s", err)
	}
	var spki struct {
		Algorithm pkix.AlgorithmIdentifier
		PublicKey asn1.BitString
	}
	if _, err := asn1.Unmarshal(der, &spki); err != nil {
		return nil, fmt.Errorf("error parsing public key: %s", err)
	}
	h := sha1.Sum(spki.PublicKey.Bytes)
	return h[:], nil
}

func randSerialNumber() (*big.Int, error) {
	i := big.NewInt(0)
	return crand.Int(crand.Reader, i.SetUint64(math.MaxUint64))
}

func randNotAfter(notAfterInterval *interval.Interval) time.Time {
	if t := notAfterInterval.RandomSecond(); !t.IsZero() {
		return t.UTC()
	}
	return timeNowUTC().Add(certValidity).Truncate(time.Second)
}

// extendedDNSSAN creates a string to be used in the DNSNames SAN.  The string
// created is of the format <hour>.<day>.<month>.<year>.<prefix>.<url> where the
// time elements are based on the time now.  For example, if
// extendedDNSSAN(abc, xyz) was called at 2019-03-25 12:00 UTC, it would return
// 12.25.march.2019.abc.xyz
func extendedDNSSAN(prefix string, url string) string {
	now := timeNowUTC()
	dns := []string{
		strconv.Itoa(now.Hour()),
		strconv.Itoa(now.Day()),
		strings.ToLower(now.Month().String()),
		strconv.Itoa(now.Year()),
	}
	if prefix != "" {
		dns = append(dns, prefix)
	}
	dns = append(dns, url)
	return strings.Join(dns, ".")
}
