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

package certgen

import (
	"bytes"
	"crypto"
	"fmt"
	"io/ioutil"
	"testing"
	"time"

	"github.com/google/certificate-transparency-go/x509"
	"github.com/google/certificate-transparency-go/x509util"
	"github.com/google/ctfrontend/cert"
	"github.com/google/ctfrontend/interval"
	"github.com/google/go-cmp/cmp"
	"github.com/google/trillian/crypto/keys/pem"
)

const (
	rootFile    = "../cert/testdata/ca-cert.pem"
	rootKeyFile = "../cert/testdata/ca-key.pem"
)

var certConfig = CertificateConfig{
	SubjectCommonName:   "test-leaf-certificate",
	SubjectOrganization: "Test Organisation",
	SubjectCountry:      "GB",
	DNSPrefix:           "test-log",
}

func rootAndKeySetup(rootFile, rootKeyFile string) (*x509.Certificate, crypto.Signer, error) {
	rootPEM, err := ioutil.ReadFile(rootFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading root cert: %s", err)
	}
	root, err := x509util.CertificateFromPEM(rootPEM)
	if x509.IsFatal(err) {
		return nil, nil, fmt.Errorf("error parsing root cert: %s", err)
	}

	rootKeyPEM, err := ioutil.ReadFile(rootKeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading root key: %s", err)
	}
	rootKey, err := pem.UnmarshalPrivateKey(string(rootKeyPEM), "")
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing root key: %s", err)
	}

	return root, rootKey, nil
}

func TestIssueCertificate(t *testing.T) {
	tests := []struct {
		desc             string
		notAfterInterval *interval.Interval
	}{
		{
			desc: "not temporal",
		},
		{
			desc: "smallest temporal",
			notAfterInterval: &interval.Interval{
				Start: time.Date(2019, time.March, 25, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2019, time.March, 25, 0, 0, 1, 0, time.UTC),
			},
		},
		{
			desc: "year temporal",
			notAfterInterval: &interval.Interval{
				Start: time.Date(2019, time.March, 25, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2020, time.March, 25, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	root, rootKey, err := rootAndKeySetup(rootFile, rootKeyFile)
	if err != nil {
		t.Fatalf("root and key setup error: %s", err)
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			cc := certConfig
			cc.NotAfterInterval = test.notAfterInterval
			ca := &CA{SigningCert: root, SigningKey: rootKey, CertConfig: cc}

			c, err := ca.IssueCertificate()
			if err != nil {
				t.Fatalf("error creating certificate: %s", err)
			}

			if c.SerialNumber == nil {
				t.Error("certificate Serial Number is nil")
			}

			// Check the Subject fields.
			if got, want := c.Subject.Country, []string{cc.SubjectCountry}; !cmp.Equal(got, want) {
				t.Errorf("certificate Subject Country = %v, want %v", got, want)
			}
			if got, want := c.Subject.Organization, []string{cc.SubjectOrganization}; !cmp.Equal(got, want) {
				t.Errorf("certificate Subject Organization = %v, want %v", got, want)
			}
			if got, want := c.Subject.CommonName, cc.SubjectCommonName; got != want {
				t.Errorf("certificate Subject Common Name = %s, want %s", got, want)
			}

			// Check the validity period fields.
			if got, want := c.NotBefore, c.NotAfter.Add(-certValidity); !got.Equal(want) {
				t.Errorf("certificate NotBefore = %s, want %s (%s before Not After)", got, want, certValidity)
			}
			if c.NotAfter.IsZero() {
				t.Error("certificate NotAfter is the zero time")
			}
			if cc.NotAfterInterval != nil && !cc.NotAfterInterval.Contains(c.NotAfter) {
				t.Errorf("certificate NotAfter = %s, should be in %s", c.NotAfter, cc.NotAfterInterval)
			}

			// Check the extension fields.
			if got, want := c.ExtKeyUsage, []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}; !cmp.Equal(got, want) {
				t.Errorf("certificate ExtKeyUsage = %v, want %v", got, want)
			}
			if !c.BasicConstraintsValid || c.IsCA {
				t.Errorf("certificate BasicConstraintsValid, IsCA = %t, %t, want true, false", c.BasicConstraintsValid, c.IsCA)
			}
			if got, want := c.Issuer.String(), root.Subject.String(); got != want {
				t.Errorf("certificate Issuer = %s, want %s", got, want)
			}
			if got, want := c.AuthorityKeyId, root.SubjectKeyId; !bytes.Equal(got, want) {
				t.Errorf("certificate AuthorityKeyId = %x, want %x", got, want)
			}
			if got, want := c.SignatureAlgorithm, x509.ECDSAWithSHA256; got != want {
				t.Errorf("certificate SignatureAlgorithm = %s, want %s", got, want)
			}
			if err := c.CheckSignatureFrom(root); err != nil {
				t.Errorf("certificate signature doesn't verify: %s", err)
			}
		})
	}
}

func TestIssueCertificateChain(t *testing.T) {
	root, err := NewRootCA("Test Root", certConfig)
	if err != nil {
		t.Fatalf("NewRootCA(): %s", err)
	}
	intermediate, err := root.IssueIntermediateCA("Test Intermediate")
	if err != nil {
		t.Fatalf("IssueIntermediateCA(): %s", err)
	}

	chain, err := intermediate.IssueCertificateChain()
	if err != nil {
		t.Fatalf("IssueCertificateChain() = _, %q, want nil error", err)
	}
	if len(chain) != 3 {
		t.Fatalf("IssueCertificateChain(): chain length = %d, want 3", len(chain))
	}
	if !chain[2].Equal(root.SigningCert) {
		t.Fatalf("IssueCertificateChain(): root of chain (%v) is not equal to root.SigningCert (%v)", chain[2].Subject, root.SigningCert.Subject)
	}

	c := cert.NewChain("")
	for _, x := range chain {
		c.AddCert(cert.LoadDER(x.Raw))
	}
	if !c.IsValidSignatureChain() {
		t.Errorf("IssueCertificateChain(): chain does not verify")
	}
	if !c.LastCert().IsSelfSigned() {
		t.Errorf("IssueCertificateChain(): last certificate is not self-signed")
	}
}

func TestIssuePrecertificateChain(t *testing.T) {
	root, err := NewRootCA("Test Root", certConfig)
	if err != nil {
		t.Fatalf("NewRootCA(): %s", err)
	}

	tests := []struct {
		desc           string
		ca             func() (*CA, error)
		wantLength     int
		wantWellFormed bool
	}{
		{
			desc:       "issued by root",
			ca:         func() (*CA, error) { return root, nil },
			wantLength: 2,
		},
		{
			desc:           "issued by precert signing CA",
			ca:             func() (*CA, error) { return root.IssuePrecertSigningCA("Test Precert Signer") },
			wantLength:     3,
			wantWellFormed: true,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			ca, err := test.ca()
			if err != nil {
				t.Fatalf("creating CA: %s", err)
			}
			chain, err := ca.IssuePrecertificateChain()
			if err != nil {
				t.Fatalf("IssuePrecertificateChain(): %s", err)
			}

			c := cert.NewPrecertChain("")
			for _, x := range chain {
				c.AddCert(cert.LoadDER(x.Raw))
			}
			if got := c.Length(); got != test.wantLength {
				t.Fatalf("chain length = %d, want %d", got, test.wantLength)
			}
			if !c.LeafCert().IsCriticalExtension(cert.OIDExtensionCTPoison) {
				t.Errorf("precertificate has no critical poison extension")
			}
			if !c.IsValidSignatureChain() {
				t.Errorf("IsValidSignatureChain() = false")
			}
			if got := c.IsWellFormed(); got != test.wantWellFormed {
				t.Errorf("IsWellFormed() = %t, want %t", got, test.wantWellFormed)
			}
		})
	}
}

func TestExtendedDNSSAN(t *testing.T) {
	tests := []struct {
		desc    string
		timeNow time.Time
		prefix  string
		url     string
		want    string
	}{
		{
			desc:    "prefix",
			timeNow: time.Date(2019, time.March, 25, 12, 0, 0, 0, time.UTC),
			prefix:  "squirrel",
			url:     "example.com",
			want:    "12.25.march.2019.squirrel.example.com",
		},
		{
			desc:    "empty prefix",
			timeNow: time.Date(2019, time.January, 25, 12, 0, 0, 0, time.UTC),
			prefix:  "",
			url:     "example.com",
			want:    "12.25.january.2019.example.com",
		},
	}

	defer func(f func() time.Time) { timeNowUTC = f }(timeNowUTC)
	for _, test := range tests {
		timeNowUTC = func() time.Time {
			return test.timeNow
		}
		if got := extendedDNSSAN(test.prefix, test.url); got != test.want {
			t.Errorf("%s: extendedDNSSAN(%s, %s) = %s, want %s", test.desc, test.prefix, test.url, got, test.want)
		}
	}
}
