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

// Package testonly contains helpers for loading test fixtures.
package testonly

import (
	"encoding/base64"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/google/ctfrontend/cert"
)

// Fixture file names under the cert package's testdata directory.
const (
	CACertFile        = "ca-cert.pem"
	CAKeyFile         = "ca-key.pem"
	LeafCertFile      = "test-cert.pem"
	OtherLeafCertFile = "test-cert2.pem"
	PrecertCAFile     = "ca-proto-cert.pem"
	PrecertCAKeyFile  = "ca-proto-cert-key.pem"
	PrecertFile       = "test-proto-cert.pem"
)

// CertTestdata returns the path of a fixture in the cert package's testdata
// directory, relative to a package directory one level below the module root.
func CertTestdata(name string) string {
	return filepath.Join("..", "cert", "testdata", name)
}

// MustB64Decode decodes a standard base64 string, panicking on failure.
func MustB64Decode(b64 string) []byte {
	b, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		panic(err)
	}
	return b
}

// MustReadFile returns the contents of path, failing the test if it cannot be
// read.
func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	b, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("ioutil.ReadFile(%q): %s", path, err)
	}
	return string(b)
}

// MustLoadCert reads and parses the certificate fixture at path, failing the
// test if it is not loaded.
func MustLoadCert(t *testing.T, path string) *cert.Certificate {
	t.Helper()
	c := cert.Load(MustReadFile(t, path))
	if !c.IsLoaded() {
		t.Fatalf("cert.Load(%q) returned a certificate that is not loaded", path)
	}
	return c
}
