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
	"crypto/sha256"
	"fmt"
	"io/ioutil"

	"github.com/google/ctfrontend/cert"
)

// RootPool is the set of root certificates a Log accepts chains up to.  It is
// immutable once built and safe for concurrent use.
type RootPool struct {
	roots []*cert.Certificate
	byDER map[[sha256.Size]byte]*cert.Certificate
}

// NewRootPool returns a pool holding the given loaded certificates.
func NewRootPool(roots ...*cert.Certificate) (*RootPool, error) {
	p := &RootPool{byDER: make(map[[sha256.Size]byte]*cert.Certificate)}
	for i, r := range roots {
		if !r.IsLoaded() {
			return nil, fmt.Errorf("root %d is not loaded", i)
		}
		h := sha256.Sum256(r.DER())
		if _, ok := p.byDER[h]; ok {
			continue
		}
		p.byDER[h] = r
		p.roots = append(p.roots, r)
	}
	return p, nil
}

// NewRootPoolFromPEM returns a pool holding every certificate in pemBundle.
func NewRootPoolFromPEM(pemBundle string) (*RootPool, error) {
	chain := cert.NewChain(pemBundle)
	if !chain.IsLoaded() {
		return nil, fmt.Errorf("roots bundle could not be parsed")
	}
	return NewRootPool(chain.Certs()...)
}

// NewRootPoolFromFile returns a pool holding every certificate in the PEM file
// at path.
func NewRootPoolFromFile(path string) (*RootPool, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading roots file: %s", err)
	}
	p, err := NewRootPoolFromPEM(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %s", path, err)
	}
	return p, nil
}

// Len returns the number of roots in the pool.
func (p *RootPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.roots)
}

// Contains reports whether c is byte-for-byte one of the roots.
func (p *RootPool) Contains(c *cert.Certificate) bool {
	if p == nil || !c.IsLoaded() {
		return false
	}
	_, ok := p.byDER[sha256.Sum256(c.DER())]
	return ok
}

// FindIssuer returns the root that issued and signed c, or nil if there is
// none.
func (p *RootPool) FindIssuer(c *cert.Certificate) *cert.Certificate {
	if p == nil {
		return nil
	}
	for _, r := range p.roots {
		if c.IsSignedBy(r) {
			return r
		}
	}
	return nil
}

// Anchor returns the root that c chains to: c itself if it is a root,
// otherwise the root that issued and signed it.  It returns nil if c does not
// chain to any root in the pool.
func (p *RootPool) Anchor(c *cert.Certificate) *cert.Certificate {
	if p.Contains(c) {
		return p.byDER[sha256.Sum256(c.DER())]
	}
	return p.FindIssuer(c)
}
