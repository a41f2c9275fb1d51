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

// Ctqueue queues certificate chains with a CT Log frontend and prints the SCT
// issued for each of them.
package main

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/pem"
	"flag"
	"io/ioutil"

	"github.com/golang/glog"
	ct "github.com/google/certificate-transparency-go"
	"github.com/google/certificate-transparency-go/tls"
	"github.com/google/certificate-transparency-go/x509"
	"github.com/google/certificate-transparency-go/x509util"
	"github.com/google/ctfrontend/certgen"
	"github.com/google/ctfrontend/config"
	"github.com/google/ctfrontend/ctlog"
	"github.com/google/ctfrontend/frontend"
	"github.com/google/ctfrontend/sequencer"
	"github.com/google/ctfrontend/signer"
	"github.com/google/ctfrontend/storage"
	"github.com/google/ctfrontend/storage/cache"
	"github.com/google/ctfrontend/storage/memory"
	mysqlstore "github.com/google/ctfrontend/storage/mysql"
	"github.com/google/ctfrontend/storage/print"
	"github.com/google/ctfrontend/submission"
	tpem "github.com/google/trillian/crypto/keys/pem"

	_ "github.com/go-sql-driver/mysql" // Load MySQL driver
)

var (
	configFile = flag.String("config", "", "Path to the YAML config of the Log frontend")
	precert    = flag.Bool("precert", false, "Queue the chains as precertificate entries")
	markLogged = flag.Bool("mark_logged", false, "After queueing, mark every pending entry as logged")
	maxPending = flag.Int("max_pending", 1000, "Maximum number of pending entries to mark as logged in one go (MySQL only)")

	// Synthetic chains, as issued by certgen.
	generate        = flag.Int("generate", 0, "Number of synthetic chains to issue and queue")
	signingCertFile = flag.String("signing_cert", "", "Path to the CA certificate to issue synthetic chains from. Only needed if generate is not 0")
	signingKeyFile  = flag.String("signing_key", "", "Path to the private key of signing_cert. Only needed if generate is not 0")
)

func main() {
	flag.Parse()
	if *configFile == "" {
		glog.Exit("No config file provided.")
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		glog.Exitf("Error loading config from %s: %s", *configFile, err)
	}

	ctx := context.Background()
	key, err := signer.LoadPrivateKey(cfg.Log.PrivateKeyPath, cfg.Log.PrivateKeyPassword)
	if err != nil {
		glog.Exitf("Error loading Log private key: %s", err)
	}
	start, limit, err := cfg.Log.NotAfterRange()
	if err != nil {
		glog.Exit(err)
	}
	l, err := ctlog.New(cfg.Log.Name, key.Public(), start, limit)
	if err != nil {
		glog.Exitf("Unable to create Log: %s", err)
	}
	s, err := signer.New(l, key)
	if err != nil {
		glog.Exitf("%s: unable to create signer: %s", l.Name, err)
	}
	roots, err := submission.NewRootPoolFromFile(cfg.RootsPath)
	if err != nil {
		glog.Exitf("%s: unable to load roots: %s", l.Name, err)
	}
	glog.Infof("%s: Log ID %s, %d trusted roots", l.Name, base64.StdEncoding.EncodeToString(l.LogID.KeyID[:]), roots.Len())

	store, finalizer, pending := newStore(l, &cfg.Storage)
	handler := submission.NewHandler(submission.Options{
		Roots:         roots,
		MaxChainBytes: cfg.MaxChainBytes,
		Log:           l,
	})
	fe := frontend.New(store, s, handler)

	entryType := ct.X509LogEntryType
	if *precert {
		entryType = ct.PrecertLogEntryType
	}
	for _, path := range flag.Args() {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			glog.Exitf("Error reading %s: %s", path, err)
		}
		queue(ctx, fe, l, path, entryType, data)
	}
	for i := 0; i < *generate; i++ {
		data, err := issueChain(*precert)
		if err != nil {
			glog.Exitf("Error issuing synthetic chain: %s", err)
		}
		queue(ctx, fe, l, "synthetic", entryType, data)
	}

	if *markLogged {
		n, err := sequencer.New(l.Name, pending, finalizer).RunOnce(ctx)
		if err != nil {
			glog.Exitf("%s: %s", l.Name, err)
		}
		glog.Infof("%s: marked %d entries as logged", l.Name, n)
	}
}

type finalizingStore interface {
	storage.LogStore
	storage.Finalizer
}

// newStore builds the log store described by cfg, and returns it with a
// function listing its pending entries.
func newStore(l *ctlog.Log, cfg *config.Storage) (storage.LogStore, storage.Finalizer, sequencer.PendingFunc) {
	var store finalizingStore
	var pending sequencer.PendingFunc
	switch cfg.Backend {
	case config.MySQLBackend:
		db, err := sql.Open("mysql", cfg.MySQLURI)
		if err != nil {
			glog.Exitf("%s: sql.Open(): %s", l.Name, err)
		}
		if err := db.Ping(); err != nil {
			glog.Exitf("%s: db.Ping(): %s", l.Name, err)
		}
		ms := mysqlstore.NewStore(db)
		store = ms
		pending = func(ctx context.Context) ([][]byte, error) { return ms.PendingKeys(ctx, *maxPending) }
	default:
		m := memory.NewStore()
		store = m
		pending = m.PendingKeys
	}

	if cfg.CacheSize > 0 {
		c, err := cache.New(store, cfg.CacheSize)
		if err != nil {
			glog.Exitf("%s: %s", l.Name, err)
		}
		store = c
	}
	if cfg.Print {
		store = print.New(l.Name, store)
	}
	return store, store, pending
}

func queue(ctx context.Context, fe *frontend.Frontend, l *ctlog.Log, source string, entryType ct.LogEntryType, data []byte) {
	sct, result, err := fe.QueueEntry(ctx, entryType, data)
	if err != nil {
		glog.Errorf("%s: %s: %s: %s", l.Name, source, result, err)
		return
	}
	if sct == nil {
		glog.Warningf("%s: %s: %s", l.Name, source, result)
		return
	}
	b, err := tls.Marshal(*sct)
	if err != nil {
		glog.Errorf("%s: %s: tls.Marshal(SCT): %s", l.Name, source, err)
		return
	}
	glog.Infof("%s: %s: %s: SCT %s", l.Name, source, result, base64.StdEncoding.EncodeToString(b))
}

// issueChain issues a synthetic chain from the CA given by the signing_cert
// and signing_key flags, and returns it PEM encoded.
func issueChain(precert bool) ([]byte, error) {
	signingCertPEM, err := ioutil.ReadFile(*signingCertFile)
	if err != nil {
		return nil, err
	}
	signingCert, err := x509util.CertificateFromPEM(signingCertPEM)
	if x509.IsFatal(err) {
		return nil, err
	}
	signingKeyPEM, err := ioutil.ReadFile(*signingKeyFile)
	if err != nil {
		return nil, err
	}
	signingKey, err := tpem.UnmarshalPrivateKey(string(signingKeyPEM), "")
	if err != nil {
		return nil, err
	}

	ca := &certgen.CA{
		SigningCert: signingCert,
		SigningKey:  signingKey,
		CertConfig: certgen.CertificateConfig{
			SubjectCommonName:   "flowers-to-the-world.com",
			SubjectOrganization: "Google",
			SubjectCountry:      "GB",
		},
	}
	issue := ca.IssueCertificateChain
	if precert {
		psc, err := ca.IssuePrecertSigningCA("Precertificate Signing")
		if err != nil {
			return nil, err
		}
		issue = psc.IssuePrecertificateChain
	}
	chain, err := issue()
	if err != nil {
		return nil, err
	}
	var out []byte
	for _, c := range chain {
		out = append(out, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: c.Raw})...)
	}
	return out, nil
}
