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

package mysql

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/glog"
	"github.com/google/ctfrontend/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	_ "github.com/go-sql-driver/mysql" // Load MySQL driver
)

var (
	_ storage.LogStore  = &Store{}
	_ storage.Finalizer = &Store{}
)

func key(s string) []byte {
	h := sha256.Sum256([]byte(s))
	return h[:]
}

func TestLookupAndWrite(t *testing.T) {
	ctx := context.Background()
	cleanTestDB(ctx)
	s := NewStore(testDB)

	tests := []struct {
		desc       string
		op         func() (storage.Status, error)
		wantStatus storage.Status
		wantRecord string
	}{
		{
			desc:       "lookup missing",
			op:         func() (storage.Status, error) { st, _, err := s.LookupEntry(ctx, key("a")); return st, err },
			wantStatus: storage.NotFound,
		},
		{
			desc:       "first write",
			op:         func() (storage.Status, error) { return s.WriteEntry(ctx, key("a"), []byte("first")) },
			wantStatus: storage.New,
			wantRecord: "first",
		},
		{
			desc:       "second write",
			op:         func() (storage.Status, error) { return s.WriteEntry(ctx, key("a"), []byte("second")) },
			wantStatus: storage.Pending,
			wantRecord: "first",
		},
		{
			desc:       "mark logged",
			op:         func() (storage.Status, error) { return storage.Logged, s.MarkLogged(ctx, key("a")) },
			wantStatus: storage.Logged,
			wantRecord: "first",
		},
		{
			desc:       "mark logged again",
			op:         func() (storage.Status, error) { return storage.Logged, s.MarkLogged(ctx, key("a")) },
			wantStatus: storage.Logged,
			wantRecord: "first",
		},
		{
			desc:       "write after logged",
			op:         func() (storage.Status, error) { return s.WriteEntry(ctx, key("a"), []byte("third")) },
			wantStatus: storage.Logged,
			wantRecord: "first",
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			got, err := test.op()
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", test.desc, err)
			}
			if got != test.wantStatus {
				t.Errorf("%s: status = %s, want %s", test.desc, got, test.wantStatus)
			}
			_, record, err := s.LookupEntry(ctx, key("a"))
			if err != nil {
				t.Fatalf("LookupEntry(): %v", err)
			}
			if got := string(record); got != test.wantRecord {
				t.Errorf("%s: stored record = %q, want %q", test.desc, got, test.wantRecord)
			}
		})
	}
}

func TestMarkLoggedMissing(t *testing.T) {
	ctx := context.Background()
	cleanTestDB(ctx)
	err := NewStore(testDB).MarkLogged(ctx, key("missing"))
	if _, ok := err.(*storage.NotFoundError); !ok {
		t.Errorf("MarkLogged(missing) = %v, want *storage.NotFoundError", err)
	}
}

func TestPendingKeys(t *testing.T) {
	ctx := context.Background()
	cleanTestDB(ctx)
	s := NewStore(testDB)
	for _, k := range []string{"a", "b", "c"} {
		if _, err := s.WriteEntry(ctx, key(k), []byte(k)); err != nil {
			t.Fatalf("WriteEntry(%s): %v", k, err)
		}
	}
	if err := s.MarkLogged(ctx, key("b")); err != nil {
		t.Fatalf("MarkLogged(): %v", err)
	}

	got, err := s.PendingKeys(ctx, 10)
	if err != nil {
		t.Fatalf("PendingKeys(): %v", err)
	}
	want := [][]byte{key("a"), key("c")}
	less := func(a, b []byte) bool { return bytes.Compare(a, b) < 0 }
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(less)); diff != "" {
		t.Errorf("PendingKeys() diff (-want +got):\n%s", diff)
	}
}

func TestConcurrentWritesOneWinner(t *testing.T) {
	ctx := context.Background()
	cleanTestDB(ctx)
	s := NewStore(testDB)
	const writers = 8

	var mu sync.Mutex
	counts := make(map[storage.Status]int)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status, err := s.WriteEntry(ctx, key("contended"), []byte(fmt.Sprintf("writer %d", i)))
			if err != nil {
				t.Errorf("WriteEntry(): %v", err)
				return
			}
			mu.Lock()
			counts[status]++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	if diff := cmp.Diff(map[storage.Status]int{storage.New: 1, storage.Pending: writers - 1}, counts); diff != "" {
		t.Errorf("WriteEntry() outcomes diff (-want +got):\n%s", diff)
	}
}

func TestMain(m *testing.M) {
	flag.Parse()
	if err := mySQLAvailable(); err != nil {
		glog.Errorf("MySQL not available, skipping all MySQL storage tests: %v", err)
		return
	}
	ctx := context.Background()
	var err error
	testDB, err = newLogStoreDB(ctx)
	if err != nil {
		glog.Exitf("failed to create test database: %v", err)
	}
	defer testDB.Close()
	cleanTestDB(ctx)
	ec := m.Run()
	os.Exit(ec)
}

var (
	testDB     *sql.DB
	dataSource = "root@tcp(127.0.0.1)/"
	schemaSQL  = "log_store.sql"
)

// mySQLAvailable indicates whether a default MySQL database is available.
func mySQLAvailable() error {
	db, err := sql.Open("mysql", dataSource)
	if err != nil {
		return fmt.Errorf("sql.Open(): %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("db.Ping(): %v", err)
	}
	return nil
}

// newEmptyDB creates a new, empty database.
func newEmptyDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("mysql", dataSource)
	if err != nil {
		return nil, err
	}

	// Create a randomly-named database and then connect using the new name.
	name := fmt.Sprintf("ctfe_%v", time.Now().UnixNano())

	stmt := fmt.Sprintf("CREATE DATABASE %v", name)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return nil, fmt.Errorf("error running statement %q: %v", stmt, err)
	}
	db.Close()

	db, err = sql.Open("mysql", dataSource+name)
	if err != nil {
		return nil, fmt.Errorf("failed to open new database %q: %v", name, err)
	}
	return db, db.Ping()
}

// newLogStoreDB creates an empty database with the log store schema.
func newLogStoreDB(ctx context.Context) (*sql.DB, error) {
	db, err := newEmptyDB(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create empty DB: %v", err)
	}

	sqlBytes, err := ioutil.ReadFile(schemaSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema SQL: %v", err)
	}

	for _, stmt := range strings.Split(sanitize(string(sqlBytes)), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("error running statement %q: %v", stmt, err)
		}
	}
	return db, nil
}

func sanitize(script string) string {
	buf := &bytes.Buffer{}
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' || strings.Index(line, "--") == 0 {
			continue // skip empty lines and comments
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	return buf.String()
}

func cleanTestDB(ctx context.Context) {
	if _, err := testDB.ExecContext(ctx, "DELETE FROM LogEntries"); err != nil {
		glog.Exitf("Failed to delete rows in LogEntries: %v", err)
	}
}
