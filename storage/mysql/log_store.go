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

// Package mysql provides a MySQL based implementation of the Log frontend
// storage.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/google/ctfrontend/storage"
)

// errDuplicateEntry is the MySQL error number for a duplicate primary key.
const errDuplicateEntry = 1062

// Values of the Status column.
const (
	dbPending = 1
	dbLogged  = 2
)

// Store implements storage.LogStore and storage.Finalizer on a MySQL database
// with the schema in log_store.sql.
type Store struct {
	db *sql.DB
}

// NewStore builds a Store instance that records Log entries in a MySQL
// database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// LookupEntry implements storage.LogStore.
func (s *Store) LookupEntry(ctx context.Context, key []byte) (storage.Status, []byte, error) {
	var dbStatus int
	var record []byte
	err := s.db.QueryRowContext(ctx, "SELECT Status, Record FROM LogEntries WHERE PrimaryKey = ?;", key).Scan(&dbStatus, &record)
	switch {
	case err == sql.ErrNoRows:
		return storage.NotFound, nil, nil
	case err != nil:
		return storage.NotFound, nil, fmt.Errorf("LookupEntry: %s", err)
	}
	status, err := fromDBStatus(dbStatus)
	if err != nil {
		return storage.NotFound, nil, fmt.Errorf("LookupEntry: %s", err)
	}
	return status, record, nil
}

// WriteEntry implements storage.LogStore.  The insert relies on the primary
// key constraint, so of any number of concurrent writers for a key exactly one
// sees New.
func (s *Store) WriteEntry(ctx context.Context, key, record []byte) (storage.Status, error) {
	_, err := s.db.ExecContext(ctx, "INSERT INTO LogEntries(PrimaryKey, Status, Record) VALUES (?, ?, ?);", key, dbPending, record)
	if err == nil {
		return storage.New, nil
	}
	if me, ok := err.(*mysql.MySQLError); !ok || me.Number != errDuplicateEntry {
		return storage.NotFound, fmt.Errorf("WriteEntry: %s", err)
	}

	status, _, err := s.LookupEntry(ctx, key)
	if err != nil {
		return storage.NotFound, fmt.Errorf("WriteEntry: %s", err)
	}
	if status == storage.NotFound {
		// Entries are never deleted, so the row that caused the conflict
		// must still be there.
		return storage.NotFound, &storage.UnexpectedStatusError{Op: "WriteEntry", Status: status}
	}
	return status, nil
}

// MarkLogged implements storage.Finalizer.
func (s *Store) MarkLogged(ctx context.Context, key []byte) error {
	res, err := s.db.ExecContext(ctx, "UPDATE LogEntries SET Status = ? WHERE PrimaryKey = ?;", dbLogged, key)
	if err != nil {
		return fmt.Errorf("MarkLogged: %s", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("MarkLogged: %s", err)
	}
	if n > 0 {
		return nil
	}
	// MySQL reports unchanged rows as unaffected, so an already Logged entry
	// looks the same as a missing one here.
	status, _, err := s.LookupEntry(ctx, key)
	if err != nil {
		return fmt.Errorf("MarkLogged: %s", err)
	}
	if status == storage.NotFound {
		return &storage.NotFoundError{Key: key}
	}
	return nil
}

// PendingKeys returns the keys of up to limit Pending entries, oldest first.
func (s *Store) PendingKeys(ctx context.Context, limit int) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT PrimaryKey FROM LogEntries WHERE Status = ? ORDER BY CreatedAt, PrimaryKey LIMIT ?;", dbPending, limit)
	if err != nil {
		return nil, fmt.Errorf("PendingKeys: %s", err)
	}
	defer rows.Close()

	var keys [][]byte
	for rows.Next() {
		var key []byte
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("PendingKeys: %s", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PendingKeys: %s", err)
	}
	return keys, nil
}

func fromDBStatus(s int) (storage.Status, error) {
	switch s {
	case dbPending:
		return storage.Pending, nil
	case dbLogged:
		return storage.Logged, nil
	default:
		return storage.NotFound, fmt.Errorf("unknown Status column value %d", s)
	}
}
