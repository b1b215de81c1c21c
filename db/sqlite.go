package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound = errors.New("not found")
)

// NewSQLiteDB opens the sqlite DB at dbPath in WAL mode. The pool is limited to one
// connection, sqlite serialises writers anyway.
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err = db.Exec(`
		PRAGMA foreign_keys = ON;
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = normal;
		PRAGMA busy_timeout = 5000;
		PRAGMA journal_size_limit = 6144000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("error configuring sqlite DB %s: %w", dbPath, err)
	}
	return db, nil
}

// ReturnErrNotFound maps sql.ErrNoRows to ErrNotFound
func ReturnErrNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
