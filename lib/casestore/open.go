package casestore

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"umbodsmadur-scraper/lib/casestore/db"
)

// OpenDB opens (creating if necessary) the sqlite database at the given
// path and applies the schema.
func OpenDB(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("a database path was not specified")
	}

	_, statErr := os.Stat(path)
	if os.IsNotExist(statErr) {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		f.Close()
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	database.SetMaxOpenConns(1)
	_, err = database.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	_, err = database.Exec(db.Schema)
	if err != nil {
		return nil, err
	}

	return database, nil
}
