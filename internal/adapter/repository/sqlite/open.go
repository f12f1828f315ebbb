package sqlite

import (
	"database/sql"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"tunedeck/internal/domain"
)

// Open opens (creating if necessary) the database file at path and returns a
// Store around it. A single connection avoids SQLITE_BUSY on concurrent
// mutations; the store's workload is light enough that this never matters.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, domain.NewStoreError("open", "database", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, domain.NewStoreError("open", "database", path, err)
	}

	return New(db), nil
}
