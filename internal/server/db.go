package server

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// OpenMemoryDB opens a private in-process SQLite database. The pool is held
// to one connection: every ":memory:" connection would otherwise get its own
// empty database.
func OpenMemoryDB() (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
